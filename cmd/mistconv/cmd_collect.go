package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/newtron-network/mistconv/pkg/collect"
	"github.com/newtron-network/mistconv/pkg/pipeline"
	"github.com/newtron-network/mistconv/pkg/util"
)

// passwordEnv supplies the SSH password without a prompt.
const passwordEnv = "MISTCONV_SSH_PASSWORD"

var (
	collectHosts   []string
	collectDialect string
	collectUser    string
	collectPort    int
	collectDir     string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Fetch configurations from switches over SSH",
	Long: `Fetch running configurations over SSH and save them as files that
convert can read.

IOS switches are asked for "show vlan brief" and "show running-config";
Junos switches for "show configuration | display set". The password is
read from $MISTCONV_SSH_PASSWORD or prompted for.

Examples:
  mistconv collect --host 10.0.0.1 --host 10.0.0.2 --dialect ios -u admin
  mistconv collect --host core1=10.0.0.9 --dialect junos -d configs/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(collectHosts) == 0 {
			return fmt.Errorf("at least one --host is required")
		}
		var dialect pipeline.Format
		if err := dialect.UnmarshalText([]byte(collectDialect)); err != nil || dialect == pipeline.FormatUnknown {
			return fmt.Errorf("--dialect must be ios or junos")
		}
		user := collectUser
		if user == "" {
			user = userSettings.SSHUser
		}
		password, err := readPassword(user)
		if err != nil {
			return err
		}

		var devices []collect.Device
		for _, h := range collectHosts {
			d := collect.Device{Host: h, Port: collectPort, User: user, Password: password, Dialect: dialect}
			if name, host, ok := strings.Cut(h, "="); ok {
				d.Name, d.Host = name, host
			}
			util.WithHost(d.Host).Debugf("Collecting %s configuration into %s", dialect, d.FileName())
			devices = append(devices, d)
		}

		files, errs := collect.New().CollectAll(cmd.Context(), devices)
		for _, f := range files {
			path := filepath.Join(collectDir, f.Name)
			if err := writeConfigFile(path, f); err != nil {
				return err
			}
			util.WithFile(f.Name).Info("Configuration saved")
			fmt.Println(path)
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d of %d device(s) failed", len(errs), len(devices))
		}
		return nil
	},
}

func init() {
	collectCmd.Flags().StringArrayVar(&collectHosts, "host", nil, "Switch address, optionally name=address (repeatable)")
	collectCmd.Flags().StringVar(&collectDialect, "dialect", "", "Configuration dialect: ios or junos")
	collectCmd.Flags().StringVarP(&collectUser, "user", "u", "", "SSH user (default from settings)")
	collectCmd.Flags().IntVarP(&collectPort, "port", "p", 22, "SSH port")
	collectCmd.Flags().StringVarP(&collectDir, "dir", "d", ".", "Directory to save configurations in")
}

func writeConfigFile(path string, f *pipeline.ConfigFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.Join(f.Lines, "\n")), 0644)
}

// readPassword returns $MISTCONV_SSH_PASSWORD, or prompts on the terminal.
func readPassword(user string) (string, error) {
	if p := os.Getenv(passwordEnv); p != "" {
		return p, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal for the password prompt: set %s", passwordEnv)
	}
	fmt.Fprintf(os.Stderr, "SSH password for %s: ", user)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	util.Debugf("Password read from terminal")
	return string(b), nil
}
