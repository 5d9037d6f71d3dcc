// Mistconv - switch configuration to Mist template converter
//
// Reads block-style (IOS) and set-style (Junos) switch configurations,
// merges them into one deduplicated model and writes a Mist switch
// template: networks, port usages, RADIUS/TACACS servers, syslog, DHCP
// snooping and per-switch port rules.
//
// Examples:
//
//	mistconv convert sw1.txt sw2.txt -o campus.json      # Convert files
//	mistconv convert configs/*.conf --format yaml        # YAML to stdout
//	mistconv collect --host 10.0.0.1 --dialect junos     # Fetch over SSH
//	mistconv run job.yaml                                # Batch job
//	mistconv serve                                       # HTTP API
//	mistconv events --level warning --last 1h            # Past events
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/newtron-network/mistconv/pkg/settings"
	"github.com/newtron-network/mistconv/pkg/util"
)

// errConversionFailed is returned when no input file converted, so the
// process exits non-zero after the status table is printed.
var errConversionFailed = errors.New("conversion failed")

var (
	// Global option flags
	verbose     bool
	quiet       bool
	jsonLog     bool
	jsonOutput  bool
	settingsArg string

	// Global state
	userSettings *settings.Settings
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errConversionFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "mistconv",
	Short:             "Convert switch configurations to Mist templates",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Mistconv converts IOS and Junos switch configurations into a Mist switch
template.

Every input file goes through four stages: format detection, VLAN
database, configuration, and (once for all files) template generation.
A file that fails a stage is reported and skipped; the others still
contribute to the template.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		util.SetLogOutput(cmd.ErrOrStderr())
		if jsonLog {
			util.SetJSONFormat()
		}
		switch {
		case verbose:
			util.SetLogLevel("debug")
		case quiet:
			util.SetLogLevel("warn")
		default:
			util.SetLogLevel("info")
		}

		var err error
		path := settingsArg
		if path == "" {
			path = settings.DefaultSettingsPath()
		}
		userSettings, err = settings.LoadFrom(path)
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug events)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Log in JSON format")
	rootCmd.PersistentFlags().StringVar(&settingsArg, "settings", "", "Settings file (default ~/.mistconv/settings.json)")

	rootCmd.AddCommand(
		convertCmd,
		runCmd,
		collectCmd,
		serveCmd,
		exportCmd,
		eventsCmd,
		settingsCmd,
		versionCmd,
	)
}

// addOutputFlags registers --json on commands producing structured output.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
}

func settingsPath() string {
	if settingsArg != "" {
		return settingsArg
	}
	return settings.DefaultSettingsPath()
}
