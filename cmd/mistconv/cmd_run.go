package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/mistconv/pkg/collect"
	"github.com/newtron-network/mistconv/pkg/job"
	"github.com/newtron-network/mistconv/pkg/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run <job.yaml>",
	Short: "Run a batch conversion job",
	Long: `Run a conversion described by a YAML job file: the files to read, the
switches to collect from, the output file and an optional Redis export.

Example job:

  name: campus
  inputs:
    - configs/*.txt
  devices:
    - name: core1
      host: 10.0.0.1
      dialect: junos
      user: admin
  output:
    path: out/campus.json
  redis:
    addr: 127.0.0.1:6379
  event_log: out/events.log

Devices without a password use $MISTCONV_SSH_PASSWORD or a prompt.
Relative paths resolve against the job file's directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := job.Load(args[0])
		if err != nil {
			return err
		}

		paths, err := j.Files()
		if err != nil {
			return err
		}
		files, err := readFiles(paths)
		if err != nil {
			return err
		}

		if len(j.Devices) > 0 {
			collected, err := collectDevices(cmd, j.Devices)
			if err != nil {
				return err
			}
			files = append(files, collected...)
		}

		c := &conversion{
			name:     j.Name,
			output:   j.Resolve(j.Output.Path),
			format:   j.Output.Format,
			eventLog: j.Resolve(j.EventLog),
			progress: os.Stderr,
			status:   os.Stderr,
		}
		if j.Redis != nil {
			c.redisAddr, c.redisDB = j.Redis.Addr, j.Redis.DB
		}
		_, err = c.execute(cmd.Context(), files)
		return err
	},
}

func collectDevices(cmd *cobra.Command, devices []collect.Device) ([]*pipeline.ConfigFile, error) {
	var password string
	for i := range devices {
		d := &devices[i]
		if d.User == "" {
			d.User = userSettings.SSHUser
		}
		if d.Password != "" {
			continue
		}
		if password == "" {
			p, err := readPassword(d.User)
			if err != nil {
				return nil, err
			}
			password = p
		}
		d.Password = password
	}

	files, errs := collect.New().CollectAll(cmd.Context(), devices)
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d device(s) could not be collected\n", len(errs), len(devices))
	}
	return files, nil
}
