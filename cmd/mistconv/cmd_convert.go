package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/mistconv/pkg/pipeline"
)

var (
	convertName     string
	convertOutput   string
	convertFormat   string
	convertRedis    string
	convertNoEvents bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert configuration files into a template",
	Long: `Convert IOS and Junos configuration files into one Mist template.

Files are processed in the order given; the order decides which VLAN name
and which profile name wins when files disagree.

Examples:
  mistconv convert sw1.txt sw2.txt -o campus.json
  mistconv convert configs/* --name campus --format yaml
  mistconv convert sw1.txt --redis 127.0.0.1:6379`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if convertFormat != "" && convertFormat != pipeline.OutputJSON && convertFormat != pipeline.OutputYAML {
			return fmt.Errorf("--format must be %s or %s", pipeline.OutputJSON, pipeline.OutputYAML)
		}
		files, err := readFiles(args)
		if err != nil {
			return err
		}

		name := convertName
		if name == "" {
			name = userSettings.GetTemplateName()
		}
		redisAddr := convertRedis
		if redisAddr == "" {
			redisAddr = userSettings.RedisAddr
		}
		output := outputPath(convertOutput)

		c := &conversion{
			name:      name,
			output:    output,
			format:    outputFormat(convertFormat, output),
			redisAddr: redisAddr,
			progress:  os.Stderr,
			status:    os.Stderr,
		}
		if !convertNoEvents {
			c.eventLog = userSettings.GetEventLog()
		}
		_, err = c.execute(cmd.Context(), files)
		return err
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertName, "name", "n", "", "Template name (default from settings)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default stdout)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format: json or yaml")
	convertCmd.Flags().StringVar(&convertRedis, "redis", "", "Export the template to this Redis server")
	convertCmd.Flags().BoolVar(&convertNoEvents, "no-event-log", false, "Do not append events to the event log")
}
