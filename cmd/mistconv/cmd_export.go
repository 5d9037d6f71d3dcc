package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/newtron-network/mistconv/pkg/cli"
	"github.com/newtron-network/mistconv/pkg/pipeline"
	"github.com/newtron-network/mistconv/pkg/store"
)

var (
	exportRedis  string
	exportDB     int
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Read templates and file status exported to Redis",
	Long: `Read templates and per-file conversion status previously exported with
--redis.

Examples:
  mistconv export list
  mistconv export show campus -o campus.yaml
  mistconv export status sw1.txt`,
}

var exportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := exportClient()
		if err != nil {
			return err
		}
		defer client.Close()

		names, err := client.Templates(cmd.Context())
		if err != nil {
			return err
		}
		sort.Strings(names)
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(names)
		}
		if len(names) == 0 {
			fmt.Println("No templates exported")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var exportShowCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Print an exported template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := exportClient()
		if err != nil {
			return err
		}
		defer client.Close()

		t, err := client.LoadTemplate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		output := outputPath(exportOutput)
		return writeTemplate(output, outputFormat(exportFormat, output), t)
	},
}

var exportStatusCmd = &cobra.Command{
	Use:   "status <file>...",
	Short: "Show the exported conversion status of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := exportClient()
		if err != nil {
			return err
		}
		defer client.Close()

		var statuses []*store.FileStatus
		for _, f := range args {
			st, err := client.Status(cmd.Context(), f)
			if err != nil {
				return err
			}
			statuses = append(statuses, st)
		}
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(statuses)
		}

		t := cli.NewTable("FILE", "TEMPLATE", "FORMAT", "VLANS", "CONFIG", "ERROR")
		for _, st := range statuses {
			t.Row(st.File, st.Template, st.Format, cli.Status(st.SuccessVlan), cli.Status(st.SuccessConfig), st.ErrorMessage)
		}
		t.Flush()
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportRedis, "redis", "", "Redis server (default from settings)")
	exportCmd.PersistentFlags().IntVar(&exportDB, "db", store.DefaultDB, "Redis database")
	exportShowCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: json or yaml")
	exportShowCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	addOutputFlags(exportListCmd)
	addOutputFlags(exportStatusCmd)

	exportCmd.AddCommand(exportListCmd, exportShowCmd, exportStatusCmd)
}

func exportClient() (*store.Client, error) {
	addr := exportRedis
	if addr == "" {
		addr = userSettings.RedisAddr
	}
	if addr == "" {
		return nil, fmt.Errorf("no redis server: use --redis or 'mistconv settings set redis_addr <addr>'")
	}
	if exportFormat != "" && exportFormat != pipeline.OutputJSON && exportFormat != pipeline.OutputYAML {
		return nil, fmt.Errorf("--format must be %s or %s", pipeline.OutputJSON, pipeline.OutputYAML)
	}
	return store.NewClient(addr, exportDB), nil
}
