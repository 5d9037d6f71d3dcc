package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/mistconv/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(info)
		}
		if info.Version == "dev" {
			fmt.Println("mistconv dev build (use 'make build' for version info)")
		}
		fmt.Println("mistconv " + info.String())
		return nil
	},
}

func init() {
	addOutputFlags(versionCmd)
}
