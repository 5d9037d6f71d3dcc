package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/mistconv/pkg/cli"
	"github.com/newtron-network/mistconv/pkg/eventlog"
)

var (
	eventsLevel  string
	eventsFile   string
	eventsRun    string
	eventsLast   string
	eventsLimit  int
	eventsOffset int
	eventsPath   string
	eventsWidth  int
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show events logged by past conversions",
	Long: `Show events from the conversion event log (default
~/.mistconv/events.log).

Examples:
  mistconv events --level warning
  mistconv events --file sw1.txt --last 24h
  mistconv events --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := eventlog.Filter{
			Level:  eventlog.Level(eventsLevel),
			File:   eventsFile,
			RunID:  eventsRun,
			Limit:  eventsLimit,
			Offset: eventsOffset,
		}
		switch filter.Level {
		case "", eventlog.LevelDebug, eventlog.LevelInfo, eventlog.LevelWarning, eventlog.LevelError, eventlog.LevelCritical:
		default:
			return fmt.Errorf("invalid level: %s", eventsLevel)
		}

		// Parse --last duration
		if eventsLast != "" {
			duration, err := time.ParseDuration(eventsLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", eventsLast)
			}
			filter.StartTime = time.Now().Add(-duration)
		}

		path := eventsPath
		if path == "" {
			path = userSettings.GetEventLog()
		}
		logger, err := eventlog.NewFileLogger(path, eventlog.RotationConfig{})
		if err != nil {
			return err
		}
		defer logger.Close()

		events, err := logger.Query(filter)
		if err != nil {
			return fmt.Errorf("querying event log: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(events)
		}

		if len(events) == 0 {
			fmt.Println("No events found")
			return nil
		}

		t := cli.NewTable("TIMESTAMP", "LEVEL", "FILE", "MESSAGE")
		if cmd.Flags().Changed("width") {
			t.WithWidth(eventsWidth)
		}
		for _, e := range events {
			msg := e.Message
			if e.Error != "" {
				msg += ": " + e.Error
			}
			t.Row(e.Timestamp.Format("2006-01-02 15:04:05"), cli.Level(string(e.Level)), e.File, msg)
		}
		t.Flush()
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsLevel, "level", "", "Minimum level: debug, info, warning, error, critical")
	eventsCmd.Flags().StringVar(&eventsFile, "file", "", "Only events about this configuration file")
	eventsCmd.Flags().StringVar(&eventsRun, "run", "", "Only events of this conversion run")
	eventsCmd.Flags().StringVar(&eventsLast, "last", "", "Only events from this long ago (e.g. 24h)")
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 100, "Maximum number of events")
	eventsCmd.Flags().IntVar(&eventsOffset, "offset", 0, "Skip this many events")
	eventsCmd.Flags().StringVar(&eventsPath, "log", "", "Event log file (default from settings)")
	eventsCmd.Flags().IntVar(&eventsWidth, "width", 0, "Wrap the table at this many columns, 0 to disable (default terminal width)")
	addOutputFlags(eventsCmd)
}
