package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/newtron-network/mistconv/pkg/cli"
	"github.com/newtron-network/mistconv/pkg/eventlog"
	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/pipeline"
	"github.com/newtron-network/mistconv/pkg/store"
	"github.com/newtron-network/mistconv/pkg/util"
)

// conversion holds the options shared by convert and run.
type conversion struct {
	name      string
	output    string // empty writes to stdout
	format    string
	redisAddr string
	redisDB   int
	eventLog  string // empty disables the event log
	progress  io.Writer
	status    io.Writer
}

// execute converts files, writes the template and exports it when Redis is
// configured.
func (c *conversion) execute(ctx context.Context, files []*pipeline.ConfigFile) (*pipeline.Result, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no configuration files to convert")
	}
	runID := uuid.NewString()
	log := util.Logger.WithField("run", runID)

	if c.eventLog != "" {
		fl, err := eventlog.NewFileLogger(c.eventLog, eventlog.DefaultRotation)
		if err != nil {
			log.Warnf("Event log disabled: %v", err)
		} else {
			defer fl.Close()
			util.Logger.AddHook(eventlog.NewHook(runID, eventlog.LevelInfo, fl))
		}
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(util.Logger),
		pipeline.WithTemplateName(c.name),
	}
	if c.progress != nil {
		opts = append(opts, pipeline.WithProgress(&consoleProgress{w: c.progress}))
	}
	res, err := pipeline.NewConverter(opts...).Convert(ctx, files)
	if err != nil {
		return nil, err
	}

	if c.status != nil {
		printFileStatus(c.status, res.Files)
	}
	if len(res.Failed()) == len(files) {
		return res, errConversionFailed
	}

	if err := writeTemplate(c.output, c.format, res.Template); err != nil {
		return res, err
	}
	if c.output != "" {
		log.Infof("Template %s written to %s", res.Template.Name, c.output)
	}

	if c.redisAddr != "" {
		client := store.NewClient(c.redisAddr, c.redisDB)
		defer client.Close()
		if err := client.Export(ctx, res); err != nil {
			return res, fmt.Errorf("exporting to redis %s: %w", c.redisAddr, err)
		}
		log.Infof("Template %s exported to redis %s", res.Template.Name, c.redisAddr)
	}
	return res, nil
}

// writeTemplate encodes t to path, or to stdout when path is empty.
func writeTemplate(path, format string, t *model.MistTemplate) error {
	if path == "" {
		return pipeline.EncodeTemplate(os.Stdout, t, format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pipeline.EncodeTemplate(f, t, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readFiles loads configuration files in the given order.
func readFiles(paths []string) ([]*pipeline.ConfigFile, error) {
	files := make([]*pipeline.ConfigFile, 0, len(paths))
	for _, p := range paths {
		f, err := pipeline.ReadConfigFile(p)
		if err != nil {
			return nil, err
		}
		util.WithFile(f.Name).Debugf("Read %d lines from %s", len(f.Lines), p)
		files = append(files, f)
	}
	return files, nil
}

// outputPath places a bare file name in the configured output directory.
func outputPath(path string) string {
	if path == "" || userSettings.OutputDir == "" || filepath.Base(path) != path {
		return path
	}
	return filepath.Join(userSettings.OutputDir, path)
}

// outputFormat resolves the encoding: explicit flag, then the output file
// extension, then the settings.
func outputFormat(flag, path string) string {
	if flag != "" {
		return flag
	}
	if path != "" {
		return pipeline.OutputFormatFor(path)
	}
	return userSettings.GetOutputFormat()
}

// statusIndent lines the status table up under the progress output.
const statusIndent = "  "

func printFileStatus(w io.Writer, files []*pipeline.ConfigFile) {
	t := cli.NewTableTo(w, "FILE", "FORMAT", "VLANS", "CONFIG", "ERROR").WithPrefix(statusIndent)
	for _, f := range files {
		t.Row(f.Name, f.Format.String(), cli.Status(f.SuccessVlan), cli.Status(f.SuccessConfig), f.ErrorMessage)
	}
	t.Flush()
}
