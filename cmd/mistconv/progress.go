package main

import (
	"fmt"
	"io"

	"github.com/newtron-network/mistconv/pkg/cli"
	"github.com/newtron-network/mistconv/pkg/pipeline"
)

const progressWidth = 40

// consoleProgress prints one line per file and stage.
type consoleProgress struct {
	w io.Writer
}

func (p *consoleProgress) StageStart(stage pipeline.Stage, files int) {
	fmt.Fprintf(p.w, "%s %s (%d file(s))\n", cli.Bold("==>"), stage, files)
}

func (p *consoleProgress) FileDone(stage pipeline.Stage, f *pipeline.ConfigFile, err error) {
	status := cli.Status(err == nil)
	if stage == pipeline.StageDetect {
		status = f.Format.String()
		if f.Format == pipeline.FormatUnknown {
			status = cli.Yellow(status)
		}
	}
	fmt.Fprintf(p.w, "    %s %s\n", cli.DotPad(f.Name, progressWidth), status)
}
