package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/newtron-network/mistconv/pkg/configdata"
	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/parser/ios"
	"github.com/newtron-network/mistconv/pkg/parser/junos"
	"github.com/newtron-network/mistconv/pkg/util"
)

// Stage identifies a conversion step.
type Stage string

const (
	StageDetect   Stage = "detect"
	StageVlans    Stage = "vlans"
	StageConfig   Stage = "config"
	StageGenerate Stage = "generate"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageDetect, StageVlans, StageConfig, StageGenerate}

// Progress receives callbacks while a conversion runs.
type Progress interface {
	StageStart(stage Stage, files int)
	FileDone(stage Stage, file *ConfigFile, err error)
}

// Result is the outcome of a conversion.
type Result struct {
	Template *model.MistTemplate
	Files    []*ConfigFile
	Data     *configdata.ConfigData
}

// Failed returns the files that did not convert cleanly.
func (r *Result) Failed() []*ConfigFile {
	var out []*ConfigFile
	for _, f := range r.Files {
		if !f.SuccessConfig {
			out = append(out, f)
		}
	}
	return out
}

// Converter runs configuration files through detection, VLAN reading,
// configuration reading and template generation. Every stage completes
// for all files, in input order, before the next one starts.
type Converter struct {
	log          *logrus.Logger
	templateName string
	newUUID      func() string
	progress     Progress
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sends conversion events to l instead of util.Logger. A nil l
// is ignored.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTemplateName sets the name of the generated template.
func WithTemplateName(name string) Option {
	return func(c *Converter) { c.templateName = name }
}

// WithUUIDGenerator replaces the profile uuid source.
func WithUUIDGenerator(fn func() string) Option {
	return func(c *Converter) { c.newUUID = fn }
}

// WithProgress registers a progress reporter.
func WithProgress(p Progress) Option {
	return func(c *Converter) { c.progress = p }
}

// NewConverter returns a converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{log: util.Logger, templateName: model.DefaultTemplateName}
	for _, o := range opts {
		o(c)
	}
	return c
}

// run is the per-conversion state.
type run struct {
	*Converter
	data  *configdata.ConfigData
	ios   *ios.Parser
	junos *junos.Parser
}

// Convert converts files into one template. Per-file failures are recorded
// on the files; the returned error is non-nil only when ctx is done.
func (c *Converter) Convert(ctx context.Context, files []*ConfigFile) (*Result, error) {
	opts := []configdata.Option{
		configdata.WithLogger(c.log),
		configdata.WithTemplateName(c.templateName),
	}
	if c.newUUID != nil {
		opts = append(opts, configdata.WithUUIDGenerator(c.newUUID))
	}
	data := configdata.New(opts...)
	r := &run{Converter: c, data: data, ios: ios.New(data), junos: junos.New(data)}

	steps := []struct {
		stage Stage
		fn    func(*ConfigFile) error
	}{
		{StageDetect, r.detect},
		{StageVlans, r.readVlans},
		{StageConfig, r.readConfig},
	}
	for _, step := range steps {
		r.stageStart(step.stage, len(files))
		for _, f := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			err := r.guard(step.stage, f, step.fn)
			if r.progress != nil {
				r.progress.FileDone(step.stage, f, err)
			}
		}
	}

	r.stageStart(StageGenerate, len(files))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tpl := data.GenerateTemplate()
	c.log.Infof("Template %s generated: %d network(s), %d port usage(s)", tpl.Name, len(tpl.Networks), len(tpl.PortUsages))

	return &Result{Template: tpl, Files: files, Data: data}, nil
}

func (r *run) stageStart(stage Stage, n int) {
	r.log.Debugf("Stage %s started for %d file(s)", stage, n)
	if r.progress != nil {
		r.progress.StageStart(stage, n)
	}
}

// guard runs one per-file stage, turning a panic into a file error.
func (r *run) guard(stage Stage, f *ConfigFile, fn func(*ConfigFile) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s: %s stage failed: %v", f.Name, stage, p)
			util.FileEntry(r.log, f.Name).Errorf("Unexpected failure during %s: %v", stage, p)
			f.ErrorMessage = err.Error()
			if stage == StageVlans {
				f.SuccessVlan = false
			} else {
				f.SuccessConfig = false
			}
		}
	}()
	return fn(f)
}

func (r *run) detect(f *ConfigFile) error {
	f.Format = Detect(f.Lines)
	util.FileEntry(r.log, f.Name).Infof("%s is detected as %s type", f.Name, f.Format)
	return nil
}

// unknownFormat records the status of a file no parser can read.
func (r *run) unknownFormat(f *ConfigFile) error {
	err := &util.FormatError{File: f.Name}
	util.FileEntry(r.log, f.Name).Errorf("Unable to determinate the type of file. Please check the format of the file %s", f.Name)
	f.ErrorMessage = err.Error()
	return err
}

func (r *run) readVlans(f *ConfigFile) error {
	var err error
	switch f.Format {
	case FormatIOS:
		err = r.ios.ReadVlans(f.Name, f.Lines)
	case FormatJunos:
		err = r.junos.ReadVlans(f.Name, f.Lines)
	default:
		f.SuccessVlan = false
		return r.unknownFormat(f)
	}
	f.SuccessVlan = err == nil
	if err != nil {
		util.FileEntry(r.log, f.Name).WithError(err).Errorf("Error when reading VLANs list from %s", f.Name)
	}
	return err
}

func (r *run) readConfig(f *ConfigFile) error {
	var err error
	switch f.Format {
	case FormatIOS:
		err = r.ios.ReadConfig(f.Name, f.Lines)
	case FormatJunos:
		err = r.junos.ReadConfig(f.Name, f.Lines)
	default:
		f.SuccessConfig = false
		return r.unknownFormat(f)
	}
	f.SuccessConfig = err == nil
	if err != nil {
		f.ErrorMessage = "Error when reading configuration from " + f.Name
		util.FileEntry(r.log, f.Name).WithError(err).Error(f.ErrorMessage)
	}
	return err
}

// IsFormatError reports whether err is a dialect detection failure.
func IsFormatError(err error) bool {
	return errors.Is(err, util.ErrFormatUnknown)
}
