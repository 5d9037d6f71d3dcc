// Package job loads batch conversion jobs from YAML files.
//
// A job names the template, the configuration files to read (glob patterns
// are expanded), the switches to collect from over SSH and where to write
// the result:
//
//	name: campus
//	inputs:
//	  - configs/*.txt
//	devices:
//	  - name: core1
//	    host: 10.0.0.1
//	    dialect: junos
//	output:
//	  path: out/campus.json
//	redis:
//	  addr: 127.0.0.1:6379
//	event_log: out/events.log
package job

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/mistconv/pkg/collect"
	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/pipeline"
	"github.com/newtron-network/mistconv/pkg/util"
)

// Job is a batch conversion.
type Job struct {
	Name     string           `yaml:"name"`
	Inputs   []string         `yaml:"inputs"`
	Devices  []collect.Device `yaml:"devices"`
	Output   Output           `yaml:"output"`
	Redis    *Redis           `yaml:"redis,omitempty"`
	EventLog string           `yaml:"event_log,omitempty"`

	dir string // directory of the job file; relative paths resolve here
}

// Output is where the template is written. An empty path writes to stdout.
type Output struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Redis configures template export.
type Redis struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// Load reads a YAML job file and returns a validated Job.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job %s: %w", path, err)
	}
	j, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing job %s: %w", path, err)
	}
	j.dir = filepath.Dir(path)
	return j, nil
}

// Parse decodes and validates a job. Relative paths resolve against the
// working directory.
func Parse(data []byte) (*Job, error) {
	var j Job
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil {
		return nil, err
	}
	j.applyDefaults()
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

func (j *Job) applyDefaults() {
	if j.Name == "" {
		j.Name = model.DefaultTemplateName
	}
	if j.Output.Format == "" {
		j.Output.Format = pipeline.OutputFormatFor(j.Output.Path)
	}
	for i := range j.Devices {
		if j.Devices[i].Name == "" {
			j.Devices[i].Name = j.Devices[i].Host
		}
	}
}

// Validate checks the job for errors.
func (j *Job) Validate() error {
	vb := &util.ValidationBuilder{}
	vb.Add(len(j.Inputs) > 0 || len(j.Devices) > 0, "job needs inputs or devices")
	vb.Add(j.Output.Format == pipeline.OutputJSON || j.Output.Format == pipeline.OutputYAML,
		fmt.Sprintf("output.format must be %s or %s, got %q", pipeline.OutputJSON, pipeline.OutputYAML, j.Output.Format))
	for i, in := range j.Inputs {
		if strings.TrimSpace(in) == "" {
			vb.AddErrorf("inputs[%d] is empty", i)
		} else if _, err := filepath.Match(in, ""); err != nil {
			vb.AddErrorf("inputs[%d]: bad pattern %q", i, in)
		}
	}
	names := map[string]bool{}
	for i, d := range j.Devices {
		vb.Add(d.Host != "", fmt.Sprintf("devices[%d].host is required", i))
		vb.Add(d.Dialect != pipeline.FormatUnknown, fmt.Sprintf("devices[%d].dialect must be ios or junos", i))
		if names[d.Name] {
			vb.AddErrorf("devices[%d]: duplicate name %q", i, d.Name)
		}
		names[d.Name] = true
	}
	if j.Redis != nil {
		vb.Add(j.Redis.Addr != "", "redis.addr is required when redis is set")
		vb.Add(j.Redis.DB >= 0, "redis.db must not be negative")
	}
	return vb.Build()
}

// Resolve returns path relative to the job file's directory unless it is
// absolute.
func (j *Job) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || j.dir == "" {
		return path
	}
	return filepath.Join(j.dir, path)
}

// Files expands the input patterns into a sorted, deduplicated list of
// paths. A pattern matching nothing is an error.
func (j *Job) Files() ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range j.Inputs {
		matches, err := filepath.Glob(j.Resolve(pattern))
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input %q: %w", pattern, util.ErrNotFound)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}
