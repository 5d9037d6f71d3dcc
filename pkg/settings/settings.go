// Package settings manages persistent user settings for the mistconv CLI.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/pipeline"
	"github.com/newtron-network/mistconv/pkg/util"
)

// Settings holds persistent user preferences
type Settings struct {
	// TemplateName is the template name used when --name is not specified
	TemplateName string `json:"template_name,omitempty"`

	// OutputDir is where convert writes templates when -o is a bare name
	OutputDir string `json:"output_dir,omitempty"`

	// OutputFormat is json or yaml
	OutputFormat string `json:"output_format,omitempty"`

	// RedisAddr enables template export to Redis
	RedisAddr string `json:"redis_addr,omitempty"`

	// EventLog is the JSON-lines file conversion events are appended to
	EventLog string `json:"event_log,omitempty"`

	// ListenAddr is the serve listen address
	ListenAddr string `json:"listen_addr,omitempty"`

	Disclaimer string `json:"disclaimer,omitempty"`
	GithubURL  string `json:"github_url,omitempty"`
	DockerURL  string `json:"docker_url,omitempty"`

	// SSHUser is the default user for collect
	SSHUser string `json:"ssh_user,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	return filepath.Join(baseDir(), "settings.json")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mistconv"
	}
	return filepath.Join(home, ".mistconv")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetTemplateName returns the template name (with fallback)
func (s *Settings) GetTemplateName() string {
	if s.TemplateName != "" {
		return s.TemplateName
	}
	return model.DefaultTemplateName
}

// GetOutputFormat returns the output format (with fallback)
func (s *Settings) GetOutputFormat() string {
	if s.OutputFormat != "" {
		return s.OutputFormat
	}
	return pipeline.OutputJSON
}

// GetEventLog returns the event log path (with fallback)
func (s *Settings) GetEventLog() string {
	if s.EventLog != "" {
		return s.EventLog
	}
	return filepath.Join(baseDir(), "events.log")
}

// fields maps setting keys to their storage. Keys match the JSON names.
func (s *Settings) fields() map[string]*string {
	return map[string]*string{
		"template_name": &s.TemplateName,
		"output_dir":    &s.OutputDir,
		"output_format": &s.OutputFormat,
		"redis_addr":    &s.RedisAddr,
		"event_log":     &s.EventLog,
		"listen_addr":   &s.ListenAddr,
		"disclaimer":    &s.Disclaimer,
		"github_url":    &s.GithubURL,
		"docker_url":    &s.DockerURL,
		"ssh_user":      &s.SSHUser,
	}
}

// Keys lists the setting names, sorted.
func (s *Settings) Keys() []string {
	var keys []string
	for k := range s.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the stored value of a setting.
func (s *Settings) Get(key string) (string, error) {
	p, ok := s.fields()[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return *p, nil
}

// Set changes a setting. An empty value clears it.
func (s *Settings) Set(key, value string) error {
	p, ok := s.fields()[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if key == "output_format" && value != "" && value != pipeline.OutputJSON && value != pipeline.OutputYAML {
		return util.NewValidationError(fmt.Sprintf("output_format must be %s or %s", pipeline.OutputJSON, pipeline.OutputYAML))
	}
	*p = value
	return nil
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
