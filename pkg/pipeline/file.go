// Package pipeline detects the dialect of configuration files and runs them
// through the conversion stages into a single template.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/newtron-network/mistconv/pkg/parser/ios"
	"github.com/newtron-network/mistconv/pkg/parser/junos"
)

// Format is the configuration dialect of a file.
type Format int

const (
	FormatUnknown Format = iota
	FormatIOS
	FormatJunos
)

func (f Format) String() string {
	switch f {
	case FormatIOS:
		return "ios"
	case FormatJunos:
		return "junos"
	}
	return "unknown"
}

// MarshalText encodes the format by name.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts the names produced by String.
func (f *Format) UnmarshalText(b []byte) error {
	switch string(b) {
	case "ios":
		*f = FormatIOS
	case "junos":
		*f = FormatJunos
	case "unknown", "":
		*f = FormatUnknown
	default:
		return fmt.Errorf("unknown format %q", b)
	}
	return nil
}

// ConfigFile is one input file and its conversion status.
type ConfigFile struct {
	Name          string   `json:"name"`
	Lines         []string `json:"-"`
	Format        Format   `json:"format"`
	SuccessVlan   bool     `json:"success_vlan"`
	SuccessConfig bool     `json:"success_config"`
	ErrorMessage  string   `json:"error_message,omitempty"`
}

// NewConfigFile splits text into lines, dropping carriage returns.
func NewConfigFile(name, text string) *ConfigFile {
	text = strings.ReplaceAll(text, "\r", "")
	return &ConfigFile{Name: name, Lines: strings.Split(text, "\n")}
}

// ReadConfigFile loads a configuration file from disk. The file is named
// by its base name.
func ReadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return NewConfigFile(filepath.Base(path), string(data)), nil
}

// Detect returns the dialect of lines. The first marker found decides.
func Detect(lines []string) Format {
	for _, line := range lines {
		switch {
		case ios.IsConfig(line):
			return FormatIOS
		case junos.IsConfig(line):
			return FormatJunos
		}
	}
	return FormatUnknown
}
