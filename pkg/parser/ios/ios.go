// Package ios reads block-structured (IOS-style) switch configurations: a
// "show vlan" table followed by a "show running-config" dump.
package ios

import (
	"path/filepath"
	"strings"

	"github.com/newtron-network/mistconv/pkg/configdata"
	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

// Markers identifying the sections of a block-dialect export.
const (
	ConfigMarker    = "Current configuration"
	VlanTableMarker = "VLAN Name"
	configEnd       = "end"
)

// Parser feeds block-dialect files into a ConfigData.
type Parser struct {
	data *configdata.ConfigData
}

// New returns a parser writing into data.
func New(data *configdata.ConfigData) *Parser {
	return &Parser{data: data}
}

// IsConfig reports whether line marks the start of a block-dialect
// running configuration.
func IsConfig(line string) bool {
	return strings.HasPrefix(line, ConfigMarker)
}

// configSection returns the lines between the configuration banner and the
// closing "end". Files without a banner are read in full.
func configSection(lines []string) []string {
	start := 0
	for i, line := range lines {
		if IsConfig(line) {
			start = i + 1
			break
		}
	}
	for i := start; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " ") == configEnd {
			return lines[start:i]
		}
	}
	return lines[start:]
}

// defaultHostname derives a hostname from the file name when the
// configuration does not set one.
func defaultHostname(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// excludedTypes are interfaces that never carry a port usage. Vlan
// interfaces are read by the VLAN pass instead.
var excludedTypes = map[string]bool{
	"Vlan": true, "Loopback": true, "Tunnel": true, "Null": true,
	"Management": true, "mgmt": true, "BDI": true, "Bluetooth": true,
}

// isExcluded reports whether name is a virtual, management or routed
// sub-interface.
func isExcluded(name string, lines []string) bool {
	ifType, _, sub := util.ParseInterfaceName(name)
	if excludedTypes[ifType] || sub != "" {
		return true
	}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "vrf forwarding Mgmt") || strings.HasPrefix(l, "ip vrf forwarding Mgmt") {
			return true
		}
	}
	return false
}

func newInterface(file, name string, lines []string, desc string) *model.ParsedInterface {
	return &model.ParsedInterface{
		File:          file,
		InterfaceName: name,
		ConfigType:    model.ConfigTypeIOS,
		ConfigBlocks:  append([]string(nil), lines...),
		Description:   desc,
	}
}
