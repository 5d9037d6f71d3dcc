package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Template defaults
const (
	DefaultTemplateName       = "template_name"
	DefaultAuthServersRetries = 3
	DefaultAuthServersTimeout = 5
)

// MistTemplate is the switch configuration template produced by a conversion.
type MistTemplate struct {
	Name                 string                          `json:"name"`
	NTPServers           []string                        `json:"ntp_servers"`
	DNSServers           []string                        `json:"dns_servers"`
	DNSSuffix            []string                        `json:"dns_suffix"`
	Networks             map[string]Network              `json:"networks"`
	PortUsages           map[string]ProfileConfiguration `json:"port_usages"`
	RadiusConfig         RadiusConfig                    `json:"radius_config"`
	SwitchMgmt           SwitchMgmt                      `json:"switch_mgmt"`
	AdditionalConfigCmds []string                        `json:"additional_config_cmds"`
	DHCPSnooping         DHCPSnooping                    `json:"dhcp_snooping"`
	RemoteSyslog         RemoteSyslog                    `json:"remote_syslog"`
	SwitchMatching       SwitchMatching                  `json:"switch_matching"`
}

// Network is a VLAN exposed as a template network. Subnet is null when no
// layer-3 address was found.
type Network struct {
	VlanID string  `json:"vlan_id"`
	Subnet *string `json:"subnet"`
}

// RadiusConfig holds RADIUS servers and global RADIUS settings.
type RadiusConfig struct {
	AcctInterimInterval int            `json:"acct_interim_interval"`
	AcctServers         []RadiusServer `json:"acct_servers"`
	AuthServers         []RadiusServer `json:"auth_servers"`
	AuthServersRetries  int            `json:"auth_servers_retries"`
	AuthServersTimeout  int            `json:"auth_servers_timeout"`
	CoAEnabled          bool           `json:"coa_enabled"`
	CoAPort             int            `json:"coa_port,omitempty"`
}

// SwitchMgmt holds management-plane settings.
type SwitchMgmt struct {
	Tacacs    Tacacs `json:"tacacs"`
	CLIBanner string `json:"cli_banner,omitempty"`
}

// Tacacs holds TACACS+ servers.
type Tacacs struct {
	Enabled        bool           `json:"enabled"`
	TacplusServers []TacacsServer `json:"tacplus_servers"`
	AcctServers    []TacacsServer `json:"acct_servers"`
}

// DHCPSnooping lists the networks with DHCP snooping enabled.
type DHCPSnooping struct {
	Enabled  bool     `json:"enabled"`
	Networks []string `json:"networks"`
}

// RemoteSyslog lists remote syslog servers.
type RemoteSyslog struct {
	Enabled bool                 `json:"enabled"`
	Servers []RemoteSyslogServer `json:"servers"`
}

// RemoteSyslogServer is a syslog destination with its facility filters.
type RemoteSyslogServer struct {
	SyslogServer
	Contents []SyslogContent `json:"contents"`
}

// SyslogContent is a facility/severity filter.
type SyslogContent struct {
	Facility string `json:"facility"`
	Severity string `json:"severity"`
}

// SwitchMatching holds per-device port assignment rules.
type SwitchMatching struct {
	Enabled bool         `json:"enabled"`
	Rules   []SwitchRule `json:"rules"`
}

// SwitchRule assigns port usages to the ports of the switch whose name
// matches MatchName.
type SwitchRule struct {
	Name       string
	MatchName  string
	PortConfig map[string]PortConfig
}

// PortConfig binds a port (or a comma-joined LAG member list) to a usage.
type PortConfig struct {
	AEDisableLACP bool   `json:"ae_disable_lacp"`
	AEIdx         *int   `json:"ae_idx,omitempty"`
	AELACPSlow    bool   `json:"ae_lacp_slow"`
	Aggregated    bool   `json:"aggregated"`
	Description   string `json:"description"`
	Usage         string `json:"usage"`
}

const matchNamePrefix = "match_name["

// matchNameKey is the rule key comparing the first len(name) characters of
// the switch name, e.g. "match_name[0:6]".
func matchNameKey(name string) string {
	return fmt.Sprintf("%s0:%d]", matchNamePrefix, len(name))
}

func (r SwitchRule) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"name":        r.Name,
		"port_config": r.PortConfig,
	}
	if r.MatchName != "" {
		m[matchNameKey(r.MatchName)] = r.MatchName
	}
	return json.Marshal(m)
}

func (r *SwitchRule) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = SwitchRule{}
	for k, v := range raw {
		var err error
		switch {
		case k == "name":
			err = json.Unmarshal(v, &r.Name)
		case k == "port_config":
			err = json.Unmarshal(v, &r.PortConfig)
		case strings.HasPrefix(k, matchNamePrefix):
			err = json.Unmarshal(v, &r.MatchName)
		}
		if err != nil {
			return fmt.Errorf("switch rule %s: %w", k, err)
		}
	}
	return nil
}
