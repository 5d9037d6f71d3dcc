package configdata

import (
	"strings"

	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

// virtualChassisPrefix is the port block used by virtual-chassis internal
// ports, which never get a port usage.
const virtualChassisPrefix = "ge-168/5/"

// GenerateSwitchRules builds one switch-matching rule per hostname. LAG
// bundles become a single aggregated entry keyed by their member list; LAG
// members, VLAN interfaces and virtual-chassis ports are skipped.
func (c *ConfigData) GenerateSwitchRules() model.SwitchMatching {
	if !c.named {
		c.GenerateProfileNames()
	}

	var rules []model.SwitchRule
	index := make(map[string]int)

	for _, iface := range c.interfaces {
		name := iface.InterfaceName
		pc := model.PortConfig{Description: iface.Description, Usage: iface.ProfileName}

		var port string
		switch {
		case c.IsLag(iface.File, name):
			members := c.LagMembers(iface.File, name)
			if len(members) == 0 {
				c.Log(iface.File).Warnf("LAG %s has no members, no switch rule generated", name)
				continue
			}
			port = util.ConvertInterfaceName(strings.Join(members, ","))
			idx := model.AEIndex(name, c.lagIndex(iface.File, name))
			pc.AEIdx = &idx
			pc.Aggregated = true
		case c.IsLagMember(iface.File, name):
			continue
		case strings.HasPrefix(name, virtualChassisPrefix), strings.HasPrefix(strings.ToLower(name), model.VLANPrefix):
			continue
		default:
			port = util.ConvertInterfaceName(name)
		}

		host := iface.Hostname
		if host == "" {
			host = iface.File
		}
		i, ok := index[host]
		if !ok {
			i = len(rules)
			index[host] = i
			rules = append(rules, model.SwitchRule{
				Name:       host,
				MatchName:  host,
				PortConfig: make(map[string]model.PortConfig),
			})
		}
		if _, dup := rules[i].PortConfig[port]; dup {
			c.Log(iface.File).Warnf("Port %s on %s appears more than once, keeping the last definition", port, host)
		}
		rules[i].PortConfig[port] = pc
	}

	if rules == nil {
		rules = []model.SwitchRule{}
	}
	return model.SwitchMatching{Enabled: true, Rules: rules}
}
