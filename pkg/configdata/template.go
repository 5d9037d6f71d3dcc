package configdata

import "github.com/newtron-network/mistconv/pkg/model"

var anyContent = []model.SyslogContent{{Facility: "any", Severity: "any"}}

// GenerateTemplate renders the accumulated model as a Mist template,
// generating profile names and switch rules first when needed.
func (c *ConfigData) GenerateTemplate() *model.MistTemplate {
	matching := c.GenerateSwitchRules()

	t := &model.MistTemplate{
		Name:                 c.templateName,
		NTPServers:           nonNil(c.ntpServers),
		DNSServers:           nonNil(c.dnsServers),
		DNSSuffix:            nonNil(c.dnsSuffix),
		Networks:             make(map[string]model.Network, len(c.vlans)),
		PortUsages:           make(map[string]model.ProfileConfiguration, len(c.profiles)),
		AdditionalConfigCmds: []string{},
		RadiusConfig: model.RadiusConfig{
			AcctInterimInterval: 0,
			AcctServers:         nonNil(c.radiusAcct),
			AuthServers:         nonNil(c.radiusAuth),
			AuthServersRetries:  model.DefaultAuthServersRetries,
			AuthServersTimeout:  model.DefaultAuthServersTimeout,
			CoAEnabled:          c.radiusCoA.Enabled,
			CoAPort:             c.radiusCoA.Port,
		},
		SwitchMgmt: model.SwitchMgmt{
			Tacacs: model.Tacacs{
				Enabled:        len(c.tacacsAuth) > 0,
				TacplusServers: nonNil(c.tacacsAuth),
				AcctServers:    nonNil(c.tacacsAcct),
			},
			CLIBanner: c.banner,
		},
		SwitchMatching: matching,
	}

	for _, v := range c.Vlans() {
		name := v.Name()
		if name == "" {
			name = model.SyntheticName(v.ID)
			c.log.Warnf("VLAN %s has no name, using %s", v.ID, name)
		}
		if len(v.Names) > 1 {
			c.log.Warnf("VLAN %s has multiple names %v, using %s", v.ID, v.Names, name)
		}
		if len(v.Subnets) > 1 {
			c.log.Warnf("VLAN %s has multiple subnets %v, using %s", v.ID, v.Subnets, v.Subnet())
		}
		if prev, dup := t.Networks[name]; dup {
			c.log.Warnf("Network name %s used by VLAN %s and VLAN %s, keeping VLAN %s", name, prev.VlanID, v.ID, prev.VlanID)
			continue
		}
		n := model.Network{VlanID: v.ID}
		if s := v.Subnet(); s != "" {
			n.Subnet = &s
		}
		t.Networks[name] = n
	}

	for _, p := range c.profiles {
		t.PortUsages[p.GeneratedName] = p.Config.Canonical()
	}

	snooped := []string{}
	for _, id := range c.dhcpSnooping {
		v, ok := c.vlans[id]
		if !ok {
			c.log.Warnf("DHCP snooping enabled on unknown VLAN %s, ignored", id)
			continue
		}
		name := v.Name()
		if name == "" {
			name = model.SyntheticName(id)
		}
		snooped = append(snooped, name)
	}
	t.DHCPSnooping = model.DHCPSnooping{Enabled: len(snooped) > 0, Networks: snooped}

	servers := make([]model.RemoteSyslogServer, 0, len(c.syslogServers))
	for _, s := range c.syslogServers {
		servers = append(servers, model.RemoteSyslogServer{
			SyslogServer: s,
			Contents:     append([]model.SyslogContent(nil), anyContent...),
		})
	}
	t.RemoteSyslog = model.RemoteSyslog{Enabled: len(servers) > 0, Servers: servers}

	return t
}

// nonNil copies s so the template never aliases the model and empty lists
// encode as [] rather than null.
func nonNil[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
