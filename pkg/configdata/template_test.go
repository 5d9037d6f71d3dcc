package configdata

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/newtron-network/mistconv/pkg/model"
)

func TestGenerateTemplateDefaults(t *testing.T) {
	c, _ := newTestData(t)
	tmpl := c.GenerateTemplate()

	if tmpl.Name != model.DefaultTemplateName {
		t.Errorf("Name = %q", tmpl.Name)
	}
	if tmpl.RadiusConfig.AuthServersRetries != 3 || tmpl.RadiusConfig.AuthServersTimeout != 5 {
		t.Errorf("radius defaults = %+v", tmpl.RadiusConfig)
	}
	if tmpl.SwitchMgmt.Tacacs.Enabled || tmpl.DHCPSnooping.Enabled || tmpl.RemoteSyslog.Enabled {
		t.Error("empty model must not enable optional features")
	}
	if !tmpl.SwitchMatching.Enabled {
		t.Error("switch matching is always enabled")
	}

	data, err := json.Marshal(tmpl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"ntp_servers":[]`, `"auth_servers":[]`, `"rules":[]`, `"additional_config_cmds":[]`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("template JSON missing %s: %s", want, data)
		}
	}
}

func TestGenerateTemplate(t *testing.T) {
	c := New(WithTemplateName("site1"), WithLogger(nullLogger()))

	c.AddVlanName("sw1", "20", "guest")
	c.AddVlanName("sw1", "30", "voice")
	c.AddVlanSubnet("sw1", "30", "10.30.0.0/24")
	c.AddVlan("sw1", "40", "")
	c.AddDHCPSnoopingVlan("sw1", "20")
	c.AddDHCPSnoopingVlan("sw1", "99")
	c.AddNTPServer("sw1", "10.0.0.1")
	c.AddDNSServer("sw1", "10.0.0.2")
	c.AddDNSSuffix("sw1", "corp.example")
	c.AddTacacsAuthServer("sw1", "10.5.5.5", 0)
	c.AddTacacsAcctServer("sw1", "10.5.5.5", 0)
	c.AddSyslogServer("sw1", "10.6.6.6", "", 0)
	c.SetRadiusCoA("sw1", 3799)
	c.SetBanner("sw1", "Authorized\nusers only")

	cfg := model.DefaultProfile()
	cfg.PortNetwork = "guest"
	id := c.AddProfile("sw1", cfg, "GigabitEthernet1/0/1", "ap1", nil)
	c.AddInterface(&model.ParsedInterface{
		File: "sw1", Hostname: "access1", InterfaceName: "GigabitEthernet1/0/1",
		ProfileID: id, Description: "ap1",
	})

	tmpl := c.GenerateTemplate()

	if tmpl.Name != "site1" {
		t.Errorf("Name = %q", tmpl.Name)
	}
	wantNetworks := map[string]model.Network{
		"guest":  {VlanID: "20"},
		"voice":  {VlanID: "30", Subnet: strPtr("10.30.0.0/24")},
		"vlan40": {VlanID: "40"},
	}
	if !reflect.DeepEqual(tmpl.Networks, wantNetworks) {
		t.Errorf("Networks = %+v", tmpl.Networks)
	}
	if got, ok := tmpl.PortUsages["ap1"]; !ok || got.PortNetwork != "guest" {
		t.Errorf("PortUsages = %+v", tmpl.PortUsages)
	}
	if !reflect.DeepEqual(tmpl.DHCPSnooping, model.DHCPSnooping{Enabled: true, Networks: []string{"guest"}}) {
		t.Errorf("DHCPSnooping = %+v", tmpl.DHCPSnooping)
	}
	if !tmpl.SwitchMgmt.Tacacs.Enabled || len(tmpl.SwitchMgmt.Tacacs.AcctServers) != 1 {
		t.Errorf("Tacacs = %+v", tmpl.SwitchMgmt.Tacacs)
	}
	if tmpl.SwitchMgmt.CLIBanner != "Authorized\nusers only" {
		t.Errorf("CLIBanner = %q", tmpl.SwitchMgmt.CLIBanner)
	}
	if !tmpl.RemoteSyslog.Enabled || tmpl.RemoteSyslog.Servers[0].Contents[0].Facility != "any" {
		t.Errorf("RemoteSyslog = %+v", tmpl.RemoteSyslog)
	}
	if !tmpl.RadiusConfig.CoAEnabled || tmpl.RadiusConfig.CoAPort != 3799 {
		t.Errorf("CoA = %+v", tmpl.RadiusConfig)
	}

	rule := tmpl.SwitchMatching.Rules[0]
	if rule.Name != "access1" || rule.PortConfig["ge-0/0/0"].Usage != "ap1" {
		t.Errorf("rule = %+v", rule)
	}
}

func TestGenerateTemplateNetworkNameCollision(t *testing.T) {
	c := New(WithLogger(nullLogger()))
	c.AddVlanName("a", "10", "users")
	c.AddVlanName("b", "11", "users")

	tmpl := c.GenerateTemplate()
	if len(tmpl.Networks) != 1 || tmpl.Networks["users"].VlanID != "10" {
		t.Errorf("Networks = %+v, want first VLAN kept", tmpl.Networks)
	}
}

func TestSwitchRulesLag(t *testing.T) {
	c := New(WithLogger(nullLogger()))
	cfg := model.DefaultProfile()
	cfg.Mode = model.ModeTrunk
	id := c.AddProfile("sw", cfg, "ae0", "uplink", nil)

	c.AddLagMember("sw", "ae0", "ge-0/0/46")
	c.AddLagMember("sw", "ae0", "ge-0/0/47")
	for _, name := range []string{"ge-0/0/46", "ge-0/0/47", "ae0", "vlan.10", "ge-168/5/0"} {
		c.AddInterface(&model.ParsedInterface{File: "sw", Hostname: "core", InterfaceName: name, ProfileID: id})
	}

	m := c.GenerateSwitchRules()
	if len(m.Rules) != 1 {
		t.Fatalf("rules = %d, want 1", len(m.Rules))
	}
	pc := m.Rules[0].PortConfig
	if len(pc) != 1 {
		t.Fatalf("port config = %+v, want only the LAG", pc)
	}
	lag, ok := pc["ge-0/0/46,ge-0/0/47"]
	if !ok || !lag.Aggregated || lag.AEIdx == nil || *lag.AEIdx != 0 {
		t.Errorf("LAG entry = %+v", lag)
	}
}

func TestSwitchRulesPortChannel(t *testing.T) {
	c := New(WithLogger(nullLogger()))
	id := c.AddProfile("sw", model.DefaultProfile(), "Port-channel2", "", nil)
	c.AddLagMember("sw", "Port-channel2", "GigabitEthernet1/1/1")
	c.AddLagMember("sw", "Port-channel2", "GigabitEthernet1/1/2")
	c.AddInterface(&model.ParsedInterface{File: "sw", Hostname: "dist", InterfaceName: "Port-channel2", ProfileID: id})

	m := c.GenerateSwitchRules()
	lag := m.Rules[0].PortConfig["ge-0/1/0,ge-0/1/1"]
	if lag.AEIdx == nil || *lag.AEIdx != 1 {
		t.Errorf("Port-channel2 ae_idx = %v, want 1", lag.AEIdx)
	}
}

func TestSwitchRulesGroupedByHost(t *testing.T) {
	c := New(WithLogger(nullLogger()))
	id := c.AddProfile("a", model.DefaultProfile(), "x", "", nil)
	c.AddInterface(&model.ParsedInterface{File: "a", Hostname: "sw1", InterfaceName: "ge-0/0/0", ProfileID: id})
	c.AddInterface(&model.ParsedInterface{File: "b", Hostname: "sw2", InterfaceName: "ge-0/0/0", ProfileID: id})
	c.AddInterface(&model.ParsedInterface{File: "a", Hostname: "sw1", InterfaceName: "ge-0/0/1", ProfileID: id})

	m := c.GenerateSwitchRules()
	if len(m.Rules) != 2 || m.Rules[0].Name != "sw1" || len(m.Rules[0].PortConfig) != 2 {
		t.Errorf("rules = %+v", m.Rules)
	}
}

func strPtr(s string) *string { return &s }
