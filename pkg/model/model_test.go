package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.Mode != ModeAccess || p.Speed != Auto || p.Duplex != Auto {
		t.Errorf("DefaultProfile() = %+v, want access/auto/auto", p)
	}
	if p.STPEdge || p.PoEDisabled || p.Disabled || p.MACLimit != 0 {
		t.Errorf("DefaultProfile() should clear every flag: %+v", p)
	}
}

func TestProfileKey(t *testing.T) {
	a := DefaultProfile()
	a.PortNetwork = "guest"
	a.Networks = []string{"voice", "data"}

	b := DefaultProfile()
	b.PortNetwork = "guest"
	b.Networks = []string{"voice", "data"}

	if a.Key() != b.Key() {
		t.Error("equal configurations must share a key")
	}

	b.Networks = []string{"data", "voice"}
	if a.Key() == b.Key() {
		t.Error("network order is part of the key")
	}

	c := a
	c.STPEdge = true
	if a.Key() == c.Key() {
		t.Error("differing stp_edge must change the key")
	}

	empty := DefaultProfile()
	empty.Networks = []string{}
	if empty.Key() != DefaultProfile().Key() {
		t.Error("empty and nil network lists must share a key")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	configs := []ProfileConfiguration{
		DefaultProfile(),
		{
			AllNetworks: true, Mode: ModeTrunk, Speed: "1g", Duplex: "full",
			DisableAutoneg: true, PortNetwork: "native", VoIPNetwork: "voice",
		},
		{
			Mode: ModeAccess, Speed: Auto, Duplex: Auto, PortAuth: PortAuthDot1x,
			EnableMACAuth: true, MACAuthOnly: true, GuestNetwork: "guest",
			RejectedNetwork: "quarantine", MACLimit: 3, PersistMAC: true, MTU: 9216,
			Networks: []string{},
		},
	}

	for i, cfg := range configs {
		canon := cfg.Canonical()
		data, err := json.Marshal(canon)
		if err != nil {
			t.Fatalf("case %d: marshal: %v", i, err)
		}
		var back ProfileConfiguration
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("case %d: unmarshal: %v", i, err)
		}
		if !reflect.DeepEqual(back, canon) {
			t.Errorf("case %d: round trip = %+v, want %+v", i, back, canon)
		}
		if back.Key() != cfg.Key() {
			t.Errorf("case %d: round trip changed the key", i)
		}
	}
}

func TestCanonicalDoesNotAlias(t *testing.T) {
	p := DefaultProfile()
	p.Networks = []string{"a"}
	c := p.Canonical()
	c.Networks[0] = "b"
	if p.Networks[0] != "a" {
		t.Error("Canonical must copy the network slice")
	}
}

func TestMergeNonDefault(t *testing.T) {
	acc := DefaultProfile()

	poe := DefaultProfile()
	poe.PoEDisabled = true
	poe.PortNetwork = "printers"

	edge := DefaultProfile()
	edge.STPEdge = true
	edge.PortNetwork = "cameras"

	acc.MergeNonDefault(poe)
	acc.MergeNonDefault(edge)

	want := DefaultProfile()
	want.PoEDisabled = true
	want.STPEdge = true
	want.PortNetwork = "cameras"

	if !reflect.DeepEqual(acc, want) {
		t.Errorf("merged = %+v, want %+v", acc, want)
	}
}

func TestMergeNonDefaultKeepsExisting(t *testing.T) {
	acc := DefaultProfile()
	acc.Mode = ModeTrunk
	acc.Speed = "1g"

	acc.MergeNonDefault(DefaultProfile())
	if acc.Mode != ModeTrunk || acc.Speed != "1g" {
		t.Errorf("default fields must not overwrite: %+v", acc)
	}
}

func TestSpeedFromMbps(t *testing.T) {
	tests := map[string]string{
		"10": "10m", "100": "100m", "1000": "1g", "2500": "2.5g",
		"5000": "5g", "10000": "10g", "auto": Auto, "40000": Auto,
	}
	for in, want := range tests {
		if got := SpeedFromMbps(in); got != want {
			t.Errorf("SpeedFromMbps(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAEIndex(t *testing.T) {
	tests := []struct {
		name     string
		fallback int
		want     int
	}{
		{"ae0", 5, 0},
		{"ae12", 5, 12},
		{"Port-channel1", 5, 0},
		{"Port-channel10", 5, 9},
		{"bond0", 5, 5},
		{"aex", 2, 2},
	}
	for _, tt := range tests {
		if got := AEIndex(tt.name, tt.fallback); got != tt.want {
			t.Errorf("AEIndex(%q, %d) = %d, want %d", tt.name, tt.fallback, got, tt.want)
		}
	}
}

func TestParsePortPosition(t *testing.T) {
	tests := []struct {
		name string
		want PortPosition
		ok   bool
	}{
		{"ge-0/0/12", PortPosition{"ge", 0, 0, 12}, true},
		{"mge-1/0/3.0", PortPosition{"mge", 1, 0, 3}, true},
		{"ae0", PortPosition{}, false},
		{"irb", PortPosition{}, false},
	}
	for _, tt := range tests {
		got, ok := ParsePortPosition(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePortPosition(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
		if ok && !strings.HasPrefix(tt.name, got.String()) {
			t.Errorf("String() = %q, not a prefix of %q", got.String(), tt.name)
		}
	}
}

func TestPositionBounds(t *testing.T) {
	b := PositionBounds{Type: "ge", FPCMin: 0, FPCMax: 1, PICMin: 0, PICMax: 0, PortMin: 0, PortMax: 23}

	if !b.Contains(PortPosition{"ge", 1, 0, 23}) {
		t.Error("upper bound is inclusive")
	}
	if b.Contains(PortPosition{"ge", 2, 0, 0}) {
		t.Error("fpc 2 is outside")
	}
	if b.Contains(PortPosition{"xe", 0, 0, 0}) {
		t.Error("type must match")
	}
	if b.Size() != 48 || len(b.Positions()) != 48 {
		t.Errorf("Size() = %d, Positions() = %d, want 48", b.Size(), len(b.Positions()))
	}

	r := NewInterfaceRange("access")
	r.Members = append(r.Members, b)
	if !r.Matches(PortPosition{"ge", 0, 0, 5}) {
		t.Error("range should match member position")
	}
}

func TestSwitchRuleJSON(t *testing.T) {
	idx := 0
	rule := SwitchRule{
		Name:      "access1",
		MatchName: "access1",
		PortConfig: map[string]PortConfig{
			"ge-0/0/0":            {Usage: "ap", Description: "ap1"},
			"ge-0/0/46,ge-0/0/47": {Usage: "uplink", Aggregated: true, AEIdx: &idx},
		},
	}

	data, err := json.Marshal(rule)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"match_name[0:7]":"access1"`) {
		t.Errorf("missing match_name key: %s", data)
	}
	if !strings.Contains(string(data), `"ae_idx":0`) {
		t.Errorf("ae_idx 0 must be emitted: %s", data)
	}

	var back SwitchRule
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, rule) {
		t.Errorf("round trip = %+v, want %+v", back, rule)
	}
}

func TestNetworkNullSubnet(t *testing.T) {
	data, err := json.Marshal(Network{VlanID: "20"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"vlan_id":"20","subnet":null}` {
		t.Errorf("Network JSON = %s", data)
	}
}
