package configdata

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/newtron-network/mistconv/pkg/model"
)

func TestMostFrequentTerms(t *testing.T) {
	tests := []struct {
		descriptions []string
		want         string
	}{
		{[]string{"uplink-to-core", "uplink-backup"}, "uplink"},
		{[]string{"AP Lobby", "AP (Floor 2)", "Printer"}, "ap"},
		{[]string{"cam_1", "cam_2"}, "cam"},
		{[]string{"a", "b"}, "a_b"},
		{[]string{"null", "null desk"}, "desk"},
	}
	for _, tt := range tests {
		if got := mostFrequentTerms(tt.descriptions); got != tt.want {
			t.Errorf("mostFrequentTerms(%q) = %q, want %q", tt.descriptions, got, tt.want)
		}
	}
}

func TestNormalizeProfileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AP1", "ap1"},
		{"  -- Uplink to Core -- ", "uplink_to_core"},
		{"voice & data: desk", "voice_data_desk"},
		{"a-very-long-description-that-exceeds-the-limit", "a_very_long_description_that_ex"},
	}
	for _, tt := range tests {
		got := normalizeProfileName(tt.input)
		if got != tt.want {
			t.Errorf("normalizeProfileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if len(got) > MaxProfileNameLength {
			t.Errorf("normalizeProfileName(%q) longer than %d", tt.input, MaxProfileNameLength)
		}
	}
}

func TestUniqueName(t *testing.T) {
	used := map[string]bool{}
	var got []string
	for i := 0; i < 4; i++ {
		n := uniqueName("ap", used)
		used[n] = true
		got = append(got, n)
	}
	want := []string{"ap", "ap_2", "ap_3", "ap_4"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}

	long := strings.Repeat("x", MaxProfileNameLength)
	used = map[string]bool{long: true}
	n := uniqueName(long, used)
	if len(n) != MaxProfileNameLength || !strings.HasSuffix(n, "_2") {
		t.Errorf("uniqueName(long) = %q", n)
	}
}

func TestProfileNamesKeepWholeRunes(t *testing.T) {
	got := normalizeProfileName(strings.Repeat("a", 30) + "éb")
	if got != strings.Repeat("a", 30) || !utf8.ValidString(got) {
		t.Errorf("normalizeProfileName = %q", got)
	}

	base := strings.Repeat("a", 28) + "é"
	n := uniqueName(base, map[string]bool{base: true})
	if n != strings.Repeat("a", 28)+"_2" || !utf8.ValidString(n) {
		t.Errorf("uniqueName = %q", n)
	}

	c, _ := newTestData(t)
	first := model.DefaultProfile()
	second := model.DefaultProfile()
	second.PoEDisabled = true
	idFirst := c.AddProfile("f", first, "Gi1/0/1", strings.Repeat("x", 30)+"éy", nil)
	idSecond := c.AddProfile("f", second, "Gi1/0/2", strings.Repeat("x", 30)+"èz", nil)
	c.GenerateProfileNames()

	a, _ := c.Profile(idFirst)
	b, _ := c.Profile(idSecond)
	for _, p := range []*model.ParsedProfile{a, b} {
		if !utf8.ValidString(p.GeneratedName) || len(p.GeneratedName) > MaxProfileNameLength {
			t.Errorf("generated name %q", p.GeneratedName)
		}
	}
	if a.GeneratedName == b.GeneratedName {
		t.Errorf("distinct profiles share the name %q", a.GeneratedName)
	}
}

func TestGenerateProfileNames(t *testing.T) {
	c, _ := newTestData(t)

	ranged := model.DefaultProfile()
	ranged.PoEDisabled = true
	single := model.DefaultProfile()
	single.PortNetwork = "guest"
	multi := model.DefaultProfile()
	multi.Mode = model.ModeTrunk
	collide := model.DefaultProfile()
	collide.STPEdge = true
	unnamed := model.DefaultProfile()

	idRanged := c.AddProfile("f", ranged, "ge-0/0/1", "desk", []string{"ACCESS", "phones"})
	idSingle := c.AddProfile("f", single, "ge-0/0/2", "AP1", nil)
	idMulti := c.AddProfile("f", multi, "ge-0/0/3", "uplink-to-core", nil)
	c.AddProfile("f", multi, "ge-0/0/4", "uplink-backup", nil)
	idCollide := c.AddProfile("f", collide, "ge-0/0/5", "ap1", nil)
	idUnnamed := c.AddProfile("f", unnamed, "ge-0/0/6", "", nil)

	c.AddInterface(&model.ParsedInterface{File: "f", InterfaceName: "ge-0/0/2", ProfileID: idSingle})
	c.GenerateProfileNames()

	want := map[string]string{
		idRanged:  "access_phones",
		idSingle:  "ap1",
		idMulti:   "uplink",
		idCollide: "ap1_2",
		idUnnamed: "profile",
	}
	for id, name := range want {
		p, _ := c.Profile(id)
		if p.GeneratedName != name {
			t.Errorf("profile %s name = %q, want %q", id, p.GeneratedName, name)
		}
	}
	if got := c.Interfaces()[0].ProfileName; got != "ap1" {
		t.Errorf("interface profile name = %q, want ap1", got)
	}
}

func TestEqualConfigsShareName(t *testing.T) {
	c, _ := newTestData(t)
	cfg := model.DefaultProfile()
	cfg.PortNetwork = "data"

	a := c.AddProfile("f1", cfg, "Gi1/0/1", "desk", nil)
	b := c.AddProfile("f2", cfg, "Gi1/0/9", "desk", nil)
	c.AddInterface(&model.ParsedInterface{File: "f1", InterfaceName: "Gi1/0/1", ProfileID: a})
	c.AddInterface(&model.ParsedInterface{File: "f2", InterfaceName: "Gi1/0/9", ProfileID: b})
	c.GenerateProfileNames()

	ifs := c.Interfaces()
	if ifs[0].ProfileID != ifs[1].ProfileID || ifs[0].ProfileName != ifs[1].ProfileName {
		t.Errorf("equal configurations resolved differently: %+v %+v", ifs[0], ifs[1])
	}
}
