package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/yaml.v3"

	"github.com/newtron-network/mistconv/pkg/util"
)

const iosConfig = `VLAN Name                             Status    Ports
---- -------------------------------- --------- -------------------------------
1    default                          active
20   guest                            active    Gi1/0/1

Building configuration...

Current configuration : 512 bytes
!
hostname access1
!
interface GigabitEthernet1/0/1
 description ap1
 switchport access vlan 20
 switchport mode access
!
radius server ISE
 address ipv4 10.1.1.1 auth-port 1812 acct-port 1813
!
end
`

const junosConfig = `set version 20.4R3.8
set system host-name access2
set vlans guest vlan-id 20
set vlans corp vlan-id 30
set interfaces ge-0/0/0 description ap1
set interfaces ge-0/0/0 unit 0 family ethernet-switching vlan members guest
set interfaces ge-0/0/1 description desk
set interfaces ge-0/0/1 unit 0 family ethernet-switching vlan members corp
`

func newTestConverter() *Converter {
	logger, _ := test.NewNullLogger()
	n := 0
	return NewConverter(WithLogger(logger), WithUUIDGenerator(func() string {
		n++
		return fmt.Sprintf("uuid-%d", n)
	}))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{"ios", iosConfig, FormatIOS},
		{"junos", junosConfig, FormatJunos},
		{"unknown", "hello\nworld", FormatUnknown},
		{"first marker wins", "set version 1\nCurrent configuration : 1 bytes", FormatJunos},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(NewConfigFile("f", tt.text).Lines); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewConfigFileStripsCR(t *testing.T) {
	f := NewConfigFile("f", "a\r\nb\r\n")
	if len(f.Lines) != 3 || f.Lines[0] != "a" || f.Lines[1] != "b" {
		t.Errorf("Lines = %q", f.Lines)
	}
}

func TestFormatText(t *testing.T) {
	for _, f := range []Format{FormatUnknown, FormatIOS, FormatJunos} {
		b, _ := f.MarshalText()
		var got Format
		if err := got.UnmarshalText(b); err != nil || got != f {
			t.Errorf("round trip of %v = %v, %v", f, got, err)
		}
	}
	var f Format
	if err := f.UnmarshalText([]byte("eos")); err == nil {
		t.Error("UnmarshalText(eos) succeeded")
	}
}

func TestConvertMixed(t *testing.T) {
	files := []*ConfigFile{
		NewConfigFile("access1.txt", iosConfig),
		NewConfigFile("access2.conf", junosConfig),
	}
	res, err := newTestConverter().Convert(context.Background(), files)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	for _, f := range res.Files {
		if !f.SuccessVlan || !f.SuccessConfig || f.ErrorMessage != "" {
			t.Errorf("%s status = %+v", f.Name, f)
		}
	}
	if files[0].Format != FormatIOS || files[1].Format != FormatJunos {
		t.Errorf("formats = %v, %v", files[0].Format, files[1].Format)
	}

	tpl := res.Template
	if len(tpl.PortUsages) != 2 {
		t.Errorf("port usages = %v, want ap1 and desk", tpl.PortUsages)
	}
	if _, ok := tpl.PortUsages["ap1"]; !ok {
		t.Errorf("equal configurations from both dialects should share the ap1 usage: %v", tpl.PortUsages)
	}
	if len(tpl.SwitchMatching.Rules) != 2 {
		t.Fatalf("rules = %+v, want one per host", tpl.SwitchMatching.Rules)
	}
	if tpl.SwitchMatching.Rules[0].Name != "access1" || tpl.SwitchMatching.Rules[1].Name != "access2" {
		t.Errorf("rule order = %s, %s", tpl.SwitchMatching.Rules[0].Name, tpl.SwitchMatching.Rules[1].Name)
	}
	if len(res.Failed()) != 0 {
		t.Errorf("Failed() = %v", res.Failed())
	}
}

func TestConvertSharedVlanKeepsFirstName(t *testing.T) {
	ios := `VLAN Name                             Status    Ports
---- -------------------------------- --------- -------------------------------
1    default                          active
10   finance                          active

Current configuration : 64 bytes
!
hostname core1
!
end
`
	junos := `set version 20.4R3.8
set system host-name access3
set vlans fin vlan-id 10
set interfaces ge-0/0/4 description accounting
set interfaces ge-0/0/4 unit 0 family ethernet-switching vlan members fin
`
	files := []*ConfigFile{NewConfigFile("core1.txt", ios), NewConfigFile("access3.conf", junos)}
	res, err := newTestConverter().Convert(context.Background(), files)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	tpl := res.Template
	if _, ok := tpl.Networks["finance"]; !ok {
		t.Fatalf("networks = %v, want finance", tpl.Networks)
	}
	if _, ok := tpl.Networks["fin"]; ok {
		t.Errorf("networks = %v, the second name must not become a network", tpl.Networks)
	}
	usage, ok := tpl.PortUsages["accounting"]
	if !ok {
		t.Fatalf("port usages = %v, want accounting", tpl.PortUsages)
	}
	if usage.PortNetwork != "finance" {
		t.Errorf("port_network = %q, want finance", usage.PortNetwork)
	}
	if _, ok := tpl.Networks[usage.PortNetwork]; !ok {
		t.Errorf("port_network %q is not a template network", usage.PortNetwork)
	}
}

func TestNilLoggerIgnored(t *testing.T) {
	c := NewConverter(WithLogger(nil))
	if c.log != util.Logger {
		t.Fatalf("log = %p, want util.Logger", c.log)
	}
	prev := util.Logger.Out
	util.SetLogOutput(&bytes.Buffer{})
	defer util.SetLogOutput(prev)
	if _, err := c.Convert(context.Background(), []*ConfigFile{NewConfigFile("a.txt", iosConfig)}); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	files := []*ConfigFile{NewConfigFile("notes.txt", "just some text")}
	res, err := newTestConverter().Convert(context.Background(), files)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	f := res.Files[0]
	if f.SuccessVlan || f.SuccessConfig {
		t.Errorf("status = %+v, want failure", f)
	}
	want := "Unable to determinate the type of file. check validate the format of the file notes.txt"
	if f.ErrorMessage != want {
		t.Errorf("ErrorMessage = %q, want %q", f.ErrorMessage, want)
	}
	if len(res.Failed()) != 1 {
		t.Errorf("Failed() = %v", res.Failed())
	}
	if res.Template == nil || res.Template.SwitchMatching.Rules == nil {
		t.Error("template must be generated even when every file fails")
	}
}

func TestConvertMissingVlanTable(t *testing.T) {
	files := []*ConfigFile{NewConfigFile("sw.txt", "Current configuration : 1 bytes\nhostname sw\ninterface GigabitEthernet1/0/1\n description x\nend")}
	res, err := newTestConverter().Convert(context.Background(), files)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if f := res.Files[0]; f.SuccessVlan || !f.SuccessConfig {
		t.Errorf("status = %+v, want vlan failure only", f)
	}
}

func TestConvertCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestConverter().Convert(ctx, []*ConfigFile{NewConfigFile("a", iosConfig)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

type recordingProgress struct {
	stages []Stage
	done   int
}

func (p *recordingProgress) StageStart(s Stage, _ int)          { p.stages = append(p.stages, s) }
func (p *recordingProgress) FileDone(Stage, *ConfigFile, error) { p.done++ }

func TestConvertProgress(t *testing.T) {
	p := &recordingProgress{}
	logger, _ := test.NewNullLogger()
	c := NewConverter(WithLogger(logger), WithProgress(p))
	if _, err := c.Convert(context.Background(), []*ConfigFile{NewConfigFile("a", iosConfig), NewConfigFile("b", junosConfig)}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(stageNames(p.stages), ",") != "detect,vlans,config,generate" {
		t.Errorf("stages = %v", p.stages)
	}
	if p.done != 6 {
		t.Errorf("FileDone called %d times, want 6", p.done)
	}
}

func stageNames(s []Stage) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

func TestGuardRecoversPanic(t *testing.T) {
	c := newTestConverter()
	r := &run{Converter: c}
	f := NewConfigFile("boom.txt", "")
	err := r.guard(StageConfig, f, func(*ConfigFile) error { panic("bad input") })
	if err == nil || !strings.Contains(f.ErrorMessage, "bad input") || f.SuccessConfig {
		t.Errorf("guard() = %v, file = %+v", err, f)
	}
}

func TestIsFormatError(t *testing.T) {
	if !IsFormatError(&util.FormatError{File: "x"}) {
		t.Error("IsFormatError() = false")
	}
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sw1.txt")
	if err := os.WriteFile(path, []byte(iosConfig), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := ReadConfigFile(path)
	if err != nil {
		t.Fatalf("ReadConfigFile() error = %v", err)
	}
	if f.Name != "sw1.txt" || Detect(f.Lines) != FormatIOS {
		t.Errorf("file = %s %v", f.Name, Detect(f.Lines))
	}
	if _, err := ReadConfigFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ReadConfigFile() of a missing file succeeded")
	}
}

func TestEncodeTemplate(t *testing.T) {
	res, err := newTestConverter().Convert(context.Background(), []*ConfigFile{NewConfigFile("a.txt", iosConfig)})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeTemplate(&buf, res.Template, OutputJSON); err != nil {
		t.Fatalf("EncodeTemplate(json) error = %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["name"] != "template_name" {
		t.Errorf("name = %v", decoded["name"])
	}

	buf.Reset()
	if err := EncodeTemplate(&buf, res.Template, OutputYAML); err != nil {
		t.Fatalf("EncodeTemplate(yaml) error = %v", err)
	}
	var y map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &y); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	radius := y["radius_config"].(map[string]interface{})
	if radius["auth_servers_retries"] != 3 {
		t.Errorf("auth_servers_retries = %#v, want 3", radius["auth_servers_retries"])
	}

	if err := EncodeTemplate(&buf, res.Template, "xml"); err == nil {
		t.Error("EncodeTemplate(xml) succeeded")
	}
}

func TestOutputFormatFor(t *testing.T) {
	tests := map[string]string{
		"campus.json": OutputJSON,
		"campus.YAML": OutputYAML,
		"out/t.yml":   OutputYAML,
		"":            OutputJSON,
	}
	for path, want := range tests {
		if got := OutputFormatFor(path); got != want {
			t.Errorf("OutputFormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}
