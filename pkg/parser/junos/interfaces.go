package junos

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

// family is the command family a per-port statement comes from.
type family int

const (
	familyDot1x family = iota
	familyQoS
	familyPoE
	familyRSTP
	familyVoIP
	familySwitchOptions
)

// maxRangeExpansion bounds the number of ports created from the member
// spans of a single interface-range.
const maxRangeExpansion = 1024

var (
	excludedInterface = regexp.MustCompile(`^(irb|vme|me|em|lo|vlan|fxp|jsrv|bme)\d*$`)
	rangeMember       = regexp.MustCompile(`^([a-z]+)-\[?(\d+(?:-\d+)?)\]?/\[?(\d+(?:-\d+)?)\]?/\[?(\d+(?:-\d+)?)\]?$`)
	vlanIDSpan        = regexp.MustCompile(`^(\d+)-(\d+)$`)
)

// portEntry is the configuration read for one port before VLAN references
// are resolved.
type portEntry struct {
	name        string
	description string
	lagBundle   string
	cfg         model.ProfileConfiguration
	lines       []string
}

type familyStmt struct {
	family family
	stmt   statement
	at     int // index of the interface name
}

// portTable accumulates the interface-related statements of a file.
type portTable struct {
	ranges     map[string]*model.InterfaceRange
	rangeOrder []string
	rangeLags  map[string]string // range name -> ae bundle of its members
	ports      map[string]*portEntry
	order      []string
	interfaces []statement
	families   []familyStmt
}

func newPortTable() *portTable {
	return &portTable{
		ranges:    make(map[string]*model.InterfaceRange),
		rangeLags: make(map[string]string),
		ports:     make(map[string]*portEntry),
	}
}

func (t *portTable) port(name string) *portEntry {
	if e, ok := t.ports[name]; ok {
		return e
	}
	e := &portEntry{name: name, cfg: model.DefaultProfile()}
	t.ports[name] = e
	t.order = append(t.order, name)
	return e
}

func (t *portTable) interfaceRange(name string) *model.InterfaceRange {
	if r, ok := t.ranges[name]; ok {
		return r
	}
	r := model.NewInterfaceRange(name)
	t.ranges[name] = r
	t.rangeOrder = append(t.rangeOrder, name)
	return r
}

func (t *portTable) addInterface(s statement) { t.interfaces = append(t.interfaces, s) }

func (t *portTable) addFamily(f family, s statement, at int) {
	if len(s.words) <= at {
		return
	}
	t.families = append(t.families, familyStmt{family: f, stmt: s, at: at})
}

// addRange handles "interfaces interface-range <name> ...": member
// declarations and the attributes shared by every member.
func (t *portTable) addRange(p *Parser, file string, s statement) {
	if len(s.words) < 4 {
		return
	}
	r := t.interfaceRange(s.words[2])
	r.Lines = append(r.Lines, s.raw)

	switch s.words[3] {
	case "member":
		b, ok := parseMember(s.arg(4))
		if !ok {
			p.rangeParseFailure(file, s.raw)
			return
		}
		r.Members = append(r.Members, b)
	case "member-range":
		from, ok1 := model.ParsePortPosition(s.arg(4))
		to, ok2 := model.ParsePortPosition(s.arg(6))
		if !ok1 || !ok2 || s.arg(5) != "to" || from.Type != to.Type {
			p.rangeParseFailure(file, s.raw)
			return
		}
		r.Members = append(r.Members, model.PositionBounds{
			Type:   from.Type,
			FPCMin: from.FPC, FPCMax: to.FPC,
			PICMin: from.PIC, PICMax: to.PIC,
			PortMin: from.Port, PortMax: to.Port,
		})
	default:
		var lag string
		applyInterface(&r.Config, nil, &lag, s.words[3:])
		if lag != "" {
			t.rangeLags[r.Name] = lag
		}
	}
}

// rangeLag returns the bundle set by the last declared range matching the
// port name.
func (t *portTable) rangeLag(name string) string {
	pos, ok := model.ParsePortPosition(name)
	if !ok {
		return ""
	}
	var lag string
	for _, rn := range t.rangeOrder {
		if bundle, ok := t.rangeLags[rn]; ok && t.ranges[rn].Matches(pos) {
			lag = bundle
		}
	}
	return lag
}

func (p *Parser) rangeParseFailure(file, line string) {
	p.data.Log(file).WithError(util.NewParseError(file, util.ErrInterfaceRangeParse, line)).
		Warnf("Unable to parse %s", line)
}

// parseMember parses "ge-0/0/5" or "ge-0/[0-1]/[0-23]".
func parseMember(member string) (model.PositionBounds, bool) {
	m := rangeMember.FindStringSubmatch(member)
	if m == nil {
		return model.PositionBounds{}, false
	}
	b := model.PositionBounds{Type: m[1]}
	var ok1, ok2, ok3 bool
	b.FPCMin, b.FPCMax, ok1 = parseSpan(m[2])
	b.PICMin, b.PICMax, ok2 = parseSpan(m[3])
	b.PortMin, b.PortMax, ok3 = parseSpan(m[4])
	return b, ok1 && ok2 && ok3
}

func parseSpan(s string) (int, int, bool) {
	lo, hi, isSpan := strings.Cut(s, "-")
	from, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, false
	}
	if !isSpan {
		return from, from, true
	}
	to, err := strconv.Atoi(hi)
	if err != nil || to < from {
		return 0, 0, false
	}
	return from, to, true
}

// physicalName drops the logical unit from an interface name.
func physicalName(name string) string {
	base, _, _ := strings.Cut(name, ".")
	return base
}

// target returns the configuration a per-port statement about name applies
// to: the interface-range of that name, or the port itself.
func (t *portTable) target(name string) (*model.ProfileConfiguration, *portEntry) {
	if r, ok := t.ranges[name]; ok {
		return &r.Config, nil
	}
	e := t.port(name)
	return &e.cfg, e
}

// applyInterface applies the words following "interfaces <name>" to cfg.
// desc is nil for interface-ranges.
func applyInterface(cfg *model.ProfileConfiguration, desc, lag *string, w []string) {
	if len(w) >= 2 && w[0] == "unit" {
		w = w[2:]
	}
	if len(w) >= 2 && w[0] == "family" && w[1] == "ethernet-switching" {
		w = w[2:]
	}
	if len(w) == 0 {
		return
	}

	switch w[0] {
	case "description":
		if desc != nil {
			*desc = strings.Join(w[1:], " ")
		}
	case "disable":
		cfg.Disabled = true
	case "mtu":
		if len(w) > 1 {
			if n, err := strconv.Atoi(w[1]); err == nil {
				cfg.MTU = n
			}
		}
	case "speed":
		if len(w) > 1 {
			cfg.Speed = speed(w[1])
		}
	case "link-mode":
		if len(w) > 1 {
			cfg.Duplex = duplex(w[1])
		}
	case "ether-options", "gigether-options":
		if len(w) < 2 {
			return
		}
		switch w[1] {
		case "no-auto-negotiation":
			cfg.DisableAutoneg = true
		case "802.3ad":
			if lag != nil && len(w) > 2 {
				*lag = w[2]
			}
		case "speed":
			if len(w) > 2 {
				cfg.Speed = speed(strings.TrimPrefix(w[2], "ethernet-"))
			}
		case "link-mode":
			if len(w) > 2 {
				cfg.Duplex = duplex(w[2])
			}
		}
	case "native-vlan-id":
		if len(w) > 1 {
			cfg.PortNetwork = w[1]
		}
	case "interface-mode", "port-mode":
		if len(w) > 1 && w[1] == model.ModeTrunk {
			cfg.Mode = model.ModeTrunk
		} else {
			cfg.Mode = model.ModeAccess
		}
	case "vlan":
		if len(w) > 2 && w[1] == "members" {
			addMembers(cfg, w[2:])
		}
	}
}

// addMembers records "vlan members <ref>" or "vlan members [ <ref> ... ]".
// References stay unresolved until every VLAN of the file is known.
func addMembers(cfg *model.ProfileConfiguration, refs []string) {
	for _, ref := range refs {
		switch {
		case ref == "[" || ref == "]":
		case ref == "all":
			cfg.AllNetworks = true
		case vlanIDSpan.MatchString(ref):
			ids, err := util.ExpandVLANList(ref)
			if err != nil {
				continue
			}
			for _, id := range ids {
				cfg.Networks = util.AppendUnique(cfg.Networks, id)
			}
		default:
			cfg.Networks = util.AppendUnique(cfg.Networks, ref)
		}
	}
}

var speeds = map[string]string{
	"10m": "10m", "100m": "100m", "1g": "1g", "2.5g": "2.5g", "5g": "5g",
	"10g": "10g", "25g": "25g", "40g": "40g", "100g": "100g",
}

func speed(v string) string {
	if s, ok := speeds[strings.ToLower(v)]; ok {
		return s
	}
	return model.Auto
}

func duplex(v string) string {
	switch v {
	case "full-duplex", "full":
		return "full"
	case "half-duplex", "half":
		return "half"
	}
	return model.Auto
}

// applyFamily applies a dot1x, class-of-service, PoE, RSTP or
// switch-options statement. w starts after the interface name.
func applyFamily(cfg *model.ProfileConfiguration, f family, w []string) {
	arg := func(i int) string {
		if i < len(w) {
			return w[i]
		}
		return ""
	}

	switch f {
	case familyDot1x:
		cfg.PortAuth = model.PortAuthDot1x
		switch arg(0) {
		case "mac-radius":
			cfg.EnableMACAuth = true
			if arg(1) == "restrict" {
				cfg.MACAuthOnly = true
			}
		case "guest-vlan":
			cfg.GuestNetwork = arg(1)
		case "server-reject-vlan":
			cfg.RejectedNetwork = arg(1)
		case "server-fail":
			if arg(1) == "use-cache" || arg(1) == "permit" {
				cfg.BypassAuthWhenServerDown = true
			}
		}
	case familyQoS:
		cfg.EnableQoS = true
	case familyPoE:
		if arg(0) == "disable" {
			cfg.PoEDisabled = true
		}
	case familyRSTP:
		if arg(0) == "edge" {
			cfg.STPEdge = true
		}
	case familyVoIP:
		if arg(0) == "vlan" && arg(1) != "" {
			cfg.VoIPNetwork = arg(1)
		}
	case familySwitchOptions:
		switch arg(0) {
		case "interface-mac-limit":
			for _, v := range w[1:] {
				if n, err := strconv.Atoi(v); err == nil {
					cfg.MACLimit = n
					break
				}
			}
		case "persistent-learning":
			cfg.PersistMAC = true
		}
	}
}

// buildInterfaces merges range, interface and family statements into one
// profile per port and registers the profiles.
func (p *Parser) buildInterfaces(file string, t *portTable, vlans *vlanIndex) []*model.ParsedInterface {
	log := p.data.Log(file)

	for _, s := range t.interfaces {
		name := physicalName(s.arg(1))
		if name == "" || excludedInterface.MatchString(name) {
			continue
		}
		e := t.port(name)
		e.lines = append(e.lines, s.raw)
		applyInterface(&e.cfg, &e.description, &e.lagBundle, s.words[2:])
	}

	for _, fs := range t.families {
		name := physicalName(fs.stmt.words[fs.at])
		if name == "all" || excludedInterface.MatchString(name) {
			continue
		}
		cfg, e := t.target(name)
		if e != nil {
			e.lines = append(e.lines, fs.stmt.raw)
		}
		applyFamily(cfg, fs.family, fs.stmt.words[fs.at+1:])
	}

	for _, name := range t.rangeOrder {
		r := t.ranges[name]
		for _, b := range r.Members {
			if b.Size() > maxRangeExpansion {
				log.Warnf("Interface range %s spans %d ports, member ports not expanded", name, b.Size())
				continue
			}
			for _, pos := range b.Positions() {
				t.port(pos.String())
			}
		}
	}

	for _, name := range t.order {
		e := t.ports[name]
		if e.lagBundle == "" {
			e.lagBundle = t.rangeLag(name)
		}
		if e.lagBundle != "" {
			p.data.AddLagMember(file, e.lagBundle, name)
			t.port(e.lagBundle)
		}
	}
	for _, name := range t.order {
		if strings.HasPrefix(name, "ae") {
			p.data.AddLag(file, name)
		}
	}

	var out []*model.ParsedInterface
	for _, name := range t.order {
		e := t.ports[name]

		cfg := model.DefaultProfile()
		var rangeNames []string
		if pos, ok := model.ParsePortPosition(name); ok {
			for _, rn := range t.rangeOrder {
				if r := t.ranges[rn]; r.Matches(pos) {
					cfg.MergeNonDefault(r.Config)
					rangeNames = append(rangeNames, rn)
				}
			}
		}
		cfg.MergeNonDefault(e.cfg)
		p.resolveVlans(file, &cfg, vlans)

		if e.description == "" {
			log.WithField("interface", name).Debug("No description detected for this interface")
		}

		iface := &model.ParsedInterface{
			File:          file,
			InterfaceName: name,
			ConfigType:    model.ConfigTypeJunos,
			ConfigBlocks:  append([]string(nil), e.lines...),
			Description:   e.description,
		}
		iface.ProfileID = p.data.AddProfile(file, cfg, name, e.description, rangeNames)
		out = append(out, iface)
	}
	return out
}

// resolveVlans turns the VLAN references of cfg, ids or names, into
// network names.
func (p *Parser) resolveVlans(file string, cfg *model.ProfileConfiguration, vlans *vlanIndex) {
	if cfg.Mode == model.ModeAccess && len(cfg.Networks) > 0 && cfg.PortNetwork == "" {
		cfg.PortNetwork = cfg.Networks[0]
		cfg.Networks = nil
	}

	cfg.PortNetwork = p.resolveRef(file, cfg.PortNetwork, vlans)
	cfg.GuestNetwork = p.resolveRef(file, cfg.GuestNetwork, vlans)
	cfg.RejectedNetwork = p.resolveRef(file, cfg.RejectedNetwork, vlans)
	cfg.VoIPNetwork = p.resolveRef(file, cfg.VoIPNetwork, vlans)

	if len(cfg.Networks) == 0 {
		return
	}
	networks := make([]string, 0, len(cfg.Networks))
	for _, ref := range cfg.Networks {
		networks = util.AppendUnique(networks, p.resolveRef(file, ref, vlans))
	}
	cfg.Networks = networks
}

func (p *Parser) resolveRef(file, ref string, vlans *vlanIndex) string {
	if ref == "" {
		return ""
	}
	if util.IsVLANID(ref) {
		p.data.AddVlan(file, ref, "")
		if name, ok := p.data.GetVlan(file, ref); ok {
			return name
		}
		return ref
	}
	name := sanitize(ref)
	id, ok := vlans.ids[name]
	if !ok {
		p.data.Log(file).Warnf("Unable to find VLAN %s", ref)
		return name
	}
	// another file may have named the VLAN first
	if kept, ok := p.data.GetVlan(file, id); ok {
		return kept
	}
	return name
}

func sanitize(name string) string { return util.SanitizeVLANName(name) }
