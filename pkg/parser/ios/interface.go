package ios

import (
	"strconv"
	"strings"

	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

// portLines collects the raw switchport settings of an interface block
// before VLAN ids are resolved to network names.
type portLines struct {
	cfg         model.ProfileConfiguration
	description string
	accessVlan  string
	voiceVlan   string
	guestVlan   string
	nativeVlan  string
	allowed     []string
	allowedAll  bool
	allowedSet  bool
	dot1x       bool
	mabFirst    bool
}

// readInterface extracts the port usage of an "interface <name>" block. It
// returns nil for interfaces that never carry a port usage.
func (p *Parser) readInterface(file, name string, lines []string) *model.ParsedInterface {
	if isExcluded(name, lines) {
		return nil
	}
	if strings.HasPrefix(name, "Port-channel") {
		p.data.AddLag(file, name)
	}

	log := p.data.Log(file).WithField("interface", name)
	pl := &portLines{cfg: model.DefaultProfile()}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(line, "description "):
			pl.description = util.Unquote(strings.TrimSpace(strings.TrimPrefix(line, "description ")))
		case strings.HasPrefix(line, "switchport mode "):
			if fields[2] == model.ModeTrunk {
				pl.cfg.Mode = model.ModeTrunk
			} else {
				pl.cfg.Mode = model.ModeAccess
			}
		case strings.HasPrefix(line, "switchport access vlan "):
			pl.accessVlan = fields[3]
		case strings.HasPrefix(line, "switchport voice vlan "):
			if util.IsVLANID(fields[3]) {
				pl.voiceVlan = fields[3]
			}
		case strings.HasPrefix(line, "switchport trunk native vlan "):
			pl.nativeVlan = fields[4]
		case strings.HasPrefix(line, "switchport trunk allowed vlan "):
			p.readAllowed(file, pl, fields[4:])
		case line == "dot1x pae authenticator":
			pl.dot1x = true
		case line == "mab" || strings.HasPrefix(line, "mab "):
			pl.cfg.EnableMACAuth = true
			if !pl.dot1x {
				pl.mabFirst = true
			}
		case strings.HasPrefix(line, "spanning-tree portfast"),
			line == "spanning-tree bpduguard enable":
			pl.cfg.STPEdge = true
		case strings.HasPrefix(line, "auto qos"):
			pl.cfg.EnableQoS = true
		case line == "shutdown":
			pl.cfg.Disabled = true
		case line == "power inline never":
			pl.cfg.PoEDisabled = true
		case fields[0] == "duplex" && len(fields) > 1:
			pl.cfg.Duplex = fields[1]
		case fields[0] == "speed" && len(fields) > 1:
			pl.cfg.Speed = model.SpeedFromMbps(fields[1])
		case fields[0] == "mtu" && len(fields) > 1:
			if n, err := strconv.Atoi(fields[1]); err == nil {
				pl.cfg.MTU = n
			}
		case strings.HasPrefix(line, "switchport port-security maximum "):
			if n, err := strconv.Atoi(fields[3]); err == nil {
				pl.cfg.MACLimit = n
			}
		case strings.HasPrefix(line, "switchport port-security mac-address sticky"):
			pl.cfg.PersistMAC = true
		case strings.HasPrefix(line, "authentication event server dead action authorize"):
			pl.cfg.BypassAuthWhenServerDown = true
		case strings.HasPrefix(line, "authentication event no-response action authorize vlan "):
			pl.guestVlan = fields[len(fields)-1]
		case fields[0] == "channel-group" && len(fields) > 1:
			p.data.AddLagMember(file, "Port-channel"+fields[1], name)
		}
	}

	cfg := &pl.cfg
	if cfg.Speed != model.Auto && cfg.Duplex != model.Auto {
		cfg.DisableAutoneg = true
		log.Info("Speed and duplex are both set, disabling autonegotiation")
	}
	if pl.dot1x {
		cfg.PortAuth = model.PortAuthDot1x
	}
	if pl.mabFirst && !pl.dot1x {
		cfg.PortAuth = model.PortAuthDot1x
		cfg.MACAuthOnly = true
		log.Info("mab configured without dot1x pae authenticator, enabling mac_auth_only")
	}

	if cfg.Mode == model.ModeTrunk {
		p.resolveTrunk(file, pl)
	} else {
		vlan := pl.accessVlan
		if vlan == "" {
			vlan = "1"
		} else {
			p.data.AddVlan(file, vlan, "")
		}
		if name, ok := p.data.GetVlan(file, vlan); ok {
			cfg.PortNetwork = name
		}
	}
	cfg.VoIPNetwork = p.resolveVlan(file, pl.voiceVlan)
	cfg.GuestNetwork = p.resolveVlan(file, pl.guestVlan)

	if pl.description == "" {
		log.Warn("No description detected for this interface")
	}

	iface := newInterface(file, name, lines, pl.description)
	iface.ProfileID = p.data.AddProfile(file, *cfg, name, pl.description, nil)
	return iface
}

// readAllowed handles "switchport trunk allowed vlan [add|remove|except] <list>|all|none".
func (p *Parser) readAllowed(file string, pl *portLines, args []string) {
	if len(args) == 0 {
		return
	}
	pl.allowedSet = true
	op := ""
	switch args[0] {
	case "add", "remove", "except":
		op = args[0]
		args = args[1:]
	}
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "all":
		pl.allowedAll = true
		pl.allowed = nil
		return
	case "none":
		pl.allowedAll = false
		pl.allowed = nil
		return
	}

	ids, err := util.ExpandVLANList(args[0])
	if err != nil {
		p.data.Log(file).WithError(err).Warnf("Unable to parse allowed VLAN list %s", args[0])
		return
	}
	if len(ids) == 4094 {
		pl.allowedAll = true
		pl.allowed = nil
		return
	}

	switch op {
	case "remove":
		keep := pl.allowed[:0]
		for _, v := range pl.allowed {
			if !contains(ids, v) {
				keep = append(keep, v)
			}
		}
		pl.allowed = keep
		return
	case "except":
		p.data.Log(file).Warnf("Allowed VLAN list \"except %s\" converted to all networks", args[0])
		pl.allowedAll = true
		pl.allowed = nil
		return
	case "":
		pl.allowed = nil
		pl.allowedAll = false
	}

	ranged := strings.Contains(args[0], "-")
	for _, id := range ids {
		// ids coming from a span are only kept when the VLAN is declared
		if ranged && !p.data.HasVlan(id) && !explicitID(args[0], id) {
			continue
		}
		pl.allowed = util.AppendUnique(pl.allowed, id)
	}
}

// resolveTrunk sets the native VLAN and the allowed networks of a trunk.
func (p *Parser) resolveTrunk(file string, pl *portLines) {
	cfg := &pl.cfg
	if pl.nativeVlan != "" {
		p.data.AddVlan(file, pl.nativeVlan, "")
		if name, ok := p.data.GetVlan(file, pl.nativeVlan); ok {
			cfg.PortNetwork = name
		}
	}
	if pl.allowedAll || !pl.allowedSet {
		cfg.AllNetworks = true
		return
	}
	for _, id := range pl.allowed {
		p.data.AddVlan(file, id, "")
		if name, ok := p.data.GetVlan(file, id); ok {
			cfg.Networks = util.AppendUnique(cfg.Networks, name)
		}
	}
}

func (p *Parser) resolveVlan(file, id string) string {
	if id == "" {
		return ""
	}
	p.data.AddVlan(file, id, "")
	name, _ := p.data.GetVlan(file, id)
	return name
}

// explicitID reports whether id is written as a single element of list.
func explicitID(list, id string) bool {
	for _, part := range util.SplitCommaSeparated(list) {
		if part == id {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
