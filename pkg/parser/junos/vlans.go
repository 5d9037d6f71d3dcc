package junos

import (
	"fmt"

	"github.com/newtron-network/mistconv/pkg/util"
)

// vlanIndex correlates the "set vlans" statements of a file.
type vlanIndex struct {
	ids   map[string]string // sanitized name -> id
	l3    map[string]string // sanitized name -> layer-3 unit such as irb.10
	order []string
}

func buildVlanIndex(stmts []statement) *vlanIndex {
	idx := &vlanIndex{ids: make(map[string]string), l3: make(map[string]string)}
	for _, s := range stmts {
		if !s.has("vlans") || len(s.words) < 4 {
			continue
		}
		name := util.SanitizeVLANName(s.words[1])
		switch s.words[2] {
		case "vlan-id":
			if _, seen := idx.ids[name]; !seen {
				idx.order = append(idx.order, name)
			}
			idx.ids[name] = s.words[3]
		case "l3-interface":
			idx.l3[name] = s.words[3]
		}
	}
	return idx
}

// unitAddresses maps "irb.<unit>" and "vlan.<unit>" to the first inet
// address configured on that unit.
func unitAddresses(stmts []statement) map[string]string {
	out := make(map[string]string)
	for _, s := range stmts {
		// interfaces irb unit 10 family inet address 10.0.10.1/24
		if !s.has("interfaces") || len(s.words) < 8 {
			continue
		}
		ifName := s.words[1]
		if ifName != "irb" && ifName != "vlan" {
			continue
		}
		if s.words[2] != "unit" || s.words[4] != "family" || s.words[5] != "inet" || s.words[6] != "address" {
			continue
		}
		key := ifName + "." + s.words[3]
		if _, ok := out[key]; !ok {
			out[key] = s.words[7]
		}
	}
	return out
}

// ReadVlans reads the VLAN definitions of a file. Subnets come from the
// address of the layer-3 unit each VLAN names. A file without "set vlans"
// statements yields an error wrapping util.ErrNoVlanDatabase.
func (p *Parser) ReadVlans(file string, lines []string) error {
	log := p.data.Log(file)
	stmts := p.statements(file, lines)
	idx := buildVlanIndex(stmts)

	if len(idx.order) == 0 {
		log.Warn("No VLAN database found in the file")
		return fmt.Errorf("%s: %w", file, util.ErrNoVlanDatabase)
	}

	addrs := unitAddresses(stmts)
	learned := 0
	for _, name := range idx.order {
		id := idx.ids[name]
		if !util.IsVLANID(id) {
			log.Warnf("VLAN %s has an invalid id %s, ignored", name, id)
			continue
		}
		if p.data.AddVlanName(file, id, name) {
			learned++
		}

		unit, ok := idx.l3[name]
		if !ok {
			continue
		}
		addr, ok := addrs[unit]
		if !ok {
			log.Debugf("VLAN %s: no address on %s", name, unit)
			continue
		}
		subnet, err := util.CalculateCIDR(addr)
		if err != nil {
			log.WithError(err).Warnf("Unable to compute subnet of VLAN %s", id)
			continue
		}
		p.data.AddVlanSubnet(file, id, subnet)
	}

	log.Infof("%d VLANs detected. %d new VLAN(s) learned", len(idx.order), learned)
	return nil
}
