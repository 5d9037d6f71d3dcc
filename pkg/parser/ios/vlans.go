package ios

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/newtron-network/mistconv/pkg/util"
)

var (
	vlanRowRegexp   = regexp.MustCompile(`^\d+\s+\S+`)
	wordStartRegexp = regexp.MustCompile(`^\w`)
	sviRegexp       = regexp.MustCompile(`^interface Vlan(\d+)\s*$`)
)

// reservedVlans are the legacy FDDI/Token Ring VLANs every switch lists.
var reservedVlans = map[string]bool{"1002": true, "1003": true, "1004": true, "1005": true}

// ReadVlans reads the VLAN table and the VLAN interfaces of a file. A file
// without a VLAN table still contributes its VLAN interfaces, but the
// result wraps util.ErrNoVlanDatabase.
func (p *Parser) ReadVlans(file string, lines []string) error {
	log := p.data.Log(file)

	inTable, found := false, false
	detected, learned := 0, 0
	for _, line := range lines {
		if strings.Contains(line, VlanTableMarker) {
			inTable, found = true, true
			continue
		}
		if !inTable {
			continue
		}
		switch {
		case vlanRowRegexp.MatchString(line):
			fields := strings.Fields(line)
			id := fields[0]
			if reservedVlans[id] || !util.IsVLANID(id) {
				continue
			}
			detected++
			if p.data.AddVlanName(file, id, util.SanitizeVLANName(fields[1])) {
				learned++
			}
		case wordStartRegexp.MatchString(line):
			inTable = false
		}
	}

	p.readSVIs(file, lines)

	if !found {
		log.Warn("No VLAN database found in the file")
		return fmt.Errorf("%s: %w", file, util.ErrNoVlanDatabase)
	}
	log.Infof("%d VLANs detected. %d new VLAN(s) learned", detected, learned)
	return nil
}

// readSVIs takes alternate names and subnets from "interface Vlan<id>"
// blocks.
func (p *Parser) readSVIs(file string, lines []string) {
	log := p.data.Log(file)
	id := ""
	for _, line := range lines {
		if m := sviRegexp.FindStringSubmatch(strings.TrimRight(line, " ")); m != nil {
			id = m[1]
			continue
		}
		if id == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") {
			id = ""
			continue
		}

		l := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(l, "description "):
			p.data.AddVlanName(file, id, util.SanitizeVLANName(strings.TrimPrefix(l, "description ")))
		case strings.HasPrefix(l, "ip address "):
			fields := strings.Fields(strings.TrimPrefix(l, "ip address "))
			if len(fields) < 2 {
				continue
			}
			subnet, err := util.CalculateCIDR(fields[0] + " " + fields[1])
			if err != nil {
				log.WithError(err).Warnf("Unable to compute subnet of VLAN %s", id)
				continue
			}
			p.data.AddVlanSubnet(file, id, subnet)
		}
	}
}
