package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// PortPosition is a set-dialect port address <type>-<fpc>/<pic>/<port>.
type PortPosition struct {
	Type string
	FPC  int
	PIC  int
	Port int
}

var portPositionRegexp = regexp.MustCompile(`^([a-z]+)-(\d+)/(\d+)/(\d+)(?:\.\d+)?$`)

// ParsePortPosition parses names such as "ge-0/0/12" or "ge-0/0/12.0".
func ParsePortPosition(name string) (PortPosition, bool) {
	m := portPositionRegexp.FindStringSubmatch(name)
	if m == nil {
		return PortPosition{}, false
	}
	fpc, _ := strconv.Atoi(m[2])
	pic, _ := strconv.Atoi(m[3])
	port, _ := strconv.Atoi(m[4])
	return PortPosition{Type: m[1], FPC: fpc, PIC: pic, Port: port}, true
}

func (p PortPosition) String() string {
	return fmt.Sprintf("%s-%d/%d/%d", p.Type, p.FPC, p.PIC, p.Port)
}

// PositionBounds is an inclusive span of port positions of one type.
type PositionBounds struct {
	Type             string
	FPCMin, FPCMax   int
	PICMin, PICMax   int
	PortMin, PortMax int
}

// Contains reports whether p falls within the bounds.
func (b PositionBounds) Contains(p PortPosition) bool {
	return p.Type == b.Type &&
		p.FPC >= b.FPCMin && p.FPC <= b.FPCMax &&
		p.PIC >= b.PICMin && p.PIC <= b.PICMax &&
		p.Port >= b.PortMin && p.Port <= b.PortMax
}

// Size is the number of positions within the bounds.
func (b PositionBounds) Size() int {
	span := func(lo, hi int) int {
		if hi < lo {
			return 0
		}
		return hi - lo + 1
	}
	return span(b.FPCMin, b.FPCMax) * span(b.PICMin, b.PICMax) * span(b.PortMin, b.PortMax)
}

// Positions enumerates the positions within the bounds in fpc, pic, port order.
func (b PositionBounds) Positions() []PortPosition {
	out := make([]PortPosition, 0, b.Size())
	for f := b.FPCMin; f <= b.FPCMax; f++ {
		for p := b.PICMin; p <= b.PICMax; p++ {
			for n := b.PortMin; n <= b.PortMax; n++ {
				out = append(out, PortPosition{Type: b.Type, FPC: f, PIC: p, Port: n})
			}
		}
	}
	return out
}

// InterfaceRange is a named set-dialect interface-range: member spans plus
// the configuration applied to every member.
type InterfaceRange struct {
	Name    string
	Members []PositionBounds
	Config  ProfileConfiguration
	Lines   []string
}

// NewInterfaceRange returns an empty range with the default profile.
func NewInterfaceRange(name string) *InterfaceRange {
	return &InterfaceRange{Name: name, Config: DefaultProfile()}
}

// Matches reports whether any member span contains p.
func (r *InterfaceRange) Matches(p PortPosition) bool {
	for _, b := range r.Members {
		if b.Contains(p) {
			return true
		}
	}
	return false
}
