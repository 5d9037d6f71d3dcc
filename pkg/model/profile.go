// Package model defines the canonical port-profile configuration and the
// Mist switch template schema produced by the converter.
package model

import "strings"

// Port modes
const (
	ModeAccess = "access"
	ModeTrunk  = "trunk"
)

// Auto is the default value of speed and duplex.
const Auto = "auto"

// PortAuthDot1x is the port_auth value for 802.1X authenticated ports.
const PortAuthDot1x = "dot1x"

// ProfileConfiguration holds the per-port attributes of a port usage.
// The zero value is not the default; use DefaultProfile.
type ProfileConfiguration struct {
	AllNetworks              bool     `json:"all_networks"`
	BypassAuthWhenServerDown bool     `json:"bypass_auth_when_server_down"`
	DisableAutoneg           bool     `json:"disable_autoneg"`
	Disabled                 bool     `json:"disabled"`
	Duplex                   string   `json:"duplex"`
	EnableMACAuth            bool     `json:"enable_mac_auth"`
	EnableQoS                bool     `json:"enable_qos"`
	GuestNetwork             string   `json:"guest_network,omitempty"`
	MACAuthOnly              bool     `json:"mac_auth_only"`
	MACLimit                 int      `json:"mac_limit"`
	Mode                     string   `json:"mode"`
	MTU                      int      `json:"mtu,omitempty"`
	Networks                 []string `json:"networks,omitempty"`
	PersistMAC               bool     `json:"persist_mac"`
	PoEDisabled              bool     `json:"poe_disabled"`
	PortAuth                 string   `json:"port_auth,omitempty"`
	PortNetwork              string   `json:"port_network,omitempty"`
	RejectedNetwork          string   `json:"rejected_network,omitempty"`
	Speed                    string   `json:"speed"`
	STPEdge                  bool     `json:"stp_edge"`
	VoIPNetwork              string   `json:"voip_network,omitempty"`
}

// DefaultProfile returns an access port with auto speed and duplex and every
// flag cleared.
func DefaultProfile() ProfileConfiguration {
	return ProfileConfiguration{
		Mode:   ModeAccess,
		Speed:  Auto,
		Duplex: Auto,
	}
}

// ProfileKey is the value identity of a ProfileConfiguration. Two ports share a
// port usage exactly when their keys are equal.
type ProfileKey struct {
	AllNetworks              bool
	BypassAuthWhenServerDown bool
	DisableAutoneg           bool
	Disabled                 bool
	Duplex                   string
	EnableMACAuth            bool
	EnableQoS                bool
	GuestNetwork             string
	MACAuthOnly              bool
	MACLimit                 int
	Mode                     string
	MTU                      int
	Networks                 string
	PersistMAC               bool
	PoEDisabled              bool
	PortAuth                 string
	PortNetwork              string
	RejectedNetwork          string
	Speed                    string
	STPEdge                  bool
	VoIPNetwork              string
}

// networkSep cannot appear in a sanitized network name.
const networkSep = "\x1f"

// Key derives the identity key of p.
func (p ProfileConfiguration) Key() ProfileKey {
	return ProfileKey{
		AllNetworks:              p.AllNetworks,
		BypassAuthWhenServerDown: p.BypassAuthWhenServerDown,
		DisableAutoneg:           p.DisableAutoneg,
		Disabled:                 p.Disabled,
		Duplex:                   p.Duplex,
		EnableMACAuth:            p.EnableMACAuth,
		EnableQoS:                p.EnableQoS,
		GuestNetwork:             p.GuestNetwork,
		MACAuthOnly:              p.MACAuthOnly,
		MACLimit:                 p.MACLimit,
		Mode:                     p.Mode,
		MTU:                      p.MTU,
		Networks:                 strings.Join(p.Networks, networkSep),
		PersistMAC:               p.PersistMAC,
		PoEDisabled:              p.PoEDisabled,
		PortAuth:                 p.PortAuth,
		PortNetwork:              p.PortNetwork,
		RejectedNetwork:          p.RejectedNetwork,
		Speed:                    p.Speed,
		STPEdge:                  p.STPEdge,
		VoIPNetwork:              p.VoIPNetwork,
	}
}

// Canonical returns a copy of p that does not alias p's network slice. An
// empty network list is represented as nil so that a JSON round trip
// reproduces the value exactly.
func (p ProfileConfiguration) Canonical() ProfileConfiguration {
	if len(p.Networks) == 0 {
		p.Networks = nil
	} else {
		p.Networks = append([]string(nil), p.Networks...)
	}
	return p
}

// MergeNonDefault copies every field of src that differs from the default
// profile onto p. Fields src leaves at their default keep p's value.
func (p *ProfileConfiguration) MergeNonDefault(src ProfileConfiguration) {
	def := DefaultProfile()

	mergeBool := func(dst *bool, v, d bool) {
		if v != d {
			*dst = v
		}
	}
	mergeString := func(dst *string, v, d string) {
		if v != d {
			*dst = v
		}
	}

	mergeBool(&p.AllNetworks, src.AllNetworks, def.AllNetworks)
	mergeBool(&p.BypassAuthWhenServerDown, src.BypassAuthWhenServerDown, def.BypassAuthWhenServerDown)
	mergeBool(&p.DisableAutoneg, src.DisableAutoneg, def.DisableAutoneg)
	mergeBool(&p.Disabled, src.Disabled, def.Disabled)
	mergeString(&p.Duplex, src.Duplex, def.Duplex)
	mergeBool(&p.EnableMACAuth, src.EnableMACAuth, def.EnableMACAuth)
	mergeBool(&p.EnableQoS, src.EnableQoS, def.EnableQoS)
	mergeString(&p.GuestNetwork, src.GuestNetwork, def.GuestNetwork)
	mergeBool(&p.MACAuthOnly, src.MACAuthOnly, def.MACAuthOnly)
	if src.MACLimit != def.MACLimit {
		p.MACLimit = src.MACLimit
	}
	mergeString(&p.Mode, src.Mode, def.Mode)
	if src.MTU != def.MTU {
		p.MTU = src.MTU
	}
	if len(src.Networks) > 0 {
		p.Networks = append([]string(nil), src.Networks...)
	}
	mergeBool(&p.PersistMAC, src.PersistMAC, def.PersistMAC)
	mergeBool(&p.PoEDisabled, src.PoEDisabled, def.PoEDisabled)
	mergeString(&p.PortAuth, src.PortAuth, def.PortAuth)
	mergeString(&p.PortNetwork, src.PortNetwork, def.PortNetwork)
	mergeString(&p.RejectedNetwork, src.RejectedNetwork, def.RejectedNetwork)
	mergeString(&p.Speed, src.Speed, def.Speed)
	mergeBool(&p.STPEdge, src.STPEdge, def.STPEdge)
	mergeString(&p.VoIPNetwork, src.VoIPNetwork, def.VoIPNetwork)
}

// SpeedFromMbps maps a block-dialect speed value in Mb/s to the template
// speed. Unknown values map to "auto".
func SpeedFromMbps(v string) string {
	switch v {
	case "10":
		return "10m"
	case "100":
		return "100m"
	case "1000":
		return "1g"
	case "2500":
		return "2.5g"
	case "5000":
		return "5g"
	case "10000":
		return "10g"
	}
	return Auto
}
