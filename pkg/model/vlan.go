package model

// VLANPrefix prefixes synthetic names of VLANs seen only by id.
const VLANPrefix = "vlan"

// VlanEntry collects every name and subnet asserted for one VLAN id. The
// first name and subnet are authoritative; later ones are kept for
// diagnostics.
type VlanEntry struct {
	ID      string   `json:"id"`
	Names   []string `json:"names"`
	Subnets []string `json:"subnets"`
}

// Name returns the authoritative name, or "" if none is known.
func (v *VlanEntry) Name() string {
	if len(v.Names) == 0 {
		return ""
	}
	return v.Names[0]
}

// Subnet returns the authoritative subnet, or "" if none is known.
func (v *VlanEntry) Subnet() string {
	if len(v.Subnets) == 0 {
		return ""
	}
	return v.Subnets[0]
}

// SyntheticName is the name used for a VLAN without a configured one.
func SyntheticName(id string) string {
	return VLANPrefix + id
}
