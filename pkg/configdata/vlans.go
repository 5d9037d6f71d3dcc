package configdata

import (
	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

func (c *ConfigData) vlanEntry(id string) (*model.VlanEntry, bool) {
	if v, ok := c.vlans[id]; ok {
		return v, false
	}
	v := &model.VlanEntry{ID: id}
	c.vlans[id] = v
	c.vlanOrder = append(c.vlanOrder, id)
	return v, true
}

// AddVlan ensures a VLAN entry exists for id. A new entry is named name, or
// gets a synthetic "vlan<id>" name when name is empty. Existing entries are
// left untouched.
func (c *ConfigData) AddVlan(file, id, name string) {
	v, created := c.vlanEntry(id)
	if !created {
		return
	}
	if name == "" {
		name = model.SyntheticName(id)
	}
	v.Names = append(v.Names, name)
	c.Log(file).Debugf("VLAN %s added as %s", id, name)
}

// AddVlanName asserts a name for id, creating the entry if needed. Names are
// kept in assertion order; the first one is authoritative. It reports
// whether the VLAN id was new.
func (c *ConfigData) AddVlanName(file, id, name string) bool {
	v, created := c.vlanEntry(id)
	if name == "" {
		return created
	}
	var added bool
	v.Names, added = appendUnique(v.Names, name)
	if added && len(v.Names) > 1 {
		c.Log(file).Debugf("VLAN %s has an additional name %s", id, name)
	}
	return created
}

// AddVlanSubnet asserts a subnet for id, creating the entry if needed.
func (c *ConfigData) AddVlanSubnet(file, id, subnet string) {
	if subnet == "" {
		return
	}
	v, _ := c.vlanEntry(id)
	v.Subnets, _ = appendUnique(v.Subnets, subnet)
}

// GetVlan returns the authoritative name of id. Unknown ids are logged as
// errors and yield ok == false.
func (c *ConfigData) GetVlan(file, id string) (string, bool) {
	v, ok := c.vlans[id]
	if !ok || v.Name() == "" {
		c.Log(file).WithError(util.NewParseError(file, util.ErrVlanLookup, id)).
			Errorf("Unable to find VLAN %s", id)
		return "", false
	}
	return v.Name(), true
}

// HasVlan reports whether id is known.
func (c *ConfigData) HasVlan(id string) bool {
	_, ok := c.vlans[id]
	return ok
}

// Vlans returns the VLAN entries in first-seen order.
func (c *ConfigData) Vlans() []*model.VlanEntry {
	out := make([]*model.VlanEntry, 0, len(c.vlanOrder))
	for _, id := range c.vlanOrder {
		out = append(out, c.vlans[id])
	}
	return out
}

// AddDHCPSnoopingVlan enables DHCP snooping for id.
func (c *ConfigData) AddDHCPSnoopingVlan(file, id string) {
	var added bool
	if c.dhcpSnooping, added = appendUnique(c.dhcpSnooping, id); added {
		c.Log(file).Debugf("DHCP snooping enabled on VLAN %s", id)
	}
}
