package configdata

import (
	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

// AddProfile returns the uuid of the profile whose configuration equals cfg,
// registering a new profile on first sight. The interface, a non-empty
// description and the interface-range names are attached to the profile
// either way.
func (c *ConfigData) AddProfile(file string, cfg model.ProfileConfiguration, ifName, description string, ranges []string) string {
	cfg = cfg.Canonical()
	key := cfg.Key()

	p, ok := c.profileIndex[key]
	if !ok {
		p = &model.ParsedProfile{
			UUID:   c.newUUID(),
			Config: cfg,
			Key:    key,
		}
		c.profileIndex[key] = p
		c.profiles = append(c.profiles, p)
		c.named = false
		c.Log(file).WithField("uuid", p.UUID).Info("New port profile added")
	}

	p.InterfaceNames = append(p.InterfaceNames, ifName)
	if description != "" {
		p.Descriptions = util.AppendUnique(p.Descriptions, description)
	}
	for _, r := range ranges {
		p.InterfaceRanges = util.AppendUnique(p.InterfaceRanges, r)
	}
	return p.UUID
}

// Profiles returns the profiles in creation order.
func (c *ConfigData) Profiles() []*model.ParsedProfile {
	return c.profiles
}

// Profile returns the profile with the given uuid.
func (c *ConfigData) Profile(id string) (*model.ParsedProfile, bool) {
	for _, p := range c.profiles {
		if p.UUID == id {
			return p, true
		}
	}
	return nil, false
}
