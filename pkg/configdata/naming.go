package configdata

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/newtron-network/mistconv/pkg/util"
)

// MaxProfileNameLength is the longest port usage name the template accepts.
const MaxProfileNameLength = 31

const defaultProfileName = "profile"

var (
	descriptionTokenSep = regexp.MustCompile(`[\s_:,-]+`)
	tokenStripChars     = regexp.MustCompile(`[ &:*"'()\[\]{}-]`)
	edgeNonWord         = regexp.MustCompile(`^\W+|\W+$`)
	nameSeparatorRuns   = regexp.MustCompile(`[ &:*"\-,]+`)
)

// GenerateProfileNames assigns a unique name to every profile, in creation
// order, and back-fills the profile name of every interface.
func (c *ConfigData) GenerateProfileNames() {
	used := make(map[string]bool, len(c.profiles))
	names := make(map[string]string, len(c.profiles))

	for _, p := range c.profiles {
		var base string
		switch {
		case len(p.InterfaceRanges) > 0:
			base = strings.Join(p.InterfaceRanges, "_")
		case len(p.Descriptions) == 1:
			base = p.Descriptions[0]
		case len(p.Descriptions) > 1:
			base = mostFrequentTerms(p.Descriptions)
		}
		base = normalizeProfileName(base)
		if base == "" {
			base = defaultProfileName
		}

		name := uniqueName(base, used)
		used[name] = true
		p.GeneratedName = name
		names[p.UUID] = name
		c.log.WithField("uuid", p.UUID).Infof("Profile name %q assigned to profile", name)
	}

	for _, iface := range c.interfaces {
		iface.ProfileName = names[iface.ProfileID]
	}
	c.named = true
}

// mostFrequentTerms joins the description tokens tied for the highest count,
// in order of first appearance.
func mostFrequentTerms(descriptions []string) string {
	counts := make(map[string]int)
	var order []string
	for _, d := range descriptions {
		for _, tok := range descriptionTokenSep.Split(d, -1) {
			tok = tokenStripChars.ReplaceAllString(strings.ToLower(tok), "")
			if tok == "" || tok == "null" {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	top := 0
	for _, n := range counts {
		if n > top {
			top = n
		}
	}
	var terms []string
	for _, tok := range order {
		if counts[tok] == top {
			terms = append(terms, tok)
		}
	}
	return util.Truncate(strings.Join(terms, "_"), MaxProfileNameLength)
}

func normalizeProfileName(name string) string {
	name = strings.ToLower(name)
	name = edgeNonWord.ReplaceAllString(name, "")
	name = nameSeparatorRuns.ReplaceAllString(name, "_")
	return util.Truncate(name, MaxProfileNameLength)
}

// uniqueName returns base, or base with the lowest "_N" suffix (N >= 2)
// that is not yet used, truncating base to keep the length limit.
func uniqueName(base string, used map[string]bool) string {
	if !used[base] {
		return base
	}
	for n := 2; ; n++ {
		suffix := "_" + strconv.Itoa(n)
		candidate := util.Truncate(base, MaxProfileNameLength-len(suffix)) + suffix
		if !used[candidate] {
			return candidate
		}
	}
}
