package util

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var parseInterfaceRegexp = regexp.MustCompile(`^([A-Za-z][A-Za-z-]*?)(\d[\d/]*)$`)

// ParseInterfaceName extracts interface type and number
// Returns (type, number, subinterface) e.g., ("GigabitEthernet", "1/0/1", "") or ("ge-", "0/0/1", "0")
func ParseInterfaceName(name string) (ifType string, num string, subintf string) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		subintf = parts[1]
		name = parts[0]
	}

	matches := parseInterfaceRegexp.FindStringSubmatch(name)
	if len(matches) == 3 {
		return matches[1], matches[2], subintf
	}

	return name, "", subintf
}

// Block-dialect interface types and their set-dialect prefixes.
var (
	blockToSetPrefix = map[string]string{
		"FastEthernet":         "fe-",
		"GigabitEthernet":      "ge-",
		"TenGigabitEthernet":   "mge-",
		"TwentyFiveGigE":       "et-",
		"FortyGigabitEthernet": "et-",
		"HundredGigE":          "et-",
		"AppGigabitEthernet":   "ge-",
	}

	// blockTypesSorted lists the block-dialect types longest-first so that
	// "TenGigabitEthernet" is matched before "GigabitEthernet".
	blockTypesSorted []string
)

func init() {
	blockTypesSorted = make([]string, 0, len(blockToSetPrefix))
	for k := range blockToSetPrefix {
		blockTypesSorted = append(blockTypesSorted, k)
	}
	sort.Slice(blockTypesSorted, func(i, j int) bool {
		return len(blockTypesSorted[i]) > len(blockTypesSorted[j])
	})
}

// ConvertInterfaceName translates block-dialect port names to the set-dialect
// naming convention. Comma-joined lists are converted element by element.
// Slot and port numbering shift from 1-based to 0-based:
//
//	GigabitEthernet1/0/5 -> ge-0/0/4
//	GigabitEthernet0/5   -> ge-0/0/4
//	FastEthernet3        -> fe-0/0/2
//
// Names without a known type are returned unchanged.
func ConvertInterfaceName(name string) string {
	if strings.Contains(name, ",") {
		parts := strings.Split(name, ",")
		for i, p := range parts {
			parts[i] = ConvertInterfaceName(strings.TrimSpace(p))
		}
		return strings.Join(parts, ",")
	}

	for _, t := range blockTypesSorted {
		if !strings.HasPrefix(name, t) {
			continue
		}
		pos, ok := convertPosition(name[len(t):])
		if !ok {
			return name
		}
		return blockToSetPrefix[t] + pos
	}
	return name
}

func convertPosition(num string) (string, bool) {
	parts := strings.Split(num, "/")
	n := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return "", false
		}
		n[i] = v
	}
	switch len(n) {
	case 3:
		return strconv.Itoa(n[0]-1) + "/" + strconv.Itoa(n[1]) + "/" + strconv.Itoa(n[2]-1), true
	case 2:
		return strconv.Itoa(n[0]) + "/0/" + strconv.Itoa(n[1]-1), true
	case 1:
		return "0/0/" + strconv.Itoa(n[0]-1), true
	}
	return "", false
}
