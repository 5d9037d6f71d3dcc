package model

import (
	"strconv"
	"strings"
)

// AEIndex returns the aggregated-ethernet index of a LAG bundle. "aeN" maps
// to N and "Port-channelN" to N-1; any other name gets fallback.
func AEIndex(name string, fallback int) int {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "ae"):
		if n, err := strconv.Atoi(lower[2:]); err == nil && n >= 0 {
			return n
		}
	case strings.HasPrefix(lower, "port-channel"):
		if n, err := strconv.Atoi(lower[len("port-channel"):]); err == nil && n > 0 {
			return n - 1
		}
	}
	return fallback
}
