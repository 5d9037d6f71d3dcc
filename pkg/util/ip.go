package util

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// ParseIPv4 converts four dot-separated decimal octets into a 32-bit value.
func ParseIPv4(s string) (uint32, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return 0, fmt.Errorf("invalid IPv4 address: %s", s)
	}
	var v uint32
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("invalid IPv4 octet %q in %s", p, s)
		}
		v = v<<8 | uint32(n)
	}
	return v, nil
}

// FormatIPv4 renders a 32-bit value as a dotted quad.
func FormatIPv4(v uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", v>>24, (v>>16)&0xff, (v>>8)&0xff, v&0xff)
}

// PrefixMask returns the netmask for a prefix length between 0 and 32.
func PrefixMask(prefixLen int) uint32 {
	if prefixLen <= 0 {
		return 0
	}
	if prefixLen >= 32 {
		return ^uint32(0)
	}
	return ^uint32(0) << (32 - prefixLen)
}

// CalculateCIDR normalizes "addr/len" or "addr mask" into the network's
// "network/len" form. For the mask form the prefix length is the number of
// set bits in the mask.
//
//	"10.0.0.5/24"             -> "10.0.0.0/24"
//	"10.0.0.5 255.255.255.0"  -> "10.0.0.0/24"
func CalculateCIDR(input string) (string, error) {
	input = strings.TrimSpace(input)
	fail := NewParseError("", ErrSubnetParse, input)

	var addr string
	var prefixLen int
	if a, p, ok := strings.Cut(input, "/"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 32 {
			return "", fail
		}
		addr, prefixLen = a, n
	} else {
		fields := strings.Fields(input)
		if len(fields) != 2 {
			return "", fail
		}
		mask, err := ParseIPv4(fields[1])
		if err != nil {
			return "", fail
		}
		addr, prefixLen = fields[0], bits.OnesCount32(mask)
	}

	ip, err := ParseIPv4(addr)
	if err != nil {
		return "", fail
	}
	return FormatIPv4(ip&PrefixMask(prefixLen)) + "/" + strconv.Itoa(prefixLen), nil
}

// IsValidIPv4 checks if a string is a dotted-quad IPv4 address
func IsValidIPv4(s string) bool {
	_, err := ParseIPv4(s)
	return err == nil
}
