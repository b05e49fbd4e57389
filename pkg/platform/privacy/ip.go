// Package privacy reduces personal data before it reaches logs.
package privacy

import (
	"net/netip"
	"strings"
)

// AnonymizeIP zeroes the host part of an address: the last octet for IPv4,
// the last 80 bits for IPv6. Unparseable input is returned redacted.
func AnonymizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return ""
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "redacted"
	}
	addr = addr.Unmap()
	bits := 24
	if addr.Is6() {
		bits = 48
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "redacted"
	}
	return prefix.Addr().String()
}
