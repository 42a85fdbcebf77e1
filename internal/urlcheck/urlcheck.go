// Package urlcheck guards outbound fetches against SSRF targets.
package urlcheck

import (
	"net/netip"
	"net/url"
	"strings"
)

// IsSafe reports whether a candidate URL may be fetched. Only http and
// https schemes pass, and loopback/localhost hostnames plus private and
// link-local IP literals are denied. This is a blocklist over the literal
// host: DNS is deliberately not resolved, so a hostname that resolves to
// a private address at request time is not caught. Known limitation.
func IsSafe(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return false
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
			addr.IsLinkLocalMulticast() || addr.IsUnspecified() {
			return false
		}
	}

	return true
}
