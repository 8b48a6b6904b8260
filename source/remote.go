package source

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Pre-compiled CIDR networks for reserved ranges not covered by net.IP
// helpers.
var (
	cgnat    = mustCIDR("100.64.0.0/10") // Carrier-grade NAT
	v6unique = mustCIDR("fc00::/7")      // IPv6 unique local
)

func mustCIDR(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic("invalid CIDR " + s + ": " + err.Error())
	}
	return n
}

// ErrBlockedURL is returned for remote locators that point at local or
// private hosts.
var ErrBlockedURL = errors.New("blocked url")

// ValidateURL rejects remote locators that are not https, or that name
// localhost, .local or .internal domains, or private addresses.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("%w: only https is allowed", ErrBlockedURL)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "localhost" || strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return fmt.Errorf("%w: local host %s", ErrBlockedURL, host)
	}
	if ip := net.ParseIP(host); ip != nil && IsPrivateIP(ip) {
		return fmt.Errorf("%w: private address %s", ErrBlockedURL, host)
	}
	return nil
}

// IsPrivateIP reports whether ip is loopback, private, link-local or in a
// reserved range. IPv4-mapped IPv6 addresses are checked as IPv4.
func IsPrivateIP(ip net.IP) bool {
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
		return true
	}
	return cgnat.Contains(ip) || v6unique.Contains(ip)
}
