package types

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

// Target represents the single host under assessment for one scan session.
// It is immutable once a scan begins.
type Target struct {
	Host string `json:"host"`
}

var domainRe = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)+\.?$`)

// ParseTarget accepts a hostname, IP literal, host:port, or full URL and
// normalizes it into a Target holding just the host.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("target cannot be empty")
	}

	host := raw

	// If it looks like a URL (has a scheme), keep only the hostname.
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Target{}, fmt.Errorf("invalid target URL %q: %w", raw, err)
		}
		if u.Hostname() == "" {
			return Target{}, fmt.Errorf("target URL %q has no hostname", raw)
		}
		host = u.Hostname()
	} else if h, _, err := net.SplitHostPort(raw); err == nil {
		host = h
	}

	host = strings.TrimSuffix(strings.ToLower(host), ".")

	if net.ParseIP(host) == nil && !domainRe.MatchString(host) && host != "localhost" {
		return Target{}, fmt.Errorf("invalid target %q: not a domain name or IP address", raw)
	}

	return Target{Host: host}, nil
}

// IsIP reports whether the target host is an IP literal.
func (t Target) IsIP() bool {
	return net.ParseIP(t.Host) != nil
}

// IsLoopback reports whether the target points at the local machine.
// Safe mode refuses such targets.
func (t Target) IsLoopback() bool {
	if t.Host == "localhost" {
		return true
	}
	if ip := net.ParseIP(t.Host); ip != nil {
		return ip.IsLoopback() || ip.IsUnspecified()
	}
	return false
}
