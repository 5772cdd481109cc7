package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	pkgconfig "quirkit/pkg/config"
)

// IPExtractor returns the client address used as the rate limit key.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address and ignores forwarding headers.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose X-Forwarded-For and
// X-Real-IP headers are believed.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr falls inside one of the trusted ranges.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr.Unmap()) {
			return true
		}
	}
	return false
}

// ParseTrustedProxies turns IPs and CIDRs into prefixes. A bare IP becomes a
// /32 or /128.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid IP or CIDR %q", entry)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// LoadTrustedProxyConfig reads TRUST_PROXY and TRUSTED_PROXIES. Enabling
// proxy trust without a valid proxy list is a startup error.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	cfg := &TrustedProxyConfig{Enabled: pkgconfig.GetEnvBool("TRUST_PROXY", false)}
	if !cfg.Enabled {
		return cfg, nil
	}

	prefixes, err := ParseTrustedProxies(pkgconfig.GetEnvStringList("TRUSTED_PROXIES", nil))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("TRUST_PROXY is enabled but TRUSTED_PROXIES is empty")
	}
	cfg.AllowedCIDRs = prefixes
	return cfg, nil
}

// TrustedProxyExtractor reads X-Forwarded-For (first entry), then X-Real-IP,
// when the peer is a trusted proxy, and RemoteAddr otherwise.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor creates a TrustedProxyExtractor.
func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

// ExtractIP implements IPExtractor.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String(), nil
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String(), nil
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// NewIPExtractor returns a TrustedProxyExtractor when proxy trust is enabled
// and a RemoteAddrExtractor otherwise.
func NewIPExtractor(cfg *TrustedProxyConfig) IPExtractor {
	if cfg == nil || !cfg.Enabled {
		return &RemoteAddrExtractor{}
	}
	return NewTrustedProxyExtractor(*cfg)
}

// extractIPFromAddr accepts "host:port", "[v6]:port" or a bare IP.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}
