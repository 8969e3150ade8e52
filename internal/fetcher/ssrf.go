package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	errMissingHost  = errors.New("URL has no host")
	errPrivateHost  = errors.New("URL resolves to a private or loopback address")
	errBadScheme    = errors.New("URL scheme must be http or https")
	errUnresolvable = errors.New("URL host could not be resolved")
)

// validateRequestURL parses and validates an outbound request URL. Unless
// private hosts are explicitly allowed, hosts resolving to loopback, private
// or link-local addresses are rejected.
func (f *Fetcher) validateRequestURL(ctx context.Context, rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if err := validateURLScheme(u); err != nil {
		return nil, err
	}

	if u.Hostname() == "" {
		return nil, errMissingHost
	}

	if f.cfg.AllowPrivateHosts {
		return u, nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, u.Hostname())
	if err != nil || len(addrs) == 0 {
		return nil, errUnresolvable
	}

	for _, addr := range addrs {
		if isPrivateIP(addr.IP) {
			return nil, errPrivateHost
		}
	}

	return u, nil
}

// validateURLScheme checks that the URL uses an allowed scheme.
func validateURLScheme(u *url.URL) error {
	switch u.Scheme {
	case "http", "https":
		return nil
	default:
		return errBadScheme
	}
}

// isPrivateIP reports whether an IP is in a private, loopback, link-local
// or unspecified range.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
