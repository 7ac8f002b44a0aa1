// Package proxyurl parses user-supplied proxy addresses.
package proxyurl

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize parses a proxy address into a URL usable by http.Transport.
// Bare host:port forms are accepted and default to the http scheme,
// matching what local proxy tools usually print. An empty address
// returns a nil URL, meaning no proxy.
func Normalize(address string) (*url.URL, error) {
	if address == "" {
		return nil, nil
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy address %q: %w", address, err)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy address %q has no host", address)
	}
	return u, nil
}
