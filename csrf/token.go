package csrf

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var ErrInvalidOrigin = errors.New("csrf: invalid origin")

// TokenProvider supplies the current CSRF token. The boolean is false when no
// token is available.
type TokenProvider interface {
	CurrentToken() (string, bool)
}

// TokenProviderFunc adapts a function to TokenProvider.
type TokenProviderFunc func() (string, bool)

func (f TokenProviderFunc) CurrentToken() (string, bool) {
	return f()
}

// StaticToken is a fixed token. The empty string reports no token.
type StaticToken string

func (t StaticToken) CurrentToken() (string, bool) {
	return string(t), t != ""
}

// ParseOrigin parses raw and keeps only its scheme and host. Input without
// both, such as "example.com", is rejected with ErrInvalidOrigin.
func ParseOrigin(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrigin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q needs a scheme and a host", ErrInvalidOrigin, raw)
	}
	return originOf(u), nil
}

// IsCrossOrigin reports whether target lies outside origin. Scheme, host and
// port are compared case-insensitively, with default ports filled in. A
// relative target (no scheme, no host) is same-origin. With a nil origin every
// absolute target is cross-origin.
func IsCrossOrigin(origin, target *url.URL) bool {
	if target == nil {
		return true
	}
	if target.Scheme == "" && target.Host == "" {
		return false
	}
	if origin == nil {
		return true
	}
	if !strings.EqualFold(origin.Scheme, target.Scheme) {
		return true
	}
	return hostPort(origin) != hostPort(target)
}

func originOf(u *url.URL) *url.URL {
	return &url.URL{
		Scheme: strings.ToLower(u.Scheme),
		Host:   strings.ToLower(u.Host),
	}
}

func hostPort(u *url.URL) string {
	host, port := strings.ToLower(u.Hostname()), u.Port()
	if port == "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "ws":
			port = "80"
		case "https", "wss":
			port = "443"
		}
	}
	return net.JoinHostPort(host, port)
}
