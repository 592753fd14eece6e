package csrf

import (
	"log/slog"
	"net/url"
)

const (
	// DefaultHeaderName is the request header that carries the token.
	DefaultHeaderName = "X-CSRFToken"
	// DefaultMetaName is the name of the meta element holding the token.
	DefaultMetaName = "csrf-token"
)

type Config struct {
	// Token transport. The name goes through http.CanonicalHeaderKey, so
	// "X-CSRFToken" is written as "X-Csrftoken"; header names are
	// case-insensitive and servers match either form.
	HeaderName string // e.g.: "X-CSRFToken"

	// Origin of the page the token belongs to. Requests to any other origin
	// never carry the token. When nil, every absolute target is cross-origin.
	Origin *url.URL

	// Methods exempt from injection. Defaults to GET, HEAD, OPTIONS, TRACE.
	SafeMethods []Method

	Logger *slog.Logger
}

type Interceptor struct {
	cfg    Config
	tokens TokenProvider
	safe   map[Method]bool
}

// New returns an Interceptor reading tokens from tokens. A nil provider
// behaves as if the token were never available.
func New(tokens TokenProvider, cfg Config) *Interceptor {
	// reasonable defaults
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultHeaderName
	}
	if len(cfg.SafeMethods) == 0 {
		cfg.SafeMethods = defaultSafeMethods
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Origin != nil {
		cfg.Origin = originOf(cfg.Origin)
	}
	if tokens == nil {
		tokens = StaticToken("")
	}

	safe := make(map[Method]bool, len(cfg.SafeMethods))
	for _, m := range cfg.SafeMethods {
		safe[ParseMethod(string(m))] = true
	}

	return &Interceptor{cfg: cfg, tokens: tokens, safe: safe}
}

// HeaderName returns the header the interceptor writes.
func (i *Interceptor) HeaderName() string {
	return i.cfg.HeaderName
}

// Origin returns a copy of the configured page origin, or nil.
func (i *Interceptor) Origin() *url.URL {
	if i.cfg.Origin == nil {
		return nil
	}
	u := *i.cfg.Origin
	return &u
}
