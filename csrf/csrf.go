package csrf

import (
	"context"
	"log/slog"
	"net/http"
)

// Request describes an outgoing request as seen by the interceptor. It lives
// for a single call; BeforeSend may mutate Header.
type Request struct {
	Method      Method
	CrossOrigin bool
	Header      http.Header
}

// BeforeSend applies the CSRF header policy to req.
//
// Behavior:
//   - Safe methods and cross-origin requests are left untouched.
//   - Otherwise the header named by Config.HeaderName is set to the current
//     token. A token carried by ctx (see ContextWithToken) takes precedence
//     over the TokenProvider. If no token is available the header is set to
//     the empty string.
//
// BeforeSend never fails and never blocks the request. Running it twice on the
// same descriptor leaves a single header value.
//
// Params:
// - ctx: request-scoped context, consulted for a token override.
// - req: descriptor to inspect and mutate. A nil Header is allocated.
func (i *Interceptor) BeforeSend(ctx context.Context, req *Request) {
	if req == nil {
		return
	}

	// 1) safe methods never carry the token
	if i.safe[req.Method] {
		i.cfg.Logger.DebugContext(ctx, "csrf: safe method, header skipped",
			slog.String("method", req.Method.String()))
		return
	}

	// 2) neither do requests leaving the page's origin
	if req.CrossOrigin {
		i.cfg.Logger.DebugContext(ctx, "csrf: cross-origin request, header skipped",
			slog.String("method", req.Method.String()))
		return
	}

	// 3) read the token; absence degrades to an empty header
	tok, ok := i.currentToken(ctx)
	if !ok {
		i.cfg.Logger.DebugContext(ctx, "csrf: token unavailable, sending empty header",
			slog.String("method", req.Method.String()),
			slog.String("header", i.cfg.HeaderName))
	}

	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set(i.cfg.HeaderName, tok)
}

func (i *Interceptor) currentToken(ctx context.Context) (string, bool) {
	if tok, ok := TokenFromContext(ctx); ok && tok != "" {
		return tok, true
	}
	return i.tokens.CurrentToken()
}

// Wrap returns an http.RoundTripper that runs BeforeSend on every request
// before handing it to next. A nil next means http.DefaultTransport.
//
// The caller's *http.Request is never modified; the header is added to a
// clone. Each redirect hop is classified again, so a redirect to another
// origin does not carry the token.
func (i *Interceptor) Wrap(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &transport{next: next, ic: i}
}

// Client returns a copy of base whose transport is wrapped by the
// interceptor. A nil base starts from a zero http.Client.
func (i *Interceptor) Client(base *http.Client) *http.Client {
	c := &http.Client{}
	if base != nil {
		*c = *base
	}
	c.Transport = i.Wrap(c.Transport)
	return c
}

type transport struct {
	next http.RoundTripper
	ic   *Interceptor
}

func (t *transport) RoundTrip(r *http.Request) (*http.Response, error) {
	out := r.Clone(r.Context())
	desc := &Request{
		Method:      ParseMethod(out.Method),
		CrossOrigin: IsCrossOrigin(t.ic.cfg.Origin, out.URL),
		Header:      out.Header,
	}
	t.ic.BeforeSend(out.Context(), desc)
	out.Header = desc.Header

	return t.next.RoundTrip(out)
}
