package csrf

import "context"

type overrideKey struct{}

// ContextWithToken pins tok for requests sent with the returned context.
// The interceptor sends it instead of asking its TokenProvider, which lets a
// caller replay a request with a token obtained elsewhere. An empty tok does
// not override anything.
func ContextWithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, overrideKey{}, tok)
}

// TokenFromContext returns the token pinned by ContextWithToken, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	tok, ok := ctx.Value(overrideKey{}).(string)
	return tok, ok
}
