// Package csrf attaches a page's CSRF token to outgoing HTTP requests.
//
// The server renders the token into the page as
//
//	<meta name="csrf-token" content="...">
//
// and expects it back in the X-CSRFToken header on every state-changing
// request. This package is the client half of that contract.
//
// How it works
//   - Safe methods (GET, HEAD, OPTIONS, TRACE, any case) are sent unchanged.
//   - Requests to a different origin than the page are sent unchanged, so the
//     token never leaves the site that issued it.
//   - Every other request gets the header set to the current token. When the
//     token is unavailable the header is set to an empty value and the request
//     still goes out; the server decides whether to reject it.
//
// # Configuration
//
// All behavior is driven by Config. Key fields include:
//   - HeaderName (default: "X-CSRFToken")
//   - Origin: the page origin used to classify targets as same- or cross-origin
//   - SafeMethods (default: GET, HEAD, OPTIONS, TRACE)
//   - Logger (default: slog.Default())
//
// Typical usage
//
//	page, err := csrf.FetchPage(ctx, http.DefaultClient, "https://app.example.com/")
//	if err != nil {
//	    return err
//	}
//	client := page.Client(nil, csrf.Config{})
//	resp, err := client.Post("https://app.example.com/transfer", "application/json", body)
//
// The token can be overridden for a single request through its context:
//
//	req = req.WithContext(csrf.ContextWithToken(req.Context(), tok))
//
// Code that builds requests by other means can call Interceptor.BeforeSend
// directly with a Request descriptor.
package csrf
