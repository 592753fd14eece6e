package csrf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ErrNilPageURL = errors.New("csrf: page URL is nil")
	ErrPageStatus = errors.New("csrf: unexpected page status")
)

// Page is a loaded HTML document: its origin and the token found in its
// metadata. It is read-only once parsed.
type Page struct {
	origin *url.URL
	token  string
}

type pageOptions struct {
	metaName string
}

// PageOption configures how a page is read.
type PageOption func(*pageOptions)

// WithMetaName changes the meta element name holding the token.
func WithMetaName(name string) PageOption {
	return func(o *pageOptions) {
		if name != "" {
			o.metaName = name
		}
	}
}

// ParsePage reads an HTML document served from base and extracts the token
// from its first <meta name="csrf-token"> element. The name must match
// exactly, including case. A document without the
// element yields a Page whose CurrentToken reports false.
func ParsePage(base *url.URL, r io.Reader, opts ...PageOption) (*Page, error) {
	if base == nil {
		return nil, ErrNilPageURL
	}

	o := pageOptions{metaName: DefaultMetaName}
	for _, f := range opts {
		f(&o)
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("csrf: parse page: %w", err)
	}

	tok, _ := findMetaContent(doc, o.metaName)

	return &Page{origin: originOf(base), token: tok}, nil
}

// FetchPage GETs rawURL with client and parses the response as a Page. The
// origin is taken from the final URL after redirects. A nil client means
// http.DefaultClient.
func FetchPage(ctx context.Context, client *http.Client, rawURL string, opts ...PageOption) (*Page, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("csrf: build page request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("csrf: fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrPageStatus, resp.Status)
	}

	return ParsePage(resp.Request.URL, resp.Body, opts...)
}

// CurrentToken implements TokenProvider.
func (p *Page) CurrentToken() (string, bool) {
	return p.token, p.token != ""
}

// Origin returns the scheme and host the page was served from.
func (p *Page) Origin() *url.URL {
	u := *p.origin
	return &u
}

// Interceptor binds an Interceptor to the page's token. cfg.Origin defaults
// to the page origin.
func (p *Page) Interceptor(cfg Config) *Interceptor {
	if cfg.Origin == nil {
		cfg.Origin = p.Origin()
	}
	return New(p, cfg)
}

// Client is shorthand for p.Interceptor(cfg).Client(base).
func (p *Page) Client(base *http.Client, cfg Config) *http.Client {
	return p.Interceptor(cfg).Client(base)
}

func findMetaContent(n *html.Node, name string) (string, bool) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
		if content, ok := metaContent(n, name); ok {
			return content, true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v, ok := findMetaContent(c, name); ok {
			return v, true
		}
	}
	return "", false
}

func metaContent(n *html.Node, name string) (string, bool) {
	var matched bool
	var content string
	for _, a := range n.Attr {
		switch a.Key {
		case "name":
			matched = a.Val == name
		case "content":
			content = a.Val
		}
	}
	return content, matched
}
