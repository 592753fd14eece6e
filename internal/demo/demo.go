// Package demo serves a page carrying a CSRF token in its metadata and an
// endpoint reporting which token a request arrived with. It stands in for the
// server side of the contract in examples and tests.
package demo

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/JeanGrijp/go-csrf-hook/csrf"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
{{- if .Token }}
  <meta name="{{ .MetaName }}" content="{{ .Token }}">
{{- end }}
  <title>csrf demo</title>
</head>
<body>
  <p>POST to /echo to see which token the server received.</p>
</body>
</html>
`))

type Config struct {
	// Token rendered into the page. Empty omits the meta element.
	Token      string
	MetaName   string
	HeaderName string
}

// Echo is the JSON body returned by the echo endpoint.
type Echo struct {
	Method  string `json:"method"`
	Token   string `json:"token"`
	Present bool   `json:"present"`
	Valid   bool   `json:"valid"`
}

type Server struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Server {
	if cfg.MetaName == "" {
		cfg.MetaName = csrf.DefaultMetaName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = csrf.DefaultHeaderName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger}
}

// ServePage renders the HTML page with the configured token.
func (s *Server) ServePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, s.cfg); err != nil {
		s.logger.ErrorContext(r.Context(), "demo: render page", slog.Any("error", err))
	}
}

// ServeEcho reports the token header of the incoming request. Valid is true
// when it matches the configured token.
func (s *Server) ServeEcho(w http.ResponseWriter, r *http.Request) {
	vals, present := r.Header[http.CanonicalHeaderKey(s.cfg.HeaderName)]
	e := Echo{Method: r.Method, Present: present}
	if present && len(vals) > 0 {
		e.Token = vals[0]
	}
	e.Valid = present && s.cfg.Token != "" && e.Token == s.cfg.Token

	s.logger.InfoContext(r.Context(), "demo: echo",
		slog.String("method", e.Method),
		slog.Bool("present", e.Present),
		slog.Bool("valid", e.Valid))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(e); err != nil {
		s.logger.ErrorContext(r.Context(), "demo: write echo", slog.Any("error", err))
	}
}
