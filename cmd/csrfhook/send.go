package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JeanGrijp/go-csrf-hook/csrf"
)

type sendOptions struct {
	page        string
	target      string
	method      string
	data        string
	contentType string
	headerName  string
	metaName    string
	token       string
	timeout     time.Duration
}

func newSendCmd(root *rootOptions) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Load a page and send one request through the CSRF interceptor",
		Example: `  csrfhook send --page https://app.example.com/ --target https://app.example.com/matches/3 --method DELETE
  csrfhook send --page https://app.example.com/ --target /players --method post --data '{"name":"Ana"}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.page, "page", envOr(envPage, ""), "URL of the page holding the token (env "+envPage+")")
	f.StringVar(&opts.target, "target", "", "Request URL; relative paths resolve against --page")
	f.StringVarP(&opts.method, "method", "X", http.MethodPost, "HTTP method")
	f.StringVarP(&opts.data, "data", "d", "", "Request body")
	f.StringVar(&opts.contentType, "content-type", "application/json", "Content-Type of --data")
	f.StringVar(&opts.headerName, "header-name", csrf.DefaultHeaderName, "Header carrying the token")
	f.StringVar(&opts.metaName, "meta-name", csrf.DefaultMetaName, "Name of the meta element holding the token")
	f.StringVar(&opts.token, "token", "", "Use this token instead of the one on the page")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Overall timeout per HTTP request")

	return cmd
}

func runSend(cmd *cobra.Command, root *rootOptions, opts *sendOptions) error {
	if err := requireFlag("page", opts.page); err != nil {
		return err
	}
	if err := requireFlag("target", opts.target); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := root.logger(cmd.ErrOrStderr())
	base := &http.Client{Timeout: opts.timeout}

	page, err := csrf.FetchPage(ctx, base, opts.page, csrf.WithMetaName(opts.metaName))
	if err != nil {
		return err
	}
	if _, ok := page.CurrentToken(); !ok {
		logger.Warn("page has no CSRF token", "page", opts.page, "meta", opts.metaName)
	}

	target, err := page.Origin().Parse(opts.target)
	if err != nil {
		return fmt.Errorf("parse target: %w", err)
	}

	var body io.Reader
	if opts.data != "" {
		body = strings.NewReader(opts.data)
	}
	req, err := http.NewRequestWithContext(ctx, string(csrf.ParseMethod(opts.method)), target.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", opts.contentType)
	}
	if opts.token != "" {
		req = req.WithContext(csrf.ContextWithToken(req.Context(), opts.token))
	}

	client := page.Client(base, csrf.Config{
		HeaderName: opts.headerName,
		Logger:     logger,
	})

	logger.Info("sending request", "method", req.Method, "url", target.String())
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resp.Status)
	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server responded %s", resp.Status)
	}
	return nil
}
