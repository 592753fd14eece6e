package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/JeanGrijp/go-csrf-hook/internal/demo"
)

type serveOptions struct {
	addr   string
	router string
	token  string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo server rendering a CSRF token and echoing the received header",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", envOr(envAddr, ":8080"), "Listen address (env "+envAddr+")")
	f.StringVar(&opts.router, "router", "chi", "Router implementation: chi or gin")
	f.StringVar(&opts.token, "token", "", "Token rendered into the page; empty omits the meta element")

	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	ctx := cmd.Context()
	logger := root.logger(cmd.ErrOrStderr())
	if root.logLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	h, err := demo.NewRouter(opts.router, demo.New(demo.Config{Token: opts.token}, logger))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr, "router", opts.router)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
