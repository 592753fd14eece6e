package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanGrijp/go-csrf-hook/internal/demo"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(demo.NewChiRouter(demo.New(demo.Config{Token: "abc123"}, logger)))
	t.Cleanup(srv.Close)

	t.Run("post carries page token", func(t *testing.T) {
		out, err := runCmd(t, "send", "--page", srv.URL, "--target", "/echo", "-X", "post", "-d", "{}")
		require.NoError(t, err)
		assert.Contains(t, out, "200 OK")
		assert.Contains(t, out, `"token":"abc123"`)
		assert.Contains(t, out, `"valid":true`)
	})

	t.Run("get is sent without token", func(t *testing.T) {
		out, err := runCmd(t, "send", "--page", srv.URL, "--target", "/echo", "-X", "GET")
		require.NoError(t, err)
		assert.Contains(t, out, `"present":false`)
	})

	t.Run("token flag overrides page", func(t *testing.T) {
		out, err := runCmd(t, "send", "--page", srv.URL, "--target", srv.URL+"/echo", "-X", "DELETE", "--token", "other")
		require.NoError(t, err)
		assert.Contains(t, out, `"token":"other"`)
		assert.Contains(t, out, `"valid":false`)
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := runCmd(t, "send", "--page", srv.URL)
		assert.EqualError(t, err, "--target is required")
	})
}

func TestServeUnknownRouter(t *testing.T) {
	_, err := runCmd(t, "serve", "--router", "mux", "--addr", "127.0.0.1:0")
	assert.EqualError(t, err, `demo: unknown router "mux"`)
}
