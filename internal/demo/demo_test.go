package demo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanGrijp/go-csrf-hook/csrf"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEcho(t *testing.T, resp *http.Response) Echo {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var e Echo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"chi", "gin"} {
		kind := kind // per-iteration copy (go directive lowered to 1.21)
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			h, err := NewRouter(kind, New(Config{Token: "abc123"}, quietLogger()))
			require.NoError(t, err)
			srv := httptest.NewServer(h)
			t.Cleanup(srv.Close)

			page, err := csrf.FetchPage(context.Background(), srv.Client(), srv.URL+"/")
			require.NoError(t, err)
			client := page.Client(srv.Client(), csrf.Config{})

			resp, err := client.Post(srv.URL+"/echo", "application/json", strings.NewReader("{}"))
			require.NoError(t, err)
			e := decodeEcho(t, resp)
			assert.Equal(t, Echo{Method: http.MethodPost, Token: "abc123", Present: true, Valid: true}, e)

			resp, err = client.Get(srv.URL + "/echo")
			require.NoError(t, err)
			e = decodeEcho(t, resp)
			assert.False(t, e.Present)
		})
	}
}

func TestPageWithoutToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewChiRouter(New(Config{}, quietLogger())))
	t.Cleanup(srv.Close)

	page, err := csrf.FetchPage(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	_, ok := page.CurrentToken()
	assert.False(t, ok)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/echo", nil)
	require.NoError(t, err)
	resp, err := page.Client(srv.Client(), csrf.Config{}).Do(req)
	require.NoError(t, err)

	e := decodeEcho(t, resp)
	assert.True(t, e.Present)
	assert.Empty(t, e.Token)
	assert.False(t, e.Valid)
}

func TestServePageEscapesToken(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	New(Config{Token: `a"b<c`}, quietLogger()).ServePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.NotContains(t, body, `content="a"b<c"`)

	page, err := csrf.ParsePage(mustURL(t, "http://example.com"), strings.NewReader(body))
	require.NoError(t, err)
	tok, _ := page.CurrentToken()
	assert.Equal(t, `a"b<c`, tok)
}

func TestNewRouterUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewRouter("echo", New(Config{}, nil))
	assert.EqualError(t, err, `demo: unknown router "echo"`)
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
