package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"shinyshoes/internal/config"
	apphttp "shinyshoes/internal/http"
	"shinyshoes/internal/http/handlers"
	applog "shinyshoes/internal/log"
	"shinyshoes/internal/repos"
	"shinyshoes/internal/stylist"
)

type testEnv struct {
	app  *fiber.App
	deps *handlers.Deps
	db   *sqlx.DB
}

func newTestApp(t *testing.T, sty *stylist.Stylist) *testEnv {
	t.Helper()
	cfg := config.Config{
		DBDSN:                 ":memory:",
		RateLimit:             1000,
		OrderTimeout:          time.Second,
		CheckoutRedirectDelay: 3 * time.Second,
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	deps := handlers.NewDeps(db, cfg, nil, sty)
	return &testEnv{app: apphttp.NewApp(cfg, deps), deps: deps, db: db}
}

// client keeps the sid and csrf_ cookies between requests and echoes the
// csrf token in the header on unsafe methods, like the storefront script does.
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
	noCSRF  bool
}

func newClient(t *testing.T, app *fiber.App) *client {
	t.Helper()
	c := &client{t: t, app: app, cookies: map[string]string{}}
	if status, _ := c.do("GET", "/api/v1/session", nil); status != http.StatusOK {
		t.Fatalf("session bootstrap: %d", status)
	}
	if c.cookies["sid"] == "" || c.cookies["csrf_"] == "" {
		t.Fatalf("bootstrap cookies missing: %v", c.cookies)
	}
	return c
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	if method != "GET" && !c.noCSRF {
		req.Header.Set("X-Csrf-Token", c.cookies["csrf_"])
	}
	resp, err := c.app.Test(req, 5000)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	for _, ck := range resp.Cookies() {
		if ck.Value != "" {
			c.cookies[ck.Name] = ck.Value
		}
	}
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

// json issues a request and decodes the response body into a generic map.
func (c *client) json(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	status, raw := c.do(method, path, body)
	m := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &m); err != nil {
			c.t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return status, m
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.buf.Write(p)
}

func (lw *lockedWriter) String() string {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.buf.String()
}

// captureLogs redirects the application logger while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	applog.SetOutput(w)
	defer applog.SetOutput(io.Discard)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) *logEntry {
	for i := range entries {
		if entries[i].Action == action {
			return &entries[i]
		}
	}
	return nil
}

type fakeGen struct{ text string }

func (f fakeGen) Generate(context.Context, string) (string, error) { return f.text, nil }
