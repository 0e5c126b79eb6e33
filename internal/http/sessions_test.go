package http_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnknownSIDsDoNotMaterializeSessions(t *testing.T) {
	env := newTestApp(t, nil)

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/healthz", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: fmt.Sprintf("forged-%d", i)})
		resp, err := env.app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	req := httptest.NewRequest("GET", "/api/v1/admin/overview", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "forged-admin"})
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("forged sid on admin: %d", resp.StatusCode)
	}

	for _, path := range []string{"/api/v1/cart", "/api/v1/wishlist", "/api/v1/checkout", "/api/v1/session"} {
		for i := 0; i < 20; i++ {
			resp, err := env.app.Test(httptest.NewRequest("GET", path, nil))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("GET %s: %d", path, resp.StatusCode)
			}
		}
	}

	if n := env.deps.Sessions.Len(); n != 0 {
		t.Fatalf("read-only traffic held %d sessions", n)
	}
}

func TestFreshVisitorReadsEmptyState(t *testing.T) {
	env := newTestApp(t, nil)
	c := newClient(t, env.app)

	status, cart := c.json("GET", "/api/v1/cart", nil)
	if status != http.StatusOK || cart["count"] != 0.0 || len(cart["items"].([]any)) != 0 {
		t.Fatalf("cart: %d %v", status, cart)
	}
	_, wl := c.json("GET", "/api/v1/wishlist", nil)
	if len(wl["ids"].([]any)) != 0 {
		t.Fatalf("wishlist: %v", wl)
	}
	_, co := c.json("GET", "/api/v1/checkout", nil)
	if co["state"] != "empty" {
		t.Fatalf("checkout: %v", co)
	}

	// the minted sid still carries writes
	c.json("POST", "/api/v1/cart", map[string]any{"productId": "1", "size": 9})
	if _, cart = c.json("GET", "/api/v1/cart", nil); cart["count"] != 1.0 {
		t.Fatalf("cart after add: %v", cart)
	}
	if n := env.deps.Sessions.Len(); n != 1 {
		t.Fatalf("want one session, got %d", n)
	}
}
