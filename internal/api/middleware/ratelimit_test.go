package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

func limitedRequest(t *testing.T, rl *RateLimiter, ip string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if err := limitedRequest(t, rl, "1.2.3.4"); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 2)
	defer rl.Stop()

	for i := 0; i < 2; i++ {
		if err := limitedRequest(t, rl, "1.2.3.4"); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}

	err := limitedRequest(t, rl, "1.2.3.4")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

func TestRateLimiter_KeyedByClient(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 1)
	defer rl.Stop()

	if err := limitedRequest(t, rl, "1.1.1.1"); err != nil {
		t.Fatalf("first client rejected: %v", err)
	}
	if err := limitedRequest(t, rl, "1.1.1.1"); err == nil {
		t.Fatalf("expected first client to be limited")
	}
	// A different client gets its own bucket.
	if err := limitedRequest(t, rl, "2.2.2.2"); err != nil {
		t.Fatalf("second client rejected: %v", err)
	}
}
