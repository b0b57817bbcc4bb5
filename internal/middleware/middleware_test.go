package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"favornet/server/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(2, time.Minute), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i, want := range []int{200, 200, 429} {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if resp.StatusCode != want {
			t.Errorf("request %d: status = %d, want %d", i, resp.StatusCode, want)
		}
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(0, time.Minute), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("request %d: status = %d", i, resp.StatusCode)
		}
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	app := fiber.New()
	app.Use(Metrics(m))
	app.Get("/users/:userId", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("missing")
	})

	for _, path := range []string{"/users/a", "/users/b"} {
		if _, err := app.Test(httptest.NewRequest("GET", path, nil)); err != nil {
			t.Fatalf("request failed: %v", err)
		}
	}

	expected := `
# HELP favornet_http_requests_total HTTP requests by method, route and status code.
# TYPE favornet_http_requests_total counter
favornet_http_requests_total{method="GET",route="/users/:userId",status="404"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "favornet_http_requests_total"); err != nil {
		t.Error(err)
	}
}
