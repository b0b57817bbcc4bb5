package routes

import (
	"time"

	"favornet/server/internal/handlers"
	"favornet/server/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options tunes the route level middleware
type Options struct {
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Gatherer backs /metrics; nil leaves the endpoint out
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, h *handlers.Handler, opts Options) {
	// API v1 group
	api := app.Group("/api/v1")

	api.Get("/health", h.Health)
	if opts.Gatherer != nil {
		api.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	limited := api.Group("", middleware.RateLimiter(opts.RateLimitMax, opts.RateLimitWindow))

	// User routes
	users := limited.Group("/users")
	users.Post("/signup", h.Signup)
	users.Post("/signin", h.Signin)
	users.Get("/:userId", h.GetUser)
	users.Put("/:userId", h.UpdateUser)
	users.Post("/:userId/connections", h.AddConnection)
	users.Delete("/:userId/connections/:connectionId", h.RemoveConnection)
	users.Post("/:userId/communityGroups", h.AddCommunityGroup)
	users.Delete("/:userId/communityGroups/:groupId", h.RemoveCommunityGroup)
	users.Post("/:userId/groups", h.UpsertGroup)
	users.Delete("/:userId/groups/:groupId", h.DeleteGroup)
	users.Post("/:userId/requests", h.SaveRequest)
	users.Get("/:userId/inbox", h.Inbox)

	// Request routes
	requests := limited.Group("/requests")
	requests.Get("/:requestId", h.CheckRequest)
	requests.Post("/:requestId/accept", middleware.AcceptRateLimiter(), h.AcceptRequest)

	// Community group discovery
	limited.Get("/communityGroups/:lat/:lng", h.NearbyCommunityGroups)
}
