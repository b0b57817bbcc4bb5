package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"favornet/server/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the service over HTTP
type Handler struct {
	svc *service.Service
}

// New creates handlers backed by svc
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// fail writes a domain error with its own status. Anything else is logged
// and hidden behind a 500.
func fail(c *fiber.Ctx, err error) error {
	var de *service.DomainError
	if errors.As(err, &de) {
		return c.Status(de.Status).JSON(fiber.Map{
			"success": false,
			"error":   de.Message,
		})
	}

	slog.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}

// Health reports whether the store is reachable
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unavailable",
			"message": "Storage is not reachable",
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Favornet API is running",
	})
}
