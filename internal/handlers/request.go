package handlers

import (
	"favornet/server/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SaveRequestRequest represents create or edit request body
type SaveRequestRequest struct {
	Request   *models.RequestInput `json:"request"`
	RequestID string               `json:"requestId,omitempty"`
}

// AcceptRequestRequest represents accept request body
type AcceptRequestRequest struct {
	AcceptID string `json:"acceptId"`
}

// SaveRequest creates a request or edits an existing one
func (h *Handler) SaveRequest(c *fiber.Ctx) error {
	var req SaveRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.svc.CreateOrEditRequest(c.UserContext(), c.Params("userId"), req.Request, req.RequestID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// Inbox lists requests addressed to the user
func (h *Handler) Inbox(c *fiber.Ctx) error {
	inbox, err := h.svc.Inbox(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, inbox)
}

// CheckRequest returns who accepted a request, null while open
func (h *Handler) CheckRequest(c *fiber.Ctx) error {
	acceptedID, err := h.svc.CheckRequest(c.UserContext(), c.Params("requestId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"accepted_id": acceptedID})
}

// AcceptRequest accepts a request on behalf of acceptId
func (h *Handler) AcceptRequest(c *fiber.Ctx) error {
	var req AcceptRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	requestID := c.Params("requestId")
	if err := h.svc.Accept(c.UserContext(), requestID, req.AcceptID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Request accepted",
		"data":    fiber.Map{"_id": requestID, "accepted_id": req.AcceptID},
	})
}
