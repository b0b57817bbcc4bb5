package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// SignupRequest represents signup request body
type SignupRequest struct {
	MobileNumber string `json:"mobileNumber"`
	FullName     string `json:"fullName"`
}

// SigninRequest represents signin request body
type SigninRequest struct {
	MobileNumber string `json:"mobileNumber"`
}

// UpdateUserRequest represents update profile request body
type UpdateUserRequest struct {
	UpdatedName   string `json:"updatedName"`
	UpdatedNumber string `json:"updatedNumber"`
}

// AddConnectionRequest represents add connection request body
type AddConnectionRequest struct {
	ConnectionName   string `json:"connectionName"`
	ConnectionNumber string `json:"connectionNumber"`
}

// CommunityGroupRequest represents join community group request body
type CommunityGroupRequest struct {
	GroupID string `json:"groupId"`
}

// Signup registers a new user
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.svc.Signup(c.UserContext(), req.MobileNumber, req.FullName)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// Signin returns the user owning a mobile number
func (h *Handler) Signin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.svc.Signin(c.UserContext(), req.MobileNumber)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// GetUser returns a formatted user
func (h *Handler) GetUser(c *fiber.Ctx) error {
	user, err := h.svc.GetUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// UpdateUser replaces name and number
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.svc.UpdateUser(c.UserContext(), c.Params("userId"), req.UpdatedName, req.UpdatedNumber)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// AddConnection connects the user to the owner of a number
func (h *Handler) AddConnection(c *fiber.Ctx) error {
	var req AddConnectionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.svc.AddConnection(c.UserContext(), c.Params("userId"), req.ConnectionName, req.ConnectionNumber)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// RemoveConnection removes a connection
func (h *Handler) RemoveConnection(c *fiber.Ctx) error {
	user, err := h.svc.RemoveConnection(c.UserContext(), c.Params("userId"), c.Params("connectionId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

func (h *Handler) AddCommunityGroup(c *fiber.Ctx) error {
	var req CommunityGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.svc.AddCommunityGroup(c.UserContext(), c.Params("userId"), req.GroupID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

func (h *Handler) RemoveCommunityGroup(c *fiber.Ctx) error {
	user, err := h.svc.RemoveCommunityGroup(c.UserContext(), c.Params("userId"), c.Params("groupId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}
