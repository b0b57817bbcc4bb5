package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// UpsertGroupRequest represents create or update group request body.
// GroupID selects the group to update; empty creates a new one.
type UpsertGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
	GroupID   string   `json:"groupId,omitempty"`
}

// UpsertGroup creates or updates a personal group
func (h *Handler) UpsertGroup(c *fiber.Ctx) error {
	var req UpsertGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.svc.UpsertGroup(c.UserContext(), c.Params("userId"), req.Name, req.MemberIDs, req.GroupID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// DeleteGroup deletes a personal group
func (h *Handler) DeleteGroup(c *fiber.Ctx) error {
	user, err := h.svc.DeleteGroup(c.UserContext(), c.Params("userId"), c.Params("groupId"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// NearbyCommunityGroups lists community groups with distance and address
func (h *Handler) NearbyCommunityGroups(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Params("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Params("lng"), 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return badRequest(c, "Invalid request. lat and lng must be valid coordinates")
	}

	groups, err := h.svc.NearbyCommunityGroups(c.UserContext(), lat, lng)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, groups)
}
