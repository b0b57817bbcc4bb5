package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"favornet/server/internal/geo"
	"favornet/server/internal/models"
	"favornet/server/internal/repository"
)

// UpsertGroup updates groupID in place when set, otherwise creates a new
// group owned by userID. Every member must be an existing user.
func (s *Service) UpsertGroup(ctx context.Context, userID, name string, memberIDs []string, groupID string) (*models.UserResponse, error) {
	if userID == "" {
		return nil, validationError("userId is a required property")
	}
	if memberIDs == nil {
		return nil, validationError("memberIds is a required property, it must be an array")
	}
	if name == "" {
		return nil, validationError("name is a required property.")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		member, err := s.getUser(ctx, memberID)
		if err != nil {
			return nil, err
		}
		members = append(members, member.ID)
	}

	if groupID != "" {
		group, err := s.getGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if group.UserID != user.ID {
			return nil, notEligibleError("User id: %s invalid. Only the owner can edit group %s", user.ID, group.ID)
		}

		err = s.store.UpdateGroup(ctx, group.ID, name, members)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("group", groupID)
		}
		if err != nil {
			return nil, fmt.Errorf("update group %s: %w", groupID, err)
		}
		slog.Info("Group updated", "group_id", group.ID, "members_count", len(members))
	} else {
		group := &models.Group{UserID: user.ID, Name: name, Members: members}
		if err := s.store.CreateGroup(ctx, group); err != nil {
			return nil, fmt.Errorf("create group: %w", err)
		}
		slog.Info("Group created", "group_id", group.ID, "members_count", len(members))
	}

	return s.FormatUser(ctx, user)
}

// DeleteGroup removes a group owned by userID
func (s *Service) DeleteGroup(ctx context.Context, userID, groupID string) (*models.UserResponse, error) {
	if userID == "" {
		return nil, validationError("userId is a required property")
	}
	if groupID == "" {
		return nil, validationError("groupId is a required property")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	group, err := s.getGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.UserID != user.ID {
		return nil, notEligibleError("User id: %s invalid. Only the owner can delete group %s", user.ID, group.ID)
	}

	err = s.store.DeleteGroup(ctx, group.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("delete group %s: %w", group.ID, err)
	}

	slog.Info("Group deleted", "group_id", group.ID)
	return s.FormatUser(ctx, user)
}

// NearbyCommunityGroups lists every community group with its distance from
// (lat, lng) and its address. Geocoding is best effort: a failed lookup
// leaves the address empty.
func (s *Service) NearbyCommunityGroups(ctx context.Context, lat, lng float64) ([]models.NearbyCommunityGroup, error) {
	groups, err := s.store.ListCommunityGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list community groups: %w", err)
	}

	origin := models.Location{Lat: lat, Lng: lng}
	nearby := make([]models.NearbyCommunityGroup, 0, len(groups))
	for _, group := range groups {
		entry := models.NearbyCommunityGroup{
			CommunityGroup: group,
			Distance:       geo.DistanceMiles(origin, group.Location),
		}

		if s.addresses != nil {
			address, err := s.addresses.Address(ctx, group.Location)
			if err != nil {
				slog.Warn("Geocoding failed", "community_group_id", group.ID, "error", err)
			}
			entry.Address = address
		}

		nearby = append(nearby, entry)
	}

	return nearby, nil
}
