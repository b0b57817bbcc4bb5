package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreateOrEditRequest creates a request authored by userID, or replaces the
// editable fields of requestID when it is set. Only the author may edit;
// author, creation date and acceptance survive an edit.
func (s *Service) CreateOrEditRequest(ctx context.Context, userID string, input *models.RequestInput, requestID string) (*models.UserResponse, error) {
	if userID == "" {
		return nil, validationError("userId is a required property")
	}
	if input == nil {
		return nil, validationError("request is a required property")
	}

	date, err := validateRequestInput(input)
	if err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ref, err := s.networkReference(ctx, input.Network)
	if err != nil {
		return nil, err
	}

	request := &models.Request{
		UserID:      user.ID,
		Date:        date,
		Description: input.Description,
		Duration:    input.Duration,
		Location:    input.Location,
		Network:     ref,
	}

	if requestID != "" {
		existing, err := s.getRequest(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if existing.UserID != user.ID {
			return nil, notEligibleError("User id: %s invalid. Only the author can edit request %s", user.ID, existing.ID)
		}

		request.ID = existing.ID
		err = s.store.UpdateRequest(ctx, request)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("request", requestID)
		}
		if err != nil {
			return nil, fmt.Errorf("update request %s: %w", requestID, err)
		}
		slog.Info("Request updated", "request_id", request.ID, "user_id", user.ID)
	} else {
		request.CreationDate = s.now()
		if err := s.store.CreateRequest(ctx, request); err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		slog.Info("Request created", "request_id", request.ID, "user_id", user.ID,
			"connections", len(ref.Connections), "groups", len(ref.Groups), "community_groups", len(ref.CommunityGroups))
	}

	return s.FormatUser(ctx, user)
}

func validateRequestInput(input *models.RequestInput) (time.Time, error) {
	if input.Date == "" {
		return time.Time{}, validationError("request object must include date")
	}
	if input.Description == "" {
		return time.Time{}, validationError("request object must include description")
	}
	if input.Duration == "" {
		return time.Time{}, validationError("request object must include duration")
	}
	if input.Location == "" {
		return time.Time{}, validationError("request object must include location")
	}
	if input.Network == nil {
		return time.Time{}, validationError("request object must include array-type network")
	}

	date, ok := parseDate(input.Date)
	if !ok {
		return time.Time{}, validationError("request date %q is not an ISO 8601 date", input.Date)
	}
	return date, nil
}

// networkReference sorts client entries by header and checks every id
// refers to an existing record
func (s *Service) networkReference(ctx context.Context, entries []models.NetworkEntry) (models.NetworkReference, error) {
	ref := models.NetworkReference{
		Connections:     []string{},
		Groups:          []string{},
		CommunityGroups: []string{},
	}

	for i, entry := range entries {
		id := entry.Data.ID
		if id == "" {
			return ref, validationError("network entry %d must include data._id", i)
		}

		switch entry.Header {
		case models.HeaderConnections:
			if _, err := s.getUser(ctx, id); err != nil {
				return ref, err
			}
			ref.Connections = append(ref.Connections, id)
		case models.HeaderGroups:
			if _, err := s.getGroup(ctx, id); err != nil {
				return ref, err
			}
			ref.Groups = append(ref.Groups, id)
		case models.HeaderCommunityGroups:
			if _, err := s.getCommunityGroup(ctx, id); err != nil {
				return ref, err
			}
			ref.CommunityGroups = append(ref.CommunityGroups, id)
		default:
			return ref, validationError("network entry %d has unknown header %q", i, entry.Header)
		}
	}

	return ref, nil
}
