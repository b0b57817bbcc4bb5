package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"
)

// Inbox lists the requests addressed to userID directly or through a group
// the user belongs to. Direct matches come first, then group matches in
// group order; an entry equal to an earlier one is dropped.
func (s *Service) Inbox(ctx context.Context, userID string) ([]models.InboxRequest, error) {
	if userID == "" {
		return nil, validationError("userId is a required property")
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.GroupsWithMember(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list groups with member %s: %w", user.ID, err)
	}

	requests, err := s.store.RequestsWithConnection(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list requests for connection %s: %w", user.ID, err)
	}

	for _, group := range groups {
		groupRequests, err := s.store.RequestsWithGroup(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("list requests for group %s: %w", group.ID, err)
		}
		requests = append(requests, groupRequests...)
	}

	unique := dedupe(requests)

	names := make(map[string]string)
	inbox := make([]models.InboxRequest, 0, len(unique))
	for _, request := range unique {
		name, ok := names[request.UserID]
		if !ok {
			name, err = s.authorName(ctx, request)
			if err != nil {
				return nil, err
			}
			names[request.UserID] = name
		}
		inbox = append(inbox, models.InboxRequest{Request: request, UserName: name})
	}

	s.metrics.InboxSize(len(inbox))
	slog.Info("Inbox checked", "user_id", user.ID, "groups", len(groups), "requests", len(inbox))

	return inbox, nil
}

func (s *Service) authorName(ctx context.Context, request models.Request) (string, error) {
	author, err := s.store.GetUser(ctx, request.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		slog.Warn("Inbox request author missing", "request_id", request.ID, "user_id", request.UserID)
		return UnknownUserName, nil
	}
	if err != nil {
		return "", fmt.Errorf("get author %s: %w", request.UserID, err)
	}
	return author.Name, nil
}

// dedupe keeps the first of every set of field-wise equal requests
func dedupe(requests []models.Request) []models.Request {
	unique := make([]models.Request, 0, len(requests))
	for _, candidate := range requests {
		seen := false
		for _, kept := range unique {
			if kept.Equal(candidate) {
				seen = true
				break
			}
		}
		if !seen {
			unique = append(unique, candidate)
		}
	}
	return unique
}
