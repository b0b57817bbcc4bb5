package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"

	"golang.org/x/sync/errgroup"
)

// Format expands the network of a request for display
func (s *Service) Format(ctx context.Context, request models.Request) (models.DisplayRequest, error) {
	recipients, err := s.network.Expand(ctx, request.Network)
	if err != nil {
		return models.DisplayRequest{}, fmt.Errorf("format request %s: %w", request.ID, err)
	}

	return models.DisplayRequest{
		ID:           request.ID,
		UserID:       request.UserID,
		Date:         request.Date,
		Description:  request.Description,
		Duration:     request.Duration,
		Location:     request.Location,
		CreationDate: request.CreationDate,
		Network:      recipients,
		AcceptedID:   request.AcceptedID,
	}, nil
}

// FormatAll formats each request, keeping input order
func (s *Service) FormatAll(ctx context.Context, requests []models.Request) ([]models.DisplayRequest, error) {
	out := make([]models.DisplayRequest, 0, len(requests))
	for _, request := range requests {
		formatted, err := s.Format(ctx, request)
		if err != nil {
			return nil, err
		}
		out = append(out, formatted)
	}
	return out, nil
}

// FormatUser expands connections, owned groups, community groups and the
// requests the user authored, newest first.
func (s *Service) FormatUser(ctx context.Context, user *models.User) (*models.UserResponse, error) {
	resp := &models.UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Number: user.Number,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		connections, err := s.network.Users(ctx, user.Connections)
		resp.Connections = connections
		return err
	})

	g.Go(func() error {
		owned, err := s.store.GroupsByOwner(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("list groups of %s: %w", user.ID, err)
		}
		groups := make([]models.GroupWithMembers, 0, len(owned))
		for _, group := range owned {
			expanded, err := s.network.Group(ctx, group)
			if err != nil {
				return err
			}
			groups = append(groups, expanded)
		}
		resp.Groups = groups
		return nil
	})

	g.Go(func() error {
		communityGroups := make([]models.CommunityGroup, 0, len(user.CommunityGroups))
		for _, id := range user.CommunityGroups {
			group, err := s.store.GetCommunityGroup(ctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("resolve community group %s: %w", id, err)
			}
			communityGroups = append(communityGroups, *group)
		}
		resp.CommunityGroups = communityGroups
		return nil
	})

	g.Go(func() error {
		authored, err := s.store.RequestsByAuthor(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("list requests of %s: %w", user.ID, err)
		}
		requests, err := s.FormatAll(ctx, authored)
		if err != nil {
			return err
		}
		slices.Reverse(requests)
		resp.Requests = requests
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}
