// Package network expands a request's network reference into display
// entities and answers whether a user belongs to it.
package network

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"
)

// Lookup is the part of the store the resolver reads from
type Lookup interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetGroup(ctx context.Context, id string) (*models.Group, error)
}

// Resolver materializes network references. Ids that no longer resolve
// are skipped rather than reported.
type Resolver struct {
	store Lookup
}

// NewResolver creates a resolver reading from store
func NewResolver(store Lookup) *Resolver {
	return &Resolver{store: store}
}

// Users loads each id in order, skipping unknown ones
func (r *Resolver) Users(ctx context.Context, ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.store.GetUser(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve user %s: %w", id, err)
		}
		users = append(users, *user)
	}
	return users, nil
}

// Group replaces the member ids of g with user records
func (r *Resolver) Group(ctx context.Context, g models.Group) (models.GroupWithMembers, error) {
	members, err := r.Users(ctx, g.Members)
	if err != nil {
		return models.GroupWithMembers{}, err
	}
	return models.GroupWithMembers{
		ID:      g.ID,
		UserID:  g.UserID,
		Name:    g.Name,
		Members: members,
	}, nil
}

// Expand lists the connections of ref followed by its groups, each in
// stored order. Community groups are not part of the display network.
func (r *Resolver) Expand(ctx context.Context, ref models.NetworkReference) ([]models.Recipient, error) {
	recipients := make([]models.Recipient, 0, len(ref.Connections)+len(ref.Groups))

	users, err := r.Users(ctx, ref.Connections)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		recipients = append(recipients, models.Recipient{Header: models.HeaderConnections, Data: user})
	}

	for _, groupID := range ref.Groups {
		group, err := r.store.GetGroup(ctx, groupID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve group %s: %w", groupID, err)
		}
		expanded, err := r.Group(ctx, *group)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, models.Recipient{Header: models.HeaderGroups, Data: expanded})
	}

	return recipients, nil
}

// IsMember reports whether userID is a direct connection of ref or a
// member of one of its groups. Community groups do not grant membership.
func (r *Resolver) IsMember(ctx context.Context, ref models.NetworkReference, userID string) (bool, error) {
	if slices.Contains(ref.Connections, userID) {
		return true, nil
	}

	for _, groupID := range ref.Groups {
		group, err := r.store.GetGroup(ctx, groupID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("resolve group %s: %w", groupID, err)
		}
		if group.HasMember(userID) {
			return true, nil
		}
	}

	return false, nil
}
