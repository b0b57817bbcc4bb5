// Package service implements request distribution and acceptance on top of
// a repository.Store: formatting users and requests for display, inbox
// aggregation, the accept protocol and the profile/group operations around
// them.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"favornet/server/internal/geo"
	"favornet/server/internal/metrics"
	"favornet/server/internal/models"
	"favornet/server/internal/network"
	"favornet/server/internal/repository"

	"github.com/google/uuid"
)

// UnknownUserName annotates inbox entries whose author no longer resolves
const UnknownUserName = "Unknown user"

// Service is created once at startup and shared by all handlers
type Service struct {
	store     repository.Store
	network   *network.Resolver
	addresses geo.AddressLookup
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configures optional collaborators
type Option func(*Service)

// WithAddressLookup sets the geocoder used for community group addresses
func WithAddressLookup(lookup geo.AddressLookup) Option {
	return func(s *Service) { s.addresses = lookup }
}

// WithMetrics records acceptance and inbox metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service backed by store
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		network: network.NewResolver(store),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks the storage backend
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// validID filters out ids no store could have generated
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func (s *Service) getUser(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, notFoundError("user", id)
	}
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundError("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

func (s *Service) getGroup(ctx context.Context, id string) (*models.Group, error) {
	if !validID(id) {
		return nil, notFoundError("group", id)
	}
	group, err := s.store.GetGroup(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundError("group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", id, err)
	}
	return group, nil
}

// getCommunityGroup accepts any id since community groups are provisioned
// outside the API
func (s *Service) getCommunityGroup(ctx context.Context, id string) (*models.CommunityGroup, error) {
	group, err := s.store.GetCommunityGroup(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundError("group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get community group %s: %w", id, err)
	}
	return group, nil
}

func (s *Service) getRequest(ctx context.Context, id string) (*models.Request, error) {
	if !validID(id) {
		return nil, notFoundError("request", id)
	}
	request, err := s.store.GetRequest(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFoundError("request", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get request %s: %w", id, err)
	}
	return request, nil
}
