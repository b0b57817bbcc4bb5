// Package repository defines the storage boundary used by the service layer.
// Implementations decode rows into typed records and report absence with
// ErrNotFound; array-containment lookups are exposed as dedicated methods
// so callers never depend on a store's query language.
package repository

import (
	"context"
	"errors"

	"favornet/server/internal/models"
)

var (
	// ErrNotFound is returned when no record has the requested key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique field is already taken.
	ErrDuplicate = errors.New("record already exists")
)

// Users stores user records.
type Users interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByNumber(ctx context.Context, number string) (*models.User, error)

	// CreateUser persists a new user and populates user.ID.
	CreateUser(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id, name, number string) error
	SetConnections(ctx context.Context, id string, connections []string) error
	SetCommunityGroups(ctx context.Context, id string, groups []string) error
}

// Groups stores personal groups.
type Groups interface {
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	GroupsByOwner(ctx context.Context, ownerID string) ([]models.Group, error)

	// GroupsWithMember returns every group whose member list contains userID.
	GroupsWithMember(ctx context.Context, userID string) ([]models.Group, error)

	// CreateGroup persists a new group and populates group.ID.
	CreateGroup(ctx context.Context, group *models.Group) error
	UpdateGroup(ctx context.Context, id, name string, members []string) error
	SetGroupMembers(ctx context.Context, id string, members []string) error
	DeleteGroup(ctx context.Context, id string) error
}

// CommunityGroups reads community groups. They are managed outside this service.
type CommunityGroups interface {
	GetCommunityGroup(ctx context.Context, id string) (*models.CommunityGroup, error)
	ListCommunityGroups(ctx context.Context) ([]models.CommunityGroup, error)
}

// Requests stores favor requests. List methods return records in
// insertion order.
type Requests interface {
	GetRequest(ctx context.Context, id string) (*models.Request, error)
	RequestsByAuthor(ctx context.Context, userID string) ([]models.Request, error)
	RequestsWithConnection(ctx context.Context, userID string) ([]models.Request, error)
	RequestsWithGroup(ctx context.Context, groupID string) ([]models.Request, error)

	// CreateRequest persists a new request and populates request.ID.
	CreateRequest(ctx context.Context, request *models.Request) error

	// UpdateRequest replaces date, description, duration, location and
	// network of an existing request. Author, creation date and
	// acceptance are left untouched.
	UpdateRequest(ctx context.Context, request *models.Request) error

	// AcceptRequest sets accepted_id only if it is currently unset and
	// reports whether this call made the transition.
	AcceptRequest(ctx context.Context, requestID, accepterID string) (bool, error)
}

// Store is the full storage backend.
type Store interface {
	Users
	Groups
	CommunityGroups
	Requests

	Ping(ctx context.Context) error
	Close() error
}
