package repository

import (
	"context"
	"slices"
	"sync"

	"favornet/server/internal/models"

	"github.com/google/uuid"
)

// Memory is a Store kept in process memory. It backs local development
// (STORE=memory) and the service tests.
type Memory struct {
	mu              sync.RWMutex
	users           map[string]*models.User
	userOrder       []string
	groups          map[string]*models.Group
	groupOrder      []string
	communityGroups map[string]*models.CommunityGroup
	communityOrder  []string
	requests        map[string]*models.Request
	requestOrder    []string
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:           make(map[string]*models.User),
		groups:          make(map[string]*models.Group),
		communityGroups: make(map[string]*models.CommunityGroup),
		requests:        make(map[string]*models.Request),
	}
}

func (m *Memory) Ping(context.Context) error { return nil }
func (m *Memory) Close() error               { return nil }

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Connections = slices.Clone(u.Connections)
	c.CommunityGroups = slices.Clone(u.CommunityGroups)
	return &c
}

func cloneGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	return &c
}

func cloneRequest(r *models.Request) *models.Request {
	c := *r
	c.Network = models.NetworkReference{
		Connections:     slices.Clone(r.Network.Connections),
		Groups:          slices.Clone(r.Network.Groups),
		CommunityGroups: slices.Clone(r.Network.CommunityGroups),
	}
	if r.AcceptedID != nil {
		id := *r.AcceptedID
		c.AcceptedID = &id
	}
	return &c
}

// Users

func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *Memory) GetUserByNumber(_ context.Context, number string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.userOrder {
		if u := m.users[id]; u.Number == number {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Number == user.Number {
			return ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	m.users[user.ID] = cloneUser(user)
	m.userOrder = append(m.userOrder, user.ID)
	return nil
}

func (m *Memory) UpdateProfile(_ context.Context, id, name, number string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	for otherID, other := range m.users {
		if otherID != id && other.Number == number {
			return ErrDuplicate
		}
	}
	u.Name = name
	u.Number = number
	return nil
}

func (m *Memory) SetConnections(_ context.Context, id string, connections []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Connections = slices.Clone(connections)
	return nil
}

func (m *Memory) SetCommunityGroups(_ context.Context, id string, groups []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.CommunityGroups = slices.Clone(groups)
	return nil
}

// Groups

func (m *Memory) GetGroup(_ context.Context, id string) (*models.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneGroup(g), nil
}

func (m *Memory) filterGroups(keep func(*models.Group) bool) []models.Group {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Group
	for _, id := range m.groupOrder {
		if g, ok := m.groups[id]; ok && keep(g) {
			out = append(out, *cloneGroup(g))
		}
	}
	return out
}

func (m *Memory) GroupsByOwner(_ context.Context, ownerID string) ([]models.Group, error) {
	return m.filterGroups(func(g *models.Group) bool { return g.UserID == ownerID }), nil
}

func (m *Memory) GroupsWithMember(_ context.Context, userID string) ([]models.Group, error) {
	return m.filterGroups(func(g *models.Group) bool { return g.HasMember(userID) }), nil
}

func (m *Memory) CreateGroup(_ context.Context, group *models.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	group.ID = uuid.NewString()
	m.groups[group.ID] = cloneGroup(group)
	m.groupOrder = append(m.groupOrder, group.ID)
	return nil
}

func (m *Memory) UpdateGroup(_ context.Context, id, name string, members []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.groups[id]
	if !ok {
		return ErrNotFound
	}
	g.Name = name
	g.Members = slices.Clone(members)
	return nil
}

func (m *Memory) SetGroupMembers(_ context.Context, id string, members []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.groups[id]
	if !ok {
		return ErrNotFound
	}
	g.Members = slices.Clone(members)
	return nil
}

func (m *Memory) DeleteGroup(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[id]; !ok {
		return ErrNotFound
	}
	delete(m.groups, id)
	m.groupOrder = slices.DeleteFunc(m.groupOrder, func(candidate string) bool { return candidate == id })
	return nil
}

// Community groups

// AddCommunityGroup inserts a community group, generating an ID when empty.
func (m *Memory) AddCommunityGroup(_ context.Context, group *models.CommunityGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if _, ok := m.communityGroups[group.ID]; ok {
		return ErrDuplicate
	}
	c := *group
	m.communityGroups[group.ID] = &c
	m.communityOrder = append(m.communityOrder, group.ID)
	return nil
}

func (m *Memory) GetCommunityGroup(_ context.Context, id string) (*models.CommunityGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.communityGroups[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *g
	return &c, nil
}

func (m *Memory) ListCommunityGroups(context.Context) ([]models.CommunityGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.CommunityGroup, 0, len(m.communityOrder))
	for _, id := range m.communityOrder {
		out = append(out, *m.communityGroups[id])
	}
	return out, nil
}

// Requests

func (m *Memory) GetRequest(_ context.Context, id string) (*models.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRequest(r), nil
}

func (m *Memory) filterRequests(keep func(*models.Request) bool) []models.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Request
	for _, id := range m.requestOrder {
		if r := m.requests[id]; keep(r) {
			out = append(out, *cloneRequest(r))
		}
	}
	return out
}

func (m *Memory) RequestsByAuthor(_ context.Context, userID string) ([]models.Request, error) {
	return m.filterRequests(func(r *models.Request) bool { return r.UserID == userID }), nil
}

func (m *Memory) RequestsWithConnection(_ context.Context, userID string) ([]models.Request, error) {
	return m.filterRequests(func(r *models.Request) bool {
		return slices.Contains(r.Network.Connections, userID)
	}), nil
}

func (m *Memory) RequestsWithGroup(_ context.Context, groupID string) ([]models.Request, error) {
	return m.filterRequests(func(r *models.Request) bool {
		return slices.Contains(r.Network.Groups, groupID)
	}), nil
}

func (m *Memory) CreateRequest(_ context.Context, request *models.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request.ID = uuid.NewString()
	m.requests[request.ID] = cloneRequest(request)
	m.requestOrder = append(m.requestOrder, request.ID)
	return nil
}

func (m *Memory) UpdateRequest(_ context.Context, request *models.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[request.ID]
	if !ok {
		return ErrNotFound
	}
	updated := cloneRequest(request)
	r.Date = updated.Date
	r.Description = updated.Description
	r.Duration = updated.Duration
	r.Location = updated.Location
	r.Network = updated.Network
	return nil
}

func (m *Memory) AcceptRequest(_ context.Context, requestID, accepterID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[requestID]
	if !ok {
		return false, ErrNotFound
	}
	if r.AcceptedID != nil {
		return false, nil
	}
	r.AcceptedID = &accepterID
	return true, nil
}
