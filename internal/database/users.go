package database

import (
	"context"
	"fmt"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, number, connections, community_groups`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Number, &u.Connections, &u.CommunityGroups); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) GetUserByNumber(ctx context.Context, number string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE number = $1`, number))
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, number, connections, community_groups)
		VALUES ($1, $2, $3, $4, $5)
	`, id, user.Name, user.Number, ids(user.Connections), ids(user.CommunityGroups))
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, id, name, number string) error {
	err := affected(s.pool.Exec(ctx, `UPDATE users SET name = $2, number = $3 WHERE id = $1`, id, name, number))
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (s *Store) SetConnections(ctx context.Context, id string, connections []string) error {
	return affected(s.pool.Exec(ctx, `UPDATE users SET connections = $2 WHERE id = $1`, id, ids(connections)))
}

func (s *Store) SetCommunityGroups(ctx context.Context, id string, groups []string) error {
	return affected(s.pool.Exec(ctx, `UPDATE users SET community_groups = $2 WHERE id = $1`, id, ids(groups)))
}

func (s *Store) GetCommunityGroup(ctx context.Context, id string) (*models.CommunityGroup, error) {
	var g models.CommunityGroup
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, lat, lng FROM community_groups WHERE id = $1
	`, id).Scan(&g.ID, &g.Name, &g.Location.Lat, &g.Location.Lng)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (s *Store) ListCommunityGroups(ctx context.Context) ([]models.CommunityGroup, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, lat, lng FROM community_groups ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query community groups: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CommunityGroup, error) {
		var g models.CommunityGroup
		err := row.Scan(&g.ID, &g.Name, &g.Location.Lat, &g.Location.Lng)
		return g, err
	})
}

// AddCommunityGroup inserts a community group, generating an ID when empty.
// Community groups are provisioned by operators; the API only reads them.
func (s *Store) AddCommunityGroup(ctx context.Context, group *models.CommunityGroup) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO community_groups (id, name, lat, lng) VALUES ($1, $2, $3, $4)
	`, group.ID, group.Name, group.Location.Lat, group.Location.Lng)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}
