package database

import (
	"context"
	"fmt"

	"favornet/server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const groupColumns = `id, user_id, name, members`

func collectGroups(rows pgx.Rows, err error) ([]models.Group, error) {
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Group, error) {
		var g models.Group
		err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Members)
		return g, err
	})
}

func (s *Store) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var g models.Group
	err := s.pool.QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id).
		Scan(&g.ID, &g.UserID, &g.Name, &g.Members)
	if err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (s *Store) GroupsByOwner(ctx context.Context, ownerID string) ([]models.Group, error) {
	return collectGroups(s.pool.Query(ctx, `
		SELECT `+groupColumns+` FROM groups WHERE user_id = $1 ORDER BY seq
	`, ownerID))
}

func (s *Store) GroupsWithMember(ctx context.Context, userID string) ([]models.Group, error) {
	return collectGroups(s.pool.Query(ctx, `
		SELECT `+groupColumns+` FROM groups WHERE members @> ARRAY[$1]::text[] ORDER BY seq
	`, userID))
}

func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO groups (id, user_id, name, members) VALUES ($1, $2, $3, $4)
	`, id, group.UserID, group.Name, ids(group.Members))
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	group.ID = id
	return nil
}

func (s *Store) UpdateGroup(ctx context.Context, id, name string, members []string) error {
	return affected(s.pool.Exec(ctx, `UPDATE groups SET name = $2, members = $3 WHERE id = $1`, id, name, ids(members)))
}

func (s *Store) SetGroupMembers(ctx context.Context, id string, members []string) error {
	return affected(s.pool.Exec(ctx, `UPDATE groups SET members = $2 WHERE id = $1`, id, ids(members)))
}

func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	return affected(s.pool.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id))
}
