package database

import (
	"context"
	"fmt"

	"favornet/server/internal/models"
	"favornet/server/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const requestColumns = `id, user_id, date, description, duration, location, creation_date,
	network_connections, network_groups, network_community_groups, accepted_id`

func scanRequest(row pgx.Row) (models.Request, error) {
	var r models.Request
	err := row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.Description, &r.Duration, &r.Location, &r.CreationDate,
		&r.Network.Connections, &r.Network.Groups, &r.Network.CommunityGroups, &r.AcceptedID,
	)
	return r, err
}

func collectRequests(rows pgx.Rows, err error) ([]models.Request, error) {
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Request, error) {
		return scanRequest(row)
	})
}

func (s *Store) GetRequest(ctx context.Context, id string) (*models.Request, error) {
	r, err := scanRequest(s.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

func (s *Store) RequestsByAuthor(ctx context.Context, userID string) ([]models.Request, error) {
	return collectRequests(s.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM requests WHERE user_id = $1 ORDER BY seq
	`, userID))
}

func (s *Store) RequestsWithConnection(ctx context.Context, userID string) ([]models.Request, error) {
	return collectRequests(s.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM requests WHERE network_connections @> ARRAY[$1]::text[] ORDER BY seq
	`, userID))
}

func (s *Store) RequestsWithGroup(ctx context.Context, groupID string) ([]models.Request, error) {
	return collectRequests(s.pool.Query(ctx, `
		SELECT `+requestColumns+` FROM requests WHERE network_groups @> ARRAY[$1]::text[] ORDER BY seq
	`, groupID))
}

func (s *Store) CreateRequest(ctx context.Context, request *models.Request) error {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO requests (id, user_id, date, description, duration, location, creation_date,
			network_connections, network_groups, network_community_groups)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, request.UserID, request.Date, request.Description, request.Duration, request.Location,
		request.CreationDate, ids(request.Network.Connections), ids(request.Network.Groups),
		ids(request.Network.CommunityGroups))
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	request.ID = id
	return nil
}

func (s *Store) UpdateRequest(ctx context.Context, request *models.Request) error {
	return affected(s.pool.Exec(ctx, `
		UPDATE requests
		SET date = $2, description = $3, duration = $4, location = $5,
			network_connections = $6, network_groups = $7, network_community_groups = $8
		WHERE id = $1
	`, request.ID, request.Date, request.Description, request.Duration, request.Location,
		ids(request.Network.Connections), ids(request.Network.Groups), ids(request.Network.CommunityGroups)))
}

// AcceptRequest relies on the WHERE clause so concurrent accepts cannot both win
func (s *Store) AcceptRequest(ctx context.Context, requestID, accepterID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE requests SET accepted_id = $2 WHERE id = $1 AND accepted_id IS NULL
	`, requestID, accepterID)
	if err != nil {
		return false, fmt.Errorf("accept request: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	err = s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, requestID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check request: %w", err)
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}
