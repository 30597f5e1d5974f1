package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
	"github.com/Rrens/llm-query-gateway/internal/domain"
)

var _ domain.QueryResponseRepository = (*QueryResponseRepository)(nil)

// QueryResponseRepository persists prompt/completion records
type QueryResponseRepository struct {
	db *DB
}

// NewQueryResponseRepository creates a new query response repository
func NewQueryResponseRepository(db *DB) *QueryResponseRepository {
	return &QueryResponseRepository{db: db}
}

// Create inserts qr in its own transaction
func (r *QueryResponseRepository) Create(ctx context.Context, qr *domain.QueryResponse) error {
	query := `
		INSERT INTO query_responses (user_id, query, model, response)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, qr.UserID, qr.Query, qr.Model, qr.Response).Scan(
			&qr.ID,
			&qr.CreatedAt,
			&qr.UpdatedAt,
		)
	})
	if err != nil {
		qr.ID = 0
		return apperror.Store("Error creating query response", err)
	}

	return nil
}

// GetByID retrieves a record by ID
func (r *QueryResponseRepository) GetByID(ctx context.Context, id int64) (*domain.QueryResponse, error) {
	query := `
		SELECT id, user_id, query, model, response, created_at, updated_at
		FROM query_responses
		WHERE id = $1
	`

	var qr domain.QueryResponse
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&qr.ID,
		&qr.UserID,
		&qr.Query,
		&qr.Model,
		&qr.Response,
		&qr.CreatedAt,
		&qr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Store("Error retrieving query response", err)
	}

	return &qr, nil
}

// List retrieves records, optionally only those owned by filter.UserID
func (r *QueryResponseRepository) List(ctx context.Context, filter domain.QueryResponseFilter) ([]domain.QueryResponse, error) {
	query := `
		SELECT id, user_id, query, model, response, created_at, updated_at
		FROM query_responses
		WHERE ($1::BIGINT IS NULL OR user_id = $1)
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query, filter.UserID)
	if err != nil {
		return nil, apperror.Store("Error retrieving query responses", err)
	}
	defer rows.Close()

	responses := []domain.QueryResponse{}
	for rows.Next() {
		var qr domain.QueryResponse
		if err := rows.Scan(
			&qr.ID,
			&qr.UserID,
			&qr.Query,
			&qr.Model,
			&qr.Response,
			&qr.CreatedAt,
			&qr.UpdatedAt,
		); err != nil {
			return nil, apperror.Store("Error retrieving query responses", fmt.Errorf("failed to scan query response: %w", err))
		}
		responses = append(responses, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Store("Error retrieving query responses", err)
	}

	return responses, nil
}
