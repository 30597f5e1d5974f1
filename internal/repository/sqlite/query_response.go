package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
	"github.com/Rrens/llm-query-gateway/internal/domain"
)

var _ domain.QueryResponseRepository = (*QueryResponseRepository)(nil)

const selectQueryResponse = `SELECT id, user_id, query, model, response, created_at, updated_at FROM query_responses`

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
	now := time.Now().UTC()

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO query_responses (user_id, query, model, response, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			qr.UserID, qr.Query, qr.Model, qr.Response, now, now,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		qr.ID = id
		return nil
	})
	if err != nil {
		qr.ID = 0
		return apperror.Store("Error creating query response", err)
	}

	qr.CreatedAt = now
	qr.UpdatedAt = now
	return nil
}

// GetByID retrieves a record by ID
func (r *QueryResponseRepository) GetByID(ctx context.Context, id int64) (*domain.QueryResponse, error) {
	var qr domain.QueryResponse
	err := r.db.conn.QueryRowContext(ctx, selectQueryResponse+` WHERE id = ?`, id).Scan(
		&qr.ID,
		&qr.UserID,
		&qr.Query,
		&qr.Model,
		&qr.Response,
		&qr.CreatedAt,
		&qr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Store("Error retrieving query response", err)
	}
	return &qr, nil
}

// List retrieves records, optionally only those owned by filter.UserID
func (r *QueryResponseRepository) List(ctx context.Context, filter domain.QueryResponseFilter) ([]domain.QueryResponse, error) {
	query := selectQueryResponse + ` ORDER BY id`
	args := []any{}
	if filter.UserID != nil {
		query = selectQueryResponse + ` WHERE user_id = ? ORDER BY id`
		args = append(args, *filter.UserID)
	}

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperror.Store("Error retrieving query responses", err)
	}
	defer rows.Close()

	responses := []domain.QueryResponse{}
	for rows.Next() {
		var qr domain.QueryResponse
		if err := rows.Scan(&qr.ID, &qr.UserID, &qr.Query, &qr.Model, &qr.Response, &qr.CreatedAt, &qr.UpdatedAt); err != nil {
			return nil, apperror.Store("Error retrieving query responses", fmt.Errorf("failed to scan query response: %w", err))
		}
		responses = append(responses, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Store("Error retrieving query responses", err)
	}

	return responses, nil
}
