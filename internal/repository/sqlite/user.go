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

var _ domain.UserRepository = (*UserRepository)(nil)

// UserRepository handles user data access
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills its ID and timestamps
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()

	res, err := r.db.conn.ExecContext(ctx,
		`INSERT INTO users (email, hashed_password, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		user.Email, user.PasswordHash, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Email already registered")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx,
		`SELECT id, email, hashed_password, created_at, updated_at FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by login email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx,
		`SELECT id, email, hashed_password, created_at, updated_at FROM users WHERE email = ?`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.db.conn.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// List retrieves all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, email, hashed_password, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
