package repository

import (
	"context"
	"fmt"

	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/repository/postgres"
	"github.com/Rrens/llm-query-gateway/internal/repository/sqlite"
)

// Store bundles the repositories of one database backend
type Store struct {
	Users     domain.UserRepository
	Responses domain.QueryResponseRepository

	ping  func(ctx context.Context) error
	close func() error
}

// Open connects to the backend named by cfg.Driver. Postgres migrations are
// applied when migrate is set; the sqlite schema is always applied.
func Open(ctx context.Context, cfg config.DatabaseConfig, migrate bool) (*Store, error) {
	switch cfg.Driver {
	case "postgres":
		if migrate {
			if err := postgres.RunMigrations(cfg.DSN()); err != nil {
				return nil, err
			}
		}
		db, err := postgres.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:     postgres.NewUserRepository(db),
			Responses: postgres.NewQueryResponseRepository(db),
			ping:      db.Ping,
			close:     db.Close,
		}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:     sqlite.NewUserRepository(db),
			Responses: sqlite.NewQueryResponseRepository(db),
			ping:      db.Ping,
			close:     db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the underlying pool
func (s *Store) Close() error {
	return s.close()
}
