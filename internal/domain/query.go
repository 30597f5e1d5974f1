package domain

import (
	"context"
	"time"
)

// MaxQueryLength is the longest prompt accepted, in characters
const MaxQueryLength = 500

// QueryRequest is the body of POST /query
type QueryRequest struct {
	Query  string `json:"query"`
	Model  string `json:"model" validate:"required"`
	UserID *int64 `json:"user_id,omitempty" validate:"omitempty,gt=0"`
}

// QueryResponse is a persisted prompt/completion pair
type QueryResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Query     string    `json:"query"`
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QueryResult is the body returned by POST /query
type QueryResult struct {
	QueryID  int64  `json:"query_id"`
	Response string `json:"response"`
}

// QueryResponseFilter narrows List. A nil UserID returns every record.
type QueryResponseFilter struct {
	UserID *int64
}

// QueryResponseRepository is the response store. Create runs in a single
// transaction and fills ID and timestamps; GetByID returns (nil, nil) when
// absent.
type QueryResponseRepository interface {
	Create(ctx context.Context, qr *QueryResponse) error
	GetByID(ctx context.Context, id int64) (*QueryResponse, error)
	List(ctx context.Context, filter QueryResponseFilter) ([]QueryResponse, error)
}
