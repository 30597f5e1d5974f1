package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
	"github.com/Rrens/llm-query-gateway/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, repo *UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "$2a$04$notarealhash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := createTestUser(t, repo, "user1@example.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "user1@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)
	assert.WithinDuration(t, user.CreatedAt, byEmail.CreatedAt, time.Second)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "user1@example.com", byID.Email)
}

func TestUserRepository_Missing(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_EmailUnique(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createTestUser(t, repo, "user1@example.com")

	err := repo.Create(context.Background(), &domain.User{Email: "user1@example.com", PasswordHash: "x"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createTestUser(t, repo, "user1@example.com")
	createTestUser(t, repo, "user2@example.com")

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user1@example.com", users[0].Email)
	assert.Equal(t, "user2@example.com", users[1].Email)
}

func TestQueryResponseRepository_CreateGetList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewQueryResponseRepository(db)

	alice := createTestUser(t, users, "user1@example.com")
	bob := createTestUser(t, users, "user2@example.com")

	first := &domain.QueryResponse{UserID: alice.ID, Query: "What is the meaning of life?", Model: "text-davinci-003", Response: "The meaning of life is 42."}
	second := &domain.QueryResponse{UserID: bob.ID, Query: "What is the capital of France?", Model: "text-davinci-003", Response: "Paris"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.Query, got.Query)
	assert.Equal(t, first.Model, got.Model)
	assert.Equal(t, first.Response, got.Response)
	assert.Equal(t, alice.ID, got.UserID)

	all, err := repo.List(ctx, domain.QueryResponseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	owned, err := repo.List(ctx, domain.QueryResponseFilter{UserID: &bob.ID})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, second.ID, owned[0].ID)

	missing, err := repo.GetByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQueryResponseRepository_CreateFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewQueryResponseRepository(newTestDB(t))

	// user 42 does not exist, the foreign key rejects the insert
	qr := &domain.QueryResponse{UserID: 42, Query: "q", Model: "text-davinci-003", Response: "r"}
	err := repo.Create(ctx, qr)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrStore)
	assert.Contains(t, err.Error(), "Error creating query response")
	assert.Zero(t, qr.ID)

	all, err := repo.List(ctx, domain.QueryResponseFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestQueryResponseRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := createTestUser(t, NewUserRepository(db), "user1@example.com")
	repo := NewQueryResponseRepository(db)

	const n = 8
	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			qr := &domain.QueryResponse{UserID: user.ID, Query: "same", Model: "text-davinci-003", Response: "same"}
			if err := repo.Create(ctx, qr); err == nil {
				ids[i] = qr.ID
			}
		}(i)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, id := range ids {
		require.NotZero(t, id)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}
