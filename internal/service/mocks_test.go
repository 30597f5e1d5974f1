package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/llm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockQueryResponseRepository mocks the QueryResponseRepository interface
type MockQueryResponseRepository struct {
	mock.Mock
}

func (m *MockQueryResponseRepository) Create(ctx context.Context, qr *domain.QueryResponse) error {
	args := m.Called(ctx, qr)
	return args.Error(0)
}

func (m *MockQueryResponseRepository) GetByID(ctx context.Context, id int64) (*domain.QueryResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QueryResponse), args.Error(1)
}

func (m *MockQueryResponseRepository) List(ctx context.Context, filter domain.QueryResponseFilter) ([]domain.QueryResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.QueryResponse), args.Error(1)
}

// MockCompleter mocks the llm.Completer interface
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
