package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/toninews/logbook-back/models"
)

// MockLogRepository is a testify mock for repositories.LogRepository
type MockLogRepository struct {
	mock.Mock
}

func NewMockLogRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogRepository {
	m := &MockLogRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLogRepository) FindPaginated(ctx context.Context, page, limit int, searchTerm string) (*models.LogPage, error) {
	args := m.Called(ctx, page, limit, searchTerm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LogPage), args.Error(1)
}

func (m *MockLogRepository) Create(ctx context.Context, entry *models.Log) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) SoftDeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLogRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
