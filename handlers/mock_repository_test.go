package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dstl-lab/dsc10-tutor-logger/models"
)

// MockEventRepository is a mock implementation of repositories.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Insert(ctx context.Context, eventType string, userEmail *string, payload models.Payload) (int64, time.Time, error) {
	args := m.Called(ctx, eventType, userEmail, payload)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockEventRepository) ListRecent(ctx context.Context, limit int) ([]*models.Event, error) {
	args := m.Called(ctx, limit)
	if events := args.Get(0); events != nil {
		return events.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) ListByNotebook(ctx context.Context, notebook string) ([]*models.Event, error) {
	args := m.Called(ctx, notebook)
	if events := args.Get(0); events != nil {
		return events.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) ListAll(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if events := args.Get(0); events != nil {
		return events.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEventRepository) NotebookCounts(ctx context.Context) ([]*models.NotebookCount, error) {
	args := m.Called(ctx)
	if counts := args.Get(0); counts != nil {
		return counts.([]*models.NotebookCount), args.Error(1)
	}
	return nil, args.Error(1)
}
