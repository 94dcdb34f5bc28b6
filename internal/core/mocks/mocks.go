package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
)

// MockSpreadsheetDecoder is a mock implementation of ports.SpreadsheetDecoder
type MockSpreadsheetDecoder struct {
	mock.Mock
}

func NewMockSpreadsheetDecoder() *MockSpreadsheetDecoder {
	return &MockSpreadsheetDecoder{}
}

func (m *MockSpreadsheetDecoder) Decode(ctx context.Context, r io.Reader, filename string) ([]domain.RawRow, error) {
	args := m.Called(ctx, r, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawRow), args.Error(1)
}

// MockEventBroadcaster is a mock implementation of ports.EventBroadcaster
type MockEventBroadcaster struct {
	mock.Mock
}

func NewMockEventBroadcaster() *MockEventBroadcaster {
	return &MockEventBroadcaster{}
}

func (m *MockEventBroadcaster) Broadcast(event domain.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
