package api

import (
	"context"
	"sync"

	"github.com/diogo/docchat/internal/models"
)

// MockClient is a mock implementation of BackendInterface for testing
type MockClient struct {
	mu sync.Mutex

	// Mock return values
	ChatVal    *models.ChatResponse
	ChatErr    error
	HealthVal  *models.HealthStatus
	HealthErr  error
	ChatFunc   func(ctx context.Context, message string) (*models.ChatResponse, error)
	HealthFunc func(ctx context.Context) (*models.HealthStatus, error)

	// Call recorders
	ChatCalls   []string
	HealthCalls int
}

// Ensure MockClient implements BackendInterface
var _ BackendInterface = (*MockClient)(nil)

func (m *MockClient) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, message)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	return m.ChatVal, m.ChatErr
}

func (m *MockClient) Health(ctx context.Context) (*models.HealthStatus, error) {
	m.mu.Lock()
	m.HealthCalls++
	fn := m.HealthFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return m.HealthVal, m.HealthErr
}

// ChatCallCount returns how many chat requests were made
func (m *MockClient) ChatCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls)
}
