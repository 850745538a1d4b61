package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockModelClient is a mock implementation of the llm.ModelClient interface
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockModelClient) Name() string {
	return "mock"
}

// MockObjectStore is a mock implementation of the report object store
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutJSON(ctx context.Context, key string, body []byte) error {
	args := m.Called(ctx, key, body)
	return args.Error(0)
}

func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}
