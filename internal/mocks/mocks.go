package mocks

import (
	"context"

	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of service.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockTranscriptStore is a mock implementation of service.TranscriptStore
type MockTranscriptStore struct {
	mock.Mock
}

func (m *MockTranscriptStore) Put(ctx context.Context, t *service.Transcript) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockEmailService is a mock implementation of service.IEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPasswordResetEmail(email, link string) error {
	args := m.Called(email, link)
	return args.Error(0)
}

var (
	_ service.Generator       = (*MockGenerator)(nil)
	_ service.TranscriptStore = (*MockTranscriptStore)(nil)
	_ service.IEmailService   = (*MockEmailService)(nil)
)
