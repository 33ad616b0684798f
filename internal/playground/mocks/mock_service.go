package mocks

import (
	"context"
	"mongoplay/internal/playground/model"

	"github.com/stretchr/testify/mock"
)

// MockPlaygroundService is a shared mock implementation of service.PlaygroundService for testing.
type MockPlaygroundService struct {
	mock.Mock
}

func (m *MockPlaygroundService) Sections() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockPlaygroundService) Run(ctx context.Context, names ...string) (*model.RunReport, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RunReport), args.Error(1)
}

func (m *MockPlaygroundService) RunSection(ctx context.Context, name string) (*model.RunReport, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RunReport), args.Error(1)
}
