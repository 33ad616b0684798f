package mocks

import (
	"context"
	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type MockIndexRepository struct {
	mock.Mock
}

var _ repository.IndexRepository = (*MockIndexRepository)(nil)

func (m *MockIndexRepository) CreateIndex(ctx context.Context, spec repository.IndexSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

func (m *MockIndexRepository) EnsureIndexes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockIndexRepository) ListIndexes(ctx context.Context) ([]model.IndexInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IndexInfo), args.Error(1)
}

func (m *MockIndexRepository) IndexStats(ctx context.Context) ([]model.IndexStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IndexStat), args.Error(1)
}

func (m *MockIndexRepository) Explain(ctx context.Context, filter bson.D) (bson.M, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *MockIndexRepository) DropIndex(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockIndexRepository) DropIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
