package mocks

import (
	"context"
	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockAdminRepository is a shared mock implementation of repository.AdminRepository for testing.
type MockAdminRepository struct {
	mock.Mock
}

var _ repository.AdminRepository = (*MockAdminRepository)(nil)

func (m *MockAdminRepository) doc(args mock.Arguments) (bson.M, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *MockAdminRepository) DatabaseStats(ctx context.Context) (*model.DatabaseStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DatabaseStats), args.Error(1)
}

func (m *MockAdminRepository) CollectionStats(ctx context.Context, collection string, indexDetails bool) (*model.CollectionStats, error) {
	args := m.Called(ctx, collection, indexDetails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CollectionStats), args.Error(1)
}

func (m *MockAdminRepository) ValidateCollection(ctx context.Context, collection string, full bool) (*model.ValidationResult, error) {
	args := m.Called(ctx, collection, full)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidationResult), args.Error(1)
}

func (m *MockAdminRepository) Compact(ctx context.Context, collection string) (bson.M, error) {
	return m.doc(m.Called(ctx, collection))
}

func (m *MockAdminRepository) ListUsers(ctx context.Context) ([]model.DatabaseUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DatabaseUser), args.Error(1)
}

func (m *MockAdminRepository) CreateUser(ctx context.Context, user, password string, roles []model.RoleRef) error {
	args := m.Called(ctx, user, password, roles)
	return args.Error(0)
}

func (m *MockAdminRepository) ChangeUserPassword(ctx context.Context, user, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockAdminRepository) GrantRoles(ctx context.Context, user string, roles []model.RoleRef) error {
	args := m.Called(ctx, user, roles)
	return args.Error(0)
}

func (m *MockAdminRepository) RevokeRoles(ctx context.Context, user string, roles []model.RoleRef) error {
	args := m.Called(ctx, user, roles)
	return args.Error(0)
}

func (m *MockAdminRepository) DropUser(ctx context.Context, user string) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAdminRepository) ReplicaSetStatus(ctx context.Context) (bson.M, error) {
	return m.doc(m.Called(ctx))
}

func (m *MockAdminRepository) ReplicaSetConfig(ctx context.Context) (bson.M, error) {
	return m.doc(m.Called(ctx))
}

func (m *MockAdminRepository) EnableSharding(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAdminRepository) ShardCollection(ctx context.Context, collection string, key bson.D) error {
	args := m.Called(ctx, collection, key)
	return args.Error(0)
}

func (m *MockAdminRepository) ListShards(ctx context.Context) (bson.M, error) {
	return m.doc(m.Called(ctx))
}

func (m *MockAdminRepository) CurrentOp(ctx context.Context, filter bson.D) ([]bson.M, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockAdminRepository) KillOp(ctx context.Context, opID int64) error {
	args := m.Called(ctx, opID)
	return args.Error(0)
}

func (m *MockAdminRepository) ProfilingLevel(ctx context.Context) (*model.ProfilingStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfilingStatus), args.Error(1)
}

func (m *MockAdminRepository) SetProfilingLevel(ctx context.Context, level, slowMS int) (*model.ProfilingStatus, error) {
	args := m.Called(ctx, level, slowMS)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfilingStatus), args.Error(1)
}

func (m *MockAdminRepository) ProfileEntries(ctx context.Context, minMillis int) ([]bson.M, error) {
	args := m.Called(ctx, minMillis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockAdminRepository) ServerStatus(ctx context.Context) (*model.ServerStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServerStatus), args.Error(1)
}

func (m *MockAdminRepository) CollectionNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAdminRepository) DatabaseName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAdminRepository) ServerVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAdminRepository) DropCollection(ctx context.Context, collection string) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockAdminRepository) DropDatabase(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
