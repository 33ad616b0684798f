package mocks

import (
	"context"
	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

// MockUserRepository is a shared mock implementation of repository.UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) users(args mock.Arguments) ([]model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) docs(args mock.Arguments) ([]bson.M, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockUserRepository) write(args mock.Arguments) (*model.WriteResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WriteResult), args.Error(1)
}

func (m *MockUserRepository) InsertOne(ctx context.Context, user *model.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) InsertDocument(ctx context.Context, doc bson.D) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) InsertMany(ctx context.Context, users []model.User) ([]string, error) {
	args := m.Called(ctx, users)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return m.users(m.Called(ctx))
}

func (m *MockUserRepository) FindByStatus(ctx context.Context, status string) ([]model.User, error) {
	return m.users(m.Called(ctx, status))
}

func (m *MockUserRepository) FindOneByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByMinAge(ctx context.Context, minAge int) ([]model.User, error) {
	return m.users(m.Called(ctx, minAge))
}

func (m *MockUserRepository) FindByStatusOlderThan(ctx context.Context, status string, age int) ([]model.User, error) {
	return m.users(m.Called(ctx, status, age))
}

func (m *MockUserRepository) FindByEmailPrefix(ctx context.Context, prefix string) ([]model.User, error) {
	return m.users(m.Called(ctx, prefix))
}

func (m *MockUserRepository) TextSearch(ctx context.Context, text string) ([]model.User, error) {
	return m.users(m.Called(ctx, text))
}

func (m *MockUserRepository) FindUsers(ctx context.Context, q model.UserQuery) ([]bson.M, error) {
	return m.docs(m.Called(ctx, q))
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SetFields(ctx context.Context, name string, fields map[string]interface{}) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, name, fields))
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, name string, req model.UpdateUserReq) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, name, req))
}

func (m *MockUserRepository) SetStatusWhere(ctx context.Context, from, to string) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, from, to))
}

func (m *MockUserRepository) Replace(ctx context.Context, name string, user *model.User) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, name, user))
}

func (m *MockUserRepository) PushSkill(ctx context.Context, name, skill string) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, name, skill))
}

func (m *MockUserRepository) PushSkills(ctx context.Context, name string, skills []string) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, name, skills))
}

func (m *MockUserRepository) IncrementAge(ctx context.Context, status string, delta int) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, status, delta))
}

func (m *MockUserRepository) RenameField(ctx context.Context, from, to string) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, from, to))
}

func (m *MockUserRepository) DeleteByName(ctx context.Context, name string) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, name))
}

func (m *MockUserRepository) DeleteByStatus(ctx context.Context, status string) (*model.WriteResult, error) {
	return m.write(m.Called(ctx, status))
}

func (m *MockUserRepository) DeleteAll(ctx context.Context) (*model.WriteResult, error) {
	return m.write(m.Called(ctx))
}

func (m *MockUserRepository) FindSorted(ctx context.Context, field string, dir int, skip, limit int64) ([]model.User, error) {
	return m.users(m.Called(ctx, field, dir, skip, limit))
}

func (m *MockUserRepository) FindProjected(ctx context.Context, fields []string) ([]bson.M, error) {
	return m.docs(m.Called(ctx, fields))
}

func (m *MockUserRepository) ActiveAgeStats(ctx context.Context) (*model.AgeStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AgeStats), args.Error(1)
}

func (m *MockUserRepository) TopActiveByAge(ctx context.Context, limit int64) ([]model.TopUser, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TopUser), args.Error(1)
}

func (m *MockUserRepository) DepartmentStats(ctx context.Context) ([]model.DepartmentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DepartmentStats), args.Error(1)
}

func (m *MockUserRepository) BulkArchiveAndAge(ctx context.Context) (*model.BulkResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BulkResult), args.Error(1)
}

// WithTransaction runs fn against the mock itself unless an error is configured.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}
