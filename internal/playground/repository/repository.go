package repository

import (
	"context"
	"errors"
	"mongoplay/internal/playground/model"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrDuplicate = errors.New("duplicate record")
	ErrNotFound  = errors.New("record not found")
)

// UserRepository issues the document-level calls of the playground against
// the users collection.
type UserRepository interface {
	// Create
	InsertOne(ctx context.Context, user *model.User) (string, error)
	InsertMany(ctx context.Context, users []model.User) ([]string, error)
	// InsertDocument stores doc exactly as given, without the User field set.
	InsertDocument(ctx context.Context, doc bson.D) (string, error)

	// Read
	FindAll(ctx context.Context) ([]model.User, error)
	FindByStatus(ctx context.Context, status string) ([]model.User, error)
	FindOneByName(ctx context.Context, name string) (*model.User, error)
	FindByMinAge(ctx context.Context, minAge int) ([]model.User, error)
	FindByStatusOlderThan(ctx context.Context, status string, age int) ([]model.User, error)
	FindByEmailPrefix(ctx context.Context, prefix string) ([]model.User, error)
	TextSearch(ctx context.Context, text string) ([]model.User, error)
	FindUsers(ctx context.Context, q model.UserQuery) ([]bson.M, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)

	// Update
	SetFields(ctx context.Context, name string, fields map[string]interface{}) (*model.WriteResult, error)
	UpdateUser(ctx context.Context, name string, req model.UpdateUserReq) (*model.WriteResult, error)
	SetStatusWhere(ctx context.Context, from, to string) (*model.WriteResult, error)
	Replace(ctx context.Context, name string, user *model.User) (*model.WriteResult, error)
	PushSkill(ctx context.Context, name, skill string) (*model.WriteResult, error)
	PushSkills(ctx context.Context, name string, skills []string) (*model.WriteResult, error)
	IncrementAge(ctx context.Context, status string, delta int) (*model.WriteResult, error)
	RenameField(ctx context.Context, from, to string) (*model.WriteResult, error)

	// Delete
	DeleteByName(ctx context.Context, name string) (*model.WriteResult, error)
	DeleteByStatus(ctx context.Context, status string) (*model.WriteResult, error)
	DeleteAll(ctx context.Context) (*model.WriteResult, error)

	// Advanced queries and aggregation
	FindSorted(ctx context.Context, field string, dir int, skip, limit int64) ([]model.User, error)
	FindProjected(ctx context.Context, fields []string) ([]bson.M, error)
	ActiveAgeStats(ctx context.Context) (*model.AgeStats, error)
	TopActiveByAge(ctx context.Context, limit int64) ([]model.TopUser, error)
	DepartmentStats(ctx context.Context) ([]model.DepartmentStats, error)

	// Bulk and transactions
	BulkArchiveAndAge(ctx context.Context) (*model.BulkResult, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

// IndexRepository manages the indexes of the users and sessions collections.
type IndexRepository interface {
	CreateIndex(ctx context.Context, spec IndexSpec) (string, error)
	EnsureIndexes(ctx context.Context) ([]string, error)
	ListIndexes(ctx context.Context) ([]model.IndexInfo, error)
	IndexStats(ctx context.Context) ([]model.IndexStat, error)
	Explain(ctx context.Context, filter bson.D) (bson.M, error)
	DropIndex(ctx context.Context, name string) error
	DropIndexes(ctx context.Context) error
}

// AdminRepository wraps the administrative and diagnostic commands.
type AdminRepository interface {
	// Maintenance
	DatabaseStats(ctx context.Context) (*model.DatabaseStats, error)
	CollectionStats(ctx context.Context, collection string, indexDetails bool) (*model.CollectionStats, error)
	ValidateCollection(ctx context.Context, collection string, full bool) (*model.ValidationResult, error)
	Compact(ctx context.Context, collection string) (bson.M, error)

	// Users and roles
	ListUsers(ctx context.Context) ([]model.DatabaseUser, error)
	CreateUser(ctx context.Context, user, password string, roles []model.RoleRef) error
	ChangeUserPassword(ctx context.Context, user, password string) error
	GrantRoles(ctx context.Context, user string, roles []model.RoleRef) error
	RevokeRoles(ctx context.Context, user string, roles []model.RoleRef) error
	DropUser(ctx context.Context, user string) error

	// Replication and sharding
	ReplicaSetStatus(ctx context.Context) (bson.M, error)
	ReplicaSetConfig(ctx context.Context) (bson.M, error)
	EnableSharding(ctx context.Context) error
	ShardCollection(ctx context.Context, collection string, key bson.D) error
	ListShards(ctx context.Context) (bson.M, error)

	// Monitoring
	CurrentOp(ctx context.Context, filter bson.D) ([]bson.M, error)
	KillOp(ctx context.Context, opID int64) error
	ProfilingLevel(ctx context.Context) (*model.ProfilingStatus, error)
	SetProfilingLevel(ctx context.Context, level, slowMS int) (*model.ProfilingStatus, error)
	ProfileEntries(ctx context.Context, minMillis int) ([]bson.M, error)
	ServerStatus(ctx context.Context) (*model.ServerStatus, error)

	// Database level
	CollectionNames(ctx context.Context) ([]string, error)
	DatabaseName() string
	ServerVersion(ctx context.Context) (string, error)
	DropCollection(ctx context.Context, collection string) error
	DropDatabase(ctx context.Context) error
}
