package repository

import (
	"context"
	"mongoplay/internal/playground/model"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAdminRepository runs administrative commands against the playground
// database and, where the server requires it, the admin database.
type MongoAdminRepository struct {
	DB    *mongo.Database
	Admin *mongo.Database
}

func NewMongoAdminRepository(db *mongo.Database) *MongoAdminRepository {
	return &MongoAdminRepository{
		DB:    db,
		Admin: db.Client().Database("admin"),
	}
}

func runCommand(ctx context.Context, db *mongo.Database, cmd bson.D, out interface{}) error {
	res := db.RunCommand(ctx, cmd)
	if out == nil {
		return res.Err()
	}
	return res.Decode(out)
}

func roleDocs(roles []model.RoleRef) bson.A {
	docs := bson.A{}
	for _, r := range roles {
		docs = append(docs, bson.D{{Key: "role", Value: r.Role}, {Key: "db", Value: r.DB}})
	}
	return docs
}

func (r *MongoAdminRepository) DatabaseStats(ctx context.Context) (*model.DatabaseStats, error) {
	var stats model.DatabaseStats
	if err := runCommand(ctx, r.DB, bson.D{{Key: "dbStats", Value: 1}}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *MongoAdminRepository) CollectionStats(ctx context.Context, collection string, indexDetails bool) (*model.CollectionStats, error) {
	cmd := bson.D{{Key: "collStats", Value: collection}}
	if indexDetails {
		cmd = append(cmd, bson.E{Key: "indexDetails", Value: true})
	}

	raw, err := r.DB.RunCommand(ctx, cmd).Raw()
	if err != nil {
		return nil, err
	}

	var stats model.CollectionStats
	if err := bson.Unmarshal(raw, &stats); err != nil {
		return nil, err
	}
	if err := bson.Unmarshal(raw, &stats.Raw); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *MongoAdminRepository) ValidateCollection(ctx context.Context, collection string, full bool) (*model.ValidationResult, error) {
	cmd := bson.D{{Key: "validate", Value: collection}}
	if full {
		cmd = append(cmd, bson.E{Key: "full", Value: true})
	}
	var result model.ValidationResult
	if err := runCommand(ctx, r.DB, cmd, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *MongoAdminRepository) Compact(ctx context.Context, collection string) (bson.M, error) {
	var result bson.M
	if err := runCommand(ctx, r.DB, bson.D{{Key: "compact", Value: collection}}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *MongoAdminRepository) ListUsers(ctx context.Context) ([]model.DatabaseUser, error) {
	var reply struct {
		Users []model.DatabaseUser `bson:"users"`
	}
	if err := runCommand(ctx, r.Admin, bson.D{{Key: "usersInfo", Value: 1}}, &reply); err != nil {
		return nil, err
	}
	if reply.Users == nil {
		reply.Users = []model.DatabaseUser{}
	}
	return reply.Users, nil
}

func (r *MongoAdminRepository) CreateUser(ctx context.Context, user, password string, roles []model.RoleRef) error {
	return runCommand(ctx, r.Admin, bson.D{
		{Key: "createUser", Value: user},
		{Key: "pwd", Value: password},
		{Key: "roles", Value: roleDocs(roles)},
	}, nil)
}

func (r *MongoAdminRepository) ChangeUserPassword(ctx context.Context, user, password string) error {
	return runCommand(ctx, r.Admin, bson.D{
		{Key: "updateUser", Value: user},
		{Key: "pwd", Value: password},
	}, nil)
}

func (r *MongoAdminRepository) GrantRoles(ctx context.Context, user string, roles []model.RoleRef) error {
	return runCommand(ctx, r.Admin, bson.D{
		{Key: "grantRolesToUser", Value: user},
		{Key: "roles", Value: roleDocs(roles)},
	}, nil)
}

func (r *MongoAdminRepository) RevokeRoles(ctx context.Context, user string, roles []model.RoleRef) error {
	return runCommand(ctx, r.Admin, bson.D{
		{Key: "revokeRolesFromUser", Value: user},
		{Key: "roles", Value: roleDocs(roles)},
	}, nil)
}

func (r *MongoAdminRepository) DropUser(ctx context.Context, user string) error {
	return runCommand(ctx, r.Admin, bson.D{{Key: "dropUser", Value: user}}, nil)
}

func (r *MongoAdminRepository) ReplicaSetStatus(ctx context.Context) (bson.M, error) {
	var status bson.M
	if err := runCommand(ctx, r.Admin, bson.D{{Key: "replSetGetStatus", Value: 1}}, &status); err != nil {
		return nil, err
	}
	return status, nil
}

func (r *MongoAdminRepository) ReplicaSetConfig(ctx context.Context) (bson.M, error) {
	var reply struct {
		Config bson.M `bson:"config"`
	}
	if err := runCommand(ctx, r.Admin, bson.D{{Key: "replSetGetConfig", Value: 1}}, &reply); err != nil {
		return nil, err
	}
	return reply.Config, nil
}

func (r *MongoAdminRepository) EnableSharding(ctx context.Context) error {
	return runCommand(ctx, r.Admin, bson.D{{Key: "enableSharding", Value: r.DB.Name()}}, nil)
}

func (r *MongoAdminRepository) ShardCollection(ctx context.Context, collection string, key bson.D) error {
	return runCommand(ctx, r.Admin, bson.D{
		{Key: "shardCollection", Value: r.DB.Name() + "." + collection},
		{Key: "key", Value: key},
	}, nil)
}

func (r *MongoAdminRepository) ListShards(ctx context.Context) (bson.M, error) {
	var shards bson.M
	if err := runCommand(ctx, r.Admin, bson.D{{Key: "listShards", Value: 1}}, &shards); err != nil {
		return nil, err
	}
	return shards, nil
}

// CurrentOp lists in-progress operations; filter fields are passed through as
// currentOp filter fields.
func (r *MongoAdminRepository) CurrentOp(ctx context.Context, filter bson.D) ([]bson.M, error) {
	cmd := append(bson.D{{Key: "currentOp", Value: 1}}, filter...)
	var reply struct {
		InProg []bson.M `bson:"inprog"`
	}
	if err := runCommand(ctx, r.Admin, cmd, &reply); err != nil {
		return nil, err
	}
	if reply.InProg == nil {
		reply.InProg = []bson.M{}
	}
	return reply.InProg, nil
}

func (r *MongoAdminRepository) KillOp(ctx context.Context, opID int64) error {
	return runCommand(ctx, r.Admin, bson.D{{Key: "killOp", Value: 1}, {Key: "op", Value: opID}}, nil)
}

func (r *MongoAdminRepository) ProfilingLevel(ctx context.Context) (*model.ProfilingStatus, error) {
	var status model.ProfilingStatus
	if err := runCommand(ctx, r.DB, bson.D{{Key: "profile", Value: -1}}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SetProfilingLevel returns the settings now in effect.
func (r *MongoAdminRepository) SetProfilingLevel(ctx context.Context, level, slowMS int) (*model.ProfilingStatus, error) {
	cmd := bson.D{{Key: "profile", Value: level}}
	if slowMS > 0 {
		cmd = append(cmd, bson.E{Key: "slowms", Value: slowMS})
	}
	var previous model.ProfilingStatus
	if err := runCommand(ctx, r.DB, cmd, &previous); err != nil {
		return nil, err
	}
	if slowMS <= 0 {
		slowMS = previous.SlowMS
	}
	return &model.ProfilingStatus{Level: level, SlowMS: slowMS}, nil
}

func (r *MongoAdminRepository) ProfileEntries(ctx context.Context, minMillis int) ([]bson.M, error) {
	filter := bson.D{{Key: "millis", Value: bson.D{{Key: "$gt", Value: minMillis}}}}
	cursor, err := r.DB.Collection("system.profile").Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []bson.M{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MongoAdminRepository) ServerStatus(ctx context.Context) (*model.ServerStatus, error) {
	var status model.ServerStatus
	if err := runCommand(ctx, r.Admin, bson.D{{Key: "serverStatus", Value: 1}}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *MongoAdminRepository) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := r.DB.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (r *MongoAdminRepository) DatabaseName() string {
	return r.DB.Name()
}

func (r *MongoAdminRepository) ServerVersion(ctx context.Context) (string, error) {
	var info struct {
		Version string `bson:"version"`
	}
	if err := runCommand(ctx, r.Admin, bson.D{{Key: "buildInfo", Value: 1}}, &info); err != nil {
		return "", err
	}
	return info.Version, nil
}

func (r *MongoAdminRepository) DropCollection(ctx context.Context, collection string) error {
	return r.DB.Collection(collection).Drop(ctx)
}

func (r *MongoAdminRepository) DropDatabase(ctx context.Context) error {
	return r.DB.Drop(ctx)
}
