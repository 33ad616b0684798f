package repository

import (
	"context"
	"errors"
	"fmt"
	"mongoplay/internal/playground/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Names of the indexes the playground creates.
const (
	IndexEmail      = "email_1"
	IndexAge        = "age_1"
	IndexJoinDate   = "joinDate_-1"
	IndexStatusAge  = "status_1_age_1"
	IndexText       = "skills_text_name_text"
	IndexDepartment = "profile.department_1"
	IndexSessionTTL = "createdAt_1"
)

// IndexSpec describes one index of the playground.
type IndexSpec struct {
	Collection string
	Name       string
	Keys       bson.D
	Unique     bool
	Sparse     bool
	TTL        time.Duration
}

func (s IndexSpec) Model() mongo.IndexModel {
	opts := options.Index().SetName(s.Name)
	if s.Unique {
		opts.SetUnique(true)
	}
	if s.Sparse {
		opts.SetSparse(true)
	}
	if s.TTL > 0 {
		opts.SetExpireAfterSeconds(int32(s.TTL / time.Second))
	}
	return mongo.IndexModel{Keys: s.Keys, Options: opts}
}

// PlaygroundIndexes lists every index of the users and sessions collections.
// A single-field ascending and a unique index on the same key cannot coexist,
// so email_1 carries the uniqueness constraint.
func PlaygroundIndexes(usersCollection, sessionsCollection string, sessionTTL time.Duration) []IndexSpec {
	return []IndexSpec{
		{Collection: usersCollection, Name: IndexEmail, Keys: bson.D{{Key: model.FieldEmail, Value: model.Ascending}}, Unique: true},
		{Collection: usersCollection, Name: IndexAge, Keys: bson.D{{Key: model.FieldAge, Value: model.Ascending}}},
		{Collection: usersCollection, Name: IndexJoinDate, Keys: bson.D{{Key: model.FieldJoinDate, Value: model.Descending}}},
		{Collection: usersCollection, Name: IndexStatusAge, Keys: bson.D{
			{Key: model.FieldStatus, Value: model.Ascending},
			{Key: model.FieldAge, Value: model.Ascending},
		}},
		{Collection: usersCollection, Name: IndexText, Keys: bson.D{
			{Key: model.FieldSkills, Value: "text"},
			{Key: model.FieldName, Value: "text"},
		}},
		{Collection: usersCollection, Name: IndexDepartment, Keys: bson.D{{Key: model.FieldDepartment, Value: model.Ascending}}, Sparse: true},
		{Collection: sessionsCollection, Name: IndexSessionTTL, Keys: bson.D{{Key: model.FieldCreatedAt, Value: model.Ascending}}, TTL: sessionTTL},
	}
}

func (r *MongoUserRepository) collectionFor(name string) (*mongo.Collection, error) {
	switch name {
	case r.Users.Name():
		return r.Users, nil
	case r.Sessions.Name():
		return r.Sessions, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", name)
	}
}

func (r *MongoUserRepository) CreateIndex(ctx context.Context, spec IndexSpec) (string, error) {
	coll, err := r.collectionFor(spec.Collection)
	if err != nil {
		return "", err
	}
	return coll.Indexes().CreateOne(ctx, spec.Model())
}

func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) ([]string, error) {
	specs := PlaygroundIndexes(r.Users.Name(), r.Sessions.Name(), r.SessionTTL)

	var users, sessions []mongo.IndexModel
	for _, spec := range specs {
		if spec.Collection == r.Sessions.Name() {
			sessions = append(sessions, spec.Model())
		} else {
			users = append(users, spec.Model())
		}
	}

	names, err := r.Users.Indexes().CreateMany(ctx, users)
	if err != nil {
		return nil, err
	}
	sessionNames, err := r.Sessions.Indexes().CreateMany(ctx, sessions)
	if err != nil {
		return nil, err
	}
	return append(names, sessionNames...), nil
}

func (r *MongoUserRepository) ListIndexes(ctx context.Context) ([]model.IndexInfo, error) {
	cursor, err := r.Users.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	indexes := []model.IndexInfo{}
	if err := cursor.All(ctx, &indexes); err != nil {
		return nil, err
	}
	return indexes, nil
}

func (r *MongoUserRepository) IndexStats(ctx context.Context) ([]model.IndexStat, error) {
	cursor, err := r.Users.Aggregate(ctx, mongo.Pipeline{{{Key: "$indexStats", Value: bson.D{}}}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stats := []model.IndexStat{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Explain reports the executionStats plan of a find on the users collection.
func (r *MongoUserRepository) Explain(ctx context.Context, filter bson.D) (bson.M, error) {
	if filter == nil {
		filter = bson.D{}
	}
	cmd := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: r.Users.Name()},
			{Key: "filter", Value: filter},
		}},
		{Key: "verbosity", Value: "executionStats"},
	}

	var plan bson.M
	if err := r.Users.Database().RunCommand(ctx, cmd).Decode(&plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *MongoUserRepository) DropIndex(ctx context.Context, name string) error {
	_, err := r.Users.Indexes().DropOne(ctx, name)
	if err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == 27 {
			return ErrNotFound
		}
	}
	return err
}

// DropIndexes drops every index except _id.
func (r *MongoUserRepository) DropIndexes(ctx context.Context) error {
	_, err := r.Users.Indexes().DropAll(ctx)
	return err
}
