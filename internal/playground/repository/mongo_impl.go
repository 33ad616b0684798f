package repository

import (
	"context"
	"errors"
	"fmt"
	"mongoplay/internal/playground/model"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	_ UserRepository  = (*MongoUserRepository)(nil)
	_ IndexRepository = (*MongoUserRepository)(nil)
	_ AdminRepository = (*MongoAdminRepository)(nil)
)

type MongoUserRepository struct {
	Users    *mongo.Collection
	Sessions *mongo.Collection
	Client   *mongo.Client
	// SessionTTL drives the expireAfterSeconds of the sessions index.
	SessionTTL time.Duration
}

func NewMongoUserRepository(db *mongo.Database, usersCollection, sessionsCollection string, sessionTTL time.Duration) *MongoUserRepository {
	return &MongoUserRepository{
		Users:      db.Collection(usersCollection),
		Sessions:   db.Collection(sessionsCollection),
		Client:     db.Client(),
		SessionTTL: sessionTTL,
	}
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func mapFindError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func updateResult(res *mongo.UpdateResult) *model.WriteResult {
	if res == nil {
		return &model.WriteResult{}
	}
	return &model.WriteResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}
}

// requireMatch turns a zero-match write on a single named document into ErrNotFound.
func requireMatch(res *model.WriteResult, err error) (*model.WriteResult, error) {
	if err != nil {
		return nil, err
	}
	if res.Matched == 0 && res.Deleted == 0 {
		return res, ErrNotFound
	}
	return res, nil
}

func insertedID(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

func (r *MongoUserRepository) decodeUsers(ctx context.Context, cursor *mongo.Cursor) ([]model.User, error) {
	defer cursor.Close(ctx)

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
