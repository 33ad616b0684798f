package repository

import (
	"context"
	"errors"
	"mongoplay/internal/playground/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func bulkArchiveAndAgeModels() []mongo.WriteModel {
	return []mongo.WriteModel{
		mongo.NewUpdateManyModel().
			SetFilter(bson.D{{Key: model.FieldStatus, Value: model.StatusInactive}}).
			SetUpdate(bson.D{{Key: "$set", Value: bson.D{{Key: model.FieldStatus, Value: model.StatusArchived}}}}),
		mongo.NewUpdateManyModel().
			SetFilter(bson.D{{Key: model.FieldAge, Value: bson.D{{Key: "$lt", Value: 25}}}}).
			SetUpdate(bson.D{{Key: "$inc", Value: bson.D{{Key: model.FieldAge, Value: 1}}}}),
	}
}

// BulkArchiveAndAge archives inactive users and ages everyone under 25 in one
// unordered bulk write.
func (r *MongoUserRepository) BulkArchiveAndAge(ctx context.Context) (*model.BulkResult, error) {
	opts := options.BulkWrite().SetOrdered(false)
	res, err := r.Users.BulkWrite(ctx, bulkArchiveAndAgeModels(), opts)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return &model.BulkResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
		Upserted: res.UpsertedCount,
	}, nil
}

// WithTransaction runs fn inside a multi-document transaction. The server must
// be a replica set member or mongos.
func (r *MongoUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	if r.Client == nil {
		return errors.New("transactions need a connected client")
	}

	session, err := r.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, r)
	})
	return err
}
