package repository

import (
	"context"
	"mongoplay/internal/playground/model"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoUserRepository) InsertOne(ctx context.Context, user *model.User) (string, error) {
	res, err := r.Users.InsertOne(ctx, user)
	if err != nil {
		return "", mapWriteError(err)
	}
	return insertedID(res.InsertedID), nil
}

func (r *MongoUserRepository) InsertDocument(ctx context.Context, doc bson.D) (string, error) {
	res, err := r.Users.InsertOne(ctx, doc)
	if err != nil {
		return "", mapWriteError(err)
	}
	return insertedID(res.InsertedID), nil
}

func (r *MongoUserRepository) InsertMany(ctx context.Context, users []model.User) ([]string, error) {
	if len(users) == 0 {
		return []string{}, nil
	}

	docs := make([]interface{}, 0, len(users))
	for i := range users {
		docs = append(docs, users[i])
	}

	res, err := r.Users.InsertMany(ctx, docs)
	if err != nil {
		return nil, mapWriteError(err)
	}

	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, insertedID(id))
	}
	return ids, nil
}

func (r *MongoUserRepository) find(ctx context.Context, filter interface{}) ([]model.User, error) {
	cursor, err := r.Users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return r.decodeUsers(ctx, cursor)
}

func (r *MongoUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoUserRepository) FindByStatus(ctx context.Context, status string) ([]model.User, error) {
	return r.find(ctx, bson.D{{Key: model.FieldStatus, Value: status}})
}

func (r *MongoUserRepository) FindOneByName(ctx context.Context, name string) (*model.User, error) {
	var user model.User
	err := r.Users.FindOne(ctx, bson.D{{Key: model.FieldName, Value: name}}).Decode(&user)
	if err != nil {
		return nil, mapFindError(err)
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByMinAge(ctx context.Context, minAge int) ([]model.User, error) {
	return r.find(ctx, bson.D{{Key: model.FieldAge, Value: bson.D{{Key: "$gte", Value: minAge}}}})
}

func (r *MongoUserRepository) FindByStatusOlderThan(ctx context.Context, status string, age int) ([]model.User, error) {
	return r.find(ctx, bson.D{
		{Key: model.FieldStatus, Value: status},
		{Key: model.FieldAge, Value: bson.D{{Key: "$gt", Value: age}}},
	})
}

// FindByEmailPrefix matches case-insensitively; the prefix is taken literally.
func (r *MongoUserRepository) FindByEmailPrefix(ctx context.Context, prefix string) ([]model.User, error) {
	return r.find(ctx, bson.D{{Key: model.FieldEmail, Value: emailPrefixRegex(prefix)}})
}

func emailPrefixRegex(prefix string) bson.D {
	return bson.D{
		{Key: "$regex", Value: "^" + regexp.QuoteMeta(prefix)},
		{Key: "$options", Value: "i"},
	}
}

// TextSearch requires the text index on skills and name.
func (r *MongoUserRepository) TextSearch(ctx context.Context, text string) ([]model.User, error) {
	return r.find(ctx, bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: text}}}})
}

func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	return r.Users.CountDocuments(ctx, bson.D{})
}

func (r *MongoUserRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.Users.CountDocuments(ctx, bson.D{{Key: model.FieldStatus, Value: status}})
}

func deleteResult(res *mongo.DeleteResult) *model.WriteResult {
	if res == nil {
		return &model.WriteResult{}
	}
	return &model.WriteResult{Deleted: res.DeletedCount}
}

func (r *MongoUserRepository) DeleteByName(ctx context.Context, name string) (*model.WriteResult, error) {
	res, err := r.Users.DeleteOne(ctx, bson.D{{Key: model.FieldName, Value: name}})
	if err != nil {
		return nil, err
	}
	return requireMatch(deleteResult(res), nil)
}

func (r *MongoUserRepository) DeleteByStatus(ctx context.Context, status string) (*model.WriteResult, error) {
	res, err := r.Users.DeleteMany(ctx, bson.D{{Key: model.FieldStatus, Value: status}})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}

func (r *MongoUserRepository) DeleteAll(ctx context.Context) (*model.WriteResult, error) {
	res, err := r.Users.DeleteMany(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	return deleteResult(res), nil
}
