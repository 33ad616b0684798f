package repository

import (
	"context"
	"mongoplay/internal/playground/model"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
)

func byName(name string) bson.D {
	return bson.D{{Key: model.FieldName, Value: name}}
}

// sortedSet renders a field map as an ordered $set document.
func sortedSet(fields map[string]interface{}) bson.D {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := make(bson.D, 0, len(keys))
	for _, k := range keys {
		set = append(set, bson.E{Key: k, Value: fields[k]})
	}
	return set
}

func (r *MongoUserRepository) updateOne(ctx context.Context, filter, update bson.D) (*model.WriteResult, error) {
	res, err := r.Users.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return updateResult(res), nil
}

func (r *MongoUserRepository) updateMany(ctx context.Context, filter, update bson.D) (*model.WriteResult, error) {
	res, err := r.Users.UpdateMany(ctx, filter, update)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return updateResult(res), nil
}

func (r *MongoUserRepository) SetFields(ctx context.Context, name string, fields map[string]interface{}) (*model.WriteResult, error) {
	update := bson.D{{Key: "$set", Value: sortedSet(fields)}}
	return requireMatch(r.updateOne(ctx, byName(name), update))
}

// UpdateUser applies $set, $push/$each and $inc from a single request in one call.
func (r *MongoUserRepository) UpdateUser(ctx context.Context, name string, req model.UpdateUserReq) (*model.WriteResult, error) {
	return requireMatch(r.updateOne(ctx, byName(name), buildUserUpdate(req)))
}

func buildUserUpdate(req model.UpdateUserReq) bson.D {
	update := bson.D{}
	if set := req.SetFields(); len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: sortedSet(set)})
	}
	if len(req.AddSkills) > 0 {
		update = append(update, bson.E{Key: "$push", Value: bson.D{
			{Key: model.FieldSkills, Value: bson.D{{Key: "$each", Value: req.AddSkills}}},
		}})
	}
	if req.IncAge != 0 {
		update = append(update, bson.E{Key: "$inc", Value: bson.D{{Key: model.FieldAge, Value: req.IncAge}}})
	}
	return update
}

func (r *MongoUserRepository) SetStatusWhere(ctx context.Context, from, to string) (*model.WriteResult, error) {
	return r.updateMany(ctx,
		bson.D{{Key: model.FieldStatus, Value: from}},
		bson.D{{Key: "$set", Value: bson.D{{Key: model.FieldStatus, Value: to}}}},
	)
}

func (r *MongoUserRepository) Replace(ctx context.Context, name string, user *model.User) (*model.WriteResult, error) {
	res, err := r.Users.ReplaceOne(ctx, byName(name), user)
	if err != nil {
		return nil, mapWriteError(err)
	}
	return requireMatch(updateResult(res), nil)
}

func (r *MongoUserRepository) PushSkill(ctx context.Context, name, skill string) (*model.WriteResult, error) {
	update := bson.D{{Key: "$push", Value: bson.D{{Key: model.FieldSkills, Value: skill}}}}
	return requireMatch(r.updateOne(ctx, byName(name), update))
}

func (r *MongoUserRepository) PushSkills(ctx context.Context, name string, skills []string) (*model.WriteResult, error) {
	update := bson.D{{Key: "$push", Value: bson.D{
		{Key: model.FieldSkills, Value: bson.D{{Key: "$each", Value: skills}}},
	}}}
	return requireMatch(r.updateOne(ctx, byName(name), update))
}

func (r *MongoUserRepository) IncrementAge(ctx context.Context, status string, delta int) (*model.WriteResult, error) {
	return r.updateMany(ctx,
		bson.D{{Key: model.FieldStatus, Value: status}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: model.FieldAge, Value: delta}}}},
	)
}

func (r *MongoUserRepository) RenameField(ctx context.Context, from, to string) (*model.WriteResult, error) {
	return r.updateMany(ctx,
		bson.D{},
		bson.D{{Key: "$rename", Value: bson.D{{Key: from, Value: to}}}},
	)
}
