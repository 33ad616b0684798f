package repository

import (
	"context"
	"mongoplay/internal/playground/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildUserFilter turns a UserQuery into a find filter. Conditions are
// combined with an implicit AND in a stable order.
func buildUserFilter(q model.UserQuery) bson.D {
	filter := bson.D{}
	if q.Status != "" {
		filter = append(filter, bson.E{Key: model.FieldStatus, Value: q.Status})
	}

	age := bson.D{}
	if q.MinAge != nil {
		age = append(age, bson.E{Key: "$gte", Value: *q.MinAge})
	}
	if q.OlderThan != nil {
		age = append(age, bson.E{Key: "$gt", Value: *q.OlderThan})
	}
	if len(age) > 0 {
		filter = append(filter, bson.E{Key: model.FieldAge, Value: age})
	}

	if q.EmailPrefix != "" {
		filter = append(filter, bson.E{Key: model.FieldEmail, Value: emailPrefixRegex(q.EmailPrefix)})
	}
	if q.Department != "" {
		filter = append(filter, bson.E{Key: model.FieldDepartment, Value: q.Department})
	}
	if q.Skill != "" {
		filter = append(filter, bson.E{Key: model.FieldSkills, Value: q.Skill})
	}
	return filter
}

// buildProjection includes the given fields and always drops _id unless it is asked for.
func buildProjection(fields []string) bson.D {
	if len(fields) == 0 {
		return nil
	}
	projection := bson.D{}
	withID := false
	for _, f := range fields {
		if f == model.FieldID {
			withID = true
			continue
		}
		projection = append(projection, bson.E{Key: f, Value: 1})
	}
	if !withID {
		projection = append(projection, bson.E{Key: model.FieldID, Value: 0})
	}
	return projection
}

func buildFindOptions(q model.UserQuery) *options.FindOptions {
	opts := options.Find()
	if q.SortField != "" {
		dir := q.SortDir
		if dir != model.Descending {
			dir = model.Ascending
		}
		opts.SetSort(bson.D{{Key: q.SortField, Value: dir}})
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if projection := buildProjection(q.Fields); projection != nil {
		opts.SetProjection(projection)
	}
	return opts
}

// FindUsers returns raw documents so that projected queries keep only the
// requested fields.
func (r *MongoUserRepository) FindUsers(ctx context.Context, q model.UserQuery) ([]bson.M, error) {
	cursor, err := r.Users.Find(ctx, buildUserFilter(q), buildFindOptions(q))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *MongoUserRepository) FindSorted(ctx context.Context, field string, dir int, skip, limit int64) ([]model.User, error) {
	q := model.UserQuery{SortField: field, SortDir: dir, Skip: skip, Limit: limit}
	cursor, err := r.Users.Find(ctx, bson.D{}, buildFindOptions(q))
	if err != nil {
		return nil, err
	}
	return r.decodeUsers(ctx, cursor)
}

func (r *MongoUserRepository) FindProjected(ctx context.Context, fields []string) ([]bson.M, error) {
	return r.FindUsers(ctx, model.UserQuery{Fields: fields})
}

func activeAgeStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: model.FieldStatus, Value: model.StatusActive}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "averageAge", Value: bson.D{{Key: "$avg", Value: "$age"}}},
			{Key: "totalUsers", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func topActiveByAgePipeline(limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: model.FieldStatus, Value: model.StatusActive}}}},
		{{Key: "$sort", Value: bson.D{{Key: model.FieldAge, Value: model.Descending}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.D{
			{Key: model.FieldName, Value: 1},
			{Key: model.FieldAge, Value: 1},
			{Key: model.FieldSkills, Value: 1},
		}}},
	}
}

func departmentStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + model.FieldDepartment},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgAge", Value: bson.D{{Key: "$avg", Value: "$age"}}},
			{Key: "employees", Value: bson.D{{Key: "$push", Value: "$name"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: model.Descending}, {Key: "_id", Value: model.Ascending}}}},
	}
}

// ActiveAgeStats returns zero stats when no active user exists.
func (r *MongoUserRepository) ActiveAgeStats(ctx context.Context) (*model.AgeStats, error) {
	cursor, err := r.Users.Aggregate(ctx, activeAgeStatsPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []model.AgeStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &model.AgeStats{}, nil
	}
	return &results[0], nil
}

func (r *MongoUserRepository) TopActiveByAge(ctx context.Context, limit int64) ([]model.TopUser, error) {
	cursor, err := r.Users.Aggregate(ctx, topActiveByAgePipeline(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []model.TopUser{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoUserRepository) DepartmentStats(ctx context.Context) ([]model.DepartmentStats, error) {
	cursor, err := r.Users.Aggregate(ctx, departmentStatsPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []model.DepartmentStats{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
