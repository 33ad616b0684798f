package repository

import (
	"testing"
	"time"

	"mongoplay/internal/playground/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestBuildUserFilter(t *testing.T) {
	t.Run("empty query matches everything", func(t *testing.T) {
		assert.Equal(t, bson.D{}, buildUserFilter(model.UserQuery{}))
	})

	t.Run("status and age bounds", func(t *testing.T) {
		minAge, older := 25, 26
		filter := buildUserFilter(model.UserQuery{Status: "active", MinAge: &minAge, OlderThan: &older})
		assert.Equal(t, bson.D{
			{Key: "status", Value: "active"},
			{Key: "age", Value: bson.D{{Key: "$gte", Value: 25}, {Key: "$gt", Value: 26}}},
		}, filter)
	})

	t.Run("email prefix is escaped and case-insensitive", func(t *testing.T) {
		filter := buildUserFilter(model.UserQuery{EmailPrefix: "a.b"})
		assert.Equal(t, bson.D{
			{Key: "email", Value: bson.D{{Key: "$regex", Value: `^a\.b`}, {Key: "$options", Value: "i"}}},
		}, filter)
	})

	t.Run("department and skill", func(t *testing.T) {
		filter := buildUserFilter(model.UserQuery{Department: "QA", Skill: "Go"})
		assert.Equal(t, bson.D{
			{Key: "profile.department", Value: "QA"},
			{Key: "skills", Value: "Go"},
		}, filter)
	})
}

func TestBuildProjection(t *testing.T) {
	assert.Nil(t, buildProjection(nil))
	assert.Equal(t, bson.D{
		{Key: "name", Value: 1},
		{Key: "email", Value: 1},
		{Key: "_id", Value: 0},
	}, buildProjection([]string{"name", "email"}))
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, buildProjection([]string{"_id", "name"}))
}

func TestBuildFindOptions(t *testing.T) {
	opts := buildFindOptions(model.UserQuery{SortField: "age", SortDir: model.Descending, Skip: 1, Limit: 2})
	assert.Equal(t, bson.D{{Key: "age", Value: -1}}, opts.Sort)
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(1), *opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(2), *opts.Limit)

	opts = buildFindOptions(model.UserQuery{SortField: "name", SortDir: 7})
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, opts.Sort)
	assert.Nil(t, opts.Skip)
	assert.Nil(t, opts.Limit)
}

func TestBuildUserUpdate(t *testing.T) {
	age := 29
	update := buildUserUpdate(model.UpdateUserReq{Age: &age, Status: "premium", AddSkills: []string{"C++", "TypeScript"}})
	assert.Equal(t, bson.D{
		{Key: "$set", Value: bson.D{{Key: "age", Value: 29}, {Key: "status", Value: "premium"}}},
		{Key: "$push", Value: bson.D{{Key: "skills", Value: bson.D{{Key: "$each", Value: []string{"C++", "TypeScript"}}}}}},
	}, update)

	update = buildUserUpdate(model.UpdateUserReq{IncAge: 1})
	assert.Equal(t, bson.D{{Key: "$inc", Value: bson.D{{Key: "age", Value: 1}}}}, update)
}

func TestPipelines(t *testing.T) {
	stats := activeAgeStatsPipeline()
	require.Len(t, stats, 2)
	assert.Equal(t, "$match", stats[0][0].Key)
	assert.Equal(t, "$group", stats[1][0].Key)

	top := topActiveByAgePipeline(3)
	require.Len(t, top, 4)
	assert.Equal(t, []string{"$match", "$sort", "$limit", "$project"}, stageNames(top))
	assert.Equal(t, int64(3), top[2][0].Value)

	dept := departmentStatsPipeline()
	assert.Equal(t, []string{"$group", "$sort"}, stageNames(dept))
	group := dept[0][0].Value.(bson.D)
	assert.Equal(t, "$profile.department", group[0].Value)
}

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestPlaygroundIndexes(t *testing.T) {
	specs := PlaygroundIndexes("users", "sessions", time.Hour)
	require.Len(t, specs, 7)

	byName := map[string]IndexSpec{}
	for _, s := range specs {
		byName[s.Name] = s
	}

	assert.True(t, byName[IndexEmail].Unique)
	assert.True(t, byName[IndexDepartment].Sparse)
	assert.Equal(t, "sessions", byName[IndexSessionTTL].Collection)

	ttl := byName[IndexSessionTTL].Model()
	require.NotNil(t, ttl.Options.ExpireAfterSeconds)
	assert.Equal(t, int32(3600), *ttl.Options.ExpireAfterSeconds)

	text := byName[IndexText].Model()
	assert.Equal(t, bson.D{{Key: "skills", Value: "text"}, {Key: "name", Value: "text"}}, text.Keys)
	require.NotNil(t, text.Options.Name)
	assert.Equal(t, IndexText, *text.Options.Name)
}

func TestBulkArchiveAndAgeModels(t *testing.T) {
	models := bulkArchiveAndAgeModels()
	require.Len(t, models, 2)

	archive := models[0].(*mongo.UpdateManyModel)
	assert.Equal(t, bson.D{{Key: "status", Value: "inactive"}}, archive.Filter)

	age := models[1].(*mongo.UpdateManyModel)
	assert.Equal(t, bson.D{{Key: "$inc", Value: bson.D{{Key: "age", Value: 1}}}}, age.Update)
}
