package service

import (
	"context"
	"mongoplay/internal/playground/model"
)

func (r *Runner) createSection() Section {
	return Section{Name: "create", Title: "1. CREATE - INSERT DOCUMENTS", Steps: []Step{
		{Name: "insert one user", Run: func(ctx context.Context) (interface{}, error) {
			user := model.SeedFirstUser()
			return r.Users.InsertOne(ctx, &user)
		}},
		{Name: "insert many users", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.InsertMany(ctx, model.SeedBatchUsers())
		}},
	}}
}

func (r *Runner) readSection() Section {
	return Section{Name: "read", Title: "2. READ - QUERY DOCUMENTS", Steps: []Step{
		{Name: "find all", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindAll(ctx)
		}},
		{Name: "find active", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindByStatus(ctx, model.StatusActive)
		}},
		{Name: "find one by name", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindOneByName(ctx, "Alice")
		}},
		{Name: "find age >= 25", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindByMinAge(ctx, 25)
		}},
		{Name: "find active and age > 26", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindByStatusOlderThan(ctx, model.StatusActive, 26)
		}},
		{Name: "count active", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.CountByStatus(ctx, model.StatusActive)
		}},
		{Name: "find email starting with a", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindByEmailPrefix(ctx, "a")
		}},
	}}
}

func (r *Runner) updateSection() Section {
	return Section{Name: "update", Title: "3. UPDATE - MODIFY DOCUMENTS", Steps: []Step{
		{Name: "set age and status of one user", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.SetFields(ctx, "Alice", map[string]interface{}{
				model.FieldAge:    29,
				model.FieldStatus: model.StatusPremium,
			})
		}},
		{Name: "archive inactive users", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.SetStatusWhere(ctx, model.StatusInactive, model.StatusArchived)
		}},
		{Name: "replace one user", Run: func(ctx context.Context) (interface{}, error) {
			bob := model.ReplacementBob()
			return r.Users.Replace(ctx, "Bob", &bob)
		}},
		{Name: "push one skill", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.PushSkill(ctx, "Charlie", "C++")
		}},
		{Name: "push several skills", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.PushSkills(ctx, "Diana", []string{"C++", "TypeScript"})
		}},
		{Name: "increment age of active users", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.IncrementAge(ctx, model.StatusActive, 1)
		}},
		{Name: "rename joinDate to dateJoined", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.RenameField(ctx, model.FieldJoinDate, model.FieldDateJoined)
		}},
	}}
}

func (r *Runner) deleteSection() Section {
	return Section{Name: "delete", Title: "4. DELETE - REMOVE DOCUMENTS", Steps: []Step{
		{Name: "delete one user", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.DeleteByName(ctx, "Charlie")
		}},
		{Name: "delete archived users", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.DeleteByStatus(ctx, model.StatusArchived)
		}},
		{Name: "delete all users", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.DeleteAll(ctx)
		}},
	}}
}
