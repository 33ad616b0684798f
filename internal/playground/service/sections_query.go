package service

import (
	"context"
	"fmt"
	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/repository"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *Runner) advancedSection() Section {
	return Section{Name: "advanced", Title: "5. ADVANCED QUERIES & AGGREGATION", Steps: []Step{
		{Name: "sort by age descending", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindSorted(ctx, model.FieldAge, model.Descending, 0, 0)
		}},
		{Name: "skip 1 limit 2", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindSorted(ctx, "", 0, 1, 2)
		}},
		{Name: "two oldest", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindSorted(ctx, model.FieldAge, model.Descending, 0, 2)
		}},
		{Name: "project name and email", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindProjected(ctx, []string{model.FieldName, model.FieldEmail})
		}},
		{Name: "active age statistics", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.ActiveAgeStats(ctx)
		}},
		{Name: "top 3 active by age", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.TopActiveByAge(ctx, 3)
		}},
		{Name: "group by department", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.DepartmentStats(ctx)
		}},
	}}
}

func (r *Runner) indexesSection() Section {
	specs := repository.PlaygroundIndexes(r.Opts.UsersCollection, r.Opts.SessionsCollection, r.Opts.SessionTTL)
	steps := make([]Step, 0, len(specs)+6)
	for _, spec := range specs {
		steps = append(steps, Step{Name: "create index " + spec.Name, Run: func(ctx context.Context) (interface{}, error) {
			return r.Indexes.CreateIndex(ctx, spec)
		}})
	}
	steps = append(steps,
		Step{Name: "text search engineering", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.TextSearch(ctx, "engineering")
		}},
		Step{Name: "list indexes", Run: func(ctx context.Context) (interface{}, error) {
			return r.Indexes.ListIndexes(ctx)
		}},
		Step{Name: "index statistics", Run: func(ctx context.Context) (interface{}, error) {
			return r.Indexes.IndexStats(ctx)
		}},
		Step{Name: "explain email lookup", Run: func(ctx context.Context) (interface{}, error) {
			plan, err := r.Indexes.Explain(ctx, bson.D{{Key: model.FieldEmail, Value: "alice@example.com"}})
			if err != nil {
				return nil, err
			}
			return summarizePlan(plan), nil
		}},
		Step{Name: "drop index " + repository.IndexEmail, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Indexes.DropIndex(ctx, repository.IndexEmail)
		}},
		Step{Name: "drop all indexes", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Indexes.DropIndexes(ctx)
		}},
	)
	return Section{Name: "indexes", Title: "6. INDEXING & PERFORMANCE OPTIMIZATION", Steps: steps}
}

// summarizePlan keeps the executionStats counters that tell whether an index
// served the query.
func summarizePlan(plan bson.M) bson.M {
	stats, ok := plan["executionStats"].(bson.M)
	if !ok {
		return plan
	}
	out := bson.M{}
	for _, key := range []string{"nReturned", "executionTimeMillis", "totalKeysExamined", "totalDocsExamined"} {
		if v, ok := stats[key]; ok {
			out[key] = v
		}
	}
	if planner, ok := plan["queryPlanner"].(bson.M); ok {
		out["winningPlan"] = planner["winningPlan"]
	}
	return out
}

func (r *Runner) bulkSection() Section {
	return Section{Name: "bulk", Title: "13. BULK OPERATIONS & TRANSACTIONS", Steps: []Step{
		{Name: "unordered bulk write", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.BulkArchiveAndAge(ctx)
		}},
		{Name: "transaction", Gate: GateCluster | GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			var updated *model.WriteResult
			err := r.Users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
				if _, err := repo.InsertDocument(ctx, bson.D{{Key: model.FieldName, Value: "TestUser"}}); err != nil {
					return fmt.Errorf("insert: %w", err)
				}
				res, err := repo.SetFields(ctx, "TestUser", map[string]interface{}{model.FieldAge: 30})
				if err != nil {
					return fmt.Errorf("update: %w", err)
				}
				updated = res
				return nil
			})
			return updated, err
		}},
	}}
}
