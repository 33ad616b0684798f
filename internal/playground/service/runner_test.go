package service_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mongoplay/internal/playground/backup"
	"mongoplay/internal/playground/mocks"
	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/repository"
	"mongoplay/internal/playground/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fixture struct {
	users   *mocks.MockUserRepository
	indexes *mocks.MockIndexRepository
	admin   *mocks.MockAdminRepository
	backup  *mocks.MockBackupService
	out     *bytes.Buffer
	runner  *service.Runner
}

func newFixture(opts service.Options) *fixture {
	f := &fixture{
		users:   new(mocks.MockUserRepository),
		indexes: new(mocks.MockIndexRepository),
		admin:   new(mocks.MockAdminRepository),
		backup:  new(mocks.MockBackupService),
		out:     new(bytes.Buffer),
	}
	f.runner = service.NewRunner(f.users, f.indexes, f.admin, f.backup, opts, nil, f.out)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.users.AssertExpectations(t)
	f.indexes.AssertExpectations(t)
	f.admin.AssertExpectations(t)
	f.backup.AssertExpectations(t)
}

func stepStatuses(report *model.RunReport) map[string]string {
	out := make(map[string]string, len(report.Steps))
	for _, s := range report.Steps {
		out[s.Step] = s.Status
	}
	return out
}

func TestSections(t *testing.T) {
	f := newFixture(service.Options{})
	assert.Equal(t, []string{
		"create", "read", "update", "delete", "advanced", "indexes", "users", "backup", "maintenance",
		"replication", "sharding", "monitoring", "bulk", "export", "security", "performance", "recovery", "cleanup",
	}, f.runner.Sections())
}

func TestRunUnknownSection(t *testing.T) {
	f := newFixture(service.Options{})
	_, err := f.runner.Run(context.Background(), "create", "nope")
	assert.ErrorIs(t, err, service.ErrUnknownSection)
}

func TestRunCreateSection(t *testing.T) {
	f := newFixture(service.Options{})
	f.users.On("InsertOne", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "Alice" && u.Age == 28 && u.Profile.Department == "Engineering"
	})).Return("65a000000000000000000001", nil)
	f.users.On("InsertMany", mock.Anything, mock.MatchedBy(func(users []model.User) bool {
		return len(users) == 4 && users[0].Name == "Bob" && users[3].Name == "Eve"
	})).Return([]string{"b", "c", "d", "e"}, nil)

	report, err := f.runner.RunSection(context.Background(), "create")
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Count(model.StepOK))
	assert.Contains(t, f.out.String(), "=== 1. CREATE - INSERT DOCUMENTS ===")
	assert.Contains(t, f.out.String(), "> insert one user\n65a000000000000000000001\n")
	f.assertExpectations(t)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	f := newFixture(service.Options{})
	f.users.On("DeleteByName", mock.Anything, "Charlie").Return(nil, repository.ErrNotFound)
	f.users.On("DeleteByStatus", mock.Anything, model.StatusArchived).Return(&model.WriteResult{Deleted: 1}, nil)

	report, err := f.runner.Run(context.Background(), "delete")
	require.NoError(t, err)
	statuses := stepStatuses(report)
	assert.Equal(t, model.StepFailed, statuses["delete one user"])
	assert.Equal(t, model.StepOK, statuses["delete archived users"])
	assert.Equal(t, model.StepSkipped, statuses["delete all users"])
	assert.Contains(t, f.out.String(), "!! delete one user: record not found")
	assert.Contains(t, f.out.String(), "-- delete all users: skipped")
	f.users.AssertNotCalled(t, "DeleteAll", mock.Anything)
	f.assertExpectations(t)
}

func TestRunDestructiveStepsWhenAllowed(t *testing.T) {
	f := newFixture(service.Options{AllowDestructive: true})
	f.users.On("DeleteByName", mock.Anything, "Charlie").Return(&model.WriteResult{Deleted: 1}, nil)
	f.users.On("DeleteByStatus", mock.Anything, model.StatusArchived).Return(&model.WriteResult{}, nil)
	f.users.On("DeleteAll", mock.Anything).Return(&model.WriteResult{Deleted: 3}, nil)

	report, err := f.runner.Run(context.Background(), "delete")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(model.StepOK))
	f.assertExpectations(t)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	f := newFixture(service.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.runner.Run(ctx, "create")
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Steps)
}

func TestRunReferenceSections(t *testing.T) {
	f := newFixture(service.Options{})
	report, err := f.runner.Run(context.Background(), "security", "performance", "recovery")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Count(model.StepOK))
	out := f.out.String()
	assert.Contains(t, out, "mongod --auth")
	assert.Contains(t, out, "Monitor index usage with $indexStats")
	assert.Contains(t, out, "Replay the oplog if available")
}

func TestRunClusterGate(t *testing.T) {
	t.Run("skipped on a standalone server", func(t *testing.T) {
		f := newFixture(service.Options{})
		report, err := f.runner.Run(context.Background(), "replication", "sharding")
		require.NoError(t, err)
		assert.Equal(t, 2, report.Count(model.StepOK), "setup references still print")
		assert.Equal(t, 5, report.Count(model.StepSkipped))
		f.assertExpectations(t)
	})

	t.Run("runs against a cluster", func(t *testing.T) {
		f := newFixture(service.Options{Cluster: true})
		f.admin.On("ReplicaSetStatus", mock.Anything).Return(bson.M{"set": "rs0"}, nil)
		f.admin.On("ReplicaSetConfig", mock.Anything).Return(bson.M{"_id": "rs0"}, nil)
		f.admin.On("EnableSharding", mock.Anything).Return(nil)
		f.admin.On("ShardCollection", mock.Anything, "users", bson.D{{Key: "email", Value: 1}}).Return(nil)
		f.admin.On("ListShards", mock.Anything).Return(bson.M{"shards": bson.A{}}, nil)

		report, err := f.runner.Run(context.Background(), "replication", "sharding")
		require.NoError(t, err)
		assert.Equal(t, 7, report.Count(model.StepOK))
		f.assertExpectations(t)
	})
}

func TestRunMonitoringSection(t *testing.T) {
	f := newFixture(service.Options{AllowDestructive: true, ProfileSlowMS: 200})
	ops := []bson.M{
		{"opid": int32(7), "microsecs_running": int64(250000)},
		{"opid": int32(9), "secs_running": int64(3)},
		{"desc": "conn12", "microsecs_running": int64(9000000)},
		{"opid": int64(11), "microsecs_running": int64(400000)},
	}
	f.admin.On("CurrentOp", mock.Anything, mock.Anything).Return(ops, nil)
	f.admin.On("KillOp", mock.Anything, int64(9)).Return(nil)
	f.admin.On("ProfilingLevel", mock.Anything).Return(&model.ProfilingStatus{Level: 0, SlowMS: 100}, nil)
	f.admin.On("SetProfilingLevel", mock.Anything, 1, 200).Return(&model.ProfilingStatus{Level: 1, SlowMS: 200}, nil)
	f.admin.On("SetProfilingLevel", mock.Anything, 0, 0).Return(&model.ProfilingStatus{Level: 0, SlowMS: 200}, nil)
	f.admin.On("ProfileEntries", mock.Anything, 50).Return([]bson.M{}, nil)
	f.admin.On("ServerStatus", mock.Anything).Return(&model.ServerStatus{
		Host:       "localhost",
		Version:    "7.0.5",
		Mem:        bson.M{"resident": 120},
		Opcounters: bson.M{"insert": 5},
	}, nil)

	report, err := f.runner.Run(context.Background(), "monitoring")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count(model.StepFailed))
	assert.Contains(t, f.out.String(), "operations slower than 200ms")
	assert.Contains(t, f.out.String(), `"resident": 120`)
	f.admin.AssertNotCalled(t, "KillOp", mock.Anything, int64(7))
	f.admin.AssertNotCalled(t, "KillOp", mock.Anything, int64(11))
	f.assertExpectations(t)
}

func TestRunBulkTransaction(t *testing.T) {
	f := newFixture(service.Options{AllowDestructive: true, Cluster: true})
	f.users.On("BulkArchiveAndAge", mock.Anything).Return(&model.BulkResult{Matched: 2, Modified: 2}, nil)
	f.users.On("WithTransaction", mock.Anything).Return(nil)
	f.users.On("InsertDocument", mock.Anything, bson.D{{Key: "name", Value: "TestUser"}}).Return("id", nil)
	f.users.On("SetFields", mock.Anything, "TestUser", map[string]interface{}{"age": 30}).Return(&model.WriteResult{Matched: 1, Modified: 1}, nil)

	report, err := f.runner.Run(context.Background(), "bulk")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(model.StepOK))
	f.assertExpectations(t)
}

func TestRunTransactionFailureIsRecorded(t *testing.T) {
	f := newFixture(service.Options{AllowDestructive: true, Cluster: true})
	f.users.On("BulkArchiveAndAge", mock.Anything).Return(&model.BulkResult{}, nil)
	f.users.On("WithTransaction", mock.Anything).Return(errors.New("Transaction numbers are only allowed on a replica set member or mongos"))

	report, err := f.runner.Run(context.Background(), "bulk")
	require.NoError(t, err)
	assert.Equal(t, model.StepFailed, stepStatuses(report)["transaction"])
}

func TestRunBackupSection(t *testing.T) {
	t.Run("without a work dir only commands print", func(t *testing.T) {
		f := newFixture(service.Options{})
		f.admin.On("DatabaseName").Return("playground_db")

		report, err := f.runner.Run(context.Background(), "backup")
		require.NoError(t, err)
		assert.Equal(t, 1, report.Count(model.StepOK))
		assert.Contains(t, f.out.String(), "mongodump --db playground_db --archive=playground_db.archive --gzip")
		assert.Contains(t, f.out.String(), "mongorestore --oplogReplay ./backup/incremental_backup")
		f.assertExpectations(t)
	})

	t.Run("dumps into the work dir", func(t *testing.T) {
		dir := t.TempDir()
		f := newFixture(service.Options{WorkDir: dir, AllowDestructive: true})
		f.admin.On("DatabaseName").Return("playground_db")
		summary := &backup.Summary{Collections: map[string]int64{"users": 4}}
		f.backup.On("Dump", mock.Anything, backup.DumpOptions{Out: filepath.Join(dir, "backup", "full_backup")}).Return(summary, nil)
		f.backup.On("Dump", mock.Anything, backup.DumpOptions{Out: filepath.Join(dir, "backup", "users_collection"), Collection: "users"}).Return(summary, nil)
		f.backup.On("Dump", mock.Anything, backup.DumpOptions{Out: filepath.Join(dir, "backup", "compressed_backup"), Gzip: true}).Return(summary, nil)
		f.backup.On("Dump", mock.Anything, mock.MatchedBy(func(o backup.DumpOptions) bool {
			return o.Collection == "users" && o.Query != nil
		})).Return(summary, nil)
		f.backup.On("Restore", mock.Anything, backup.RestoreOptions{Dir: filepath.Join(dir, "backup", "full_backup", "playground_db"), Drop: true}).Return(summary, nil)

		report, err := f.runner.Run(context.Background(), "backup")
		require.NoError(t, err)
		assert.Equal(t, 6, report.Count(model.StepOK))
		f.assertExpectations(t)
	})
}

func TestRunExportSection(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(service.Options{WorkDir: dir, AllowDestructive: true})
	f.admin.On("DatabaseName").Return("playground_db")
	summary := &backup.Summary{Collections: map[string]int64{"users": 4}}
	f.backup.On("Export", mock.Anything, mock.AnythingOfType("backup.ExportOptions"), mock.Anything).Return(summary, nil)
	f.backup.On("Import", mock.Anything, backup.ImportOptions{Collection: "users", File: filepath.Join(dir, "users.json"), Drop: true}, mock.Anything).Return(summary, nil)
	f.backup.On("Import", mock.Anything, mock.MatchedBy(func(o backup.ImportOptions) bool {
		return o.Format == backup.FormatCSV && o.HeaderLine
	}), mock.Anything).Return(summary, nil)

	report, err := f.runner.Run(context.Background(), "export")
	require.NoError(t, err)
	assert.Equal(t, 7, report.Count(model.StepOK))
	for _, name := range []string{"users.json", "active_users.json", "users_pretty.json", "name_email.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	f.backup.AssertNumberOfCalls(t, "Export", 4)
	f.assertExpectations(t)
}

func TestRunIndexesSection(t *testing.T) {
	f := newFixture(service.Options{})
	f.indexes.On("CreateIndex", mock.Anything, mock.AnythingOfType("repository.IndexSpec")).Return("ok", nil)
	f.users.On("TextSearch", mock.Anything, "engineering").Return([]model.User{}, nil)
	f.indexes.On("ListIndexes", mock.Anything).Return([]model.IndexInfo{{Name: "_id_"}}, nil)
	f.indexes.On("IndexStats", mock.Anything).Return([]model.IndexStat{}, nil)
	f.indexes.On("Explain", mock.Anything, bson.D{{Key: "email", Value: "alice@example.com"}}).Return(bson.M{
		"queryPlanner":   bson.M{"winningPlan": bson.M{"stage": "FETCH"}},
		"executionStats": bson.M{"nReturned": int32(1), "totalKeysExamined": int32(1), "totalDocsExamined": int32(1)},
	}, nil)
	f.indexes.On("DropIndex", mock.Anything, repository.IndexEmail).Return(nil)

	report, err := f.runner.Run(context.Background(), "indexes")
	require.NoError(t, err)
	assert.Equal(t, 12, report.Count(model.StepOK))
	assert.Equal(t, model.StepSkipped, stepStatuses(report)["drop all indexes"])
	assert.Contains(t, f.out.String(), `"stage": "FETCH"`)
	f.indexes.AssertNumberOfCalls(t, "CreateIndex", 7)
	f.assertExpectations(t)
}
