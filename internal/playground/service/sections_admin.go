package service

import (
	"context"
	"fmt"
	"mongoplay/internal/playground/model"

	"go.mongodb.org/mongo-driver/bson"
)

// Accounts and roles used by the users section.
const (
	appUser      = "appUser"
	readOnlyUser = "readOnlyUser"
)

func (r *Runner) usersSection() Section {
	return Section{Name: "users", Title: "7. USER & AUTHENTICATION MANAGEMENT", Steps: []Step{
		{Name: "create application user", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.CreateUser(ctx, appUser, "securePassword123", []model.RoleRef{
				{Role: "readWrite", DB: r.Admin.DatabaseName()},
				{Role: "dbAdmin", DB: r.Admin.DatabaseName()},
			})
		}},
		{Name: "create read-only user", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.CreateUser(ctx, readOnlyUser, "readPassword123", []model.RoleRef{{Role: "read", DB: r.Admin.DatabaseName()}})
		}},
		{Name: "list users", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ListUsers(ctx)
		}},
		{Name: "change password", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.ChangeUserPassword(ctx, appUser, "newPassword456")
		}},
		{Name: "grant backup role", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.GrantRoles(ctx, appUser, []model.RoleRef{{Role: "backup", DB: "admin"}})
		}},
		{Name: "revoke dbAdmin role", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.RevokeRoles(ctx, appUser, []model.RoleRef{{Role: "dbAdmin", DB: r.Admin.DatabaseName()}})
		}},
		{Name: "drop read-only user", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.DropUser(ctx, readOnlyUser)
		}},
	}}
}

func (r *Runner) maintenanceSection() Section {
	users := r.Opts.UsersCollection
	return Section{Name: "maintenance", Title: "9. DATABASE MAINTENANCE & MONITORING", Steps: []Step{
		{Name: "database statistics", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.DatabaseStats(ctx)
		}},
		{Name: "collection statistics", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.CollectionStats(ctx, users, false)
		}},
		{Name: "storage size", Run: func(ctx context.Context) (interface{}, error) {
			stats, err := r.Admin.CollectionStats(ctx, users, false)
			if err != nil {
				return nil, err
			}
			return stats.StorageSize, nil
		}},
		{Name: "count documents", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.Count(ctx)
		}},
		{Name: "database data size", Run: func(ctx context.Context) (interface{}, error) {
			stats, err := r.Admin.DatabaseStats(ctx)
			if err != nil {
				return nil, err
			}
			return stats.DataSize, nil
		}},
		{Name: "collection statistics with index details", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.CollectionStats(ctx, users, true)
		}},
		{Name: "compact collection", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.Compact(ctx, users)
		}},
		{Name: "validate collection", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ValidateCollection(ctx, users, false)
		}},
		{Name: "validate collection fully", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ValidateCollection(ctx, users, true)
		}},
	}}
}

func (r *Runner) replicationSection() Section {
	return Section{Name: "replication", Title: "10. REPLICATION BASICS", Steps: []Step{
		{Name: "setup reference", Run: func(ctx context.Context) (interface{}, error) {
			return replicationSetup, nil
		}},
		{Name: "replica set status", Gate: GateCluster, Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ReplicaSetStatus(ctx)
		}},
		{Name: "replica set configuration", Gate: GateCluster, Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ReplicaSetConfig(ctx)
		}},
	}}
}

func (r *Runner) shardingSection() Section {
	users := r.Opts.UsersCollection
	return Section{Name: "sharding", Title: "11. SHARDING BASICS", Steps: []Step{
		{Name: "setup reference", Run: func(ctx context.Context) (interface{}, error) {
			return shardingSetup, nil
		}},
		{Name: "enable sharding", Gate: GateCluster, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.EnableSharding(ctx)
		}},
		{Name: "shard users by email", Gate: GateCluster, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.ShardCollection(ctx, users, bson.D{{Key: model.FieldEmail, Value: model.Ascending}})
		}},
		{Name: "list shards", Gate: GateCluster, Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ListShards(ctx)
		}},
	}}
}

// slowOpFilter selects operations running longer than the profiling threshold.
func slowOpFilter(ms int) bson.D {
	return bson.D{{Key: "millis", Value: bson.D{{Key: "$gt", Value: ms}}}}
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func opID(op bson.M) (int64, bool) {
	return asInt64(op["opid"])
}

// runningMicros reads how long op has been running, preferring the finest
// field currentOp reported.
func runningMicros(op bson.M) int64 {
	if us, ok := asInt64(op["microsecs_running"]); ok {
		return us
	}
	if s, ok := asInt64(op["secs_running"]); ok {
		return s * 1_000_000
	}
	if ms, ok := asInt64(op["millis"]); ok {
		return ms * 1_000
	}
	return 0
}

// slowestOp returns the opid of the longest running killable operation.
func slowestOp(ops []bson.M) (int64, bool) {
	var (
		id    int64
		found bool
		best  int64 = -1
	)
	for _, op := range ops {
		opid, ok := opID(op)
		if !ok {
			continue
		}
		if us := runningMicros(op); us > best {
			id, best, found = opid, us, true
		}
	}
	return id, found
}

func (r *Runner) monitoringSection() Section {
	slowMS := r.Opts.ProfileSlowMS
	return Section{Name: "monitoring", Title: "12. MONITORING & DIAGNOSTICS", Steps: []Step{
		{Name: "current operations", Run: func(ctx context.Context) (interface{}, error) {
			ops, err := r.Admin.CurrentOp(ctx, nil)
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("%d operations in progress", len(ops)), nil
		}},
		{Name: fmt.Sprintf("operations slower than %dms", slowMS), Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.CurrentOp(ctx, slowOpFilter(slowMS))
		}},
		{Name: "kill slowest operation", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			ops, err := r.Admin.CurrentOp(ctx, slowOpFilter(slowMS))
			if err != nil {
				return nil, err
			}
			if id, ok := slowestOp(ops); ok {
				return id, r.Admin.KillOp(ctx, id)
			}
			return nil, fmt.Errorf("%w: no slow operation to kill", ErrSkipped)
		}},
		{Name: "profiling level", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ProfilingLevel(ctx)
		}},
		{Name: "enable profiling", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.SetProfilingLevel(ctx, 1, slowMS)
		}},
		{Name: "profiled queries slower than 50ms", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ProfileEntries(ctx, 50)
		}},
		{Name: "disable profiling", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.SetProfilingLevel(ctx, 0, 0)
		}},
		{Name: "server status", Run: func(ctx context.Context) (interface{}, error) {
			status, err := r.Admin.ServerStatus(ctx)
			if err != nil {
				return nil, err
			}
			return bson.M{"host": status.Host, "version": status.Version, "uptime": status.Uptime}, nil
		}},
		{Name: "memory", Run: func(ctx context.Context) (interface{}, error) {
			status, err := r.Admin.ServerStatus(ctx)
			if err != nil {
				return nil, err
			}
			return status.Mem, nil
		}},
		{Name: "operation counters", Run: func(ctx context.Context) (interface{}, error) {
			status, err := r.Admin.ServerStatus(ctx)
			if err != nil {
				return nil, err
			}
			return status.Opcounters, nil
		}},
	}}
}

func (r *Runner) cleanupSection() Section {
	users := r.Opts.UsersCollection
	return Section{Name: "cleanup", Title: "18. CLEANUP & FINAL STATE", Steps: []Step{
		{Name: "collection names", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.CollectionNames(ctx)
		}},
		{Name: "all users", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.FindAll(ctx)
		}},
		{Name: "remaining documents", Run: func(ctx context.Context) (interface{}, error) {
			return r.Users.Count(ctx)
		}},
		{Name: "database name", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.DatabaseName(), nil
		}},
		{Name: "server version", Run: func(ctx context.Context) (interface{}, error) {
			return r.Admin.ServerVersion(ctx)
		}},
		{Name: "drop users collection", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.DropCollection(ctx, users)
		}},
		{Name: "drop database", Gate: GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return nil, r.Admin.DropDatabase(ctx)
		}},
	}}
}
