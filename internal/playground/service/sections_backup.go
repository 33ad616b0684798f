package service

import (
	"context"
	"io"
	"mongoplay/internal/playground/backup"
	"mongoplay/internal/playground/model"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// BackupService is the native dump, restore, export and import surface used
// by the backup and export sections.
type BackupService interface {
	Dump(ctx context.Context, opts backup.DumpOptions) (*backup.Summary, error)
	Restore(ctx context.Context, opts backup.RestoreOptions) (*backup.Summary, error)
	Export(ctx context.Context, opts backup.ExportOptions, w io.Writer) (*backup.Summary, error)
	Import(ctx context.Context, opts backup.ImportOptions, r io.Reader) (*backup.Summary, error)
}

var _ BackupService = (*backup.Service)(nil)

func activeFilter() bson.D {
	return bson.D{{Key: model.FieldStatus, Value: model.StatusActive}}
}

func (r *Runner) workPath(elem ...string) string {
	return filepath.Join(append([]string{r.Opts.WorkDir}, elem...)...)
}

func renderCommands(cmds ...[]string) string {
	lines := make([]string, 0, len(cmds))
	for _, c := range cmds {
		lines = append(lines, backup.FormatCommand(c))
	}
	return strings.Join(lines, "\n")
}

// BackupCommands renders the mongodump and mongorestore invocations that
// correspond to the backup section.
func BackupCommands(db, users string) string {
	auth := &backup.Auth{Username: appUser, Password: "securePassword123", AuthDB: "admin"}
	return renderCommands(
		backup.DumpCommand(db, backup.DumpOptions{Out: "./backup/full_backup"}),
		backup.DumpCommand(db, backup.DumpOptions{Out: "./backup/authenticated_backup", Auth: auth}),
		backup.DumpCommand(db, backup.DumpOptions{Collection: users, Out: "./backup/users_collection"}),
		backup.DumpCommand(db, backup.DumpOptions{Archive: db + ".archive", Gzip: true}),
		backup.DumpCommand(db, backup.DumpOptions{Collection: users, Query: activeFilter(), Out: "./backup/active_users"}),
		backup.DumpCommand("", backup.DumpOptions{Oplog: true, Out: "./backup/incremental_backup"}),
		backup.RestoreCommand(db, backup.RestoreOptions{Dir: "./backup/full_backup/" + db}),
		backup.RestoreCommand(db, backup.RestoreOptions{Dir: "./backup/authenticated_backup/" + db, Auth: auth}),
		backup.RestoreCommand(db, backup.RestoreOptions{Collection: users, Dir: "./backup/users_collection/" + db + "/" + users + ".bson"}),
		backup.RestoreCommand("", backup.RestoreOptions{Archive: db + ".archive", Gzip: true}),
		backup.RestoreCommand(db, backup.RestoreOptions{Drop: true, Dir: "./backup/full_backup/" + db}),
		backup.RestoreCommand("", backup.RestoreOptions{OplogReplay: true, Dir: "./backup/incremental_backup"}),
	)
}

// TransferCommands renders the mongoexport and mongoimport invocations that
// correspond to the export section.
func TransferCommands(db, users string) string {
	return renderCommands(
		backup.ExportCommand(db, backup.ExportOptions{Collection: users, Out: "users.json"}),
		backup.ExportCommand(db, backup.ExportOptions{Collection: users, Query: activeFilter(), Out: "active_users.json"}),
		backup.ExportCommand(db, backup.ExportOptions{Collection: users, Pretty: true, Out: "users_pretty.json"}),
		backup.ExportCommand(db, backup.ExportOptions{Collection: users, Fields: []string{model.FieldName, model.FieldEmail}, Out: "name_email.csv", Format: backup.FormatCSV}),
		backup.ImportCommand(db, backup.ImportOptions{Collection: users, File: "users.json"}),
		backup.ImportCommand(db, backup.ImportOptions{Collection: users, File: "users.json", Drop: true}),
		backup.ImportCommand(db, backup.ImportOptions{Collection: users, JSONArray: true, File: "users_array.json"}),
		backup.ImportCommand(db, backup.ImportOptions{Collection: users, Format: backup.FormatCSV, HeaderLine: true, File: "users.csv"}),
	)
}

func (r *Runner) backupSection() Section {
	users := r.Opts.UsersCollection
	return Section{Name: "backup", Title: "8. BACKUP & RESTORE OPERATIONS", Steps: []Step{
		{Name: "command reference", Run: func(ctx context.Context) (interface{}, error) {
			return BackupCommands(r.Admin.DatabaseName(), users), nil
		}},
		{Name: "full backup", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.Backup.Dump(ctx, backup.DumpOptions{Out: r.workPath("backup", "full_backup")})
		}},
		{Name: "backup users collection", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.Backup.Dump(ctx, backup.DumpOptions{Out: r.workPath("backup", "users_collection"), Collection: users})
		}},
		{Name: "compressed backup", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.Backup.Dump(ctx, backup.DumpOptions{Out: r.workPath("backup", "compressed_backup"), Gzip: true})
		}},
		{Name: "backup active users", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.Backup.Dump(ctx, backup.DumpOptions{Out: r.workPath("backup", "active_users"), Collection: users, Query: activeFilter()})
		}},
		{Name: "restore with drop", Gate: GateFilesystem | GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return r.Backup.Restore(ctx, backup.RestoreOptions{Dir: r.workPath("backup", "full_backup", r.Admin.DatabaseName()), Drop: true})
		}},
	}}
}

func (r *Runner) exportTo(ctx context.Context, opts backup.ExportOptions) (*backup.Summary, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Out), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(opts.Out)
	if err != nil {
		return nil, err
	}
	summary, err := r.Backup.Export(ctx, opts, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return summary, err
}

func (r *Runner) importFrom(ctx context.Context, opts backup.ImportOptions) (*backup.Summary, error) {
	f, err := os.Open(opts.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.Backup.Import(ctx, opts, f)
}

func (r *Runner) exportSection() Section {
	users := r.Opts.UsersCollection
	return Section{Name: "export", Title: "14. DATA EXPORT & IMPORT", Steps: []Step{
		{Name: "command reference", Run: func(ctx context.Context) (interface{}, error) {
			return TransferCommands(r.Admin.DatabaseName(), users), nil
		}},
		{Name: "export collection", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.exportTo(ctx, backup.ExportOptions{Collection: users, Out: r.workPath("users.json")})
		}},
		{Name: "export active users", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.exportTo(ctx, backup.ExportOptions{Collection: users, Query: activeFilter(), Out: r.workPath("active_users.json")})
		}},
		{Name: "export pretty", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.exportTo(ctx, backup.ExportOptions{Collection: users, Pretty: true, Out: r.workPath("users_pretty.json")})
		}},
		{Name: "export name and email as csv", Gate: GateFilesystem, Run: func(ctx context.Context) (interface{}, error) {
			return r.exportTo(ctx, backup.ExportOptions{
				Collection: users,
				Format:     backup.FormatCSV,
				Fields:     []string{model.FieldName, model.FieldEmail},
				Out:        r.workPath("name_email.csv"),
			})
		}},
		{Name: "import with drop", Gate: GateFilesystem | GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return r.importFrom(ctx, backup.ImportOptions{Collection: users, File: r.workPath("users.json"), Drop: true})
		}},
		{Name: "import csv", Gate: GateFilesystem | GateDestructive, Run: func(ctx context.Context) (interface{}, error) {
			return r.importFrom(ctx, backup.ImportOptions{
				Collection: users,
				Format:     backup.FormatCSV,
				HeaderLine: true,
				File:       r.workPath("name_email.csv"),
			})
		}},
	}}
}
