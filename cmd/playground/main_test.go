package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"mongoplay/internal/playground/backup"
	"mongoplay/internal/playground/mocks"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func resetFlags() {
	collection, query, file, fields, archive, restoreDir = "", "", "", "", "", ""
	gzipFiles, drop, printCommand, pretty, jsonArray, headerLine, oplog, oplogReplay = false, false, false, false, false, false, false, false
	username, password, authDB = "", "", ""
	jsonFormat = "relaxed"
	dumpOut = defaultDumpDir
	format = backup.FormatJSON
	logLevel = "error"
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "playground_db")
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseQuery(t *testing.T) {
	q, err := parseQuery(`{"status": "active", "age": {"$gte": 25}}`)
	require.NoError(t, err)
	assert.Equal(t, bson.D{
		{Key: "status", Value: "active"},
		{Key: "age", Value: bson.D{{Key: "$gte", Value: int32(25)}}},
	}, q)

	q, err = parseQuery("  ")
	require.NoError(t, err)
	assert.Nil(t, q)

	_, err = parseQuery("{status:")
	assert.ErrorContains(t, err, "invalid --query")
}

func TestSplitFields(t *testing.T) {
	assert.Equal(t, []string{"name", "email"}, splitFields(" name, ,email "))
	assert.Nil(t, splitFields(""))
}

func TestSectionsCommand(t *testing.T) {
	out, err := execute(t, "sections")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 18)
	assert.Equal(t, "create", lines[0])
	assert.Equal(t, "cleanup", lines[17])
}

func TestTourCommand(t *testing.T) {
	out, err := execute(t, "tour", "looping")
	require.NoError(t, err)
	assert.Contains(t, out, "GO PLAYGROUND: VARIABLES, CONDITIONS, LOOPS & TYPES")
	assert.Contains(t, out, "END OF GO PLAYGROUND")

	_, err = execute(t, "tour", "nope")
	assert.Error(t, err)
}

func TestPrintCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "compressed dump",
			args: []string{"dump", "--print-command", "--out", "/backup/compressed_backup", "--gzip"},
			want: "mongodump --db playground_db --out /backup/compressed_backup --gzip",
		},
		{
			name: "dump with auth",
			args: []string{"dump", "--print-command", "-u", "admin", "-p", "password", "--authentication-database", "admin"},
			want: "mongodump --db playground_db --username admin --password password --authenticationDatabase admin --out dump",
		},
		{
			name: "restore defaults to the dump directory",
			args: []string{"restore", "--print-command", "--drop"},
			want: "mongorestore --db playground_db --drop dump/playground_db",
		},
		{
			name: "export active users",
			args: []string{"export", "--print-command", "-c", "users", "-q", `{"status":"active"}`, "--out", "active_users.json"},
			want: `mongoexport --db playground_db --collection users --query '{"status":"active"}' --out active_users.json`,
		},
		{
			name: "canonical export",
			args: []string{"export", "--print-command", "-c", "users", "--jsonFormat", "canonical"},
			want: "mongoexport --db playground_db --collection users --jsonFormat=canonical",
		},
		{
			name: "import csv",
			args: []string{"import", "--print-command", "-c", "users", "--type", "csv", "--headerline", "--file", "users.csv"},
			want: "mongoimport --db playground_db --collection users --type=csv --headerline --file users.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestExportRequiresCollection(t *testing.T) {
	_, err := execute(t, "export", "--print-command")
	assert.ErrorContains(t, err, "collection")
}

func TestExportRejectsUnknownJSONFormat(t *testing.T) {
	_, err := execute(t, "export", "--print-command", "-c", "users", "--jsonFormat", "shell")
	assert.ErrorContains(t, err, "jsonFormat")
}

func TestCommandContext(t *testing.T) {
	timeout = time.Minute
	t.Run("bounded by the timeout", func(t *testing.T) {
		ctx, cancel := commandContext(&cobra.Command{})
		defer cancel()
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	})

	t.Run("cancelled by SIGINT", func(t *testing.T) {
		ctx, cancel := commandContext(&cobra.Command{})
		defer cancel()
		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))
		select {
		case <-ctx.Done():
			assert.ErrorIs(t, ctx.Err(), context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("context was not cancelled by SIGINT")
		}
	})
}

func TestExportToFile(t *testing.T) {
	t.Run("writes and closes the file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "users.json")
		exp := new(mocks.MockBackupService)
		opts := backup.ExportOptions{Collection: "users", Out: out}
		exp.On("Export", mock.Anything, opts, mock.Anything).
			Run(func(args mock.Arguments) {
				_, _ = io.WriteString(args.Get(2).(io.Writer), "{\"name\":\"Alice\"}\n")
			}).
			Return(&backup.Summary{Collections: map[string]int64{"users": 1}}, nil)

		summary, err := exportToFile(context.Background(), exp, opts)
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.Total())
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "{\"name\":\"Alice\"}\n", string(data))
	})

	t.Run("export error is returned", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "users.csv")
		exp := new(mocks.MockBackupService)
		opts := backup.ExportOptions{Collection: "users", Out: out, Format: backup.FormatCSV}
		exp.On("Export", mock.Anything, opts, mock.Anything).Return(nil, backup.ErrMissingFields)

		_, err := exportToFile(context.Background(), exp, opts)
		assert.ErrorIs(t, err, backup.ErrMissingFields)
	})

	t.Run("unwritable path", func(t *testing.T) {
		exp := new(mocks.MockBackupService)
		_, err := exportToFile(context.Background(), exp, backup.ExportOptions{Out: filepath.Join(t.TempDir(), "missing", "x.json")})
		assert.True(t, errors.Is(err, os.ErrNotExist))
		exp.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
	})
}
