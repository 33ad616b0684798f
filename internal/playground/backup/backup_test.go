package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func rawDoc(t *testing.T, d bson.D) bson.Raw {
	t.Helper()
	b, err := bson.Marshal(d)
	require.NoError(t, err)
	return b
}

func TestDocumentStream(t *testing.T) {
	var buf bytes.Buffer
	alice := rawDoc(t, bson.D{{Key: "name", Value: "Alice"}})
	bob := rawDoc(t, bson.D{{Key: "name", Value: "Bob"}, {Key: "age", Value: int32(35)}})
	require.NoError(t, writeDocument(&buf, alice))
	require.NoError(t, writeDocument(&buf, bob))

	first, err := readDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Alice", first.Lookup("name").StringValue())

	second, err := readDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, int32(35), second.Lookup("age").Int32())

	_, err = readDocument(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadDocumentRejectsCorruptStreams(t *testing.T) {
	doc := rawDoc(t, bson.D{{Key: "name", Value: "Alice"}})

	_, err := readDocument(bytes.NewReader(doc[:len(doc)-2]))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF))

	_, err = readDocument(bytes.NewReader([]byte{1, 0, 0, 0}))
	assert.Error(t, err, "length below minimum document size")

	_, err = readDocument(bytes.NewReader([]byte{5, 0}))
	assert.Error(t, err)
}

func TestDumpFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users.bson", "sessions.bson.gz", "users.metadata.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	files, err := dumpFiles(dir, "")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "sessions", files[0].Collection)
	assert.True(t, files[0].Gzip)
	assert.Equal(t, "users", files[1].Collection)
	assert.False(t, files[1].Gzip)

	files, err = dumpFiles(dir, "users")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "users.bson"), files[0].Path)
	assert.Equal(t, filepath.Join(dir, "users.metadata.json"), files[0].Metadata)
}

func TestRestoreTargets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"users.bson", "sessions.bson.gz", "users.metadata.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := restoreTargets(dir, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = restoreTargets(filepath.Join(dir, "users.bson"), "")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "users", files[0].Collection)

	files, err = restoreTargets(filepath.Join(dir, "users.bson"), "users_copy")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "users_copy", files[0].Collection)
	assert.Equal(t, filepath.Join(dir, "users.metadata.json"), files[0].Metadata)

	files, err = restoreTargets(filepath.Join(dir, "sessions.bson.gz"), "")
	require.NoError(t, err)
	assert.True(t, files[0].Gzip)

	_, err = restoreTargets(filepath.Join(dir, "users.metadata.json"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = restoreTargets(filepath.Join(dir, "missing"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIndexSpecsFromMetadata(t *testing.T) {
	data := []byte(`{
	  "collection": "users",
	  "indexes": [
	    {"v": 2, "key": {"_id": 1}, "name": "_id_"},
	    {"v": 2, "key": {"email": 1}, "name": "email_1", "unique": true}
	  ]
	}`)

	specs, err := indexSpecsFromMetadata(data)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	spec := specs[0].(bson.D)
	assert.Equal(t, "key", spec[0].Key)
	assert.Equal(t, bson.E{Key: "name", Value: "email_1"}, spec[1])
	assert.Equal(t, bson.E{Key: "unique", Value: true}, spec[2])
}

func TestDocWriters(t *testing.T) {
	joined := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)
	doc := rawDoc(t, bson.D{
		{Key: "name", Value: "Alice"},
		{Key: "age", Value: int32(28)},
		{Key: "joinDate", Value: primitive.NewDateTimeFromTime(joined)},
		{Key: "profile", Value: bson.D{{Key: "country", Value: "USA"}}},
	})

	t.Run("json lines", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{})
		require.NoError(t, err)
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Close())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"name":"Alice"`)
		assert.Contains(t, lines[0], `"$date":"2020-01-15T00:00:00Z"`)
	})

	t.Run("json array", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{JSONArray: true})
		require.NoError(t, err)
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Close())

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, `[{"name":"Alice"`))
		assert.True(t, strings.HasSuffix(out, "}]\n"))
		assert.Equal(t, 1, strings.Count(out, "},{"))
	})

	t.Run("empty json array", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{JSONArray: true})
		require.NoError(t, err)
		require.NoError(t, w.Close())
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("canonical json keeps numeric types", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{Canonical: true})
		require.NoError(t, err)
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Close())

		out := buf.String()
		assert.Contains(t, out, `"age":{"$numberInt":"28"}`)
		assert.Contains(t, out, `"$date":{"$numberLong":"1579046400000"}`)
	})

	t.Run("relaxed json by default", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{JSONArray: true})
		require.NoError(t, err)
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Close())
		assert.Contains(t, buf.String(), `"age":28`)
	})

	t.Run("canonical json array", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{JSONArray: true, Canonical: true})
		require.NoError(t, err)
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Close())
		assert.Contains(t, buf.String(), `"age":{"$numberInt":"28"}`)
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{Pretty: true})
		require.NoError(t, err)
		require.NoError(t, w.Write(doc))
		assert.Contains(t, buf.String(), "\n\t\"name\": \"Alice\"")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := newDocWriter(&buf, ExportOptions{Format: "CSV", Fields: []string{"name", "age", "profile.country", "joinDate", "email"}})
		require.NoError(t, err)
		require.NoError(t, w.Write(doc))
		require.NoError(t, w.Close())
		assert.Equal(t, "name,age,profile.country,joinDate,email\nAlice,28,USA,2020-01-15T00:00:00Z,\n", buf.String())
	})

	t.Run("csv without fields", func(t *testing.T) {
		_, err := newDocWriter(io.Discard, ExportOptions{Format: FormatCSV})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := newDocWriter(io.Discard, ExportOptions{Format: "xml"})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestParseImport(t *testing.T) {
	t.Run("json lines skips blank lines", func(t *testing.T) {
		in := "{\"name\":\"Alice\",\"age\":28}\n\n{\"name\":\"Bob\"}\n"
		docs, err := parseImport(strings.NewReader(in), ImportOptions{})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "Alice", docs[0].(bson.D)[0].Value)
	})

	t.Run("json lines reports bad line", func(t *testing.T) {
		_, err := parseImport(strings.NewReader("{\"a\":1}\nnot json\n"), ImportOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("json array", func(t *testing.T) {
		docs, err := parseImport(strings.NewReader(`[{"name":"Alice"},{"name":"Bob"}]`), ImportOptions{JSONArray: true})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("csv with header", func(t *testing.T) {
		in := "name,age,active,profile.country,profile.department\nAlice,28,true,USA,Engineering\n"
		docs, err := parseImport(strings.NewReader(in), ImportOptions{Format: FormatCSV, HeaderLine: true})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, bson.D{
			{Key: "name", Value: "Alice"},
			{Key: "age", Value: int32(28)},
			{Key: "active", Value: true},
			{Key: "profile", Value: bson.D{
				{Key: "country", Value: "USA"},
				{Key: "department", Value: "Engineering"},
			}},
		}, docs[0])
	})

	t.Run("csv needs header", func(t *testing.T) {
		_, err := parseImport(strings.NewReader("a,b\n"), ImportOptions{Format: FormatCSV})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestInferValue(t *testing.T) {
	assert.Equal(t, int32(42), inferValue("42"))
	assert.Equal(t, int64(5000000000), inferValue("5000000000"))
	assert.Equal(t, 19.99, inferValue("19.99"))
	assert.Equal(t, false, inferValue("false"))
	assert.Equal(t, "NaN", inferValue("NaN"))
	assert.Equal(t, "Infinity", inferValue("Infinity"))
	assert.Equal(t, "alice@example.com", inferValue("alice@example.com"))
	assert.Equal(t, "", inferValue(""))
}

func TestToolCommands(t *testing.T) {
	t.Run("full backup", func(t *testing.T) {
		args := DumpCommand("playground_db", DumpOptions{Out: "./backup/full_backup"})
		assert.Equal(t, "mongodump --db playground_db --out ./backup/full_backup", FormatCommand(args))
	})

	t.Run("authenticated backup", func(t *testing.T) {
		args := DumpCommand("playground_db", DumpOptions{
			Out:  "./backup/authenticated_backup",
			Auth: &Auth{Username: "appUser", Password: "securePassword123", AuthDB: "admin"},
		})
		assert.Equal(t, "mongodump --db playground_db --username appUser --password securePassword123 --authenticationDatabase admin --out ./backup/authenticated_backup", FormatCommand(args))
	})

	t.Run("compressed archive", func(t *testing.T) {
		args := DumpCommand("playground_db", DumpOptions{Archive: "playground_db.archive", Gzip: true})
		assert.Equal(t, "mongodump --db playground_db --archive=playground_db.archive --gzip", FormatCommand(args))
	})

	t.Run("filtered backup quotes the query", func(t *testing.T) {
		args := DumpCommand("playground_db", DumpOptions{
			Collection: "users",
			Query:      bson.D{{Key: "status", Value: "active"}},
			Out:        "./backup/active_users",
		})
		assert.Equal(t, `mongodump --db playground_db --collection users --query '{"status":"active"}' --out ./backup/active_users`, FormatCommand(args))
	})

	t.Run("oplog backup", func(t *testing.T) {
		args := DumpCommand("", DumpOptions{Oplog: true, Out: "./backup/incremental_backup"})
		assert.Equal(t, "mongodump --oplog --out ./backup/incremental_backup", FormatCommand(args))
	})

	t.Run("restore with drop", func(t *testing.T) {
		args := RestoreCommand("playground_db", RestoreOptions{Drop: true, Dir: "./backup/full_backup/playground_db"})
		assert.Equal(t, "mongorestore --db playground_db --drop ./backup/full_backup/playground_db", FormatCommand(args))
	})

	t.Run("csv export", func(t *testing.T) {
		args := ExportCommand("playground_db", ExportOptions{Collection: "users", Fields: []string{"name", "email"}, Out: "name_email.csv", Format: FormatCSV})
		assert.Equal(t, "mongoexport --db playground_db --collection users --fields=name,email --out name_email.csv --type=csv", FormatCommand(args))
	})

	t.Run("canonical json export", func(t *testing.T) {
		args := ExportCommand("playground_db", ExportOptions{Collection: "users", Canonical: true, Out: "users.json"})
		assert.Equal(t, "mongoexport --db playground_db --collection users --jsonFormat=canonical --out users.json", FormatCommand(args))
	})

	t.Run("csv import", func(t *testing.T) {
		args := ImportCommand("playground_db", ImportOptions{Collection: "users", Format: FormatCSV, HeaderLine: true, File: "users.csv"})
		assert.Equal(t, "mongoimport --db playground_db --collection users --type=csv --headerline --file users.csv", FormatCommand(args))
	})
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "plain", shellQuote("plain"))
	assert.Equal(t, "''", shellQuote(""))
	assert.Equal(t, "'two words'", shellQuote("two words"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}

func TestDumpRejectsToolOnlyModes(t *testing.T) {
	s := NewService(nil, nil)
	ctx := context.Background()

	_, err := s.Dump(ctx, DumpOptions{Out: t.TempDir(), Archive: "x.archive"})
	assert.ErrorIs(t, err, ErrToolOnly)

	_, err = s.Restore(ctx, RestoreOptions{OplogReplay: true})
	assert.ErrorIs(t, err, ErrToolOnly)

	_, err = s.Dump(ctx, DumpOptions{})
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestExportAndImportAgainstMockServer(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("export csv", func(mt *mtest.T) {
		s := NewService(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Alice"}, {Key: "email", Value: "alice@example.com"}},
			bson.D{{Key: "name", Value: "Bob"}, {Key: "email", Value: "bob@example.com"}},
		))

		var buf bytes.Buffer
		summary, err := s.Export(ctx, ExportOptions{Collection: "users", Format: FormatCSV, Fields: []string{"name", "email"}}, &buf)
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.Collections["users"])
		assert.Equal(t, "name,email\nAlice,alice@example.com\nBob,bob@example.com\n", buf.String())
	})

	mt.Run("import json lines in batches", func(mt *mtest.T) {
		s := NewService(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		in := "{\"name\":\"Alice\"}\n{\"name\":\"Bob\"}\n{\"name\":\"Eve\"}\n"
		summary, err := s.Import(ctx, ImportOptions{Collection: "users", BatchSize: 2}, strings.NewReader(in))
		require.NoError(t, err)
		assert.Equal(t, int64(3), summary.Total())
	})
}

func TestDumpAndRestoreAgainstMockServer(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	alice := bson.D{{Key: "name", Value: "Alice"}, {Key: "email", Value: "alice@example.com"}}
	bob := bson.D{{Key: "name", Value: "Bob"}, {Key: "email", Value: "bob@example.com"}}
	indexes := []bson.D{
		{{Key: "v", Value: 2}, {Key: "key", Value: bson.D{{Key: "_id", Value: 1}}}, {Key: "name", Value: "_id_"}},
		{{Key: "v", Value: 2}, {Key: "key", Value: bson.D{{Key: "email", Value: 1}}}, {Key: "name", Value: "email_1"}, {Key: "unique", Value: true}},
	}

	dump := func(mt *mtest.T, s *Service, opts DumpOptions) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, alice, bob),
			mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, indexes...),
		)
		summary, err := s.Dump(ctx, opts)
		require.NoError(mt, err)
		require.Equal(mt, int64(2), summary.Collections["users"])
		mt.ClearEvents()
	}

	startedCommands := func(mt *mtest.T) []string {
		var names []string
		for _, evt := range mt.GetAllStartedEvents() {
			names = append(names, evt.CommandName)
		}
		return names
	}

	mt.Run("dump directory round trip", func(mt *mtest.T) {
		s := NewService(mt.DB, nil)
		out := t.TempDir()
		dump(mt, s, DumpOptions{Out: out, Collection: "users", Gzip: true})

		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		summary, err := s.Restore(ctx, RestoreOptions{Dir: filepath.Join(out, mt.DB.Name()), Drop: true})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), summary.Collections["users"])
		assert.Equal(mt, []string{"drop", "insert", "createIndexes"}, startedCommands(mt))

		events := mt.GetAllStartedEvents()
		insert := events[1].Command
		assert.Equal(mt, "users", insert.Lookup("insert").StringValue())
		docs, err := insert.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.Equal(mt, "Alice", docs[0].Document().Lookup("name").StringValue())
		assert.Equal(mt, "bob@example.com", docs[1].Document().Lookup("email").StringValue())

		create := events[2].Command
		assert.Equal(mt, "users", create.Lookup("createIndexes").StringValue())
		specs, err := create.Lookup("indexes").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, specs, 1)
		assert.Equal(mt, "email_1", specs[0].Document().Lookup("name").StringValue())
		assert.True(mt, specs[0].Document().Lookup("unique").Boolean())
	})

	mt.Run("single file into another collection", func(mt *mtest.T) {
		s := NewService(mt.DB, nil)
		out := t.TempDir()
		dump(mt, s, DumpOptions{Out: out, Collection: "users"})

		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		file := filepath.Join(out, mt.DB.Name(), "users.bson")
		summary, err := s.Restore(ctx, RestoreOptions{Dir: file, Collection: "users_copy"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), summary.Collections["users_copy"])
		assert.Equal(mt, []string{file}, summary.Files)
		assert.Equal(mt, []string{"insert", "createIndexes"}, startedCommands(mt))

		events := mt.GetAllStartedEvents()
		assert.Equal(mt, "users_copy", events[0].Command.Lookup("insert").StringValue())
		assert.Equal(mt, "users_copy", events[1].Command.Lookup("createIndexes").StringValue())
	})
}
