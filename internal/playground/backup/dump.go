package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	bsonExt     = ".bson"
	metadataExt = ".metadata.json"
	gzipExt     = ".gz"
)

// Service performs dump, restore, export and import against one database.
type Service struct {
	DB     *mongo.Database
	Logger *slog.Logger
}

func NewService(db *mongo.Database, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{DB: db, Logger: logger}
}

type collectionMetadata struct {
	Collection string            `json:"collection"`
	Indexes    []json.RawMessage `json:"indexes"`
}

func (s *Service) collections(ctx context.Context, only string) ([]string, error) {
	if only != "" {
		return []string{only}, nil
	}
	names, err := s.DB.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	filtered := names[:0]
	for _, n := range names {
		if !strings.HasPrefix(n, "system.") {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// Dump writes <out>/<db>/<collection>.bson (optionally .bson.gz) plus a
// metadata file carrying index definitions, the directory layout mongodump
// produces.
func (s *Service) Dump(ctx context.Context, opts DumpOptions) (*Summary, error) {
	if opts.Out == "" {
		return nil, ErrMissingTarget
	}
	if opts.Archive != "" || opts.Oplog {
		return nil, fmt.Errorf("archive and oplog dumps: %w", ErrToolOnly)
	}
	if opts.Query != nil && opts.Collection == "" {
		return nil, fmt.Errorf("a query filter needs a single collection")
	}

	dir := filepath.Join(opts.Out, s.DB.Name())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	names, err := s.collections(ctx, opts.Collection)
	if err != nil {
		return nil, err
	}

	summary := newSummary()
	for _, name := range names {
		path, n, err := s.dumpCollection(ctx, dir, name, opts)
		if err != nil {
			return summary, fmt.Errorf("dump %s: %w", name, err)
		}
		if err := s.writeMetadata(ctx, dir, name); err != nil {
			return summary, fmt.Errorf("dump %s metadata: %w", name, err)
		}
		summary.Collections[name] = n
		summary.Files = append(summary.Files, path)
		s.Logger.Info("collection dumped", "collection", name, "documents", n, "file", path)
	}
	return summary, nil
}

func (s *Service) dumpCollection(ctx context.Context, dir, name string, opts DumpOptions) (string, int64, error) {
	path := filepath.Join(dir, name+bsonExt)
	if opts.Gzip {
		path += gzipExt
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if opts.Gzip {
		gz = gzip.NewWriter(f)
		w = gz
	}

	filter := opts.Query
	if filter == nil {
		filter = bson.D{}
	}
	cursor, err := s.DB.Collection(name).Find(ctx, filter)
	if err != nil {
		return "", 0, err
	}
	defer cursor.Close(ctx)

	var n int64
	for cursor.Next(ctx) {
		if err := writeDocument(w, cursor.Current); err != nil {
			return "", n, err
		}
		n++
	}
	if err := cursor.Err(); err != nil {
		return "", n, err
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return "", n, err
		}
	}
	return path, n, f.Close()
}

func (s *Service) writeMetadata(ctx context.Context, dir, name string) error {
	cursor, err := s.DB.Collection(name).Indexes().List(ctx)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	meta := collectionMetadata{Collection: name, Indexes: []json.RawMessage{}}
	for cursor.Next(ctx) {
		ext, err := bson.MarshalExtJSON(cursor.Current, false, false)
		if err != nil {
			return err
		}
		meta.Indexes = append(meta.Indexes, ext)
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+metadataExt), data, 0o644)
}
