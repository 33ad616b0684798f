package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.mongodb.org/mongo-driver/bson"
)

const defaultBatchSize = 1000

type dumpFile struct {
	Collection string
	Path       string
	Gzip       bool
	// Metadata is the index file written next to Path, which may not exist.
	Metadata string
}

// parseDumpName splits users.bson or users.bson.gz into the collection name
// and whether the file is compressed.
func parseDumpName(name string) (string, bool, bool) {
	switch {
	case strings.HasSuffix(name, bsonExt+gzipExt):
		return strings.TrimSuffix(name, bsonExt+gzipExt), true, true
	case strings.HasSuffix(name, bsonExt):
		return strings.TrimSuffix(name, bsonExt), false, true
	}
	return "", false, false
}

func newDumpFile(path, collection string) (dumpFile, bool) {
	dir, name := filepath.Split(path)
	source, gz, ok := parseDumpName(name)
	if !ok {
		return dumpFile{}, false
	}
	if collection == "" {
		collection = source
	}
	return dumpFile{
		Collection: collection,
		Path:       path,
		Gzip:       gz,
		Metadata:   filepath.Join(dir, source+metadataExt),
	}, true
}

// dumpFiles lists the collection files of a dump directory in name order.
func dumpFiles(dir, only string) ([]dumpFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []dumpFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, ok := newDumpFile(filepath.Join(dir, e.Name()), "")
		if !ok {
			continue
		}
		if only != "" && f.Collection != only {
			continue
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Collection < files[j].Collection })
	return files, nil
}

// restoreTargets resolves a dump directory or a single .bson(.gz) file. For a
// single file, collection renames the target the way mongorestore's
// --collection does.
func restoreTargets(path, collection string) ([]dumpFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return dumpFiles(path, collection)
	}
	f, ok := newDumpFile(path, collection)
	if !ok {
		return nil, fmt.Errorf("%s is not a .bson file: %w", path, ErrUnsupportedFormat)
	}
	return []dumpFile{f}, nil
}

// Restore loads a dump directory (the <out>/<db> folder written by Dump) or a
// single collection file from one.
func (s *Service) Restore(ctx context.Context, opts RestoreOptions) (*Summary, error) {
	if opts.Archive != "" || opts.OplogReplay {
		return nil, fmt.Errorf("archive and oplog restores: %w", ErrToolOnly)
	}
	if opts.Dir == "" {
		return nil, ErrMissingTarget
	}
	files, err := restoreTargets(opts.Dir, opts.Collection)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .bson files found in %s", opts.Dir)
	}

	summary := newSummary()
	for _, f := range files {
		if opts.Drop {
			if err := s.DB.Collection(f.Collection).Drop(ctx); err != nil {
				return summary, fmt.Errorf("drop %s: %w", f.Collection, err)
			}
		}
		n, err := s.restoreFile(ctx, f, opts.Gzip)
		if err != nil {
			return summary, fmt.Errorf("restore %s: %w", f.Collection, err)
		}
		if err := s.restoreIndexes(ctx, f); err != nil {
			return summary, fmt.Errorf("restore %s indexes: %w", f.Collection, err)
		}
		summary.Collections[f.Collection] = n
		summary.Files = append(summary.Files, f.Path)
		s.Logger.Info("collection restored", "collection", f.Collection, "documents", n, "file", f.Path)
	}
	return summary, nil
}

func (s *Service) restoreFile(ctx context.Context, f dumpFile, forceGzip bool) (int64, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var r io.Reader = file
	if f.Gzip || forceGzip {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return 0, err
		}
		defer gz.Close()
		r = gz
	}

	coll := s.DB.Collection(f.Collection)
	batch := make([]interface{}, 0, defaultBatchSize)
	var n int64
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := coll.InsertMany(ctx, batch); err != nil {
			return err
		}
		n += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for {
		doc, err := readDocument(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, err
		}
		batch = append(batch, doc)
		if len(batch) == defaultBatchSize {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	return n, flush()
}

// indexSpecsFromMetadata returns the createIndexes specs of a metadata file,
// leaving out the implicit _id index.
func indexSpecsFromMetadata(data []byte) (bson.A, error) {
	var meta collectionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	specs := bson.A{}
	for _, raw := range meta.Indexes {
		var spec bson.D
		if err := bson.UnmarshalExtJSON(raw, false, &spec); err != nil {
			return nil, err
		}
		clean := bson.D{}
		name := ""
		for _, e := range spec {
			switch e.Key {
			case "v", "ns":
				continue
			case "name":
				name, _ = e.Value.(string)
			}
			clean = append(clean, e)
		}
		if name == "_id_" {
			continue
		}
		specs = append(specs, clean)
	}
	return specs, nil
}

func (s *Service) restoreIndexes(ctx context.Context, f dumpFile) error {
	data, err := os.ReadFile(f.Metadata)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	specs, err := indexSpecsFromMetadata(data)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return nil
	}
	cmd := bson.D{{Key: "createIndexes", Value: f.Collection}, {Key: "indexes", Value: specs}}
	return s.DB.RunCommand(ctx, cmd).Err()
}
