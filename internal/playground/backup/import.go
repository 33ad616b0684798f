package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// maxLineSize bounds one JSON line on import.
const maxLineSize = 16 * 1024 * 1024

// parseJSONLines decodes one extended JSON document per non-blank line.
func parseJSONLines(r io.Reader) ([]interface{}, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var docs []interface{}
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var doc bson.D
		if err := bson.UnmarshalExtJSON(text, false, &doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	return docs, scanner.Err()
}

func parseJSONArray(r io.Reader) ([]interface{}, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, err
	}
	docs := make([]interface{}, 0, len(raws))
	for i, raw := range raws {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// parseCSV builds one document per row. Dotted header names produce
// embedded documents.
func parseCSV(r io.Reader) ([]interface{}, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var docs []interface{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		doc := bson.D{}
		for i, name := range header {
			if i >= len(row) {
				break
			}
			doc = setPath(doc, strings.Split(name, "."), inferValue(row[i]))
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func setPath(doc bson.D, path []string, v interface{}) bson.D {
	for i := range doc {
		if doc[i].Key != path[0] {
			continue
		}
		if len(path) == 1 {
			doc[i].Value = v
			return doc
		}
		sub, _ := doc[i].Value.(bson.D)
		doc[i].Value = setPath(sub, path[1:], v)
		return doc
	}
	if len(path) == 1 {
		return append(doc, bson.E{Key: path[0], Value: v})
	}
	return append(doc, bson.E{Key: path[0], Value: setPath(bson.D{}, path[1:], v)})
}

// inferValue types a CSV cell: integers, floats and booleans are converted,
// anything else stays a string.
func inferValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i)
		}
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, "xXnN") {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func parseImport(r io.Reader, opts ImportOptions) ([]interface{}, error) {
	switch strings.ToLower(opts.Format) {
	case "", FormatJSON:
		if opts.JSONArray {
			return parseJSONArray(r)
		}
		return parseJSONLines(r)
	case FormatCSV:
		if !opts.HeaderLine {
			return nil, fmt.Errorf("%w: csv import needs a header line", ErrUnsupportedFormat)
		}
		return parseCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Import loads JSON or CSV documents from r into one collection, the way
// mongoimport does.
func (s *Service) Import(ctx context.Context, opts ImportOptions, r io.Reader) (*Summary, error) {
	docs, err := parseImport(r, opts)
	if err != nil {
		return nil, err
	}

	coll := s.DB.Collection(opts.Collection)
	if opts.Drop {
		if err := coll.Drop(ctx); err != nil {
			return nil, err
		}
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	summary := newSummary()
	var n int64
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		if _, err := coll.InsertMany(ctx, docs[start:end]); err != nil {
			return summary, err
		}
		n += int64(end - start)
	}

	summary.Collections[opts.Collection] = n
	if opts.File != "" {
		summary.Files = append(summary.Files, opts.File)
	}
	s.Logger.Info("collection imported", "collection", opts.Collection, "documents", n, "format", opts.Format)
	return summary, nil
}
