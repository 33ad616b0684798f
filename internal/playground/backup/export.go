package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type docWriter interface {
	Write(doc bson.Raw) error
	Close() error
}

func newDocWriter(w io.Writer, opts ExportOptions) (docWriter, error) {
	switch strings.ToLower(opts.Format) {
	case "", FormatJSON:
		if opts.JSONArray {
			return &jsonArrayWriter{w: w, pretty: opts.Pretty, canonical: opts.Canonical}, nil
		}
		return &jsonLinesWriter{w: w, pretty: opts.Pretty, canonical: opts.Canonical}, nil
	case FormatCSV:
		if len(opts.Fields) == 0 {
			return nil, ErrMissingFields
		}
		cw := &csvDocWriter{w: csv.NewWriter(w), fields: opts.Fields}
		if err := cw.w.Write(opts.Fields); err != nil {
			return nil, err
		}
		return cw, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// extJSON renders doc as relaxed extended JSON, or canonical when asked.
func extJSON(doc bson.Raw, canonical, pretty bool) ([]byte, error) {
	out, err := bson.MarshalExtJSON(doc, canonical, false)
	if err != nil {
		return nil, err
	}
	if !pretty {
		return out, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "\t"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// jsonLinesWriter writes one extended JSON document per line.
type jsonLinesWriter struct {
	w         io.Writer
	pretty    bool
	canonical bool
}

func (j *jsonLinesWriter) Write(doc bson.Raw) error {
	out, err := extJSON(doc, j.canonical, j.pretty)
	if err != nil {
		return err
	}
	if _, err := j.w.Write(out); err != nil {
		return err
	}
	_, err = j.w.Write([]byte("\n"))
	return err
}

func (j *jsonLinesWriter) Close() error { return nil }

type jsonArrayWriter struct {
	w         io.Writer
	pretty    bool
	canonical bool
	n         int
}

func (j *jsonArrayWriter) Write(doc bson.Raw) error {
	out, err := extJSON(doc, j.canonical, j.pretty)
	if err != nil {
		return err
	}
	sep := ","
	if j.n == 0 {
		sep = "["
	}
	j.n++
	if _, err := io.WriteString(j.w, sep); err != nil {
		return err
	}
	_, err = j.w.Write(out)
	return err
}

func (j *jsonArrayWriter) Close() error {
	closing := "]\n"
	if j.n == 0 {
		closing = "[]\n"
	}
	_, err := io.WriteString(j.w, closing)
	return err
}

type csvDocWriter struct {
	w      *csv.Writer
	fields []string
}

func (c *csvDocWriter) Write(doc bson.Raw) error {
	row := make([]string, len(c.fields))
	for i, f := range c.fields {
		row[i] = csvValue(doc, f)
	}
	return c.w.Write(row)
}

func (c *csvDocWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}

// csvValue renders a dotted field of doc as a CSV cell. Missing fields are empty.
func csvValue(doc bson.Raw, field string) string {
	v, err := doc.LookupErr(strings.Split(field, ".")...)
	if err != nil {
		return ""
	}
	switch v.Type {
	case bsontype.String:
		return v.StringValue()
	case bsontype.Int32:
		return strconv.Itoa(int(v.Int32()))
	case bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case bsontype.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case bsontype.Boolean:
		return strconv.FormatBool(v.Boolean())
	case bsontype.DateTime:
		return v.Time().UTC().Format(time.RFC3339)
	case bsontype.ObjectID:
		return v.ObjectID().Hex()
	case bsontype.Null, bsontype.Undefined:
		return ""
	default:
		return v.String()
	}
}

// Export streams the documents of one collection to w in JSON or CSV form,
// the way mongoexport does.
func (s *Service) Export(ctx context.Context, opts ExportOptions, w io.Writer) (*Summary, error) {
	dw, err := newDocWriter(w, opts)
	if err != nil {
		return nil, err
	}

	filter := opts.Query
	if filter == nil {
		filter = bson.D{}
	}
	cursor, err := s.DB.Collection(opts.Collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summary := newSummary()
	var n int64
	for cursor.Next(ctx) {
		if err := dw.Write(cursor.Current); err != nil {
			return nil, err
		}
		n++
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if err := dw.Close(); err != nil {
		return nil, err
	}

	summary.Collections[opts.Collection] = n
	if opts.Out != "" {
		summary.Files = append(summary.Files, opts.Out)
	}
	s.Logger.Info("collection exported", "collection", opts.Collection, "documents", n, "format", opts.Format)
	return summary, nil
}
