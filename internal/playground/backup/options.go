package backup

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrToolOnly          = errors.New("only supported by the mongodb database tools")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMissingFields     = errors.New("csv export requires a field list")
	ErrMissingTarget     = errors.New("a file or directory is required")
)

// Formats understood by Export and Import.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// DumpOptions mirrors the mongodump flags the playground documents.
type DumpOptions struct {
	Out        string
	Collection string
	Query      bson.D
	Gzip       bool
	// Archive and Oplog only exist for command rendering; Dump rejects them.
	Archive string
	Oplog   bool
	Auth    *Auth
}

type RestoreOptions struct {
	Dir         string
	Collection  string
	Drop        bool
	Gzip        bool
	Archive     string
	OplogReplay bool
	Auth        *Auth
}

// Auth holds the credentials flags of the command line tools.
type Auth struct {
	Username string
	Password string
	AuthDB   string
}

type ExportOptions struct {
	Collection string
	Out        string
	Query      bson.D
	Format     string
	Fields     []string
	Pretty     bool
	JSONArray  bool
	// Canonical keeps BSON types explicit ({"$numberInt":"28"}) instead of
	// the relaxed default.
	Canonical bool
}

type ImportOptions struct {
	Collection string
	File       string
	Format     string
	JSONArray  bool
	HeaderLine bool
	Drop       bool
	BatchSize  int
}

// Summary reports what a dump, restore, export or import touched.
type Summary struct {
	Collections map[string]int64 `json:"collections"`
	Files       []string         `json:"files,omitempty"`
}

func newSummary() *Summary {
	return &Summary{Collections: map[string]int64{}}
}

func (s *Summary) Total() int64 {
	var n int64
	for _, c := range s.Collections {
		n += c
	}
	return n
}
