package backup

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

func authArgs(a *Auth) []string {
	if a == nil || a.Username == "" {
		return nil
	}
	args := []string{"--username", a.Username, "--password", a.Password}
	if a.AuthDB != "" {
		args = append(args, "--authenticationDatabase", a.AuthDB)
	}
	return args
}

func queryArg(q bson.D) (string, bool) {
	if q == nil {
		return "", false
	}
	out, err := bson.MarshalExtJSON(q, false, false)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// DumpCommand renders the mongodump invocation equivalent to opts.
func DumpCommand(db string, opts DumpOptions) []string {
	args := []string{"mongodump"}
	if db != "" {
		args = append(args, "--db", db)
	}
	if opts.Collection != "" {
		args = append(args, "--collection", opts.Collection)
	}
	args = append(args, authArgs(opts.Auth)...)
	if q, ok := queryArg(opts.Query); ok {
		args = append(args, "--query", q)
	}
	if opts.Oplog {
		args = append(args, "--oplog")
	}
	if opts.Archive != "" {
		args = append(args, "--archive="+opts.Archive)
	} else if opts.Out != "" {
		args = append(args, "--out", opts.Out)
	}
	if opts.Gzip {
		args = append(args, "--gzip")
	}
	return args
}

func RestoreCommand(db string, opts RestoreOptions) []string {
	args := []string{"mongorestore"}
	if db != "" {
		args = append(args, "--db", db)
	}
	if opts.Collection != "" {
		args = append(args, "--collection", opts.Collection)
	}
	args = append(args, authArgs(opts.Auth)...)
	if opts.Drop {
		args = append(args, "--drop")
	}
	if opts.OplogReplay {
		args = append(args, "--oplogReplay")
	}
	if opts.Archive != "" {
		args = append(args, "--archive="+opts.Archive)
	}
	if opts.Gzip {
		args = append(args, "--gzip")
	}
	if opts.Dir != "" {
		args = append(args, opts.Dir)
	}
	return args
}

func ExportCommand(db string, opts ExportOptions) []string {
	args := []string{"mongoexport", "--db", db, "--collection", opts.Collection}
	if q, ok := queryArg(opts.Query); ok {
		args = append(args, "--query", q)
	}
	if opts.Pretty {
		args = append(args, "--pretty")
	}
	if opts.JSONArray {
		args = append(args, "--jsonArray")
	}
	if opts.Canonical {
		args = append(args, "--jsonFormat=canonical")
	}
	if len(opts.Fields) > 0 {
		args = append(args, "--fields="+strings.Join(opts.Fields, ","))
	}
	if opts.Out != "" {
		args = append(args, "--out", opts.Out)
	}
	if strings.EqualFold(opts.Format, FormatCSV) {
		args = append(args, "--type=csv")
	}
	return args
}

func ImportCommand(db string, opts ImportOptions) []string {
	args := []string{"mongoimport", "--db", db, "--collection", opts.Collection}
	if strings.EqualFold(opts.Format, FormatCSV) {
		args = append(args, "--type=csv")
	}
	if opts.HeaderLine {
		args = append(args, "--headerline")
	}
	if opts.JSONArray {
		args = append(args, "--jsonArray")
	}
	if opts.File != "" {
		args = append(args, "--file", opts.File)
	}
	if opts.Drop {
		args = append(args, "--drop")
	}
	return args
}

// FormatCommand joins args into a shell line, single-quoting arguments that
// the shell would otherwise split or expand.
func FormatCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'$`\\{}[]*?;&|<>()!#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
