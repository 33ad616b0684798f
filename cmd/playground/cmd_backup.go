package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mongoplay/internal/playground/backup"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

const defaultDumpDir = "dump"

// Flags shared by the data transfer commands.
var (
	collection   string
	query        string
	gzipFiles    bool
	drop         bool
	printCommand bool
	username     string
	password     string
	authDB       string

	dumpOut     string
	archive     string
	oplog       bool
	restoreDir  string
	oplogReplay bool

	format     string
	fields     string
	pretty     bool
	jsonArray  bool
	jsonFormat string
	headerLine bool
	file       string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump collections as BSON files (mongodump layout)",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a dump directory written by dump or mongodump",
	Args:  cobra.NoArgs,
	RunE:  runRestore,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a collection as JSON or CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import JSON or CSV documents into a collection",
	Args:  cobra.NoArgs,
	RunE:  runImport,
}

func init() {
	for _, c := range []*cobra.Command{dumpCmd, restoreCmd, exportCmd, importCmd} {
		c.Flags().StringVarP(&collection, "collection", "c", "", "Collection name")
		c.Flags().BoolVar(&printCommand, "print-command", false, "Print the equivalent MongoDB database tools command and exit")
	}
	for _, c := range []*cobra.Command{dumpCmd, restoreCmd} {
		c.Flags().BoolVar(&gzipFiles, "gzip", false, "Compress or decompress each file with gzip")
		c.Flags().StringVarP(&username, "username", "u", "", "Username rendered into --print-command output")
		c.Flags().StringVarP(&password, "password", "p", "", "Password rendered into --print-command output")
		c.Flags().StringVar(&authDB, "authentication-database", "", "Authentication database rendered into --print-command output")
	}
	for _, c := range []*cobra.Command{dumpCmd, exportCmd} {
		c.Flags().StringVarP(&query, "query", "q", "", "Extended JSON filter, e.g. '{\"status\":\"active\"}'")
	}
	for _, c := range []*cobra.Command{restoreCmd, importCmd} {
		c.Flags().BoolVar(&drop, "drop", false, "Drop each collection before writing")
	}
	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().StringVar(&format, "type", backup.FormatJSON, "File format: json or csv")
		c.Flags().BoolVar(&jsonArray, "jsonArray", false, "Treat the file as a single JSON array")
		c.MarkFlagRequired("collection")
	}

	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", defaultDumpDir, "Output directory")
	dumpCmd.Flags().StringVar(&archive, "archive", "", "Archive file (--print-command only)")
	dumpCmd.Flags().BoolVar(&oplog, "oplog", false, "Capture the oplog (--print-command only)")

	restoreCmd.Flags().StringVar(&restoreDir, "dir", "", "Database directory of a dump (default dump/<DB_NAME>)")
	restoreCmd.Flags().StringVar(&archive, "archive", "", "Archive file (--print-command only)")
	restoreCmd.Flags().BoolVar(&oplogReplay, "oplogReplay", false, "Replay the oplog (--print-command only)")

	exportCmd.Flags().StringVarP(&file, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVarP(&fields, "fields", "f", "", "Comma separated field list, required for csv")
	exportCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	exportCmd.Flags().StringVar(&jsonFormat, "jsonFormat", "relaxed", "Extended JSON mode: relaxed or canonical")

	importCmd.Flags().StringVar(&file, "file", "", "Input file (default stdin)")
	importCmd.Flags().BoolVar(&headerLine, "headerline", false, "Use the first CSV line as field names")
}

// parseQuery reads a relaxed extended JSON filter. An empty string means no filter.
func parseQuery(s string) (bson.D, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var q bson.D
	if err := bson.UnmarshalExtJSON([]byte(s), false, &q); err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	return q, nil
}

func splitFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func authFlags() *backup.Auth {
	if username == "" {
		return nil
	}
	return &backup.Auth{Username: username, Password: password, AuthDB: authDB}
}

func printSummaryJSON(w io.Writer, s *backup.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func dumpOptions() (backup.DumpOptions, error) {
	q, err := parseQuery(query)
	if err != nil {
		return backup.DumpOptions{}, err
	}
	return backup.DumpOptions{
		Out:        dumpOut,
		Collection: collection,
		Query:      q,
		Gzip:       gzipFiles,
		Archive:    archive,
		Oplog:      oplog,
		Auth:       authFlags(),
	}, nil
}

func runDump(cmd *cobra.Command, args []string) error {
	opts, err := dumpOptions()
	if err != nil {
		return err
	}
	if printCommand {
		fmt.Fprintln(cmd.OutOrStdout(), backup.FormatCommand(backup.DumpCommand(cfg.DBName, opts)))
		return nil
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	a, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	summary, err := a.backups.Dump(ctx, opts)
	if err != nil {
		return err
	}
	return printSummaryJSON(cmd.OutOrStdout(), summary)
}

func restoreOptions() backup.RestoreOptions {
	dir := restoreDir
	if dir == "" && archive == "" {
		dir = filepath.Join(defaultDumpDir, cfg.DBName)
	}
	return backup.RestoreOptions{
		Dir:         dir,
		Collection:  collection,
		Drop:        drop,
		Gzip:        gzipFiles,
		Archive:     archive,
		OplogReplay: oplogReplay,
		Auth:        authFlags(),
	}
}

func runRestore(cmd *cobra.Command, args []string) error {
	opts := restoreOptions()
	if printCommand {
		fmt.Fprintln(cmd.OutOrStdout(), backup.FormatCommand(backup.RestoreCommand(cfg.DBName, opts)))
		return nil
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	a, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	summary, err := a.backups.Restore(ctx, opts)
	if err != nil {
		return err
	}
	return printSummaryJSON(cmd.OutOrStdout(), summary)
}

func exportOptions() (backup.ExportOptions, error) {
	q, err := parseQuery(query)
	if err != nil {
		return backup.ExportOptions{}, err
	}
	if jsonFormat != "relaxed" && jsonFormat != "canonical" {
		return backup.ExportOptions{}, fmt.Errorf("invalid --jsonFormat %q: want relaxed or canonical", jsonFormat)
	}
	return backup.ExportOptions{
		Collection: collection,
		Out:        file,
		Query:      q,
		Format:     format,
		Fields:     splitFields(fields),
		Pretty:     pretty,
		JSONArray:  jsonArray,
		Canonical:  jsonFormat == "canonical",
	}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := exportOptions()
	if err != nil {
		return err
	}
	if printCommand {
		fmt.Fprintln(cmd.OutOrStdout(), backup.FormatCommand(backup.ExportCommand(cfg.DBName, opts)))
		return nil
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	a, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	if opts.Out == "" {
		summary, err := a.backups.Export(ctx, opts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		logger.Info("export finished", "collection", opts.Collection, "documents", summary.Total())
		return nil
	}

	summary, err := exportToFile(ctx, a.backups, opts)
	if err != nil {
		return err
	}
	logger.Info("export finished", "collection", opts.Collection, "documents", summary.Total(), "file", opts.Out)
	return nil
}

type exporter interface {
	Export(ctx context.Context, opts backup.ExportOptions, w io.Writer) (*backup.Summary, error)
}

// exportToFile writes the export to opts.Out, reporting the close error.
func exportToFile(ctx context.Context, e exporter, opts backup.ExportOptions) (*backup.Summary, error) {
	f, err := os.Create(opts.Out)
	if err != nil {
		return nil, err
	}
	summary, err := e.Export(ctx, opts, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", opts.Out, err)
	}
	return summary, nil
}

func importOptions() backup.ImportOptions {
	return backup.ImportOptions{
		Collection: collection,
		File:       file,
		Format:     format,
		JSONArray:  jsonArray,
		HeaderLine: headerLine,
		Drop:       drop,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	opts := importOptions()
	if printCommand {
		fmt.Fprintln(cmd.OutOrStdout(), backup.FormatCommand(backup.ImportCommand(cfg.DBName, opts)))
		return nil
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	a, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	r := cmd.InOrStdin()
	if opts.File != "" {
		f, err := os.Open(opts.File)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	summary, err := a.backups.Import(ctx, opts, r)
	if err != nil {
		return err
	}
	return printSummaryJSON(cmd.OutOrStdout(), summary)
}
