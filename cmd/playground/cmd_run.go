package main

import (
	"fmt"
	"io"
	"time"

	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/service"

	"github.com/spf13/cobra"
)

var (
	allowDestructive bool
	clusterMode      bool
	workDir          string
)

var runCmd = &cobra.Command{
	Use:   "run [section...]",
	Short: "Run playground sections against MongoDB",
	Long: `Run executes the named playground sections in order, or all of them when
none are given. Steps that drop data, need a replica set or sharded cluster, or
write files are skipped unless enabled by flag or environment.`,
	RunE: runPlayground,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List playground sections in run order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := service.NewRunner(nil, nil, nil, nil, service.Options{}, logger, nil)
		for _, name := range r.Sections() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "Run steps that drop or overwrite data (ALLOW_DESTRUCTIVE)")
	runCmd.Flags().BoolVar(&clusterMode, "cluster", false, "Run replica set and sharding steps (CLUSTER_MODE)")
	runCmd.Flags().StringVar(&workDir, "work-dir", "", "Directory for backup and export files (WORK_DIR)")
}

func runPlayground(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	opts := runnerOptions(cfg)
	if cmd.Flags().Changed("allow-destructive") {
		opts.AllowDestructive = allowDestructive
	}
	if cmd.Flags().Changed("cluster") {
		opts.Cluster = clusterMode
	}
	if workDir != "" {
		opts.WorkDir = workDir
	}

	a, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close(logger)

	out := cmd.OutOrStdout()
	report, err := a.runner(opts, logger, out).Run(ctx, args...)
	if report != nil {
		printSummary(out, report)
	}
	return err
}

func printSummary(w io.Writer, report *model.RunReport) {
	fmt.Fprintf(w, "\nrun %s: %d ok, %d skipped, %d failed in %s\n",
		report.RunID,
		report.Count(model.StepOK),
		report.Count(model.StepSkipped),
		report.Count(model.StepFailed),
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
	)
}
