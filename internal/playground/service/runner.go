package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mongoplay/internal/playground/metrics"
	"mongoplay/internal/playground/model"
	"mongoplay/internal/playground/repository"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownSection = errors.New("unknown section")
	ErrSkipped        = errors.New("step skipped")
)

// Gate marks what a step needs before it may run. Steps whose gates are not
// satisfied are reported as skipped.
type Gate uint8

const (
	GateDestructive Gate = 1 << iota
	GateCluster
	GateFilesystem
)

func (g Gate) has(flag Gate) bool { return g&flag != 0 }

type Step struct {
	Name string
	Gate Gate
	Run  func(ctx context.Context) (interface{}, error)
}

type Section struct {
	Name  string
	Title string
	Steps []Step
}

// Options control which gated steps a run may execute.
type Options struct {
	AllowDestructive bool
	Cluster          bool
	// WorkDir receives dump and export files; empty disables those steps.
	WorkDir            string
	ProfileSlowMS      int
	SessionTTL         time.Duration
	UsersCollection    string
	SessionsCollection string
}

func (o Options) withDefaults() Options {
	if o.UsersCollection == "" {
		o.UsersCollection = "users"
	}
	if o.SessionsCollection == "" {
		o.SessionsCollection = "sessions"
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = time.Hour
	}
	if o.ProfileSlowMS <= 0 {
		o.ProfileSlowMS = 100
	}
	return o
}

type PlaygroundService interface {
	Sections() []string
	Run(ctx context.Context, names ...string) (*model.RunReport, error)
	RunSection(ctx context.Context, name string) (*model.RunReport, error)
}

// Runner executes the playground sections in order against one database.
type Runner struct {
	Users   repository.UserRepository
	Indexes repository.IndexRepository
	Admin   repository.AdminRepository
	Backup  BackupService
	Opts    Options
	Logger  *slog.Logger
	Out     io.Writer

	sections []Section
}

func NewRunner(users repository.UserRepository, indexes repository.IndexRepository, admin repository.AdminRepository, backup BackupService, opts Options, logger *slog.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	r := &Runner{
		Users:   users,
		Indexes: indexes,
		Admin:   admin,
		Backup:  backup,
		Opts:    opts.withDefaults(),
		Logger:  logger,
		Out:     out,
	}
	r.sections = r.buildSections()
	return r
}

func (r *Runner) buildSections() []Section {
	return []Section{
		r.createSection(),
		r.readSection(),
		r.updateSection(),
		r.deleteSection(),
		r.advancedSection(),
		r.indexesSection(),
		r.usersSection(),
		r.backupSection(),
		r.maintenanceSection(),
		r.replicationSection(),
		r.shardingSection(),
		r.monitoringSection(),
		r.bulkSection(),
		r.exportSection(),
		referenceSection("security", "15. SECURITY BEST PRACTICES", securityChecklist),
		referenceSection("performance", "16. PERFORMANCE TUNING TIPS", performanceChecklist),
		referenceSection("recovery", "17. DISASTER RECOVERY PROCEDURES", recoveryChecklist),
		r.cleanupSection(),
	}
}

// Sections lists the section names in execution order.
func (r *Runner) Sections() []string {
	names := make([]string, 0, len(r.sections))
	for _, s := range r.sections {
		names = append(names, s.Name)
	}
	return names
}

func (r *Runner) section(name string) (Section, bool) {
	for _, s := range r.sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Run executes the named sections, or all of them when names is empty.
// A failing step is recorded and the run moves on; only context
// cancellation stops it early.
func (r *Runner) Run(ctx context.Context, names ...string) (*model.RunReport, error) {
	selected := r.sections
	if len(names) > 0 {
		selected = make([]Section, 0, len(names))
		for _, name := range names {
			s, ok := r.section(name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownSection, name)
			}
			selected = append(selected, s)
		}
	}

	report := &model.RunReport{RunID: uuid.NewString(), StartedAt: time.Now()}
	r.Logger.Info("playground run started", "run_id", report.RunID, "sections", len(selected))

	for _, s := range selected {
		fmt.Fprintf(r.Out, "\n=== %s ===\n", s.Title)
		for _, step := range s.Steps {
			if err := ctx.Err(); err != nil {
				report.FinishedAt = time.Now()
				return report, err
			}
			res := r.runStep(ctx, s.Name, step)
			report.Steps = append(report.Steps, res)
			r.print(res)
		}
	}

	report.FinishedAt = time.Now()
	r.Logger.Info("playground run finished",
		"run_id", report.RunID,
		"ok", report.Count(model.StepOK),
		"skipped", report.Count(model.StepSkipped),
		"failed", report.Count(model.StepFailed),
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

func (r *Runner) RunSection(ctx context.Context, name string) (*model.RunReport, error) {
	return r.Run(ctx, name)
}

func (r *Runner) skipReason(g Gate) string {
	switch {
	case g.has(GateDestructive) && !r.Opts.AllowDestructive:
		return "destructive step; enable ALLOW_DESTRUCTIVE to run it"
	case g.has(GateCluster) && !r.Opts.Cluster:
		return "needs a replica set or sharded cluster; enable CLUSTER_MODE to run it"
	case g.has(GateFilesystem) && r.Opts.WorkDir == "":
		return "writes files; set WORK_DIR to run it"
	}
	return ""
}

func (r *Runner) runStep(ctx context.Context, section string, step Step) model.StepResult {
	res := model.StepResult{Section: section, Step: step.Name}
	if reason := r.skipReason(step.Gate); reason != "" {
		res.Status = model.StepSkipped
		res.Reason = reason
		metrics.ObserveStep(section, res.Status, 0)
		r.Logger.Debug("step skipped", "section", section, "step", step.Name, "reason", reason)
		return res
	}

	start := time.Now()
	out, err := step.Run(ctx)
	res.Duration = time.Since(start)

	switch {
	case errors.Is(err, ErrSkipped):
		res.Status = model.StepSkipped
		res.Reason = err.Error()
	case err != nil:
		res.Status = model.StepFailed
		res.Error = err.Error()
		r.Logger.Warn("step failed", "section", section, "step", step.Name, "error", err)
	default:
		res.Status = model.StepOK
		res.Result = out
		r.Logger.Info("step completed", "section", section, "step", step.Name, "duration", res.Duration)
	}
	metrics.ObserveStep(section, res.Status, res.Duration)
	return res
}

func (r *Runner) print(res model.StepResult) {
	switch res.Status {
	case model.StepSkipped:
		fmt.Fprintf(r.Out, "-- %s: skipped (%s)\n", res.Step, res.Reason)
		return
	case model.StepFailed:
		fmt.Fprintf(r.Out, "!! %s: %s\n", res.Step, res.Error)
		return
	}

	fmt.Fprintf(r.Out, "> %s\n", res.Step)
	switch v := res.Result.(type) {
	case nil:
	case string:
		fmt.Fprintln(r.Out, v)
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(r.Out, "%v\n", v)
			return
		}
		fmt.Fprintln(r.Out, string(b))
	}
}
