package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mdcheck/internal/checks"
	"mdcheck/internal/checks/md"
	"mdcheck/internal/config"
	"mdcheck/internal/loader"
	"mdcheck/internal/messages"
	"mdcheck/internal/metrics"
	"mdcheck/internal/model"
	"mdcheck/internal/output"
)

// Exit codes.
const (
	ExitClean   = 0
	ExitIssues  = 1
	ExitDefects = 2
	ExitFatal   = 3
)

func exitCodeForRun(fatal, defects, issues bool) int {
	// 0 = clean run, no issues
	// 1 = issues found
	// 2 = defects (some checks errored or panicked)
	// 3 = fatal error (pass did not run to completion)
	if fatal {
		return ExitFatal
	}
	if defects {
		return ExitDefects
	}
	if issues {
		return ExitIssues
	}
	return ExitClean
}

func setupOutputManager(cfg *config.Config, described []output.CheckInfo) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat, described)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func describeChecks(configured []ConfiguredCheck) []output.CheckInfo {
	out := make([]output.CheckInfo, 0, len(configured))
	for _, cc := range configured {
		out = append(out, output.CheckInfo{
			ID:          cc.Check.ID(),
			Title:       cc.Check.Title(),
			Description: cc.Check.Description(),
			Severity:    cc.Severity,
		})
	}
	return out
}

type Engine struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// NewRegistry builds the installed checks from the message catalog.
	// If nil, Engine uses md.NewRegistry.
	NewRegistry func(cat *messages.Catalog) *checks.Registry

	// The loader is kept across runs so watch mode only re-reads changed
	// files. It is rebuilt when the file selection changes.
	mu        sync.Mutex
	loader    *loader.Loader
	loaderKey string
}

func NewEngine(logger *zap.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Logger: logger, Metrics: m}
}

func (e *Engine) registry(cat *messages.Catalog) *checks.Registry {
	if e.NewRegistry != nil {
		return e.NewRegistry(cat)
	}
	return md.NewRegistry(cat)
}

func (e *Engine) loaderFor(opts loader.Options) *loader.Loader {
	key := strings.Join(opts.Include, ",") + "|" + strings.Join(opts.Exclude, ",") + "|" + fmt.Sprint(opts.Concurrency)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loader == nil || e.loaderKey != key {
		e.loader = loader.New(opts, e.Logger.Named("loader"))
		e.loaderKey = key
	}
	return e.loader
}

func loadCatalog(cfg *config.Config) (*messages.Catalog, error) {
	cat, err := messages.Load(cfg.Checks.Lang)
	if err != nil {
		return nil, err
	}
	if cfg.Checks.Messages != "" {
		return cat.WithOverridesFile(cfg.Checks.Messages)
	}
	return cat, nil
}

// prepared is everything resolved before the first object is evaluated.
type prepared struct {
	configured []ConfiguredCheck
	plan       *ValidationPlan
}

func (e *Engine) prepare(ctx context.Context, cfg *config.Config) (*prepared, error) {
	settingsPath, err := config.FindSettings(cfg.Project.Root, cfg.Project.Settings)
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	if settingsPath != "" {
		e.Logger.Info("settings loaded", zap.String("path", settingsPath))
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	configured, err := ConfigureChecks(e.registry(cat), cfg.Checks.Selector, settings, cfg.Checks.Set)
	if err != nil {
		return nil, err
	}
	e.Logger.Info("checks resolved", zap.Int("checks", len(configured)))

	ld := e.loaderFor(loader.Options{
		Include:     append(append([]string(nil), cfg.Project.Files...), settings.Files.Include...),
		Exclude:     append(append([]string(nil), cfg.Project.Skip...), settings.Files.Skip...),
		Concurrency: cfg.Runtime.Concurrency,
	})
	loaded, err := ld.Load(ctx, cfg.Project.Root)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	objects := FilterObjects(loaded.Snapshot.Objects(), cfg)
	e.Logger.Info("project loaded",
		zap.String("root", cfg.Project.Root),
		zap.Int("files", loaded.Files),
		zap.Int("cache_hits", loaded.CacheHits),
		zap.Int("objects", loaded.Snapshot.Len()),
		zap.Int("selected", len(objects)),
	)

	plan := NewValidationPlan()
	for _, obj := range objects {
		if err := plan.AddObject(obj, loaded.Sources[obj.FQN()], configured); err != nil {
			return nil, fmt.Errorf("plan %s: %w", obj.FQN(), err)
		}
	}
	return &prepared{configured: configured, plan: plan}, nil
}

// passStats accumulates the outcome of a pass as results are written.
type passStats struct {
	objects int
	issues  int
	defects int
}

// writeObject writes one object's lifecycle events and results.
func writeObject(outMgr *output.Manager, res ObjectResult, st *passStats) {
	fqn := res.Plan.Object.FQN()
	_ = outMgr.Write(output.Event{Type: output.EventObjectStarted, Object: fqn, Source: res.Plan.Source})
	for _, r := range res.Results {
		_ = outMgr.Write(r)
	}
	n := res.IssueCount()
	_ = outMgr.Write(output.Event{Type: output.EventObjectFinished, Object: fqn, IssueCount: n, Defects: len(res.Defects)})

	st.objects++
	st.issues += n
	st.defects += len(res.Defects)
}

// evaluateStreamingResults receives per-object results from the scheduler
// and forwards them to the sinks in plan order, buffering objects that
// finish early.
func evaluateStreamingResults(resCh <-chan ObjectResult, outMgr *output.Manager) passStats {
	var st passStats
	pending := make(map[int]ObjectResult)
	next := 0
	for res := range resCh {
		pending[res.Index] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			writeObject(outMgr, r, &st)
			next++
		}
	}
	return st
}

// Run executes one validation pass and returns the process exit code.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, cfg.Runtime.Timeout)
	defer cancel()

	code := e.run(ctx, cfg)

	e.Metrics.PassFinished(time.Since(started), code)
	if cfg.Output.MetricsOut != "" && e.Metrics != nil {
		if err := e.Metrics.WriteTextfile(cfg.Output.MetricsOut); err != nil {
			e.Logger.Error("writing metrics failed", zap.Error(err))
		}
	}
	return code
}

func (e *Engine) run(ctx context.Context, cfg *config.Config) int {
	e.Logger.Info("validation started", zap.String("root", cfg.Project.Root))

	p, err := e.prepare(ctx, cfg)
	if err != nil {
		e.Logger.Error("validation aborted", zap.Error(err))
		return exitCodeForRun(true, false, false)
	}

	outMgr, err := setupOutputManager(cfg, describeChecks(p.configured))
	if err != nil {
		e.Logger.Error("creating output sinks failed", zap.Error(err))
		return exitCodeForRun(true, false, false)
	}
	defer func() {
		if err := outMgr.Close(); err != nil {
			e.Logger.Error("closing output sinks failed", zap.Error(err))
		}
	}()

	runID := uuid.NewString()
	_ = outMgr.Write(output.Event{
		Type:    output.EventRunStarted,
		RunID:   runID,
		Objects: len(p.plan.ObjectPlans),
		Checks:  p.plan.CheckCount(),
		Command: buildReproduceCommand(cfg),
	})

	var minSeverity checks.Severity
	if cfg.Checks.MinSeverity != "" {
		minSeverity = checks.Severity(cfg.Checks.MinSeverity)
	}
	evaluator := NewEvaluator(e.Logger, e.Metrics, minSeverity, cfg.Checks.Trace)

	var st passStats
	var schedErr error
	scheduler, err := NewScheduler(evaluator, cfg.Runtime.Concurrency)
	if err != nil {
		schedErr = err
	} else {
		resCh, errCh := scheduler.Execute(ctx, p.plan)
		st = evaluateStreamingResults(resCh, outMgr)
		// Drain scheduler errors; keep one non-nil error.
		for err := range errCh {
			if err != nil {
				schedErr = err
			}
		}
	}

	fatal := schedErr != nil
	if fatal {
		if errors.Is(schedErr, context.DeadlineExceeded) {
			e.Logger.Error("validation timed out", zap.Duration("timeout", cfg.Runtime.Timeout))
		} else {
			e.Logger.Error("validation aborted", zap.Error(schedErr))
		}
	}

	code := exitCodeForRun(fatal, st.defects > 0, st.issues > 0)
	_ = outMgr.Write(output.Event{
		Type:       output.EventRunFinished,
		RunID:      runID,
		Objects:    st.objects,
		Checks:     p.plan.CheckCount(),
		IssueCount: st.issues,
		Defects:    st.defects,
		ExitCode:   code,
	})

	e.Logger.Info("validation finished",
		zap.String("run_id", runID),
		zap.Int("objects", st.objects),
		zap.Int("invocations", p.plan.Invocations()),
		zap.Int("issues", st.issues),
		zap.Int("defects", st.defects),
		zap.Int("exit_code", code),
	)
	return code
}

// Validate runs the configured checks over an in-memory snapshot, without
// loading files or writing to sinks. Results are returned in FQN order.
func Validate(ctx context.Context, snap *model.Snapshot, configured []ConfiguredCheck, concurrency int) ([]checks.Result, error) {
	plan := NewValidationPlan()
	for _, obj := range snap.Objects() {
		if err := plan.AddObject(obj, "", configured); err != nil {
			return nil, err
		}
	}
	scheduler, err := NewScheduler(NewEvaluator(nil, nil, "", false), concurrency)
	if err != nil {
		return nil, err
	}

	resCh, errCh := scheduler.Execute(ctx, plan)
	byIndex := make([][]checks.Result, len(plan.ObjectPlans))
	for res := range resCh {
		byIndex[res.Index] = res.Results
	}
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	var out []checks.Result
	for _, rs := range byIndex {
		out = append(out, rs...)
	}
	return out, nil
}
