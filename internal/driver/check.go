package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"conform/internal/ast"
	"conform/internal/diag"
	"conform/internal/javaparse"
	"conform/internal/observ"
	"conform/internal/source"
	"conform/internal/trace"
	"conform/internal/validate"
)

// ErrNoValidator is returned when Options carries no validator.
var ErrNoValidator = errors.New("driver: no validator")

// Options configures a check run.
type Options struct {
	Validator *validate.Validator
	Jobs      int                   // <= 0 means GOMAXPROCS
	Exclude   func(rel string) bool // directory runs only
	Progress  ProgressSink
	Timer     *observ.Timer
	Cache     *DiskCache // nil disables result caching
	KeepTrees bool       // retain syntax trees on the results; bypasses the cache
	// Heartbeat is the interval of progress beats on the tracer; 0 disables.
	Heartbeat time.Duration
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path     string
	FileID   source.FileID
	Problems []diag.Problem
	Err      error     // I/O, snapshot or syntax error; Problems is empty then
	Tree     *ast.Tree // only with Options.KeepTrees
	Cached   bool      // problems came from the disk cache
}

// Result holds per-file outcomes in sorted path order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Problems concatenates the problems of all files in file order.
func (r *Result) Problems() []diag.Problem {
	if r == nil {
		return nil
	}
	var out []diag.Problem
	for _, f := range r.Files {
		out = append(out, f.Problems...)
	}
	return out
}

// ProblemCount returns the total number of problems.
func (r *Result) ProblemCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, f := range r.Files {
		n += len(f.Problems)
	}
	return n
}

// Err combines the per-file errors, each prefixed with its path.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
	}
	return errs
}

// OK reports whether every file was checked and conforms.
func (r *Result) OK() bool {
	return r.ProblemCount() == 0 && r.Err() == nil
}

// Check validates path, which may be a single file or a directory.
func Check(ctx context.Context, path string, opts Options) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return CheckDir(ctx, path, opts)
	}
	return CheckFiles(ctx, filepath.Dir(path), []string{path}, opts)
}

// CheckDir validates every *.java and *.jtree file under dir.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	files, err := ListFiles(dir, opts.Exclude)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, dir, files, opts)
}

// CheckFiles validates paths concurrently. Results keep the order of paths
// regardless of scheduling. Per-file failures are recorded on the file's
// result; the returned error is reserved for cancellation and misuse.
func CheckFiles(ctx context.Context, baseDir string, paths []string, opts Options) (*Result, error) {
	if opts.Validator == nil {
		return nil, ErrNoValidator
	}
	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeDriver, "check", trace.SpanFrom(ctx))
	defer run.End(strconv.Itoa(len(paths)) + " files")

	fileSet := source.NewFileSetWithBase(baseDir)
	result := &Result{FileSet: fileSet, Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return result, nil
	}

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Загрузка последовательная: FileSet не допускает конкурентной записи.
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", run.ID())
	loadIdx := opts.Timer.Begin(observ.PhaseLoad)
	units := make([]unit, len(paths))
	for i, path := range paths {
		units[i] = loadUnit(fileSet, path)
	}
	opts.Timer.End(loadIdx, strconv.Itoa(len(paths))+" files")
	loadSpan.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var fingerprint *Digest
	if opts.Cache != nil && !opts.KeepTrees {
		fp := Fingerprint(opts.Validator)
		fingerprint = &fp
	}

	passSpan := trace.Begin(tracer, trace.ScopePass, "validate", run.ID())
	defer passSpan.End("")

	var validated atomic.Int64
	beat := trace.StartHeartbeat(tracer, opts.Heartbeat, passSpan.ID(), func() string {
		return fmt.Sprintf("%d/%d files validated", validated.Load(), len(units))
	})
	defer beat.Stop()

	g, gctx := errgroup.WithContext(trace.WithSpan(ctx, passSpan))
	g.SetLimit(min(jobs, len(paths)))

	for i := range units {
		g.Go(func() error {
			// Проверка отмены между файлами
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			result.Files[i] = checkUnit(gctx, fileSet, units[i], fingerprint, opts)
			validated.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

func checkUnit(ctx context.Context, fileSet *source.FileSet, u unit, fingerprint *Digest, opts Options) FileResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+u.path, trace.SpanFrom(ctx))
	res := FileResult{Path: u.path, FileID: u.id}
	started := time.Now()

	fail := func(stage Stage, err error) FileResult {
		res.Err = err
		span.End("error: " + err.Error())
		emit(opts.Progress, Event{File: u.path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}

	if u.err != nil {
		return fail(StageLoad, u.err)
	}

	finish := func() FileResult {
		span.WithExtra("problems", strconv.Itoa(len(res.Problems))).
			WithExtra("cached", strconv.FormatBool(res.Cached)).End("")
		emit(opts.Progress, Event{
			File:     u.path,
			Stage:    StageValidate,
			Status:   StatusDone,
			Elapsed:  time.Since(started),
			Problems: len(res.Problems),
		})
		return res
	}

	// снапшоты не кешируются: их дерево не выводится из текста
	var key Digest
	useCache := fingerprint != nil && u.snap == nil
	if useCache {
		key = cacheKey(*fingerprint, fileSet.Get(u.id).Hash)
		if cached, ok, err := opts.Cache.Get(key); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", "read error: "+err.Error(), span.ID())
		} else if ok {
			res.Problems = fromCached(cached, u.id)
			res.Cached = true
			return finish()
		}
	}

	emit(opts.Progress, Event{File: u.path, Stage: StageParse, Status: StatusWorking})
	var p *javaparse.Parser
	if u.snap == nil {
		// tree-sitter parsers are not goroutine-safe: one per task
		p = javaparse.NewParser()
		defer p.Close()
	}
	parseStart := time.Now()
	tree, err := parseUnit(ctx, p, fileSet, u)
	opts.Timer.Add(observ.PhaseParse, time.Since(parseStart))
	if err != nil {
		return fail(StageParse, err)
	}

	emit(opts.Progress, Event{File: u.path, Stage: StageValidate, Status: StatusWorking})
	validateStart := time.Now()
	reporter := diag.NewProblemReporter(0)
	opts.Validator.Validate(tree.RootRef(), reporter)
	opts.Timer.Add(observ.PhaseValidate, time.Since(validateStart))

	res.Problems = reporter.Problems()
	if opts.KeepTrees {
		res.Tree = tree
	}
	if useCache {
		if err := opts.Cache.Put(key, toCached(res.Problems)); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache", "write error: "+err.Error(), span.ID())
		}
	}
	return finish()
}
