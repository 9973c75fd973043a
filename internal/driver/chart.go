package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"knitchart/internal/diag"
	"knitchart/internal/observ"
	"knitchart/internal/pattern"
	"knitchart/internal/source"
	"knitchart/internal/trace"
)

// ChartResult is the outcome of charting one pattern file. Grid is nil
// when the pattern failed; the failure is then the error diagnostic in Bag.
type ChartResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Lines   []string
	Rows    [][]string // expanded token rows, nil if expansion failed
	Grid    *pattern.Grid
	Bag     *diag.Bag
	Timer   *observ.Timer
	Cached  bool
}

// OK reports whether the file produced a chart.
func (r *ChartResult) OK() bool {
	return r != nil && r.Grid != nil && !r.Bag.HasErrors()
}

// Chart loads path and charts it. The returned error is non-nil only when
// the file cannot be read; pattern problems land in the result's Bag.
func Chart(ctx context.Context, path string, opts Options) (*ChartResult, error) {
	opts = opts.withDefaults()
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	timer := observ.NewTimer()

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file:"+path, trace.CurrentSpan(ctx))
	load := timer.Begin(string(StageLoad))
	fileID, err := fs.Load(path)
	timer.End(load, "")
	if err != nil {
		span.End("load failed")
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	res, err := chartFile(trace.WithSpan(ctx, span), path, fs, fileID, timer, opts)
	span.End(resultDetail(res))
	return res, err
}

// ChartSource charts in-memory content, e.g. stdin, under a virtual name.
func ChartSource(ctx context.Context, name string, content []byte, opts Options) (*ChartResult, error) {
	opts = opts.withDefaults()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return chartFile(ctx, name, fs, fileID, observ.NewTimer(), opts)
}

// chartFile runs expansion, validation and resolution over an already
// loaded file; name is the path as the caller spelled it. It only reads fs,
// so callers may run it concurrently for different files of one FileSet.
func chartFile(ctx context.Context, name string, fs *source.FileSet, id source.FileID, timer *observ.Timer, opts Options) (*ChartResult, error) {
	file := fs.Get(id)
	res := &ChartResult{
		Path:    name,
		FileSet: fs,
		File:    file,
		Lines:   file.Lines(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   timer,
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	key := CacheKey(file.Hash, opts.Vocabulary.Fingerprint(), opts.MaxTokens)
	if hit, err := lookupCache(opts.Cache, key, res); err != nil {
		trace.Point(tracer, trace.ScopeError, "cache", parent, err.Error())
	} else if hit {
		trace.Point(tracer, trace.ScopeFile, "cache hit", parent, res.Path)
		emit(opts.Progress, Event{File: res.Path, Stage: StageResolve, Status: StatusDone})
		return res, nil
	}

	popts := opts.patternOptions()

	expand := timer.Begin(string(StageExpand))
	emit(opts.Progress, Event{File: res.Path, Stage: StageExpand, Status: StatusWorking})
	rows, err := pattern.Expand(res.Lines, popts)
	timer.End(expand, fmt.Sprintf("%d rows", len(rows)))
	if err != nil {
		return res, reportFailure(res, err, opts.Progress, StageExpand)
	}
	res.Rows = rows
	for i, row := range rows {
		trace.Point(tracer, trace.ScopeRow, fmt.Sprintf("row %d", i+1), parent, fmt.Sprintf("%d stitches", len(row)))
	}

	resolve := timer.Begin(string(StageResolve))
	emit(opts.Progress, Event{File: res.Path, Stage: StageResolve, Status: StatusWorking})
	if err = pattern.CheckRowLengths(rows); err == nil {
		res.Grid, err = pattern.Resolve(rows, opts.Vocabulary)
	}
	timer.End(resolve, "")
	if err != nil {
		return res, reportFailure(res, err, opts.Progress, StageResolve)
	}

	if err := storeCache(opts.Cache, key, res); err != nil {
		trace.Point(tracer, trace.ScopeError, "cache", parent, err.Error())
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageResolve, Status: StatusDone})
	return res, nil
}

// reportFailure turns a pattern error into a diagnostic. Anything that is
// not a *pattern.Error is returned to the caller.
func reportFailure(res *ChartResult, err error, sink ProgressSink, stage Stage) error {
	var perr *pattern.Error
	if !errors.As(err, &perr) {
		emit(sink, Event{File: res.Path, Stage: stage, Status: StatusError, Err: err})
		return err
	}
	reportPatternError(diag.BagReporter{Bag: res.Bag}, res.File, perr)
	emit(sink, Event{File: res.Path, Stage: stage, Status: StatusError, Err: err})
	return nil
}

func resultDetail(res *ChartResult) string {
	switch {
	case res == nil:
		return "failed"
	case res.OK():
		return fmt.Sprintf("%dx%d", res.Grid.Rows(), res.Grid.Cols())
	default:
		return "diagnostics"
	}
}
