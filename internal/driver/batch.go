package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"knitchart/internal/diag"
	"knitchart/internal/observ"
	"knitchart/internal/source"
	"knitchart/internal/trace"
)

// PatternExtensions are the file suffixes ChartDir picks up.
var PatternExtensions = []string{".knit", ".txt"}

// BatchResult holds the charts of a multi-file run, in input order.
type BatchResult struct {
	FileSet *source.FileSet
	Files   []*ChartResult
	Timer   *observ.Timer // all files merged
}

// HasErrors reports whether any file produced an error diagnostic.
func (b *BatchResult) HasErrors() bool {
	for _, f := range b.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Bag merges the diagnostics of every file, sorted.
func (b *BatchResult) Bag() *diag.Bag {
	merged := diag.NewBag(1)
	for _, f := range b.Files {
		merged.Merge(f.Bag)
	}
	merged.Sort()
	return merged
}

// ListPatternFiles returns the pattern files under dir, sorted.
func ListPatternFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isPatternFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func isPatternFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range PatternExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ChartDir charts every pattern file under dir in parallel.
func ChartDir(ctx context.Context, dir string, opts Options) (*BatchResult, error) {
	files, err := ListPatternFiles(dir)
	if err != nil {
		return nil, err
	}
	return ChartFiles(ctx, dir, files, opts)
}

// ChartFiles charts paths in parallel with at most opts.Jobs workers.
// Files are loaded up front into one FileSet rooted at baseDir; a file that
// cannot be read gets an IO4001 diagnostic instead of failing the run.
func ChartFiles(ctx context.Context, baseDir string, paths []string, opts Options) (*BatchResult, error) {
	opts = opts.withDefaults()
	fileSet := source.NewFileSetWithBase(baseDir)
	batch := &BatchResult{
		FileSet: fileSet,
		Files:   make([]*ChartResult, len(paths)),
		Timer:   observ.NewTimer(),
	}
	if len(paths) == 0 {
		return batch, nil
	}

	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "chart-files", trace.CurrentSpan(ctx))
	defer root.End("")

	for _, path := range paths {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен на запись: грузим всё заранее
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make([]error, len(paths))
	load := batch.Timer.Begin(string(StageLoad))
	for i, path := range paths {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		if loadErrors[i] != nil {
			// пустая запись, чтобы у диагностики был путь
			fileIDs[i] = fileSet.Add(path, nil, source.FileVirtual)
		}
	}
	batch.Timer.End(load, "")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(trace.WithSpan(ctx, root))
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: fileIDs[i]},
					"failed to load file: "+loadErr.Error()).Emit()
				// индекс i уникален для горутины, мьютекс не нужен
				batch.Files[i] = &ChartResult{Path: path, FileSet: fileSet, File: fileSet.Get(fileIDs[i]), Bag: bag, Timer: observ.NewTimer()}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			span := trace.Begin(tracer, trace.ScopeFile, "file:"+path, root.ID())
			res, err := chartFile(trace.WithSpan(gctx, span), path, fileSet, fileIDs[i], observ.NewTimer(), opts)
			span.End(resultDetail(res))
			if err != nil {
				return err
			}
			batch.Files[i] = res
			batch.Timer.Merge(res.Timer)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batch, err
	}
	return batch, nil
}
