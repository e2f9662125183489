package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"typedjs/internal/diag"
	"typedjs/internal/source"
	"typedjs/internal/trace"
)

// FileEvent reports one finished file of a directory run.
type FileEvent struct {
	Index  int // position in the sorted file list
	Total  int
	Result *Result
}

type ProgressFunc func(FileEvent)

// SourceExts are the extensions picked up by directory runs.
var SourceExts = []string{".tjs", ".ts.js", ".js"}

func isSource(path string) bool {
	for _, ext := range SourceExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ListSources returns every source file under dir in sorted order,
// skipping hidden directories and node_modules.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if isSource(path) {
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

// DesugarDir runs the pipeline over every source file under dir. Results
// come back in ListSources order whatever the scheduling was.
func DesugarDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*Result, error) {
	files, err := ListSources(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "desugar-dir", trace.ParentFromContext(ctx))
	defer span.End(fmt.Sprintf("%d files", len(files)))
	ctx = trace.WithParent(ctx, span.ID())

	// FileSet заполняется заранее: воркеры его только читают
	ids := make([]source.FileID, len(files))
	results := make([]*Result, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			results[i] = loadFailure(fileSet, path, err, opts.MaxDiagnostics)
			continue
		}
		ids[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		if results[i] != nil {
			notify(opts.Progress, i, len(files), results[i])
			continue
		}
		g.Go(func() error {
			res, err := desugarLoaded(gctx, fileSet, ids[i], opts)
			if err != nil {
				return err
			}
			results[i] = res
			notify(opts.Progress, i, len(files), res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, nil, err
	}
	return fileSet, results, nil
}

func notify(fn ProgressFunc, i, total int, res *Result) {
	if fn != nil {
		fn(FileEvent{Index: i, Total: total, Result: res})
	}
}

func loadFailure(fs *source.FileSet, path string, err error, maxDiags int) *Result {
	// пустой виртуальный файл, чтобы у диагностики был валидный span
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(maxDiags)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, fmt.Sprintf("failed to load %s: %v", path, err)))
	return &Result{Path: path, FileSet: fs, FileID: id, Bag: bag}
}

// Summary totals the stats of a directory run.
func Summary(results []*Result) (total Stats, errors, warnings int) {
	for _, r := range results {
		total.Sites += r.Stats.Sites
		total.Ctors += r.Stats.Ctors
		total.Classes += r.Stats.Classes
		total.Fields += r.Stats.Fields
		total.Failed += r.Stats.Failed
		total.Changes += r.Stats.Changes
		for _, d := range r.Bag.Items() {
			switch {
			case d.Severity >= diag.SevError:
				errors++
			case d.Severity == diag.SevWarning:
				warnings++
			}
		}
	}
	return total, errors, warnings
}
