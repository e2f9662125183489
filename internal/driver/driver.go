// Package driver runs the desugaring pipeline over files and directories.
package driver

import (
	"context"
	"fmt"

	"typedjs/internal/annotate"
	"typedjs/internal/ast"
	"typedjs/internal/ctor"
	"typedjs/internal/diag"
	"typedjs/internal/hoist"
	"typedjs/internal/observ"
	"typedjs/internal/parser"
	"typedjs/internal/printer"
	"typedjs/internal/project"
	"typedjs/internal/source"
	"typedjs/internal/trace"
)

type Options struct {
	MaxDiagnostics int
	// SynthesizeCtor adds a constructor to every class; otherwise only
	// classes with fields get one.
	SynthesizeCtor bool
	Print          printer.Options
	Timings        bool // append an ObsTimings diagnostic per file
	Jobs           int  // DesugarDir parallelism, 0 = GOMAXPROCS
	Cache          *DiskCache
	// Progress is called from worker goroutines once per file.
	Progress ProgressFunc
}

// OptionsFromConfig maps manifest settings onto driver options.
func OptionsFromConfig(cfg project.Config) Options {
	return Options{
		MaxDiagnostics: cfg.Diagnostics.Max,
		SynthesizeCtor: cfg.Desugar.SynthesizeCtor,
		Print: printer.Options{
			PreserveTypes: cfg.Desugar.PreserveTypes,
			KeepDocs:      cfg.Desugar.KeepDocs,
		},
		Jobs: cfg.Build.Jobs,
	}
}

// Stats counts what the passes did to one file.
type Stats struct {
	Sites   int `msgpack:"sites"`
	Ctors   int `msgpack:"ctors"`
	Classes int `msgpack:"classes"`
	Fields  int `msgpack:"fields"`
	Failed  int `msgpack:"failed"`
	Changes int `msgpack:"changes"`
}

type Result struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	// Output is nil when parse or annotation errors stopped the pipeline.
	Output []byte
	Bag    *diag.Bag
	Stats  Stats
	Timing *observ.Report // nil for cached results
	Cached bool
}

// DesugarSource runs the pipeline over an in-memory source.
func DesugarSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return desugarLoaded(ctx, fs, id, opts)
}

// DesugarFile loads path and runs the pipeline over it.
func DesugarFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return desugarLoaded(ctx, fs, id, opts)
}

func desugarLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := fs.Get(id)
	key := cacheKey(file, opts)
	if res, ok := opts.Cache.lookup(key, fs, id, opts.MaxDiagnostics); ok {
		return res, nil
	}
	res := desugar(ctx, fs, id, opts)
	opts.Cache.store(key, res)
	return res, nil
}

// desugar: parse → annotate → ctor → hoist → print.
func desugar(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	tracer := trace.FromContext(ctx)
	file := fs.Get(id)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.ParentFromContext(ctx))

	bag := diag.NewBag(opts.MaxDiagnostics)
	// повторный отчёт о том же месте схлопывается
	r := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	timer := observ.NewTimer()
	b := ast.NewBuilder(ast.Hints{})
	res := &Result{Path: file.Path, FileSet: fs, FileID: id, Bag: bag}

	run := func(name string, fn func() string) {
		sp := trace.Begin(tracer, trace.ScopePass, name, span.ID())
		var note string
		timer.Track(name, func() string {
			note = fn()
			return note
		})
		sp.End(note)
	}

	var fid ast.FileID
	run("parse", func() string {
		fid = parser.ParseFile(fs, id, b, parser.Options{Reporter: r}).File
		return fmt.Sprintf("%d stmts", len(b.Files.Get(fid).Stmts))
	})
	if !bag.HasErrors() {
		run("annotate", func() string {
			ar := annotate.Run(b, fid, file, r)
			res.Stats.Sites = ar.Sites
			return fmt.Sprintf("%d sites", ar.Sites)
		})
	}
	// конфликт синтаксисов типов нарушает предусловие хойстинга
	if !bag.HasErrors() {
		run("ctor", func() string {
			if opts.SynthesizeCtor {
				res.Stats.Ctors = ctor.Synthesize(b, fid)
			} else {
				res.Stats.Ctors = ctor.SynthesizeNeeded(b, fid)
			}
			return fmt.Sprintf("%d added", res.Stats.Ctors)
		})
		run("hoist", func() string {
			counter := hoist.NewChangeCounter()
			hr := hoist.Run(b, fid, hoist.Options{Reporter: r, Sink: counter, Tracer: tracer, ParentID: span.ID()})
			res.Stats.Classes, res.Stats.Fields, res.Stats.Failed = hr.Classes, hr.Fields, hr.Failed
			res.Stats.Changes = counter.Total
			return fmt.Sprintf("%d fields in %d classes", hr.Fields, hr.Classes)
		})
		run("print", func() string {
			out, err := printer.PrintFile(b, fid, opts.Print)
			if err != nil {
				panic(fmt.Errorf("driver: %w", err))
			}
			res.Output = out
			return fmt.Sprintf("%d bytes", len(out))
		})
	}

	report := timer.Report()
	res.Timing = &report
	if opts.Timings {
		appendTimingDiagnostic(bag, timingPayload{Kind: "file", Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}
	span.WithExtra("fields", fmt.Sprint(res.Stats.Fields)).End(fmt.Sprintf("%d diagnostics", bag.Len()))
	return res
}
