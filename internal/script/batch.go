package script

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"symtab/internal/diag"
	"symtab/internal/observ"
	"symtab/internal/symbols"
	"symtab/internal/symfmt"
	"symtab/internal/trace"
)

// Options configure file runs.
type Options struct {
	Table          symbols.Options
	List           symfmt.Opts
	MaxDiagnostics int
	Jobs           int // parallel scripts, 0 = GOMAXPROCS
	CheckOnly      bool
}

// Result is the outcome of one script.
type Result struct {
	Path     string
	Output   []byte
	Bag      *diag.Bag
	Commands int
	Timings  observ.Report
}

// RunFile parses and executes the script at path against a fresh table.
func RunFile(ctx context.Context, path string, opts Options) (res Result) {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	res = Result{Path: path, Bag: bag}
	rep := diag.BagReporter{Bag: bag}
	timer := observ.NewTimer()

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeScript, "script:"+path, trace.CurrentSpan(ctx))
	defer func() {
		res.Timings = timer.Report(path)
		span.WithExtra("commands", fmt.Sprint(res.Commands)).
			WithExtra("diagnostics", fmt.Sprint(bag.Len())).
			End("")
	}()

	f, err := os.Open(path)
	if err != nil {
		diag.ReportError(rep, diag.IOLoadFileError, diag.Pos{File: path}, "failed to load file: "+err.Error())
		return res
	}
	defer f.Close()

	parsePhase := timer.Begin("parse")
	cmds, err := Parse(f, path, rep)
	res.Commands = len(cmds)
	timer.End(parsePhase, fmt.Sprintf("%d commands", len(cmds)))
	if err != nil {
		diag.ReportError(rep, diag.IOLoadFileError, diag.Pos{File: path}, err.Error())
		return res
	}
	if opts.CheckOnly {
		return res
	}

	tableOpts := opts.Table
	tableOpts.Tracer = tracer
	table, err := symbols.NewTable(tableOpts)
	if err != nil {
		diag.ReportError(rep, diag.TblAllocation, diag.Pos{File: path}, err.Error())
		return res
	}
	defer table.Destroy()

	var out bytes.Buffer
	runner := &Runner{Table: table, Out: &out, Reporter: rep, List: opts.List, Label: path}
	execPhase := timer.Begin("execute")
	if err := runner.Run(trace.WithSpan(ctx, span), cmds); err != nil {
		diag.ReportError(rep, diag.UnknownCode, diag.Pos{File: path}, err.Error())
	}
	timer.End(execPhase, fmt.Sprintf("%d entries", table.Len()))
	res.Output = out.Bytes()
	return res
}

// RunFiles runs every script concurrently, each with its own table, and
// returns results in input order.
func RunFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// each index is written by exactly one goroutine
			results[i] = RunFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
