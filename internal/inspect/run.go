package inspect

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"irkit/internal/fixture"
	"irkit/internal/native"
	"irkit/internal/trace"
)

// Options configures Run.
type Options struct {
	Jobs     int          // parallel loads; <= 0 uses GOMAXPROCS
	Progress ProgressSink // optional
	// Load replaces fixture.Load, mostly for tests.
	Load func(path string) (*native.Context, error)
}

// Report is the result of inspecting a set of sources, in input order.
type Report struct {
	Modules []ModuleReport `json:"modules"`
}

// Failed reports whether any source failed to load or classify.
func (r *Report) Failed() bool {
	for _, m := range r.Modules {
		if m.Err != "" {
			return true
		}
	}
	return false
}

// Run loads every source and inspects each of its modules. Sources are
// independent: each goroutine loads into its own context, so nothing native
// is shared. A source that fails to load is reported in its ModuleReport and
// does not stop the others; only cancellation aborts the run.
func Run(ctx context.Context, sources []string, opts Options) (*Report, error) {
	load := opts.Load
	if load == nil {
		load = fixture.Load
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "inspect", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	for _, src := range sources {
		emit(opts.Progress, Event{Source: src, Stage: StageLoad, Status: StatusQueued})
	}

	// Indices are unique per goroutine, so results need no lock.
	results := make([][]ModuleReport, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(sources))))
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			emit(opts.Progress, Event{Source: src, Stage: StageLoad, Status: StatusWorking})
			c, err := load(src)
			if err != nil {
				trace.Failure(tr, trace.ScopeModule, "load", err.Error(), span.ID())
				emit(opts.Progress, Event{Source: src, Stage: StageLoad, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				results[i] = []ModuleReport{{Source: src, Err: err.Error()}}
				return nil
			}

			emit(opts.Progress, Event{Source: src, Stage: StageClassify, Status: StatusWorking})
			mods := c.Modules()
			reps := make([]ModuleReport, 0, len(mods))
			count := 0
			for _, m := range mods {
				rep, err := Module(gctx, m, src)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					rep.Err = err.Error()
				}
				count += len(rep.Rows)
				reps = append(reps, rep)
			}
			if len(mods) == 0 {
				reps = append(reps, ModuleReport{Source: src, Context: c.ID().String(), Err: "no modules"})
			}
			results[i] = reps

			status := StatusDone
			var failure error
			for _, r := range reps {
				if r.Err != "" {
					status, failure = StatusError, errors.New(r.Err)
					break
				}
			}
			emit(opts.Progress, Event{Source: src, Stage: StageClassify, Status: status, Err: failure, Values: count, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{}
	for _, r := range results {
		rep.Modules = append(rep.Modules, r...)
	}
	span.WithExtra("modules", fmt.Sprint(len(rep.Modules)))
	return rep, nil
}
