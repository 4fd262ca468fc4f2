package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"vega/internal/diag"
	"vega/internal/observ"
	"vega/internal/sema"
	"vega/internal/source"
)

// Options controls a driver run.
type Options struct {
	Config sema.Config
	// Jobs caps analysis parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, when non-nil, lets clean units skip re-analysis.
	Cache *DiskCache
	// Timings appends an informational timing diagnostic to each unit bag.
	Timings bool
	// Progress, when non-nil, receives per-unit state changes.
	Progress ProgressSink
}

// UnitResult is the outcome of analyzing one unit.
type UnitResult struct {
	Path       string
	SourcePath string
	// Files renders this unit's spans; see Unit.Files.
	Files   *source.FileSet
	Bag     *diag.Bag
	Stats   sema.Snapshot
	Success bool
	Timing  observ.Report
	// Cached is set when the result came from the disk cache.
	Cached bool
}

// AnalyzeUnit runs semantic analysis on a single unit with a fresh analyzer.
func AnalyzeUnit(u Unit, opts Options) UnitResult {
	emit := func(status Status) {
		if opts.Progress != nil {
			opts.Progress.Emit(Event{Path: u.Path, Status: status})
		}
	}
	emit(StatusWorking)
	res := analyzeUnit(u, opts)
	if res.Success {
		emit(StatusDone)
	} else {
		emit(StatusError)
	}
	return res
}

func analyzeUnit(u Unit, opts Options) UnitResult {
	res := UnitResult{Path: u.Path, SourcePath: u.SourcePath, Files: u.Files}
	timer := observ.NewTimer()

	if u.LoadErr != nil {
		res.Bag = diag.NewBag(opts.Config.MaxErrors)
		res.Bag.Add(loadErrorDiagnostic(u.LoadErr))
		res.Timing = timer.Report()
		return res
	}

	if opts.Cache != nil {
		var hit bool
		var payload DiskPayload
		timer.Track("cache-lookup", func() {
			ok, err := opts.Cache.Get(u.Digest, &payload)
			hit = ok && err == nil && payload.Schema == diskCacheSchemaVersion && payload.Success
		})
		if hit {
			res.Bag = diag.NewBag(opts.Config.MaxErrors)
			res.Stats = payload.Stats
			res.Success = true
			res.Cached = true
			res.Timing = timer.Report()
			return res
		}
	}

	analyzer := sema.New(opts.Config)
	timer.Track("analyze", func() {
		res.Success = analyzer.AnalyzeProgram(u.Program)
	})
	res.Bag = analyzer.Diagnostics()
	res.Stats = analyzer.Stats().Snapshot()

	if opts.Cache != nil && res.Success {
		timer.Track("cache-store", func() {
			_ = opts.Cache.Put(u.Digest, &DiskPayload{
				Schema:     diskCacheSchemaVersion,
				SourcePath: u.SourcePath,
				Digest:     u.Digest,
				Success:    true,
				Stats:      res.Stats,
			})
		})
	}

	res.Timing = timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "analyze",
			Path:    u.Path,
			TotalMS: res.Timing.TotalMS,
			Phases:  res.Timing.Phases,
		})
	}
	return res
}

// AnalyzeUnits analyzes every unit in parallel. Results keep the order of
// units; each goroutine writes only its own index so no locking is needed.
func AnalyzeUnits(ctx context.Context, units []Unit, opts Options) ([]UnitResult, error) {
	if len(units) == 0 {
		return nil, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(units) {
		jobs = len(units)
	}

	results := make([]UnitResult, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = AnalyzeUnit(u, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// AnalyzeDir loads every artifact under dir and analyzes the batch.
func AnalyzeDir(ctx context.Context, dir string, opts Options) ([]UnitResult, error) {
	units, err := LoadUnits(dir)
	if err != nil {
		return nil, err
	}
	return AnalyzeUnits(ctx, units, opts)
}
