package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/milk9111/zonegen/levelgen"
	"github.com/milk9111/zonegen/metrics"
	"golang.org/x/sync/errgroup"
)

type batchResult struct {
	seed      uint64
	zones     int
	fallbacks int
	crowded   int
	pairs     int
	invalid   int
}

type batchReport struct {
	levels         int
	zones          int
	minZones       int
	maxZones       int
	underGenerated int
	fallbacks      int
	crowdedPairs   int
	totalPairs     int
	invalid        int
}

func (r batchReport) crowdedRatio() float64 {
	if r.totalPairs == 0 {
		return 0
	}
	return float64(r.crowdedPairs) / float64(r.totalPairs)
}

// surveySeeds generates n levels from consecutive seeds starting at cfg.Seed.
func surveySeeds(ctx context.Context, cfg levelgen.Config, n, workers int, check bool, rec *metrics.Recorder) ([]batchResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]batchResult, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c := cfg.WithSeed(cfg.Seed + uint64(i))
			start := time.Now()
			graph := levelgen.Generate(c)
			rec.Observe(graph, time.Since(start))

			res := batchResult{
				seed:      c.Seed,
				zones:     len(graph.Zones),
				fallbacks: graph.Stats.PlacementFallbacks,
				crowded:   graph.CrowdedPairs(),
				pairs:     len(graph.Zones) * (len(graph.Zones) - 1) / 2,
			}
			if check {
				res.invalid = len(graph.Validate())
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, ctx.Err()
}

func summarize(cfg levelgen.Config, results []batchResult) batchReport {
	rep := batchReport{levels: len(results)}
	for i, r := range results {
		if i == 0 || r.zones < rep.minZones {
			rep.minZones = r.zones
		}
		if r.zones > rep.maxZones {
			rep.maxZones = r.zones
		}
		rep.zones += r.zones
		if uint32(r.zones) < cfg.TargetZoneCount {
			rep.underGenerated++
		}
		rep.fallbacks += r.fallbacks
		rep.crowdedPairs += r.crowded
		rep.totalPairs += r.pairs
		if r.invalid > 0 {
			rep.invalid++
		}
	}
	return rep
}

func runBatch(ctx context.Context, opts *options, cfg levelgen.Config, stdout, stderr io.Writer) int {
	rec := metrics.NewRecorder()
	start := time.Now()
	results, err := surveySeeds(ctx, cfg, opts.batch, opts.workers, opts.check, rec)
	if err != nil {
		fmt.Fprintf(stderr, "zonegen: batch: %v\n", err)
		return 1
	}
	rep := summarize(cfg, results)

	mean := 0.0
	if rep.levels > 0 {
		mean = float64(rep.zones) / float64(rep.levels)
	}
	fmt.Fprintf(stdout, "levels:          %d (seeds %d..%d) in %s\n", rep.levels, cfg.Seed, cfg.Seed+uint64(rep.levels)-1, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(stdout, "zones:           mean %.2f, min %d, max %d, target %d\n", mean, rep.minZones, rep.maxZones, cfg.TargetZoneCount)
	fmt.Fprintf(stdout, "under-generated: %d\n", rep.underGenerated)
	fmt.Fprintf(stdout, "fallbacks:       %d\n", rep.fallbacks)
	fmt.Fprintf(stdout, "crowded pairs:   %d of %d (%.3f%%)\n", rep.crowdedPairs, rep.totalPairs, 100*rep.crowdedRatio())

	code := 0
	if opts.check && rep.invalid > 0 {
		fmt.Fprintf(stderr, "invariant: %d levels failed validation\n", rep.invalid)
		code = 1
	}

	if opts.metricsAddr != "" {
		if err := serveMetrics(ctx, opts.metricsAddr, rec); err != nil {
			fmt.Fprintf(stderr, "zonegen: metrics: %v\n", err)
			return 1
		}
	}
	return code
}

// serveMetrics blocks until ctx is done.
func serveMetrics(ctx context.Context, addr string, rec *metrics.Recorder) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving metrics on %s/metrics", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
