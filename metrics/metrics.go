package metrics

import (
	"net/http"
	"time"

	"github.com/milk9111/zonegen/levelgen"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the generation metrics. Each Recorder owns its registry so
// tests and batch runs never share counters.
type Recorder struct {
	registry *prometheus.Registry

	GenerationsTotal        prometheus.Counter
	Zones                   prometheus.Histogram
	FrontierDropsTotal      prometheus.Counter
	PlacementAttemptsTotal  prometheus.Counter
	PlacementFallbacksTotal prometheus.Counter
	UnderGeneratedTotal     prometheus.Counter
	GenerationSeconds       prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}
	factory := promauto.With(r.registry)

	r.GenerationsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "zonegen_generations_total",
		Help: "Total number of levels generated",
	})
	r.Zones = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "zonegen_zones",
		Help:    "Zones per generated level",
		Buckets: []float64{1, 5, 10, 15, 25, 50, 100, 250},
	})
	r.FrontierDropsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "zonegen_frontier_drops_total",
		Help: "Zones removed from the frontier without being re-queued",
	})
	r.PlacementAttemptsTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "zonegen_placement_attempts_total",
		Help: "Candidate positions tried while placing zones",
	})
	r.PlacementFallbacksTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "zonegen_placement_fallbacks_total",
		Help: "Zones placed at minimum spacing after every attempt was crowded",
	})
	r.UnderGeneratedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "zonegen_under_generated_total",
		Help: "Levels that stopped short of the target zone count",
	})
	r.GenerationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "zonegen_generation_seconds",
		Help:    "Time spent generating one level",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
	return r
}

// Observe records one generation that took dur.
func (r *Recorder) Observe(g *levelgen.Graph, dur time.Duration) {
	if r == nil || g == nil {
		return
	}
	r.GenerationsTotal.Inc()
	r.Zones.Observe(float64(len(g.Zones)))
	r.FrontierDropsTotal.Add(float64(g.Stats.FrontierDrops))
	r.PlacementAttemptsTotal.Add(float64(g.Stats.PlacementAttempts))
	r.PlacementFallbacksTotal.Add(float64(g.Stats.PlacementFallbacks))
	if uint32(len(g.Zones)) < g.Config.TargetZoneCount {
		r.UnderGeneratedTotal.Inc()
	}
	r.GenerationSeconds.Observe(dur.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
