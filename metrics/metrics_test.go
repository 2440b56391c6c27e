package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/zonegen/levelgen"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestNewRecorder(t *testing.T) {
	r := NewRecorder()
	if r.Registry() == nil {
		t.Fatal("registry not initialized")
	}
	if r.GenerationsTotal == nil || r.Zones == nil || r.GenerationSeconds == nil {
		t.Fatal("collectors not initialized")
	}

	// Two recorders must not collide.
	_ = NewRecorder()
}

func TestObserve(t *testing.T) {
	r := NewRecorder()

	full := levelgen.Generate(levelgen.DefaultConfig())
	r.Observe(full, 2*time.Millisecond)

	short := levelgen.Generate(levelgen.Config{Seed: 1, TargetZoneCount: 50, MinZoneSpacing: 30, MaxDepth: 0})
	r.Observe(short, time.Millisecond)

	if got := counterValue(t, r.GenerationsTotal); got != 2 {
		t.Errorf("generations = %v, want 2", got)
	}
	wantUnder := 1.0
	if uint32(len(full.Zones)) < full.Config.TargetZoneCount {
		wantUnder++
	}
	if got := counterValue(t, r.UnderGeneratedTotal); got != wantUnder {
		t.Errorf("under generated = %v, want %v", got, wantUnder)
	}
	wantFallbacks := float64(full.Stats.PlacementFallbacks + short.Stats.PlacementFallbacks)
	if got := counterValue(t, r.PlacementFallbacksTotal); got != wantFallbacks {
		t.Errorf("fallbacks = %v, want %v", got, wantFallbacks)
	}
	var metric dto.Metric
	if err := r.Zones.Write(&metric); err != nil {
		t.Fatalf("Failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("zones sample count = %d, want 2", metric.Histogram.GetSampleCount())
	}
	if want := float64(len(full.Zones) + len(short.Zones)); metric.Histogram.GetSampleSum() != want {
		t.Errorf("zones sample sum = %v, want %v", metric.Histogram.GetSampleSum(), want)
	}
}

func TestObserveNil(t *testing.T) {
	var r *Recorder
	r.Observe(levelgen.Generate(levelgen.DefaultConfig()), time.Millisecond)

	r = NewRecorder()
	r.Observe(nil, time.Millisecond)
	if got := counterValue(t, r.GenerationsTotal); got != 0 {
		t.Errorf("generations = %v, want 0", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRecorder()
	r.Observe(levelgen.Generate(levelgen.DefaultConfig()), time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, name := range []string{
		"zonegen_generations_total 1",
		"zonegen_zones_count 1",
		"zonegen_placement_fallbacks_total",
		"zonegen_under_generated_total",
		"zonegen_generation_seconds_bucket",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}
