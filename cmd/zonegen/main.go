package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/milk9111/zonegen/levelgen"
	"github.com/milk9111/zonegen/levels"
	"github.com/milk9111/zonegen/rules"
	"gopkg.in/yaml.v3"
)

type options struct {
	preset      string
	seed        uint64
	session     string
	newSeed     bool
	zones       uint
	spacing     float64
	depth       uint
	dump        bool
	check       bool
	batch       int
	workers     int
	metricsAddr string

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("zonegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.preset, "preset", levels.DefaultPreset, "config preset in levels/presets (basename, .yaml optional)")
	fs.Uint64Var(&opts.seed, "seed", 0, "override the preset seed")
	fs.StringVar(&opts.session, "session", "", "derive the seed from a session id (UUID or any string)")
	fs.BoolVar(&opts.newSeed, "new-seed", false, "use a fresh random session seed")
	fs.UintVar(&opts.zones, "zones", 0, "override the target zone count")
	fs.Float64Var(&opts.spacing, "spacing", 0, "override the minimum zone spacing")
	fs.UintVar(&opts.depth, "depth", 0, "override the maximum depth")
	fs.BoolVar(&opts.dump, "dump", false, "write the generated graph as YAML to stdout")
	fs.BoolVar(&opts.check, "check", false, "validate graph invariants and run the level rules")
	fs.IntVar(&opts.batch, "batch", 0, "generate N consecutive seeds and report statistics")
	fs.IntVar(&opts.workers, "workers", runtime.NumCPU(), "concurrent generators in batch mode")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics on this address after a batch")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// config loads the preset and applies flag overrides on top of it.
func (o *options) config() (levelgen.Config, error) {
	cfg, err := levels.LoadConfig(o.preset)
	if err != nil {
		return levelgen.Config{}, err
	}
	switch {
	case o.set["seed"]:
		cfg.Seed = o.seed
	case o.session != "":
		cfg.Seed = levels.SeedFromString(o.session)
	case o.newSeed:
		cfg.Seed = levels.NewSessionSeed()
	}
	if o.set["zones"] {
		n, err := flagUint32("zones", o.zones)
		if err != nil {
			return levelgen.Config{}, err
		}
		cfg.TargetZoneCount = n
	}
	if o.set["spacing"] {
		cfg.MinZoneSpacing = float32(o.spacing)
	}
	if o.set["depth"] {
		n, err := flagUint32("depth", o.depth)
		if err != nil {
			return levelgen.Config{}, err
		}
		cfg.MaxDepth = n
	}
	if err := cfg.Validate(); err != nil {
		return levelgen.Config{}, err
	}
	return cfg, nil
}

func flagUint32(name string, v uint) (uint32, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: -%s %d exceeds %d", levelgen.ErrInvalidConfig, name, v, uint64(math.MaxUint32))
	}
	return uint32(v), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := opts.config()
	if err != nil {
		fmt.Fprintf(stderr, "zonegen: %v\n", err)
		return 1
	}

	if opts.batch > 0 {
		return runBatch(ctx, opts, cfg, stdout, stderr)
	}

	g := levelgen.Generate(cfg)

	if opts.dump {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			fmt.Fprintf(stderr, "zonegen: encode graph: %v\n", err)
			return 1
		}
		if err := enc.Close(); err != nil {
			fmt.Fprintf(stderr, "zonegen: encode graph: %v\n", err)
			return 1
		}
	} else {
		printSummary(stdout, g)
	}

	if opts.check {
		return checkGraph(ctx, g, stderr)
	}
	return 0
}

func printSummary(w io.Writer, g *levelgen.Graph) {
	fmt.Fprintf(w, "seed:        %d\n", g.Config.Seed)
	fmt.Fprintf(w, "zones:       %d/%d\n", len(g.Zones), g.Config.TargetZoneCount)
	fmt.Fprintf(w, "connections: %d\n", len(g.Connections))
	fmt.Fprintf(w, "objectives:  %v\n", g.ObjectiveZones)
	fmt.Fprintf(w, "fingerprint: %016x\n", g.Fingerprint())
	fmt.Fprintf(w, "placement:   %d attempts, %d fallbacks\n", g.Stats.PlacementAttempts, g.Stats.PlacementFallbacks)
	for _, id := range g.ZoneIDs() {
		z := g.Zones[id]
		fmt.Fprintf(w, "  %3d %-10s (%8.2f, %8.2f) -> %v\n", z.ID, z.Type, z.Position.X, z.Position.Z, z.Connections)
	}
}

// checkGraph fails on broken invariants. Rule findings are warnings.
func checkGraph(ctx context.Context, g *levelgen.Graph, stderr io.Writer) int {
	code := 0
	for _, err := range g.Validate() {
		fmt.Fprintf(stderr, "invariant: %v\n", err)
		code = 1
	}
	violations, err := rules.EvaluateDefaults(ctx, g)
	if err != nil {
		fmt.Fprintf(stderr, "zonegen: rules: %v\n", err)
		return 1
	}
	for _, v := range violations {
		fmt.Fprintf(stderr, "warning: %s\n", v)
	}
	return code
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.SetFlags(0)
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
