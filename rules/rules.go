package rules

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/zonegen/levelgen"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

var ErrNilGraph = errors.New("rules: nil graph")

// Modules scripts may import. Nothing with file or process access.
var scriptModules = []string{"fmt", "math", "text", "enum"}

// Violation is one finding reported by a rule script.
type Violation struct {
	Rule    string
	Message string
}

func (v Violation) String() string {
	return v.Rule + ": " + v.Message
}

type Rule struct {
	Name   string
	Source []byte
}

// DefaultRules returns the embedded rule scripts sorted by name.
func DefaultRules() ([]Rule, error) {
	entries, err := ScriptsFS.ReadDir("scripts")
	if err != nil {
		return nil, err
	}
	out := make([]Rule, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".tengo" {
			continue
		}
		src, err := ScriptsFS.ReadFile(path.Join("scripts", e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, Rule{Name: strings.TrimSuffix(e.Name(), ".tengo"), Source: src})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// EvaluateDefaults runs every embedded rule against g.
func EvaluateDefaults(ctx context.Context, g *levelgen.Graph) ([]Violation, error) {
	rules, err := DefaultRules()
	if err != nil {
		return nil, err
	}
	var out []Violation
	for _, r := range rules {
		v, err := Evaluate(ctx, g, r.Name, r.Source)
		if err != nil {
			return out, err
		}
		out = append(out, v...)
	}
	return out, nil
}

// Evaluate runs one rule script. The script sees the graph as the globals
// zones, connections, config and spawn_zone, imports fmt, and calls
// report(msg) for each finding. Scripts cannot change the graph.
func Evaluate(ctx context.Context, g *levelgen.Graph, name string, src []byte) ([]Violation, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var found []Violation
	report := &tengo.UserFunction{Name: "report", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 0 {
			return nil, tengo.ErrWrongNumArguments
		}
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		found = append(found, Violation{Rule: name, Message: strings.Join(parts, " ")})
		return tengo.UndefinedValue, nil
	}}

	prelude := "fmt := import(\"fmt\")\n"
	script := tengo.NewScript(append([]byte(prelude), src...))
	script.SetImports(stdlib.GetModuleMap(scriptModules...))
	globals := map[string]tengo.Object{
		"zones":       zonesObject(g),
		"connections": connectionsObject(g),
		"config":      configObject(g.Config),
		"spawn_zone":  &tengo.Int{Value: int64(g.SpawnZone)},
		"report":      report,
	}
	for k, v := range globals {
		if err := script.Add(k, v); err != nil {
			return nil, fmt.Errorf("rule %s: add %s: %w", name, k, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rule %s: compile: %w", name, err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return found, fmt.Errorf("rule %s: run: %w", name, err)
	}
	return found, nil
}

func zonesObject(g *levelgen.Graph) *tengo.ImmutableArray {
	depths := g.Depths()
	ids := g.ZoneIDs()
	out := make([]tengo.Object, 0, len(ids))
	for _, id := range ids {
		z := g.Zones[id]
		conns := make([]tengo.Object, 0, len(z.Connections))
		for _, c := range z.Connections {
			conns = append(conns, &tengo.Int{Value: int64(c)})
		}
		depth := int64(-1)
		if d, ok := depths[id]; ok {
			depth = int64(d)
		}
		out = append(out, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"id":          &tengo.Int{Value: int64(z.ID)},
			"type":        &tengo.String{Value: z.Type.String()},
			"x":           &tengo.Float{Value: z.Position.X},
			"z":           &tengo.Float{Value: z.Position.Z},
			"size_x":      &tengo.Float{Value: z.Size.X},
			"size_z":      &tengo.Float{Value: z.Size.Z},
			"connections": &tengo.ImmutableArray{Value: conns},
			"depth":       &tengo.Int{Value: depth},
		}})
	}
	return &tengo.ImmutableArray{Value: out}
}

func connectionsObject(g *levelgen.Graph) *tengo.ImmutableArray {
	out := make([]tengo.Object, 0, len(g.Connections))
	for _, c := range g.Connections {
		out = append(out, &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"from":   &tengo.Int{Value: int64(c.From)},
			"to":     &tengo.Int{Value: int64(c.To)},
			"door_x": &tengo.Float{Value: c.DoorPosition.X},
			"door_z": &tengo.Float{Value: c.DoorPosition.Z},
		}})
	}
	return &tengo.ImmutableArray{Value: out}
}

func configObject(c levelgen.Config) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"seed":              &tengo.Int{Value: int64(c.Seed)},
		"target_zone_count": &tengo.Int{Value: int64(c.TargetZoneCount)},
		"min_zone_spacing":  &tengo.Float{Value: float64(c.MinZoneSpacing)},
		"max_depth":         &tengo.Int{Value: int64(c.MaxDepth)},
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
