package entity

import (
	"testing"

	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/levelgen"
)

func TestLoadLevelToWorld(t *testing.T) {
	g := levelgen.Generate(levelgen.DefaultConfig())
	w := ecs.NewWorld()

	bounds, err := LoadLevelToWorld(w, g)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	loaded, ok := ecs.Get(w, bounds, component.LevelLoadedComponent)
	if !ok {
		t.Fatalf("bounds entity missing LevelLoaded")
	}
	if loaded.Zones != len(g.Zones) || loaded.Colliders != 5*len(g.Zones) {
		t.Fatalf("unexpected load summary %+v", loaded)
	}
	if loaded.Fingerprint != g.Fingerprint() {
		t.Fatalf("fingerprint mismatch")
	}

	if n := len(w.Query(component.ZoneInfoComponent.Kind())); n != len(g.Zones) {
		t.Fatalf("expected %d zone entities, got %d", len(g.Zones), n)
	}
	if n := len(w.Query(component.DoorComponent.Kind())); n != len(g.Connections) {
		t.Fatalf("expected %d door entities, got %d", len(g.Connections), n)
	}
	if n := len(w.Query(component.StaticColliderComponent.Kind(), component.TransformComponent.Kind())); n != 5*len(g.Zones) {
		t.Fatalf("expected %d collider entities, got %d", 5*len(g.Zones), n)
	}
	if n := len(w.Query(component.ObjectiveTagComponent.Kind())); n != len(g.ObjectiveZones) {
		t.Fatalf("expected %d objective entities, got %d", len(g.ObjectiveZones), n)
	}

	spawn, ok := w.First(component.SpawnTagComponent.Kind())
	if !ok {
		t.Fatalf("no spawn entity")
	}
	info, _ := ecs.Get(w, spawn, component.ZoneInfoComponent)
	tr, _ := ecs.Get(w, spawn, component.TransformComponent)
	if info.ID != levelgen.SpawnZoneID || info.Type != levelgen.ZoneHub || info.Hops != 0 {
		t.Fatalf("unexpected spawn info %+v", info)
	}
	if tr.X != 0 || tr.Y != 0 || tr.Z != 0 {
		t.Fatalf("spawn not at origin: %+v", tr)
	}

	floors := 0
	ecs.ForEach2(w, component.StaticColliderComponent, component.TransformComponent, func(_ ecs.Entity, c component.StaticCollider, tr component.Transform) {
		z := g.Zones[c.Zone]
		if c.Part == levelgen.PartFloor {
			floors++
			if !c.Sensor || tr.Y-z.Position.Y != -0.25 {
				t.Fatalf("bad floor %+v at %+v", c, tr)
			}
			return
		}
		if c.Sensor || tr.Y-z.Position.Y != z.Size.Y/2 {
			t.Fatalf("bad wall %+v at %+v", c, tr)
		}
	})
	if floors != len(g.Zones) {
		t.Fatalf("expected %d floors, got %d", len(g.Zones), floors)
	}

	evts := w.Events().Drain()
	if len(evts) != 1 || evts[0].Type != ecs.EventLevelLoaded {
		t.Fatalf("expected one level_loaded event, got %v", evts)
	}
}

func TestUnloadLevel(t *testing.T) {
	g := levelgen.Generate(levelgen.Config{Seed: 3, TargetZoneCount: 8, MinZoneSpacing: 30, MaxDepth: 5})
	w := ecs.NewWorld()
	keep := w.CreateEntity()

	if _, err := LoadLevelToWorld(w, g); err != nil {
		t.Fatalf("load: %v", err)
	}
	want := 1 + len(g.Zones) + len(g.Connections) + 5*len(g.Zones)
	if n := UnloadLevel(w); n != want {
		t.Fatalf("expected %d entities removed, got %d", want, n)
	}
	if ents := w.Entities(); len(ents) != 1 || ents[0] != keep {
		t.Fatalf("expected only the unrelated entity to survive, got %v", ents)
	}
	if n := UnloadLevel(w); n != 0 {
		t.Fatalf("second unload removed %d", n)
	}
}

func TestLoadLevelToWorldNil(t *testing.T) {
	if _, err := LoadLevelToWorld(nil, levelgen.Generate(levelgen.DefaultConfig())); err == nil {
		t.Fatalf("expected error for nil world")
	}
	if _, err := LoadLevelToWorld(ecs.NewWorld(), nil); err == nil {
		t.Fatalf("expected error for nil graph")
	}
}

func TestNewCameraAndFitRequest(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewCamera(w)
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	c, ok := ecs.Get(w, cam, component.CameraComponent)
	if !ok || !c.Fit || c.Zoom != 1 {
		t.Fatalf("unexpected camera %+v", c)
	}

	c.Fit = false
	if err := ecs.Add(w, cam, component.CameraComponent, c); err != nil {
		t.Fatal(err)
	}
	if err := RequestCameraFit(w); err != nil {
		t.Fatalf("fit request: %v", err)
	}
	c, _ = ecs.Get(w, cam, component.CameraComponent)
	if !c.Fit {
		t.Fatalf("fit not requested")
	}

	if _, err := NewCamera(nil); err == nil {
		t.Fatalf("expected error for nil world")
	}
	if err := RequestCameraFit(nil); err == nil {
		t.Fatalf("expected fit request error for nil world")
	}
}
