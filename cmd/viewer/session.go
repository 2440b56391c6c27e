package main

import (
	"fmt"

	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/entity"
	"github.com/milk9111/zonegen/levelgen"
	"github.com/milk9111/zonegen/levels"
)

// session owns the world the viewer draws and the config that produced it.
type session struct {
	preset    string
	cfg       levelgen.Config
	graph     *levelgen.Graph
	world     *ecs.World
	camEntity ecs.Entity
}

func newSession(preset string, cfg levelgen.Config) (*session, error) {
	s := &session{preset: preset, world: ecs.NewWorld()}
	camEntity, err := entity.NewCamera(s.world)
	if err != nil {
		return nil, err
	}
	s.camEntity = camEntity
	if err := s.load(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// load replaces the current level with one generated from cfg.
func (s *session) load(cfg levelgen.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	entity.UnloadLevel(s.world)

	g := levelgen.Generate(cfg)
	if _, err := entity.LoadLevelToWorld(s.world, g); err != nil {
		return fmt.Errorf("load seed %d: %w", cfg.Seed, err)
	}
	s.cfg = cfg
	s.graph = g
	return s.refit()
}

func (s *session) refit() error {
	if err := entity.RequestCameraFit(s.world); err != nil {
		return fmt.Errorf("refit: %w", err)
	}
	return nil
}

// step moves to a neighbouring seed. Seeds wrap around at the uint64 edges.
func (s *session) step(delta int64) error {
	return s.load(s.cfg.WithSeed(s.cfg.Seed + uint64(delta)))
}

func (s *session) reroll() error {
	return s.load(s.cfg.WithSeed(levels.NewSessionSeed()))
}

// reloadPreset re-reads the preset from disk and regenerates the current seed.
func (s *session) reloadPreset() error {
	cfg, err := levels.LoadConfig(s.preset)
	if err != nil {
		return err
	}
	return s.load(cfg.WithSeed(s.cfg.Seed))
}

func (s *session) seedText() string {
	return fmt.Sprintf("%d", s.cfg.Seed)
}

func (s *session) status() string {
	if s.graph == nil {
		return ""
	}
	return fmt.Sprintf("%s  seed %d  zones %d/%d  objectives %d  fallbacks %d",
		s.preset, s.cfg.Seed, len(s.graph.Zones), s.cfg.TargetZoneCount,
		len(s.graph.ObjectiveZones), s.graph.Stats.PlacementFallbacks)
}
