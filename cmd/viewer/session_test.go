package main

import (
	"testing"

	"github.com/milk9111/zonegen/ecs"
	"github.com/milk9111/zonegen/ecs/component"
	"github.com/milk9111/zonegen/levelgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStepsSeeds(t *testing.T) {
	s, err := newSession("default", levelgen.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "12345", s.seedText())

	first := s.graph.Fingerprint()
	require.NoError(t, s.step(1))
	assert.Equal(t, uint64(12346), s.cfg.Seed)
	assert.NotEqual(t, first, s.graph.Fingerprint())

	require.NoError(t, s.step(-1))
	assert.Equal(t, first, s.graph.Fingerprint(), "stepping back must reproduce the level")

	// Only one level's worth of zones is ever in the world.
	assert.Len(t, s.world.Query(component.ZoneInfoComponent.Kind()), len(s.graph.Zones))
	assert.Len(t, s.world.Query(component.LevelLoadedComponent.Kind()), 1)
}

func TestSessionSeedWraps(t *testing.T) {
	s, err := newSession("default", levelgen.DefaultConfig().WithSeed(0))
	require.NoError(t, err)
	require.NoError(t, s.step(-1))
	assert.Equal(t, ^uint64(0), s.cfg.Seed)
}

func TestSessionLoadRequestsFit(t *testing.T) {
	s, err := newSession("default", levelgen.DefaultConfig())
	require.NoError(t, err)

	cam, _ := ecs.Get(s.world, s.camEntity, component.CameraComponent)
	cam.Fit = false
	require.NoError(t, ecs.Add(s.world, s.camEntity, component.CameraComponent, cam))

	require.NoError(t, s.reroll())
	cam, _ = ecs.Get(s.world, s.camEntity, component.CameraComponent)
	assert.True(t, cam.Fit)
	assert.True(t, s.world.IsAlive(s.camEntity), "camera survives level swaps")
}

func TestSessionRejectsInvalidConfig(t *testing.T) {
	s, err := newSession("default", levelgen.DefaultConfig())
	require.NoError(t, err)
	before := s.graph

	bad := s.cfg
	bad.TargetZoneCount = 0
	assert.ErrorIs(t, s.load(bad), levelgen.ErrInvalidConfig)
	assert.Same(t, before, s.graph)
}

func TestSessionReloadPresetKeepsSeed(t *testing.T) {
	s, err := newSession("small", levelgen.DefaultConfig().WithSeed(99))
	require.NoError(t, err)
	require.NoError(t, s.reloadPreset())
	assert.Equal(t, uint64(99), s.cfg.Seed)
	assert.Equal(t, uint32(6), s.cfg.TargetZoneCount)
	assert.Contains(t, s.status(), "small  seed 99")
}
