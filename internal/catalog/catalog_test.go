package catalog_test

import (
	"testing"
	"time"

	"github.com/dom/hero-companion/internal/catalog"
	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	b, err := catalog.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, b.Version)
	assert.NotEmpty(t, b.Heroes)
	assert.NotEmpty(t, b.Pets)
	assert.NotEmpty(t, b.Relics)
	assert.NotEmpty(t, b.Skins)
	assert.NotEmpty(t, b.Events)

	eq := b.Equipment()
	assert.Len(t, eq.Pets, len(b.Pets))
}

func TestLoad_EveryFactionRepresented(t *testing.T) {
	b, err := catalog.Load()
	require.NoError(t, err)

	seen := make(map[domain.Faction]bool)
	for _, h := range b.Heroes {
		seen[h.Faction] = true
	}
	for _, f := range domain.AllFactions {
		assert.True(t, seen[f], "no hero for faction %s", f)
	}
}

func TestLoad_ScheduledEvents(t *testing.T) {
	b, err := catalog.Load()
	require.NoError(t, err)

	byID := make(map[string]domain.GameEvent)
	for _, e := range b.Events {
		byID[e.ID] = e
	}

	arms, ok := byID["arms-race"]
	require.True(t, ok)
	require.Len(t, arms.Phases, 6)

	// 2024-06-12 is a Wednesday
	state := engine.ComputeEventState(arms, time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC))
	assert.True(t, state.IsActive)
	assert.Equal(t, arms.Phases[2].Name, state.ActivePhaseName)

	boss, ok := byID["guild-boss"]
	require.True(t, ok)
	rule, ok := boss.Schedule()
	require.True(t, ok)
	assert.Equal(t, domain.RuleWeekendWindow, rule.Kind)
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Thursday}, rule.Days)

	_, ok = byID["ancient-ruins"]
	assert.True(t, ok)
}
