package engine_test

import (
	"testing"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestFactionAdvantage(t *testing.T) {
	tests := []struct {
		attacker domain.Faction
		defender domain.Faction
		want     float64
	}{
		{domain.FactionNature, domain.FactionHorde, 1.3},
		{domain.FactionHorde, domain.FactionLeague, 1.3},
		{domain.FactionLeague, domain.FactionNature, 1.3},
		{domain.FactionHorde, domain.FactionNature, 1.0},
		{domain.FactionLeague, domain.FactionHorde, 1.0},
		{domain.FactionNature, domain.FactionLeague, 1.0},
		{domain.FactionNature, domain.FactionNature, 1.0},
		{"Pirates", domain.FactionNature, 1.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.attacker)+"_vs_"+string(tt.defender), func(t *testing.T) {
			assert.Equal(t, tt.want, engine.FactionAdvantage(tt.attacker, tt.defender))
		})
	}
}

func TestCounteredBy(t *testing.T) {
	target, ok := engine.CounteredBy(domain.FactionLeague)
	assert.True(t, ok)
	assert.Equal(t, domain.FactionNature, target)

	_, ok = engine.CounteredBy("")
	assert.False(t, ok)
}

func TestWeights(t *testing.T) {
	assert.Equal(t, 5.0, engine.TierWeight(domain.TierS))
	assert.Equal(t, 1.0, engine.TierWeight(domain.TierD))
	assert.Equal(t, 2.0, engine.TierWeight("SS"))

	assert.Equal(t, 3.0, engine.RarityWeight(domain.RarityMythic))
	assert.Equal(t, 0.5, engine.RarityWeight(domain.RarityRare))
	assert.Equal(t, 1.0, engine.RarityWeight(domain.RarityCommon))

	roles := map[string]float64{
		"DPS":           1.4,
		"  dps ":        1.4,
		"Damage Dealer": 1.4,
		"Healer":        1.25,
		"supporter":     1.25,
		"Tank":          1.15,
		"Controller":    1.15,
		"Mage":          1.0,
		"":              1.0,
	}
	for role, want := range roles {
		assert.Equal(t, want, engine.RoleWeight(role), "role %q", role)
	}
}

func TestClassifyServerPhase(t *testing.T) {
	tests := []struct {
		group string
		want  domain.ServerPhase
	}{
		{"New Server", domain.ServerPhaseEarly},
		{"S1-30", domain.ServerPhaseEarly},
		{"1-60", domain.ServerPhaseEarly},
		{"S60-80", domain.ServerPhaseMid},
		{"Mid", domain.ServerPhaseMid},
		{"S100+", domain.ServerPhaseLate},
		{"late", domain.ServerPhaseLate},
		{"", domain.ServerPhaseMid},
		{"S7", domain.ServerPhaseMid},
	}

	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.ClassifyServerPhase(tt.group))
		})
	}
}
