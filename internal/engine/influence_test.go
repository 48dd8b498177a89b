package engine_test

import (
	"testing"
	"time"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/stretchr/testify/assert"
)

func testEquipment() *engine.EquipmentCatalog {
	return engine.NewEquipmentCatalog(
		[]domain.Pet{{ID: "pet-wolf", Name: "Wolf", BaseInfluence: 10000}},
		[]domain.Relic{
			{ID: "relic-blade", Name: "Blade", Type: domain.RelicSlotAttack, BaseInfluence: 3000},
			{ID: "relic-aegis", Name: "Aegis", Type: domain.RelicSlotDefense, BaseInfluence: 2500},
		},
		[]domain.Skin{
			{ID: "castle-gold", Name: "Gold Castle", Kind: domain.SkinKindCastle, BaseInfluence: 8000},
			{ID: "march-fire", Name: "Fire March", Kind: domain.SkinKindMarch, BaseInfluence: 4000},
		},
	)
}

func TestQueueInfluence_NilQueue(t *testing.T) {
	calc := engine.NewInfluenceCalculator(testEquipment())
	assert.Equal(t, 0, calc.QueueInfluence(nil, nil))
}

func TestQueueInfluence_Soldiers(t *testing.T) {
	calc := engine.NewInfluenceCalculator(nil)

	tests := []struct {
		name  string
		queue domain.Queue
		want  int
	}{
		{name: "tier 3 infantry", queue: domain.Queue{SoldierType: "Infantry", SoldierTier: 3}, want: 15000},
		{name: "type without tier defaults to 1", queue: domain.Queue{SoldierType: "Infantry"}, want: 5000},
		{name: "tier without type contributes nothing", queue: domain.Queue{SoldierTier: 4}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.QueueInfluence(&tt.queue, []domain.OwnedHero{}))
		})
	}
}

func TestQueueInfluence_AllContributions(t *testing.T) {
	calc := engine.NewInfluenceCalculator(testEquipment())
	roster := []domain.OwnedHero{
		{Hero: domain.Hero{ID: "a", Rarity: domain.RarityEpic}, Level: 1},
		{Hero: domain.Hero{ID: "b", Rarity: domain.RarityMythic}, Level: 10, Stars: 2},
	}

	q := &domain.Queue{
		HeroIDs:  []string{"a", "", "b", "missing"},
		PetID:    "pet-wolf",
		PetLevel: 4,
		PetStars: 1,
		Relics: map[domain.RelicSlotType]domain.RelicSlot{
			domain.RelicSlotAttack:  {RelicID: "relic-blade", Level: 10},
			domain.RelicSlotDefense: {RelicID: "relic-unknown", Level: 50},
			domain.RelicSlotAssist:  {},
		},
		CastleSkinID: "castle-gold",
		MarchSkinID:  "march-fire",
		SoldierType:  "Cavalry",
		SoldierTier:  2,
	}

	want := 1575 + 10125 + // heroes
		10000 + // soldiers
		10000 + 4*250 + 2000 + // pet
		3000 + 10*150 + // resolved relic only
		8000 + 4000 // skins
	assert.Equal(t, want, calc.QueueInfluence(q, roster))
}

func TestQueueInfluence_UnresolvedEquipmentIsSkipped(t *testing.T) {
	calc := engine.NewInfluenceCalculator(nil)
	q := &domain.Queue{
		PetID:        "pet-wolf",
		PetLevel:     10,
		CastleSkinID: "castle-gold",
		Relics: map[domain.RelicSlotType]domain.RelicSlot{
			domain.RelicSlotAttack: {RelicID: "relic-blade", Level: 3},
		},
	}
	assert.Equal(t, 0, calc.QueueInfluence(q, nil))
}

func TestTotalInfluence_GuardsAndAdditivity(t *testing.T) {
	calc := engine.NewInfluenceCalculator(testEquipment())

	assert.Equal(t, 0, calc.TotalInfluence(nil))
	assert.Equal(t, 0, calc.TotalInfluence(&domain.UserData{Roster: []domain.OwnedHero{}}))
	assert.Equal(t, 0, calc.TotalInfluence(&domain.UserData{Queues: []domain.Queue{{SoldierType: "Archer"}}}))

	roster := []domain.OwnedHero{
		{Hero: domain.Hero{ID: "a", Rarity: domain.RarityLegendary}, Level: 5, Stars: 1},
		{Hero: domain.Hero{ID: "b", Rarity: domain.RarityRare}, Level: 30},
	}
	queues := []domain.Queue{
		{HeroIDs: []string{"a"}, SoldierType: "Infantry", SoldierTier: 2},
		{HeroIDs: []string{"b"}, PetID: "pet-wolf", PetLevel: 2},
		{MarchSkinID: "march-fire"},
	}
	data := &domain.UserData{Roster: roster, Queues: queues}

	sum := 0
	for i := range queues {
		sum += calc.QueueInfluence(&queues[i], roster)
	}
	assert.Equal(t, sum, calc.TotalInfluence(data))
	assert.Equal(t, 4500+10000+3750+10500+4000, sum)
}

func TestProgressTrendPercent(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	snaps := func(values ...int) []domain.ProgressSnapshot {
		out := make([]domain.ProgressSnapshot, len(values))
		for i, v := range values {
			out[i] = domain.ProgressSnapshot{Timestamp: at.AddDate(0, 0, i), Value: v}
		}
		return out
	}

	tests := []struct {
		name      string
		snapshots []domain.ProgressSnapshot
		want      float64
	}{
		{name: "empty", snapshots: nil, want: 0},
		{name: "single snapshot", snapshots: snaps(1000), want: 0},
		{name: "growth", snapshots: snaps(1000, 1500), want: 50},
		{name: "decline", snapshots: snaps(2000, 1500), want: -25},
		{name: "middle ignored", snapshots: snaps(1000, 9999, 2000), want: 100},
		{name: "zero start", snapshots: snaps(0, 5000), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, engine.ProgressTrendPercent(tt.snapshots), 1e-9)
		})
	}
}
