// Package engine scores heroes and formations and derives progression
// recommendations from a UserData snapshot. Every function is pure.
package engine

import "github.com/dom/hero-companion/internal/domain"

const (
	defaultTierWeight   = 2.0
	defaultRarityWeight = 1.0
	defaultRoleWeight   = 1.0

	// factionAdvantageBonus applies when the attacker's faction counters the defender's
	factionAdvantageBonus = 1.3
)

var tierWeights = map[domain.Tier]float64{
	domain.TierS: 5,
	domain.TierA: 4,
	domain.TierB: 3,
	domain.TierC: 2,
	domain.TierD: 1,
}

var rarityWeights = map[domain.Rarity]float64{
	domain.RarityMythic:    3,
	domain.RarityLegendary: 2,
	domain.RarityEpic:      1,
	domain.RarityRare:      0.5,
}

var roleWeights = map[domain.RoleClass]float64{
	domain.RoleClassDPS:     1.4,
	domain.RoleClassSupport: 1.25,
	domain.RoleClassTank:    1.15,
}

// counters maps each faction to the faction it beats
var counters = map[domain.Faction]domain.Faction{
	domain.FactionNature: domain.FactionHorde,
	domain.FactionHorde:  domain.FactionLeague,
	domain.FactionLeague: domain.FactionNature,
}

// TierWeight returns the meta weight of a tier, 2 when unknown
func TierWeight(t domain.Tier) float64 {
	if w, ok := tierWeights[t]; ok {
		return w
	}
	return defaultTierWeight
}

// RarityWeight returns the investment weight of a rarity, 1 when unknown
func RarityWeight(r domain.Rarity) float64 {
	if w, ok := rarityWeights[r]; ok {
		return w
	}
	return defaultRarityWeight
}

// RoleWeight returns the weight of a free-text role after normalization
func RoleWeight(role string) float64 {
	if w, ok := roleWeights[domain.NormalizeRole(role)]; ok {
		return w
	}
	return defaultRoleWeight
}

// FactionAdvantage returns the damage multiplier of attacker against defender
func FactionAdvantage(attacker, defender domain.Faction) float64 {
	if beats, ok := counters[attacker]; ok && beats == defender {
		return factionAdvantageBonus
	}
	return 1.0
}

// CounteredBy returns the faction that the given faction beats
func CounteredBy(f domain.Faction) (domain.Faction, bool) {
	beats, ok := counters[f]
	return beats, ok
}
