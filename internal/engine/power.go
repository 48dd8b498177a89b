package engine

import (
	"math"

	"github.com/dom/hero-companion/internal/domain"
)

const (
	powerBase       = 1000
	powerPerLevel   = 50
	powerStarFactor = 1.5
)

var rarityPowerBonus = map[domain.Rarity]float64{
	domain.RarityMythic:    1.5,
	domain.RarityLegendary: 1.2,
}

// Power computes a hero's influence from level, stars and rarity:
// floor((1000 + level*50) * ((stars+1)*1.5) * rarityBonus).
func Power(h domain.OwnedHero) int {
	bonus, ok := rarityPowerBonus[h.Rarity]
	if !ok {
		bonus = 1.0
	}
	base := float64(powerBase + h.Level*powerPerLevel)
	starMultiplier := float64(h.Stars+1) * powerStarFactor
	return int(math.Floor(base * starMultiplier * bonus))
}

// cachedPower returns the stored power, computing it when the cache is empty
func cachedPower(h domain.OwnedHero) int {
	if h.Power > 0 {
		return h.Power
	}
	return Power(h)
}
