package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/dom/hero-companion/internal/domain"
)

const (
	usageBonusPerFormation = 0.25
	levelHeadroomCap       = 120
	levelHeadroomDivisor   = 300.0
	starHeadroomCap        = 10
	starHeadroomDivisor    = 40.0
	dominantFactionBonus   = 0.15
	mainFactionBonus       = 0.10
	bondBonusPerActiveBond = 0.05
	earlyPhaseBonus        = 1.1
	latePhaseMythicBonus   = 1.2
	highRoleWeight         = 1.25
	maxRecommendedStars    = 15
	maxReasons             = 3
	defaultReason          = "Solid Investment"
)

// upgradePlan holds the per-profile level increment and daily capacity
type upgradePlan struct {
	levelIncrement int
	dailyCapacity  float64
}

var upgradePlans = map[domain.SpendProfile]upgradePlan{
	domain.SpendWhale:      {levelIncrement: 40, dailyCapacity: 2.5},
	domain.SpendLowSpender: {levelIncrement: 20, dailyCapacity: 1.6},
	domain.SpendF2P:        {levelIncrement: 10, dailyCapacity: 1},
}

// UpgradeRecommendation is a ranked upgrade target for one owned hero
type UpgradeRecommendation struct {
	HeroID           string  `json:"heroId"`
	HeroName         string  `json:"heroName"`
	Score            float64 `json:"score"`
	Reason           string  `json:"reason"`
	RecommendedLevel int     `json:"recommendedLevel"`
	RecommendedStars int     `json:"recommendedStars"`
	TimelineDays     int     `json:"timelineDays"`
}

// formationUsage summarizes how the roster is deployed across formations
type formationUsage struct {
	counts          map[string]int
	dominantFaction domain.Faction
}

// countUsage tallies formation slots per hero and per faction. Faction ties go
// to the faction seen first while scanning queues in order.
func countUsage(data *domain.UserData) formationUsage {
	usage := formationUsage{counts: make(map[string]int)}

	factionCounts := make(map[domain.Faction]int)
	var seen []domain.Faction
	for _, q := range data.Queues {
		for _, id := range q.HeroIDs {
			if id == "" {
				continue
			}
			h, ok := findOwned(data.Roster, id)
			if !ok {
				continue
			}
			usage.counts[id]++
			if _, counted := factionCounts[h.Faction]; !counted {
				seen = append(seen, h.Faction)
			}
			factionCounts[h.Faction]++
		}
	}

	best := 0
	for _, f := range seen {
		if factionCounts[f] > best {
			best = factionCounts[f]
			usage.dominantFaction = f
		}
	}
	return usage
}

// RecommendUpgrades ranks owned heroes by upgrade priority and returns the top limit.
// A limit of zero or less returns every owned hero.
func RecommendUpgrades(data *domain.UserData, limit int) []UpgradeRecommendation {
	if data == nil || len(data.Roster) == 0 {
		return []UpgradeRecommendation{}
	}

	usage := countUsage(data)
	phase := ClassifyServerPhase(data.Settings.ServerGroup)
	mainFaction := data.Settings.MainFaction

	owned := make(map[string]domain.OwnedHero, len(data.Roster))
	for _, h := range data.Roster {
		owned[h.ID] = h
	}

	plan, ok := upgradePlans[data.SpendProfile()]
	if !ok {
		plan = upgradePlans[domain.SpendF2P]
	}

	recs := make([]UpgradeRecommendation, 0, len(data.Roster))
	for _, h := range data.Roster {
		tierW := TierWeight(h.Tier)
		rarityW := RarityWeight(h.Rarity)
		roleW := RoleWeight(h.Role)
		uses := usage.counts[h.ID]

		usageBonus := 1 + float64(uses)*usageBonusPerFormation
		levelHeadroom := 1 + float64(max(0, levelHeadroomCap-h.Level))/levelHeadroomDivisor
		starHeadroom := 1 + float64(max(0, starHeadroomCap-h.Stars))/starHeadroomDivisor

		dominantMatch := usage.dominantFaction != "" && h.Faction == usage.dominantFaction
		mainMatch := mainFaction != "" && h.Faction == mainFaction
		synergy := 1.0
		if dominantMatch {
			synergy += dominantFactionBonus
		}
		if mainMatch {
			synergy += mainFactionBonus
		}

		activeBonds := 0
		for _, b := range h.Bonds {
			if partner, ok := owned[b.PartnerID]; ok && partner.Level > 1 {
				activeBonds++
			}
		}
		bondBonus := 1 + float64(activeBonds)*bondBonusPerActiveBond

		score := tierW * rarityW * roleW * usageBonus * levelHeadroom * starHeadroom *
			synergy * bondBonus * phaseBonus(phase, roleW, h.Rarity)

		days := int(math.Round(float64(plan.levelIncrement) * tierW / plan.dailyCapacity))
		if days < 1 {
			days = 1
		}

		recs = append(recs, UpgradeRecommendation{
			HeroID:           h.ID,
			HeroName:         h.Name,
			Score:            score,
			Reason:           upgradeReason(h, uses, dominantMatch || mainMatch, activeBonds),
			RecommendedLevel: h.Level + plan.levelIncrement,
			RecommendedStars: min(h.Stars+1, maxRecommendedStars),
			TimelineDays:     days,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func phaseBonus(phase domain.ServerPhase, roleW float64, rarity domain.Rarity) float64 {
	switch phase {
	case domain.ServerPhaseEarly:
		if roleW >= highRoleWeight || rarity == domain.RarityLegendary {
			return earlyPhaseBonus
		}
	case domain.ServerPhaseLate:
		if rarity == domain.RarityMythic {
			return latePhaseMythicBonus
		}
	}
	return 1.0
}

func upgradeReason(h domain.OwnedHero, uses int, factionSynergy bool, activeBonds int) string {
	var reasons []string
	add := func(cond bool, reason string) {
		if cond && len(reasons) < maxReasons {
			reasons = append(reasons, reason)
		}
	}

	add(uses > 0, "Active in formation")
	add(factionSynergy, "Faction synergy")
	add(activeBonds > 0, "Active bonds")
	add(domain.NormalizeRole(h.Role) == domain.RoleClassDPS, "Main carry role")
	add(h.Tier == domain.TierS, "S-tier meta pick")
	add(h.Rarity == domain.RarityMythic, "Mythic rarity")

	if len(reasons) == 0 {
		return defaultReason
	}
	return strings.Join(reasons, ", ")
}
