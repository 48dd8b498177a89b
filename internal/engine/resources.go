package engine

import (
	"fmt"

	"github.com/dom/hero-companion/internal/domain"
)

const (
	criticalDiamondLevel = 1000
	staminaNearCap       = 100
)

// ResourcePlan is the spending guidance for a player
type ResourcePlan struct {
	SpendProfile       domain.SpendProfile `json:"spendProfile"`
	DailyDiamondBudget int                 `json:"dailyDiamondBudget"`
	WeeklyFocusEvents  []string            `json:"weeklyFocusEvents"`
	Notes              []string            `json:"notes"`
	Focus              string              `json:"focus"`
	Warnings           []string            `json:"warnings"`
	Targets            []string            `json:"targets"`
}

type spendGuide struct {
	dailyBudget int
	focusEvents []string
	focus       string
	notes       []string
}

var spendGuides = map[domain.SpendProfile]spendGuide{
	domain.SpendF2P: {
		dailyBudget: 200,
		focusEvents: []string{"Arms Race", "Guild Boss"},
		focus:       "Maximize free rewards and funnel everything into one core formation",
		notes: []string{
			"Only spend diamonds on stamina refreshes during double-reward windows",
			"Pick one main-faction carry and upgrade it before spreading resources",
			"Save speedups for Arms Race phases that score them",
		},
	},
	domain.SpendLowSpender: {
		dailyBudget: 600,
		focusEvents: []string{"Arms Race", "Guild Boss", "Ancient Ruins"},
		focus:       "Convert monthly passes into steady hero stars on two formations",
		notes: []string{
			"Buy the monthly card first; it has the best diamond-per-dollar ratio",
			"Use event shops for star shards before spending diamonds on them",
			"Keep a reserve of 2000 diamonds for limited-time hero banners",
		},
	},
	domain.SpendWhale: {
		dailyBudget: 3000,
		focusEvents: []string{"Kingdom War", "Arms Race", "Guild Boss", "Ancient Ruins", "Arena"},
		focus:       "Push every formation and secure top ranks in competitive events",
		notes: []string{
			"Time large purchases to Arms Race and KvK scoring days for double value",
			"Max Mythic heroes first; their late-game multiplier compounds",
			"Fill all three relic slots on every formation before pushing skins",
		},
	},
}

var phaseNotes = map[domain.ServerPhase]string{
	domain.ServerPhaseEarly: "Early server: rush castle level and recruit Legendary carries while competition is thin",
	domain.ServerPhaseMid:   "Mid server: balance formation depth with preparation for the first KvK seasons",
	domain.ServerPhaseLate:  "Late server: focus on Mythic heroes, relic levels and skin bonuses for marginal gains",
}

// BuildResourcePlan derives the daily budget and guidance from spend profile,
// server phase and inventory.
func BuildResourcePlan(data *domain.UserData) ResourcePlan {
	profile := data.SpendProfile()
	guide, ok := spendGuides[profile]
	if !ok {
		profile = domain.SpendF2P
		guide = spendGuides[profile]
	}

	plan := ResourcePlan{
		SpendProfile:       profile,
		DailyDiamondBudget: guide.dailyBudget,
		WeeklyFocusEvents:  append([]string(nil), guide.focusEvents...),
		Notes:              append([]string(nil), guide.notes...),
		Focus:              guide.focus,
		Warnings:           []string{},
	}

	var serverGroup string
	var inventory domain.Inventory
	if data != nil {
		serverGroup = data.Settings.ServerGroup
		inventory = data.Inventory
	}
	plan.Notes = append(plan.Notes, phaseNotes[ClassifyServerPhase(serverGroup)])

	if inventory.Diamonds < criticalDiamondLevel {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("Diamonds critical (%d): halt spending until the reserve is rebuilt", inventory.Diamonds))
	}
	if inventory.Stamina >= staminaNearCap {
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("Stamina near cap (%d): use it immediately to avoid waste", inventory.Stamina))
	}

	plan.Targets = []string{
		fmt.Sprintf("Spend at most %d diamonds this week", guide.dailyBudget*7),
		fmt.Sprintf("Keep stamina below %d by clearing it daily", staminaNearCap),
	}
	return plan
}
