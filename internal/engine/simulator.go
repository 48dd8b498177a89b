package engine

import (
	"math"

	"github.com/dom/hero-companion/internal/domain"
)

// rosterApproximationDivisor scales raw roster power down to a formation-like
// influence when no formation is configured.
const rosterApproximationDivisor = 3

var dailyGrowthRates = map[domain.SpendProfile]float64{
	domain.SpendWhale:      0.045,
	domain.SpendLowSpender: 0.025,
	domain.SpendF2P:        0.012,
}

type milestone struct {
	day   int
	label string
}

var simulationMilestones = []milestone{
	{day: 14, label: "Day 14: core formation heroes reach their next star tier"},
	{day: 30, label: "Day 30: second formation fully staffed and levelled"},
	{day: 60, label: "Day 60: relic slots filled across active formations"},
	{day: 90, label: "Day 90: competitive in KvK and top guild boss brackets"},
}

// SimulationInput parameterizes a progression projection
type SimulationInput struct {
	Days               int
	UserData           *domain.UserData
	TargetSpendProfile *domain.SpendProfile
}

// SimulationResult is a linear influence projection
type SimulationResult struct {
	Days                    int                 `json:"days"`
	CurrentInfluence        int                 `json:"currentInfluence"`
	ProjectedTotalInfluence int                 `json:"projectedTotalInfluence"`
	ProjectedDeltaInfluence int                 `json:"projectedDeltaInfluence"`
	SpendProfile            domain.SpendProfile `json:"spendProfile"`
	KeyMilestones           []string            `json:"keyMilestones"`
}

// Simulate projects total influence Days ahead with a flat daily growth rate
// of the baseline. Negative day counts are treated as zero.
func Simulate(calc *InfluenceCalculator, input SimulationInput) SimulationResult {
	days := max(0, input.Days)

	profile := input.UserData.SpendProfile()
	if input.TargetSpendProfile != nil && input.TargetSpendProfile.IsValid() {
		profile = *input.TargetSpendProfile
	}

	baseline := calc.TotalInfluence(input.UserData)
	if baseline == 0 && input.UserData != nil {
		sum := 0
		for _, h := range input.UserData.Roster {
			sum += cachedPower(h)
		}
		baseline = sum / rosterApproximationDivisor
	}

	delta := int(math.Round(float64(baseline) * dailyGrowthRates[profile] * float64(days)))
	if delta < 0 {
		delta = 0
	}

	milestones := []string{}
	for _, m := range simulationMilestones {
		if days >= m.day {
			milestones = append(milestones, m.label)
		}
	}

	return SimulationResult{
		Days:                    days,
		CurrentInfluence:        baseline,
		ProjectedTotalInfluence: baseline + delta,
		ProjectedDeltaInfluence: delta,
		SpendProfile:            profile,
		KeyMilestones:           milestones,
	}
}
