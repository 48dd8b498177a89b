package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/dom/hero-companion/internal/domain"
)

// Priority ranks how much attention an event deserves right now
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// EventCategory is the matched family of an event
type EventCategory string

const (
	CategoryArmsRace  EventCategory = "arms-race"
	CategoryGuildBoss EventCategory = "guild-boss"
	CategoryKvK       EventCategory = "kvk"
	CategoryRuins     EventCategory = "ruins"
	CategoryArena     EventCategory = "arena"
	CategoryGeneric   EventCategory = "generic"
)

// EventStrategy is the recommendation for one event
type EventStrategy struct {
	EventID   string        `json:"eventId"`
	EventName string        `json:"eventName"`
	Category  EventCategory `json:"category"`
	Priority  Priority      `json:"priority"`
	Focus     string        `json:"focus"`
	Actions   []string      `json:"actions"`
	State     EventState    `json:"state"`
}

type categoryPlaybook struct {
	category       EventCategory
	markers        []string
	activePriority Priority
	focus          string
	actions        []string
}

// playbooks are checked in order; the first matching category wins
var playbooks = []categoryPlaybook{
	{
		category:       CategoryArmsRace,
		markers:        []string{"arms-race", "arms race"},
		activePriority: PriorityHigh,
		focus:          "Score each daily theme with the resources it rewards",
		actions: []string{
			"Hold speedups and upgrade materials for the phase that scores them",
			"Claim every personal reward tier before the UTC reset",
		},
	},
	{
		category:       CategoryGuildBoss,
		markers:        []string{"guild-boss", "guild boss", "boss"},
		activePriority: PriorityHigh,
		focus:          "Maximize damage per attempt with your strongest formation",
		actions: []string{
			"Lead with your highest influence formation and DPS carries",
			"Coordinate attack windows with your guild for shared buffs",
		},
	},
	{
		category:       CategoryKvK,
		markers:        []string{"kvk", "kingdom war", "kingdom-war", "kingdom"},
		activePriority: PriorityCritical,
		focus:          "Protect troops and convert preparation into kill points",
		actions: []string{
			"Heal and shield before every battle window",
			"Spend preparation-phase speedups for points, not during battle",
		},
	},
	{
		category:       CategoryRuins,
		markers:        []string{"ruins", "ancient"},
		activePriority: PriorityMedium,
		focus:          "Capture and hold ruins during the weekend window",
		actions: []string{
			"Send tank formations to hold captured ruins",
			"Rotate stamina into ruin attacks early on Saturday",
		},
	},
	{
		category:       CategoryArena,
		markers:        []string{"arena", "duel"},
		activePriority: PriorityMedium,
		focus:          "Climb ranks with a counter-faction lineup",
		actions: []string{
			"Scout opponents and field heroes with faction advantage",
			"Use free attempts every day before the reset",
		},
	},
}

var genericPlaybook = categoryPlaybook{
	category:       CategoryGeneric,
	activePriority: PriorityMedium,
	focus:          "Collect participation rewards",
	actions: []string{
		"Complete the listed tasks for milestone rewards",
	},
}

func classifyEvent(event domain.GameEvent) categoryPlaybook {
	id := strings.ToLower(event.ID)
	name := strings.ToLower(event.Name)
	for _, p := range playbooks {
		for _, marker := range p.markers {
			if strings.Contains(id, marker) || strings.Contains(name, marker) {
				return p
			}
		}
	}
	return genericPlaybook
}

// RecommendEventStrategies maps each event to a prioritized playbook using its
// activation state at now.
func RecommendEventStrategies(data *domain.UserData, events []domain.GameEvent, now time.Time) []EventStrategy {
	var mainFaction domain.Faction
	if data != nil {
		mainFaction = data.Settings.MainFaction
	}

	strategies := make([]EventStrategy, 0, len(events))
	for _, event := range events {
		state := ComputeEventState(event, now)
		playbook := classifyEvent(event)

		priority := PriorityLow
		if state.IsActive {
			priority = playbook.activePriority
		}

		actions := append([]string(nil), playbook.actions...)

		switch playbook.category {
		case CategoryArmsRace:
			if state.IsActive && state.ActivePhaseName != "" {
				actions = append([]string{fmt.Sprintf("Today's theme: %s", state.ActivePhaseName)}, actions...)
			} else if !state.IsActive {
				actions = append(actions, "Rest day: stockpile resources for Monday's reset")
			}
		case CategoryKvK:
			if mainFaction.IsValid() {
				actions = append(actions, kvkFactionAdvice(mainFaction))
			}
		}

		// ActivePhaseName is only set when ActivePhaseIndex is inside event.Phases.
		if state.IsActive && playbook.category != CategoryArmsRace && state.ActivePhaseName != "" {
			actions = append(actions, currentPhaseAction(event, state.ActivePhaseIndex))
		}

		strategies = append(strategies, EventStrategy{
			EventID:   event.ID,
			EventName: event.Name,
			Category:  playbook.category,
			Priority:  priority,
			Focus:     playbook.focus,
			Actions:   actions,
			State:     state,
		})
	}
	return strategies
}

func kvkFactionAdvice(main domain.Faction) string {
	target, ok := CounteredBy(main)
	if !ok {
		return fmt.Sprintf("Field your %s heroes together for faction synergy", main)
	}
	return fmt.Sprintf("Field your %s heroes together and target %s kingdoms for a %.0f%% damage edge",
		main, target, (FactionAdvantage(main, target)-1)*100)
}

func currentPhaseAction(event domain.GameEvent, index int) string {
	phase := event.Phases[index]
	if phase.Description == "" {
		return fmt.Sprintf("Current phase: %s", phase.Name)
	}
	return fmt.Sprintf("Current phase: %s (%s)", phase.Name, phase.Description)
}
