package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dom/hero-companion/internal/domain"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// EventState is the derived activation state of an event at a point in time
type EventState struct {
	IsActive         bool   `json:"isActive"`
	ActivePhaseIndex int    `json:"activePhaseIndex"`
	ActivePhaseName  string `json:"activePhaseName,omitempty"`
}

// builtinRules are the schedule rules of Weekly-UTC events that predate
// per-event rules in the catalog.
var builtinRules = map[string]domain.ScheduleRule{
	"arms-race": {
		Kind:       domain.RuleWeekdayPhases,
		PhaseStart: time.Monday,
		OffDays:    []time.Weekday{time.Sunday},
	},
	"ancient-ruins": {
		Kind: domain.RuleWeekendWindow,
		Days: []time.Weekday{time.Saturday, time.Sunday},
	},
}

// ResolveRule picks the schedule rule for an event: an explicit rule first,
// then the built-in rule for known Weekly-UTC ids, then the stored flags.
func ResolveRule(event domain.GameEvent) domain.ScheduleRule {
	if rule, ok := event.Schedule(); ok && rule.Kind != "" {
		return rule
	}
	if event.ScheduleType == domain.ScheduleWeeklyUTC {
		if rule, ok := builtinRules[event.ID]; ok {
			return rule
		}
	}
	return domain.ScheduleRule{Kind: domain.RuleManual}
}

// ComputeEventState derives whether an event is running at now and which phase is live
func ComputeEventState(event domain.GameEvent, now time.Time) EventState {
	rule := ResolveRule(event)
	weekday := now.UTC().Weekday()

	switch rule.Kind {
	case domain.RuleWeekdayPhases:
		if containsWeekday(rule.OffDays, weekday) {
			return inactiveState()
		}
		index := (int(weekday) - int(rule.PhaseStart) + 7) % 7
		return EventState{
			IsActive:         true,
			ActivePhaseIndex: index,
			ActivePhaseName:  event.PhaseName(index),
		}

	case domain.RuleWeekendWindow:
		if !containsWeekday(rule.Days, weekday) {
			return inactiveState()
		}
		return EventState{
			IsActive:         true,
			ActivePhaseIndex: 0,
			ActivePhaseName:  event.PhaseName(0),
		}

	default:
		index := 0
		if event.ActivePhaseIndex != nil {
			index = *event.ActivePhaseIndex
		}
		return EventState{
			IsActive:         event.IsActive,
			ActivePhaseIndex: index,
			ActivePhaseName:  event.PhaseName(index),
		}
	}
}

func inactiveState() EventState {
	return EventState{IsActive: false, ActivePhaseIndex: -1}
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}

// TimeUntilReset formats the time left until the next UTC midnight as "Hh Mm Ss"
func TimeUntilReset(now time.Time) string {
	utc := now.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	remaining := int64(midnight.Sub(utc) / time.Second)

	h := remaining / 3600
	m := (remaining % 3600) / 60
	s := remaining % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// TimeUntilEvent formats the time until an occurrence timestamp using the
// largest applicable units. Past timestamps are "Active Now"; unparseable ones are "TBD".
func TimeUntilEvent(iso string, now time.Time) string {
	at, ok := parseOccurrence(iso)
	if !ok {
		return "TBD"
	}
	diff := at.Sub(now)
	if diff <= 0 {
		return "Active Now"
	}

	days := int(diff / (24 * time.Hour))
	hours := int((diff % (24 * time.Hour)) / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// SortByNextOccurrence returns a copy of events ordered by next occurrence.
// Events without a parseable timestamp keep their relative order at the end.
func SortByNextOccurrence(events []domain.GameEvent) []domain.GameEvent {
	sorted := make([]domain.GameEvent, len(events))
	copy(sorted, events)

	keys := make(map[string]float64, len(sorted))
	key := func(e domain.GameEvent) float64 {
		if k, ok := keys[e.NextOccurrence]; ok {
			return k
		}
		k := math.Inf(1)
		if at, ok := parseOccurrence(e.NextOccurrence); ok {
			k = float64(at.UnixMilli())
		}
		keys[e.NextOccurrence] = k
		return k
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) < key(sorted[j])
	})
	return sorted
}

// occurrenceLayouts are tried in order. Layouts without a zone read as UTC.
var occurrenceLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseOccurrence(iso string) (time.Time, bool) {
	if iso == "" {
		return time.Time{}, false
	}
	for _, layout := range occurrenceLayouts {
		if at, err := time.Parse(layout, iso); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}
