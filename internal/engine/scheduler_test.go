package engine_test

import (
	"testing"
	"time"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var armsRacePhases = []domain.EventPhase{
	{Name: "City Building"},
	{Name: "Tech Research"},
	{Name: "Hero Development"},
	{Name: "Troop Training"},
	{Name: "Speedup Day"},
	{Name: "Enemy Buster"},
}

func armsRace() domain.GameEvent {
	return domain.GameEvent{
		ID:           "arms-race",
		Name:         "Arms Race",
		ScheduleType: domain.ScheduleWeeklyUTC,
		Phases:       armsRacePhases,
	}
}

func ancientRuins() domain.GameEvent {
	return domain.GameEvent{
		ID:           "ancient-ruins",
		Name:         "Ancient Ruins",
		ScheduleType: domain.ScheduleWeeklyUTC,
		Phases:       []domain.EventPhase{{Name: "Capture"}},
	}
}

// 2024-06-09 is a Sunday.
func utcDay(offset int, hour int) time.Time {
	return time.Date(2024, 6, 9+offset, hour, 0, 0, 0, time.UTC)
}

func TestComputeEventState_ArmsRace(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		active    bool
		index     int
		phaseName string
	}{
		{name: "sunday is a rest day", now: utcDay(0, 12), active: false, index: -1},
		{name: "monday is phase 0", now: utcDay(1, 0), active: true, index: 0, phaseName: "City Building"},
		{name: "wednesday is phase 2", now: utcDay(3, 15), active: true, index: 2, phaseName: "Hero Development"},
		{name: "saturday is phase 5", now: utcDay(6, 23), active: true, index: 5, phaseName: "Enemy Buster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := engine.ComputeEventState(armsRace(), tt.now)
			assert.Equal(t, tt.active, state.IsActive)
			assert.Equal(t, tt.index, state.ActivePhaseIndex)
			assert.Equal(t, tt.phaseName, state.ActivePhaseName)
		})
	}
}

func TestComputeEventState_UsesUTCWeekday(t *testing.T) {
	// Tuesday 01:00 in UTC+3 is still Monday in UTC.
	local := time.Date(2024, 6, 11, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))
	state := engine.ComputeEventState(armsRace(), local)
	assert.Equal(t, 0, state.ActivePhaseIndex)
}

func TestComputeEventState_AncientRuins(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		now := utcDay(offset, 10)
		state := engine.ComputeEventState(ancientRuins(), now)
		weekend := now.Weekday() == time.Saturday || now.Weekday() == time.Sunday
		assert.Equal(t, weekend, state.IsActive, "weekday %s", now.Weekday())
		if weekend {
			assert.Equal(t, 0, state.ActivePhaseIndex)
			assert.Equal(t, "Capture", state.ActivePhaseName)
		} else {
			assert.Equal(t, -1, state.ActivePhaseIndex)
		}
	}
}

func TestComputeEventState_StoredFlags(t *testing.T) {
	two := 2
	event := domain.GameEvent{
		ID:               "guild-boss",
		Name:             "Guild Boss",
		IsActive:         true,
		ActivePhaseIndex: &two,
		Phases:           []domain.EventPhase{{Name: "Scout"}, {Name: "Assault"}, {Name: "Final Stand"}},
	}

	state := engine.ComputeEventState(event, utcDay(0, 0))
	assert.True(t, state.IsActive)
	assert.Equal(t, 2, state.ActivePhaseIndex)
	assert.Equal(t, "Final Stand", state.ActivePhaseName)
}

func TestComputeEventState_StoredDefaults(t *testing.T) {
	event := domain.GameEvent{ID: "login-bonus", Name: "Login Bonus"}
	state := engine.ComputeEventState(event, utcDay(2, 0))
	assert.False(t, state.IsActive)
	assert.Equal(t, 0, state.ActivePhaseIndex)
	assert.Empty(t, state.ActivePhaseName)
}

func TestComputeEventState_WeeklyEventOutsideBuiltins(t *testing.T) {
	event := domain.GameEvent{
		ID:           "weekly-trial",
		ScheduleType: domain.ScheduleWeeklyUTC,
		IsActive:     true,
		Phases:       []domain.EventPhase{{Name: "Trial"}},
	}
	state := engine.ComputeEventState(event, utcDay(0, 0))
	assert.True(t, state.IsActive)
	assert.Equal(t, "Trial", state.ActivePhaseName)
}

func TestComputeEventState_BuiltinRequiresWeeklySchedule(t *testing.T) {
	event := armsRace()
	event.ScheduleType = domain.ScheduleManual
	event.IsActive = true

	state := engine.ComputeEventState(event, utcDay(0, 0))
	assert.True(t, state.IsActive, "stored flags apply when the schedule type is not Weekly-UTC")
}

func TestComputeEventState_DeclaredRule(t *testing.T) {
	rule := datatypes.NewJSONType(domain.ScheduleRule{
		Kind: domain.RuleWeekendWindow,
		Days: []time.Weekday{time.Friday},
	})
	event := domain.GameEvent{
		ID:     "friday-raid",
		Rule:   &rule,
		Phases: []domain.EventPhase{{Name: "Raid"}},
	}

	assert.True(t, engine.ComputeEventState(event, utcDay(5, 0)).IsActive)
	assert.False(t, engine.ComputeEventState(event, utcDay(4, 0)).IsActive)
}

func TestTimeUntilReset(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "evening", now: time.Date(2024, 6, 10, 18, 30, 45, 0, time.UTC), want: "5h 29m 15s"},
		{name: "exact midnight", now: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), want: "24h 0m 0s"},
		{name: "one second before", now: time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC), want: "0h 0m 1s"},
		{name: "sub-second truncated", now: time.Date(2024, 6, 10, 23, 59, 58, 500_000_000, time.UTC), want: "0h 0m 1s"},
		{name: "non-UTC input", now: time.Date(2024, 6, 10, 20, 30, 45, 0, time.FixedZone("CEST", 2*3600)), want: "5h 29m 15s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.TimeUntilReset(tt.now))
		})
	}
}

func TestTimeUntilEvent(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		iso  string
		want string
	}{
		{name: "past", iso: "2024-06-10T11:00:00Z", want: "Active Now"},
		{name: "exactly now", iso: "2024-06-10T12:00:00Z", want: "Active Now"},
		{name: "days and hours", iso: "2024-06-12T17:30:00Z", want: "2d 5h"},
		{name: "hours and minutes", iso: "2024-06-10T15:45:30Z", want: "3h 45m"},
		{name: "minutes only", iso: "2024-06-10T12:07:59Z", want: "7m"},
		{name: "offset timestamp", iso: "2024-06-10T16:00:00+02:00", want: "2h 0m"},
		{name: "date only reads as UTC midnight", iso: "2024-06-12", want: "1d 12h"},
		{name: "zoneless timestamp reads as UTC", iso: "2024-06-10T15:45:30", want: "3h 45m"},
		{name: "date only in the past", iso: "2024-06-10", want: "Active Now"},
		{name: "unparseable", iso: "next tuesday", want: "TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.TimeUntilEvent(tt.iso, now))
		})
	}
}

func TestSortByNextOccurrence(t *testing.T) {
	events := []domain.GameEvent{
		{ID: "undated-1"},
		{ID: "late", NextOccurrence: "2024-07-01T00:00:00Z"},
		{ID: "undated-2", NextOccurrence: "garbage"},
		{ID: "early", NextOccurrence: "2024-06-11T00:00:00Z"},
		{ID: "middle", NextOccurrence: "2024-06-20T08:00:00+02:00"},
		{ID: "zoneless", NextOccurrence: "2024-06-25T09:00:00"},
		{ID: "date-only", NextOccurrence: "2024-06-15"},
	}
	original := make([]domain.GameEvent, len(events))
	copy(original, events)

	sorted := engine.SortByNextOccurrence(events)

	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"early", "date-only", "middle", "zoneless", "late", "undated-1", "undated-2"}, ids)
	require.Len(t, events, len(original))
	for i := range events {
		assert.Equal(t, original[i].ID, events[i].ID, "input order changed at %d", i)
	}
}

func TestClocks(t *testing.T) {
	at := time.Date(2024, 6, 10, 18, 30, 45, 0, time.UTC)
	assert.Equal(t, at, engine.FixedClock(at).Now())
	assert.WithinDuration(t, time.Now(), engine.SystemClock{}.Now(), time.Second)
}
