package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ScheduleType describes how an event recurs
type ScheduleType string

const (
	ScheduleWeeklyUTC ScheduleType = "Weekly-UTC"
	ScheduleBiWeekly  ScheduleType = "Bi-Weekly"
	ScheduleManual    ScheduleType = "Manual"
	ScheduleDaily     ScheduleType = "Daily"
)

// ScheduleRuleKind selects how an event's activation state is derived
type ScheduleRuleKind string

const (
	// RuleWeekdayPhases runs one phase per weekday starting at PhaseStart,
	// and is off on OffDays.
	RuleWeekdayPhases ScheduleRuleKind = "weekly-weekday-phases"
	// RuleWeekendWindow is active with phase 0 on Days only.
	RuleWeekendWindow ScheduleRuleKind = "weekend-window"
	// RuleManual reads the stored IsActive/ActivePhaseIndex flags.
	RuleManual ScheduleRuleKind = "manual"
)

// ScheduleRule is a declarative schedule. Days are evaluated in UTC.
type ScheduleRule struct {
	Kind       ScheduleRuleKind `json:"kind"`
	PhaseStart time.Weekday     `json:"phaseStart,omitempty"`
	OffDays    []time.Weekday   `json:"offDays,omitempty"`
	Days       []time.Weekday   `json:"days,omitempty"`
}

// ScoringEntry is one row of a phase scoring table
type ScoringEntry struct {
	Action string `json:"action"`
	Points int    `json:"points"`
}

// EventPhase is one stage of a multi-day event
type EventPhase struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Tasks       []string       `json:"tasks,omitempty"`
	Scoring     []ScoringEntry `json:"scoring,omitempty"`
}

// GameEvent is catalog data for a live or recurring in-game event
type GameEvent struct {
	ID               string                            `json:"id" gorm:"primaryKey"`
	Name             string                            `json:"name" gorm:"not null"`
	Type             string                            `json:"type"`
	Description      string                            `json:"description,omitempty"`
	Phases           datatypes.JSONSlice[EventPhase]   `json:"phases,omitempty" gorm:"type:jsonb"`
	ScheduleType     ScheduleType                      `json:"scheduleType,omitempty" gorm:"type:varchar(16)"`
	Rule             *datatypes.JSONType[ScheduleRule] `json:"rule,omitempty" gorm:"type:jsonb"`
	IsActive         bool                              `json:"isActive"`
	ActivePhaseIndex *int                              `json:"activePhaseIndex,omitempty"`
	NextOccurrence   string                            `json:"nextOccurrence,omitempty"`
	LastSyncedAt     time.Time                         `json:"-"`
}

// TableName returns the table name for GORM
func (GameEvent) TableName() string {
	return "game_events"
}

// PhaseName returns the name of the phase at index, or "" if out of range
func (e *GameEvent) PhaseName(index int) string {
	if index < 0 || index >= len(e.Phases) {
		return ""
	}
	return e.Phases[index].Name
}

// Schedule returns the explicit schedule rule, if any
func (e *GameEvent) Schedule() (ScheduleRule, bool) {
	if e.Rule == nil {
		return ScheduleRule{}, false
	}
	return e.Rule.Data(), true
}
