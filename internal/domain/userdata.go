package domain

import (
	"strings"
	"time"
)

// SpendProfile classifies how much a player spends
type SpendProfile string

const (
	SpendF2P        SpendProfile = "F2P"
	SpendLowSpender SpendProfile = "LowSpender"
	SpendWhale      SpendProfile = "Whale"
)

// IsValid checks if a spend profile is valid
func (p SpendProfile) IsValid() bool {
	switch p {
	case SpendF2P, SpendLowSpender, SpendWhale:
		return true
	}
	return false
}

func (p SpendProfile) String() string {
	return string(p)
}

// DisplayName returns a user-friendly label for the profile
func (p SpendProfile) DisplayName() string {
	switch p {
	case SpendWhale:
		return "Whale"
	case SpendLowSpender:
		return "Low Spender"
	default:
		return "Free-to-Play"
	}
}

// ParseSpendProfile maps loose labels to a spend profile. Unknown labels
// return F2P and false.
func ParseSpendProfile(s string) (SpendProfile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whale":
		return SpendWhale, true
	case "lowspender", "low-spender", "low spender", "low":
		return SpendLowSpender, true
	case "f2p", "free", "free-to-play":
		return SpendF2P, true
	default:
		return SpendF2P, false
	}
}

// ServerPhase is the rough age of a player's server
type ServerPhase string

const (
	ServerPhaseEarly ServerPhase = "Early"
	ServerPhaseMid   ServerPhase = "Mid"
	ServerPhaseLate  ServerPhase = "Late"
)

// Inventory holds the player's spendable resources
type Inventory struct {
	Diamonds int            `json:"diamonds"`
	Stamina  int            `json:"stamina"`
	Items    map[string]int `json:"items,omitempty"`
}

// Settings holds player preferences that drive recommendations
type Settings struct {
	MainFaction Faction `json:"mainFaction,omitempty"`
	ServerGroup string  `json:"serverGroup,omitempty"`
}

// ProgressSnapshot is an immutable point on the influence history
type ProgressSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value"`
	Note      string    `json:"note,omitempty"`
}

// ProgressModel carries the spend profile and modelled snapshots
type ProgressModel struct {
	SpendProfile SpendProfile       `json:"spendProfile,omitempty"`
	Snapshots    []ProgressSnapshot `json:"snapshots,omitempty"`
}

// UserData is the full player snapshot consumed by the engine
type UserData struct {
	Roster        []OwnedHero        `json:"roster"`
	Queues        []Queue            `json:"queues"`
	Inventory     Inventory          `json:"inventory"`
	Settings      Settings           `json:"settings"`
	ProgressLog   []ProgressSnapshot `json:"progressLog,omitempty"`
	ProgressModel ProgressModel      `json:"progressModel"`
}

// NewUserData returns an empty snapshot with non-nil containers
func NewUserData() UserData {
	return UserData{
		Roster: []OwnedHero{},
		Queues: []Queue{},
		ProgressModel: ProgressModel{
			SpendProfile: SpendF2P,
		},
	}
}

// SpendProfile returns the configured spend profile, defaulting to F2P
func (u *UserData) SpendProfile() SpendProfile {
	if u == nil || !u.ProgressModel.SpendProfile.IsValid() {
		return SpendF2P
	}
	return u.ProgressModel.SpendProfile
}

// FindHero returns the roster entry with the given id
func (u *UserData) FindHero(id string) (*OwnedHero, bool) {
	if u == nil {
		return nil, false
	}
	for i := range u.Roster {
		if u.Roster[i].ID == id {
			return &u.Roster[i], true
		}
	}
	return nil, false
}

// Validate checks formation limits
func (u *UserData) Validate() error {
	for i := range u.Queues {
		if err := u.Queues[i].Validate(); err != nil {
			return err
		}
	}
	if u.Settings.MainFaction != "" && !u.Settings.MainFaction.IsValid() {
		return ErrInvalidFaction
	}
	return nil
}
