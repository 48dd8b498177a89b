package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Faction is one of the three hero alignments
type Faction string

const (
	FactionNature Faction = "Nature"
	FactionLeague Faction = "League"
	FactionHorde  Faction = "Horde"
)

// AllFactions contains all valid factions in catalog order
var AllFactions = []Faction{FactionNature, FactionLeague, FactionHorde}

// IsValid checks if a faction is valid
func (f Faction) IsValid() bool {
	switch f {
	case FactionNature, FactionLeague, FactionHorde:
		return true
	}
	return false
}

func (f Faction) String() string {
	return string(f)
}

// Rarity is a hero's catalog rarity
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
)

// IsValid checks if a rarity is valid
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic:
		return true
	}
	return false
}

func (r Rarity) String() string {
	return string(r)
}

// Tier is the meta ranking of a hero
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// IsValid checks if a tier is valid
func (t Tier) IsValid() bool {
	switch t {
	case TierS, TierA, TierB, TierC, TierD:
		return true
	}
	return false
}

// RoleClass is the canonical form of a free-text hero role
type RoleClass string

const (
	RoleClassDPS     RoleClass = "dps"
	RoleClassSupport RoleClass = "support"
	RoleClassTank    RoleClass = "tank"
	RoleClassOther   RoleClass = "other"
)

// roleSynonyms maps lower-cased role labels from the catalog to their class
var roleSynonyms = map[string]RoleClass{
	"dps":           RoleClassDPS,
	"damage dealer": RoleClassDPS,
	"support":       RoleClassSupport,
	"supporter":     RoleClassSupport,
	"healer":        RoleClassSupport,
	"tank":          RoleClassTank,
	"controller":    RoleClassTank,
}

// NormalizeRole maps a free-text role to its canonical class.
// Unknown or empty roles map to RoleClassOther.
func NormalizeRole(role string) RoleClass {
	if class, ok := roleSynonyms[strings.ToLower(strings.TrimSpace(role))]; ok {
		return class
	}
	return RoleClassOther
}

// Bond is a static link to a partner hero that grants a stat bonus
type Bond struct {
	PartnerID string `json:"partnerId"`
	Bonus     string `json:"bonus"`
}

// Weapon is optional exclusive gear metadata
type Weapon struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Hero is immutable catalog data
type Hero struct {
	ID           string                      `json:"id" gorm:"primaryKey"`
	Name         string                      `json:"name" gorm:"not null"`
	Faction      Faction                     `json:"faction" gorm:"type:varchar(10);not null"`
	Rarity       Rarity                      `json:"rarity" gorm:"type:varchar(12);not null"`
	Role         string                      `json:"role"`
	Tier         Tier                        `json:"tier" gorm:"type:varchar(2)"`
	Bonds        datatypes.JSONSlice[Bond]   `json:"bonds,omitempty" gorm:"type:jsonb"`
	Weapon       *datatypes.JSONType[Weapon] `json:"weapon,omitempty" gorm:"type:jsonb"`
	LastSyncedAt time.Time                   `json:"-"`
}

// TableName returns the table name for GORM
func (Hero) TableName() string {
	return "heroes"
}

// OwnedHero is a catalog hero plus the player's progress on it
type OwnedHero struct {
	Hero
	Level     int  `json:"level"`
	Stars     int  `json:"stars"`
	Awakening int  `json:"awakening"`
	Power     int  `json:"power"`
	Owned     bool `json:"owned"`
}

// NewOwnedHero recruits a catalog hero at level 1 with no stars
func NewOwnedHero(hero Hero) OwnedHero {
	return OwnedHero{
		Hero:  hero,
		Level: 1,
		Owned: true,
	}
}

// SyncCatalog overwrites the catalog fields with the given source hero,
// keeping player progress intact.
func (o *OwnedHero) SyncCatalog(hero Hero) {
	o.Hero = hero
}
