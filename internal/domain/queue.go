package domain

// MaxQueueHeroes is the number of hero slots in a formation
const MaxQueueHeroes = 5

// RelicSlotType keys the three relic slots of a formation
type RelicSlotType string

const (
	RelicSlotAttack  RelicSlotType = "Attack"
	RelicSlotDefense RelicSlotType = "Defense"
	RelicSlotAssist  RelicSlotType = "Assist"
)

// AllRelicSlots contains the relic slots in display order
var AllRelicSlots = []RelicSlotType{RelicSlotAttack, RelicSlotDefense, RelicSlotAssist}

// IsValid checks if a relic slot type is valid
func (r RelicSlotType) IsValid() bool {
	switch r {
	case RelicSlotAttack, RelicSlotDefense, RelicSlotAssist:
		return true
	}
	return false
}

// Pet is catalog data for an assignable pet
type Pet struct {
	ID            string `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"not null"`
	BaseInfluence int    `json:"baseInfluence" gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Pet) TableName() string {
	return "pets"
}

// Relic is catalog data for an assignable relic
type Relic struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"not null"`
	Type          RelicSlotType `json:"type" gorm:"type:varchar(10)"`
	BaseInfluence int           `json:"baseInfluence" gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Relic) TableName() string {
	return "relics"
}

// SkinKind distinguishes castle skins from march skins
type SkinKind string

const (
	SkinKindCastle SkinKind = "castle"
	SkinKindMarch  SkinKind = "march"
)

// Skin is catalog data for a cosmetic skin with an influence bonus
type Skin struct {
	ID            string   `json:"id" gorm:"primaryKey"`
	Name          string   `json:"name" gorm:"not null"`
	Kind          SkinKind `json:"kind" gorm:"type:varchar(10)"`
	BaseInfluence int      `json:"baseInfluence" gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Skin) TableName() string {
	return "skins"
}

// RelicSlot is a relic placed in a formation slot
type RelicSlot struct {
	RelicID string `json:"relicId"`
	Level   int    `json:"level"`
}

// Queue is a formation: hero slots, a pet, relics, skins and soldiers.
// Empty hero slots are stored as "".
type Queue struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	HeroIDs      []string                    `json:"heroes"`
	PetID        string                      `json:"petId,omitempty"`
	PetLevel     int                         `json:"petLevel,omitempty"`
	PetStars     int                         `json:"petStars,omitempty"`
	Relics       map[RelicSlotType]RelicSlot `json:"relics,omitempty"`
	CastleSkinID string                      `json:"castleSkinId,omitempty"`
	MarchSkinID  string                      `json:"marchSkinId,omitempty"`
	SoldierType  string                      `json:"soldierType,omitempty"`
	SoldierTier  int                         `json:"soldierTier,omitempty"`
}

// Validate checks the slot limits of a formation
func (q *Queue) Validate() error {
	if len(q.HeroIDs) > MaxQueueHeroes {
		return ErrTooManyHeroes
	}
	for slot := range q.Relics {
		if !slot.IsValid() {
			return ErrInvalidRelicSlot
		}
	}
	return nil
}

// AssignedHeroes returns the non-empty hero slots in order
func (q *Queue) AssignedHeroes() []string {
	ids := make([]string, 0, len(q.HeroIDs))
	for _, id := range q.HeroIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Equipment groups the assignable catalog items
type Equipment struct {
	Pets   []Pet   `json:"pets"`
	Relics []Relic `json:"relics"`
	Skins  []Skin  `json:"skins"`
}
