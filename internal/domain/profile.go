package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile stores a user's UserData blob with an optimistic version counter
type Profile struct {
	ID        uuid.UUID                    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID                    `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	Version   int                          `json:"version" gorm:"not null;default:1"`
	Data      datatypes.JSONType[UserData] `json:"data" gorm:"type:jsonb;not null"`
	CreatedAt time.Time                    `json:"createdAt"`
	UpdatedAt time.Time                    `json:"updatedAt"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// NewProfile creates an empty version-1 profile for a user
func NewProfile(userID uuid.UUID) *Profile {
	return &Profile{
		ID:      uuid.New(),
		UserID:  userID,
		Version: 1,
		Data:    datatypes.NewJSONType(NewUserData()),
	}
}

// SnapshotRecord is an append-only row of a user's influence history
type SnapshotRecord struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Value      int       `json:"value" gorm:"not null"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recordedAt" gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SnapshotRecord) TableName() string {
	return "progress_snapshots"
}

// Snapshot converts the record to its engine form
func (r *SnapshotRecord) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		Timestamp: r.RecordedAt,
		Value:     r.Value,
		Note:      r.Note,
	}
}
