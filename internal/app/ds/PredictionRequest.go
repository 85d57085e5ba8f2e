package ds

import (
	"database/sql"
	"time"
)

// Prediction request lifecycle statuses.
const (
	StatusCompleted = "completed"
	StatusReviewed  = "reviewed"
	StatusDeleted   = "deleted"
)

type PredictionRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null" json:"user_id"`
	Status      string     `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ModeratorID *uint      `json:"moderator_id"`

	FamilyHistory        bool    `gorm:"not null" json:"family_history"`
	SaltConsumption      string  `gorm:"type:varchar(10);not null" json:"salt_consumption"`
	SugarConsumption     string  `gorm:"type:varchar(10);not null" json:"sugar_consumption"`
	ExerciseFrequency    string  `gorm:"type:varchar(10);not null" json:"exercise_frequency"`
	SmokingStatus        string  `gorm:"type:varchar(10);not null" json:"smoking_status"`
	BellyCircumferenceCM float64 `gorm:"column:belly_circumference_cm;type:decimal(5,1)" json:"belly_circumference_cm"`
	WeightKG             float64 `gorm:"column:weight_kg;type:decimal(5,1)" json:"weight_kg"`
	HeightCM             float64 `gorm:"column:height_cm;type:decimal(5,1)" json:"height_cm"`

	Probability    float64        `gorm:"type:decimal(6,4)" json:"probability"`
	RiskLevel      string         `gorm:"type:varchar(20)" json:"risk_level"`
	Classification string         `gorm:"type:varchar(20)" json:"classification"`
	Recommendation string         `gorm:"type:text" json:"recommendation"`
	DoctorComment  sql.NullString `gorm:"type:text" json:"-"`

	User      User  `gorm:"foreignKey:UserID" json:"user"`
	Moderator *User `gorm:"foreignKey:ModeratorID" json:"moderator,omitempty"`
}

// Record re-assembles the input record stored on the row.
func (p *PredictionRequest) Record() HealthRecord {
	return HealthRecord{
		FamilyHistory:        p.FamilyHistory,
		SaltConsumption:      p.SaltConsumption,
		SugarConsumption:     p.SugarConsumption,
		ExerciseFrequency:    p.ExerciseFrequency,
		SmokingStatus:        p.SmokingStatus,
		BellyCircumferenceCM: p.BellyCircumferenceCM,
		WeightKG:             p.WeightKG,
		HeightCM:             p.HeightCM,
	}
}
