package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"gorm.io/gorm"
)

type TrainingSession struct {
	ID            string    `gorm:"column:id;primaryKey;type:uuid"`
	Title         string    `gorm:"column:title"`
	SessionDate   time.Time `gorm:"column:session_date"`
	StartTime     string    `gorm:"column:start_time"` // HH:MM, 24-hour
	EndTime       string    `gorm:"column:end_time"`   // HH:MM, 24-hour
	Location      string    `gorm:"column:location"`
	Description   string    `gorm:"column:description"`
	IsAHATraining bool      `gorm:"column:is_aha_training;default:false"`
	CPRCost       *float64  `gorm:"column:cpr_cost"`
	FACost        *float64  `gorm:"column:fa_cost"`
	BothCost      *float64  `gorm:"column:both_cost"`
	IsFinalized   bool      `gorm:"column:is_finalized;default:false"`
	CreatedBy     string    `gorm:"column:created_by;type:uuid"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Signups []TrainingSignup `gorm:"foreignKey:SessionID"`
}

// TableName specifies the table name for GORM
func (TrainingSession) TableName() string {
	return "training_sessions"
}

func (t *TrainingSession) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// CostFor resolves the price tier for a signup type on AHA sessions.
// Non-AHA sessions have no charge.
func (t *TrainingSession) CostFor(signupType constants.TrainingSignupType) float64 {
	if !t.IsAHATraining {
		return 0
	}
	var cost *float64
	switch signupType {
	case constants.TrainingCPROnly:
		cost = t.CPRCost
	case constants.TrainingFAOnly:
		cost = t.FACost
	case constants.TrainingBoth:
		cost = t.BothCost
	}
	if cost == nil {
		return 0
	}
	return *cost
}

type TrainingSignup struct {
	ID               string                       `gorm:"column:id;primaryKey;type:uuid"`
	SessionID        string                       `gorm:"column:session_id;type:uuid;uniqueIndex:idx_session_member"`
	MemberID         string                       `gorm:"column:member_id;type:uuid;uniqueIndex:idx_session_member"`
	SignupType       constants.TrainingSignupType `gorm:"column:signup_type;type:training_signup_type"`
	SignupTime       time.Time                    `gorm:"column:signup_time"`
	PaymentConfirmed bool                         `gorm:"column:payment_confirmed;default:false"`
	CreatedAt        time.Time                    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                    `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Session TrainingSession `gorm:"foreignKey:SessionID"`
	Member  Member          `gorm:"foreignKey:MemberID"`
}

// TableName specifies the table name for GORM
func (TrainingSignup) TableName() string {
	return "training_signups"
}

func (s *TrainingSignup) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
