package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PenaltyPoint struct {
	ID             string     `gorm:"column:id;primaryKey;type:uuid"`
	MemberID       string     `gorm:"column:member_id;type:uuid;index"`
	Points         int        `gorm:"column:points"`
	Reason         string     `gorm:"column:reason"`
	AssignedBy     string     `gorm:"column:assigned_by;type:uuid"`
	AssignedDate   time.Time  `gorm:"column:assigned_date"`
	AutoRemoveDate *time.Time `gorm:"column:auto_remove_date"`
	IsActive       bool       `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Member Member `gorm:"foreignKey:MemberID"`
}

// TableName specifies the table name for GORM
func (PenaltyPoint) TableName() string {
	return "penalty_points"
}

func (p *PenaltyPoint) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ActiveAt applies lazy expiry: a record past its auto_remove_date no longer
// counts toward the member's effective total, no sweep job involved.
func (p *PenaltyPoint) ActiveAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.AutoRemoveDate != nil && !p.AutoRemoveDate.After(now) {
		return false
	}
	return true
}
