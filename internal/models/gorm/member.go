package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"gorm.io/gorm"
)

type Member struct {
	ID             string                  `gorm:"column:id;primaryKey;type:uuid"`
	Email          string                  `gorm:"column:email;uniqueIndex"`
	FirstName      string                  `gorm:"column:first_name"`
	LastName       string                  `gorm:"column:last_name"`
	Phone          *string                 `gorm:"column:phone"`
	Role           constants.MemberRole    `gorm:"column:role;type:member_role;default:member"`
	AccountStatus  constants.AccountStatus `gorm:"column:account_status;type:account_status;default:pending"`
	DuesPaid       bool                    `gorm:"column:dues_paid;default:false"`
	DuesExpiration *time.Time              `gorm:"column:dues_expiration"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Signups        []EventSignup   `gorm:"foreignKey:MemberID"`
	Hours          []EventHours    `gorm:"foreignKey:MemberID"`
	Certifications []Certification `gorm:"foreignKey:MemberID"`
	PenaltyPoints  []PenaltyPoint  `gorm:"foreignKey:MemberID"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// FullName joins first and last name for notification templates and rosters.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
