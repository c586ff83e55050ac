package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"gorm.io/gorm"
)

type Certification struct {
	ID             string                      `gorm:"column:id;primaryKey;type:uuid"`
	MemberID       string                      `gorm:"column:member_id;type:uuid;index"`
	CertType       constants.CertificationType `gorm:"column:cert_type;type:certification_type"`
	FileURL        string                      `gorm:"column:file_url"`
	UploadDate     time.Time                   `gorm:"column:upload_date"`
	IsApproved     bool                        `gorm:"column:is_approved;default:false"`
	ExpirationDate *time.Time                  `gorm:"column:expiration_date"`
	ApprovedBy     *string                     `gorm:"column:approved_by;type:uuid"`
	ApprovedDate   *time.Time                  `gorm:"column:approved_date"`
	CreatedAt      time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Member Member `gorm:"foreignKey:MemberID"`
}

// TableName specifies the table name for GORM
func (Certification) TableName() string {
	return "certifications"
}

func (c *Certification) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// StatusAt derives the display status at a point in time. Expiration is
// never stored as state; lookahead controls the expiring-soon window.
func (c *Certification) StatusAt(now time.Time, lookahead time.Duration) constants.CertificationStatus {
	if !c.IsApproved {
		return constants.CertStatusPending
	}
	if c.ExpirationDate == nil {
		return constants.CertStatusApproved
	}
	if c.ExpirationDate.Before(now) {
		return constants.CertStatusExpired
	}
	if c.ExpirationDate.Before(now.Add(lookahead)) {
		return constants.CertStatusExpiringSoon
	}
	return constants.CertStatusApproved
}
