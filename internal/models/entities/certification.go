package entities

import (
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
)

type Certification struct {
	ID             string                      `db:"id" json:"id"`
	MemberID       string                      `db:"member_id" json:"member_id"`
	CertType       constants.CertificationType `db:"cert_type" json:"cert_type"`
	FileURL        string                      `db:"file_url" json:"file_url"`
	UploadDate     time.Time                   `db:"upload_date" json:"upload_date"`
	IsApproved     bool                        `db:"is_approved" json:"is_approved"`
	ExpirationDate *time.Time                  `db:"expiration_date" json:"expiration_date,omitempty"`
	ApprovedBy     *string                     `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedDate   *time.Time                  `db:"approved_date" json:"approved_date,omitempty"`
	CreatedAt      time.Time                   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time                   `db:"updated_at" json:"updated_at"`
}

type PenaltyPoint struct {
	ID             string     `db:"id" json:"id"`
	MemberID       string     `db:"member_id" json:"member_id"`
	Points         int        `db:"points" json:"points"`
	Reason         string     `db:"reason" json:"reason"`
	AssignedBy     string     `db:"assigned_by" json:"assigned_by"`
	AssignedDate   time.Time  `db:"assigned_date" json:"assigned_date"`
	AutoRemoveDate *time.Time `db:"auto_remove_date" json:"auto_remove_date,omitempty"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
