package dtos

import (
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
)

type APIResponse[T any] struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Error     string            `json:"error,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Data      *T                `json:"data,omitempty"`
}

// MemberProfile is a member with the derived aggregates the UI shows.
// Totals are computed on read, never stored on the member row.
type MemberProfile struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	FirstName      string                  `json:"first_name"`
	LastName       string                  `json:"last_name"`
	Phone          *string                 `json:"phone,omitempty"`
	Role           constants.MemberRole    `json:"role"`
	AccountStatus  constants.AccountStatus `json:"account_status"`
	DuesPaid       bool                    `json:"dues_paid"`
	DuesExpiration *time.Time              `json:"dues_expiration,omitempty"`
	TotalHours     float64                 `json:"total_hours"`
	PendingHours   float64                 `json:"pending_hours"`
	PenaltyPoints  int                     `json:"penalty_points"`
}

type EventView struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	EventDate        string    `json:"event_date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	SupervisorNeeded int       `json:"supervisor_needed"`
	EMTNeeded        int       `json:"emt_needed"`
	FAEMRNeeded      int       `json:"fa_emr_needed"`
	IsFinalized      bool      `json:"is_finalized"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

type TrainingSessionView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SessionDate   string    `json:"session_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	IsAHATraining bool      `json:"is_aha_training"`
	CPRCost       *float64  `json:"cpr_cost,omitempty"`
	FACost        *float64  `json:"fa_cost,omitempty"`
	BothCost      *float64  `json:"both_cost,omitempty"`
	IsFinalized   bool      `json:"is_finalized"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// SignupView is the lean signup shape returned by signup mutations.
type SignupView struct {
	ID           string                 `json:"id"`
	EventID      string                 `json:"event_id"`
	MemberID     string                 `json:"member_id"`
	PositionType constants.PositionType `json:"position_type"`
	SignupTime   time.Time              `json:"signup_time"`
	IsAssigned   bool                   `json:"is_assigned"`
	AssignedBy   *string                `json:"assigned_by,omitempty"`
	AssignedTime *time.Time             `json:"assigned_time,omitempty"`
}

type WaitlistEntry struct {
	SignupID      string                 `json:"signup_id"`
	MemberID      string                 `json:"member_id"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Role          constants.MemberRole   `json:"role"`
	PositionType  constants.PositionType `json:"position_type"`
	SignupTime    time.Time              `json:"signup_time"`
	IsAssigned    bool                   `json:"is_assigned"`
	AssignedBy    *string                `json:"assigned_by,omitempty"`
	AssignedTime  *time.Time             `json:"assigned_time,omitempty"`
	TotalHours    float64                `json:"total_hours"`
	PenaltyPoints int                    `json:"penalty_points"`
}

// StaffingSlot reports remaining capacity for one position on an event.
type StaffingSlot struct {
	PositionType constants.PositionType `json:"position_type"`
	Needed       int                    `json:"needed"`
	Assigned     int                    `json:"assigned"`
	Remaining    int                    `json:"remaining"`
}

type CertificationView struct {
	ID             string                        `json:"id"`
	MemberID       string                        `json:"member_id"`
	CertType       constants.CertificationType   `json:"cert_type"`
	FileURL        string                        `json:"file_url"`
	UploadDate     time.Time                     `json:"upload_date"`
	Status         constants.CertificationStatus `json:"status"`
	ExpirationDate *time.Time                    `json:"expiration_date,omitempty"`
	ApprovedBy     *string                       `json:"approved_by,omitempty"`
	ApprovedDate   *time.Time                    `json:"approved_date,omitempty"`
}

type PenaltyView struct {
	ID             string     `json:"id"`
	MemberID       string     `json:"member_id"`
	Points         int        `json:"points"`
	Reason         string     `json:"reason"`
	AssignedBy     string     `json:"assigned_by"`
	AssignedDate   time.Time  `json:"assigned_date"`
	AutoRemoveDate *time.Time `json:"auto_remove_date,omitempty"`
	IsActive       bool       `json:"is_active"`
}

type HoursView struct {
	ID              string     `json:"id"`
	EventID         string     `json:"event_id"`
	MemberID        string     `json:"member_id"`
	CalculatedHours float64    `json:"calculated_hours"`
	ConfirmedHours  float64    `json:"confirmed_hours"`
	IsConfirmed     bool       `json:"is_confirmed"`
	ConfirmedBy     *string    `json:"confirmed_by,omitempty"`
	ConfirmedDate   *time.Time `json:"confirmed_date,omitempty"`
}

type TrainingSignupView struct {
	SignupID         string                       `json:"signup_id"`
	SessionID        string                       `json:"session_id"`
	MemberID         string                       `json:"member_id"`
	SignupType       constants.TrainingSignupType `json:"signup_type"`
	Cost             float64                      `json:"cost"`
	PaymentConfirmed bool                         `json:"payment_confirmed"`
	SignupTime       time.Time                    `json:"signup_time"`
}
