package entities

import (
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
)

type Event struct {
	ID               string    `db:"id" json:"id"`
	Title            string    `db:"title" json:"title"`
	EventDate        time.Time `db:"event_date" json:"event_date"`
	StartTime        string    `db:"start_time" json:"start_time"`
	EndTime          string    `db:"end_time" json:"end_time"`
	Location         string    `db:"location" json:"location"`
	Description      string    `db:"description" json:"description"`
	SupervisorNeeded int       `db:"supervisor_needed" json:"supervisor_needed"`
	EMTNeeded        int       `db:"emt_needed" json:"emt_needed"`
	FAEMRNeeded      int       `db:"fa_emr_needed" json:"fa_emr_needed"`
	IsFinalized      bool      `db:"is_finalized" json:"is_finalized"`
	CreatedBy        string    `db:"created_by" json:"created_by"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// WaitlistRow is a signup joined with its member's display fields and the
// member's derived confirmed-hours and active-penalty totals.
type WaitlistRow struct {
	ID            string                 `db:"id" json:"id"`
	EventID       string                 `db:"event_id" json:"event_id"`
	MemberID      string                 `db:"member_id" json:"member_id"`
	PositionType  constants.PositionType `db:"position_type" json:"position_type"`
	SignupTime    time.Time              `db:"signup_time" json:"signup_time"`
	IsAssigned    bool                   `db:"is_assigned" json:"is_assigned"`
	AssignedBy    *string                `db:"assigned_by" json:"assigned_by,omitempty"`
	AssignedTime  *time.Time             `db:"assigned_time" json:"assigned_time,omitempty"`
	FirstName     string                 `db:"first_name" json:"first_name"`
	LastName      string                 `db:"last_name" json:"last_name"`
	Email         string                 `db:"email" json:"email"`
	Role          constants.MemberRole   `db:"role" json:"role"`
	TotalHours    float64                `db:"total_hours" json:"total_hours"`
	PenaltyPoints int                    `db:"penalty_points" json:"penalty_points"`
}

type EventHours struct {
	ID              string     `db:"id" json:"id"`
	EventID         string     `db:"event_id" json:"event_id"`
	MemberID        string     `db:"member_id" json:"member_id"`
	CalculatedHours float64    `db:"calculated_hours" json:"calculated_hours"`
	ConfirmedHours  float64    `db:"confirmed_hours" json:"confirmed_hours"`
	IsConfirmed     bool       `db:"is_confirmed" json:"is_confirmed"`
	ConfirmedBy     *string    `db:"confirmed_by" json:"confirmed_by,omitempty"`
	ConfirmedDate   *time.Time `db:"confirmed_date" json:"confirmed_date,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
