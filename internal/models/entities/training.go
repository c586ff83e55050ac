package entities

import (
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
)

type TrainingSession struct {
	ID            string    `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	SessionDate   time.Time `db:"session_date" json:"session_date"`
	StartTime     string    `db:"start_time" json:"start_time"`
	EndTime       string    `db:"end_time" json:"end_time"`
	Location      string    `db:"location" json:"location"`
	Description   string    `db:"description" json:"description"`
	IsAHATraining bool      `db:"is_aha_training" json:"is_aha_training"`
	CPRCost       *float64  `db:"cpr_cost" json:"cpr_cost,omitempty"`
	FACost        *float64  `db:"fa_cost" json:"fa_cost,omitempty"`
	BothCost      *float64  `db:"both_cost" json:"both_cost,omitempty"`
	IsFinalized   bool      `db:"is_finalized" json:"is_finalized"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TrainingRosterRow is a training signup joined with member display fields.
type TrainingRosterRow struct {
	ID               string                       `db:"id" json:"id"`
	SessionID        string                       `db:"session_id" json:"session_id"`
	MemberID         string                       `db:"member_id" json:"member_id"`
	SignupType       constants.TrainingSignupType `db:"signup_type" json:"signup_type"`
	SignupTime       time.Time                    `db:"signup_time" json:"signup_time"`
	PaymentConfirmed bool                         `db:"payment_confirmed" json:"payment_confirmed"`
	FirstName        string                       `db:"first_name" json:"first_name"`
	LastName         string                       `db:"last_name" json:"last_name"`
	Email            string                       `db:"email" json:"email"`
	Role             constants.MemberRole         `db:"role" json:"role"`
}
