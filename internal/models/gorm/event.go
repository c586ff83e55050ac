package gorm

import (
	"time"

	"github.com/google/uuid"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"gorm.io/gorm"
)

type Event struct {
	ID               string    `gorm:"column:id;primaryKey;type:uuid"`
	Title            string    `gorm:"column:title"`
	EventDate        time.Time `gorm:"column:event_date"`
	StartTime        string    `gorm:"column:start_time"` // HH:MM, 24-hour
	EndTime          string    `gorm:"column:end_time"`   // HH:MM, 24-hour
	Location         string    `gorm:"column:location"`
	Description      string    `gorm:"column:description"`
	SupervisorNeeded int       `gorm:"column:supervisor_needed;default:0"`
	EMTNeeded        int       `gorm:"column:emt_needed;default:0"`
	FAEMRNeeded      int       `gorm:"column:fa_emr_needed;default:0"`
	IsFinalized      bool      `gorm:"column:is_finalized;default:false"`
	CreatedBy        string    `gorm:"column:created_by;type:uuid"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Signups []EventSignup `gorm:"foreignKey:EventID"`
	Hours   []EventHours  `gorm:"foreignKey:EventID"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// NeededFor returns the capacity counter for a position type.
func (e *Event) NeededFor(position constants.PositionType) int {
	switch position {
	case constants.PositionSupervisor:
		return e.SupervisorNeeded
	case constants.PositionEMT:
		return e.EMTNeeded
	case constants.PositionFAEMR:
		return e.FAEMRNeeded
	}
	return 0
}

type EventSignup struct {
	ID           string                 `gorm:"column:id;primaryKey;type:uuid"`
	EventID      string                 `gorm:"column:event_id;type:uuid;uniqueIndex:idx_event_member"`
	MemberID     string                 `gorm:"column:member_id;type:uuid;uniqueIndex:idx_event_member"`
	PositionType constants.PositionType `gorm:"column:position_type;type:position_type"`
	SignupTime   time.Time              `gorm:"column:signup_time"`
	IsAssigned   bool                   `gorm:"column:is_assigned;default:false"`
	AssignedBy   *string                `gorm:"column:assigned_by;type:uuid"`
	AssignedTime *time.Time             `gorm:"column:assigned_time"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Event  Event  `gorm:"foreignKey:EventID"`
	Member Member `gorm:"foreignKey:MemberID"`
}

// TableName specifies the table name for GORM
func (EventSignup) TableName() string {
	return "event_signups"
}

func (s *EventSignup) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type EventHours struct {
	ID              string     `gorm:"column:id;primaryKey;type:uuid"`
	EventID         string     `gorm:"column:event_id;type:uuid;uniqueIndex:idx_hours_event_member"`
	MemberID        string     `gorm:"column:member_id;type:uuid;uniqueIndex:idx_hours_event_member"`
	CalculatedHours float64    `gorm:"column:calculated_hours"`
	ConfirmedHours  float64    `gorm:"column:confirmed_hours"`
	IsConfirmed     bool       `gorm:"column:is_confirmed;default:false"`
	ConfirmedBy     *string    `gorm:"column:confirmed_by;type:uuid"`
	ConfirmedDate   *time.Time `gorm:"column:confirmed_date"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Event  Event  `gorm:"foreignKey:EventID"`
	Member Member `gorm:"foreignKey:MemberID"`
}

// TableName specifies the table name for GORM
func (EventHours) TableName() string {
	return "event_hours"
}

func (h *EventHours) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
