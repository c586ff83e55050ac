package services

import (
	"context"
	"fmt"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/metrics"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"

	"gorm.io/gorm"
)

// HoursService finalizes a member's credited hours for an event. An
// EventHours record is created lazily the first time an assigner confirms,
// and re-confirmation overwrites the prior value rather than accumulating.
type HoursService struct {
	db  *gorm.DB
	reg *metrics.MetricsRegistry
}

func NewHoursService(db *gorm.DB, reg *metrics.MetricsRegistry) *HoursService {
	return &HoursService{
		db:  db,
		reg: reg,
	}
}

// DefaultHours derives the credited-hours default from an event's HH:MM time
// bounds, fractional hours allowed. The end-after-start invariant is Event's
// to enforce; this defends independently anyway.
func DefaultHours(startTime, endTime string) (float64, error) {
	startMin, err := validation.ParseClock(startTime)
	if err != nil {
		return 0, common.FieldError("start_time", "must be a time in HH:MM 24-hour format")
	}
	endMin, err := validation.ParseClock(endTime)
	if err != nil {
		return 0, common.FieldError("end_time", "must be a time in HH:MM 24-hour format")
	}
	if endMin <= startMin {
		return 0, common.FieldError("end_time", "must be after start_time")
	}
	return float64(endMin-startMin) / 60.0, nil
}

// ConfirmHours upserts the member's EventHours record for the event and marks
// it confirmed with the given value.
func (svc *HoursService) ConfirmHours(ctx context.Context, eventID, memberID string, hours float64, confirmer auth.UserClaims) (*gormModels.EventHours, error) {
	if hours < 0 {
		return nil, common.FieldError("hours", "must not be negative")
	}
	if !confirmer.HasAtLeast(constants.RoleSupervisor) {
		return nil, common.ErrForbidden
	}

	var record gormModels.EventHours

	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event gormModels.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("event %s: %w", eventID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch event: %w", err)
		}

		var member gormModels.Member
		if err := tx.Where("id = ?", memberID).First(&member).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("member %s: %w", memberID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch member: %w", err)
		}

		now := time.Now().UTC()
		confirmerID := confirmer.MemberID()

		err := tx.Where("event_id = ? AND member_id = ?", eventID, memberID).First(&record).Error
		if err == gorm.ErrRecordNotFound {
			calculated, calcErr := DefaultHours(event.StartTime, event.EndTime)
			if calcErr != nil {
				// Event carries an invalid time window; fall back to the
				// confirmed value so the credit still lands.
				calculated = hours
			}
			record = gormModels.EventHours{
				EventID:         eventID,
				MemberID:        memberID,
				CalculatedHours: calculated,
				ConfirmedHours:  hours,
				IsConfirmed:     true,
				ConfirmedBy:     &confirmerID,
				ConfirmedDate:   &now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create hours record: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch hours record: %w", err)
		}

		if err := tx.Model(&gormModels.EventHours{}).
			Where("id = ?", record.ID).
			Updates(map[string]interface{}{
				"confirmed_hours": hours,
				"is_confirmed":    true,
				"confirmed_by":    confirmerID,
				"confirmed_date":  now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update hours record: %w", err)
		}

		record.ConfirmedHours = hours
		record.IsConfirmed = true
		record.ConfirmedBy = &confirmerID
		record.ConfirmedDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if svc.reg != nil {
		svc.reg.HoursConfirmedTotal.Inc()
	}

	logging.Info("Hours confirmed",
		"event_id", eventID,
		"member_id", memberID,
		"hours", hours,
		"confirmed_by", confirmer.MemberID(),
	)

	return &record, nil
}

// TotalHours is the member's displayed total: the sum of confirmed hours
// across confirmed records, computed on read to avoid counter drift.
func (svc *HoursService) TotalHours(ctx context.Context, memberID string) (float64, error) {
	type row struct {
		Total float64 `gorm:"column:total"`
	}
	var r row
	err := svc.db.WithContext(ctx).Model(&gormModels.EventHours{}).
		Select("COALESCE(SUM(confirmed_hours), 0) AS total").
		Where("member_id = ? AND is_confirmed = ?", memberID, true).
		Scan(&r).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum confirmed hours: %w", err)
	}
	return r.Total, nil
}
