package services

import (
	"context"
	"fmt"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"

	"gorm.io/gorm"
)

// EventService owns event CRUD. Mutations on events with existing signups
// fan out modification/cancellation notifications to the signed-up members.
type EventService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewEventService(db *gorm.DB, notifier Notifier) *EventService {
	return &EventService{
		db:       db,
		notifier: notifier,
	}
}

// Create validates and inserts a new event owned by its creator.
func (svc *EventService) Create(ctx context.Context, req *dtos.CreateEventReq, creator auth.UserClaims) (*gormModels.Event, error) {
	if !creator.HasAtLeast(constants.RoleBoard) {
		return nil, common.ErrForbidden
	}

	if err := validation.CreateEvent(req, time.Now()); err != nil {
		return nil, err
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, common.FieldError("event_date", "must be a date in YYYY-MM-DD format")
	}

	event := gormModels.Event{
		Title:            req.Title,
		EventDate:        eventDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Location:         req.Location,
		Description:      req.Description,
		SupervisorNeeded: req.SupervisorNeeded,
		EMTNeeded:        req.EMTNeeded,
		FAEMRNeeded:      req.FAEMRNeeded,
		CreatedBy:        creator.MemberID(),
	}

	if err := svc.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	logging.Info("Event created",
		"event_id", event.ID,
		"title", event.Title,
		"created_by", creator.MemberID(),
	)

	return &event, nil
}

// Update patches an event and notifies its signed-up members.
func (svc *EventService) Update(ctx context.Context, eventID string, req *dtos.UpdateEventReq, actor auth.UserClaims) (*gormModels.Event, error) {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return nil, common.ErrForbidden
	}

	var event gormModels.Event
	err := svc.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("event %s: %w", eventID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	if err := validation.UpdateEvent(req, event.StartTime, event.EndTime, time.Now()); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		event.Title = *req.Title
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return nil, common.FieldError("event_date", "must be a date in YYYY-MM-DD format")
		}
		updates["event_date"] = eventDate
		event.EventDate = eventDate
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
		event.EndTime = *req.EndTime
	}
	if req.Location != nil {
		updates["location"] = *req.Location
		event.Location = *req.Location
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		event.Description = *req.Description
	}
	if req.SupervisorNeeded != nil {
		updates["supervisor_needed"] = *req.SupervisorNeeded
		event.SupervisorNeeded = *req.SupervisorNeeded
	}
	if req.EMTNeeded != nil {
		updates["emt_needed"] = *req.EMTNeeded
		event.EMTNeeded = *req.EMTNeeded
	}
	if req.FAEMRNeeded != nil {
		updates["fa_emr_needed"] = *req.FAEMRNeeded
		event.FAEMRNeeded = *req.FAEMRNeeded
	}
	if req.IsFinalized != nil {
		updates["is_finalized"] = *req.IsFinalized
		event.IsFinalized = *req.IsFinalized
	}

	if len(updates) == 0 {
		return &event, nil
	}

	if err := svc.db.WithContext(ctx).Model(&gormModels.Event{}).
		Where("id = ?", eventID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	svc.notifySignups(ctx, &event, common.EventModified)

	logging.Info("Event updated",
		"event_id", eventID,
		"actor_id", actor.MemberID(),
	)

	return &event, nil
}

// Delete removes an event and its dependent records, then notifies the
// signed-up members of the cancellation.
func (svc *EventService) Delete(ctx context.Context, eventID string, actor auth.UserClaims) error {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return common.ErrForbidden
	}

	var event gormModels.Event
	err := svc.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("event %s: %w", eventID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to fetch event: %w", err)
	}

	// Collect recipients before the rows disappear; notify only once the
	// delete has committed.
	recipients := svc.signupRecipients(ctx, eventID)

	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&gormModels.EventSignup{}, "event_id = ?", eventID).Error; err != nil {
			return fmt.Errorf("failed to delete signups: %w", err)
		}
		if err := tx.Delete(&gormModels.EventHours{}, "event_id = ?", eventID).Error; err != nil {
			return fmt.Errorf("failed to delete hours: %w", err)
		}
		if err := tx.Delete(&gormModels.Event{}, "id = ?", eventID).Error; err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	svc.notifyMembers(ctx, &event, common.EventCancelled, recipients)

	logging.Info("Event deleted",
		"event_id", eventID,
		"actor_id", actor.MemberID(),
	)

	return nil
}

func (svc *EventService) notifySignups(ctx context.Context, event *gormModels.Event, kind common.NotificationKind) {
	svc.notifyMembers(ctx, event, kind, svc.signupRecipients(ctx, event.ID))
}

// signupRecipients resolves the members currently signed up for an event.
func (svc *EventService) signupRecipients(ctx context.Context, eventID string) []gormModels.Member {
	if svc.notifier == nil {
		return nil
	}

	var signups []gormModels.EventSignup
	if err := svc.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&signups).Error; err != nil {
		logging.Warn("Skipping event notifications, signup lookup failed",
			"event_id", eventID,
			"error", err.Error(),
		)
		return nil
	}

	members := make([]gormModels.Member, 0, len(signups))
	for i := range signups {
		var member gormModels.Member
		if err := svc.db.WithContext(ctx).Where("id = ?", signups[i].MemberID).First(&member).Error; err != nil {
			continue
		}
		members = append(members, member)
	}
	return members
}

func (svc *EventService) notifyMembers(ctx context.Context, event *gormModels.Event, kind common.NotificationKind, members []gormModels.Member) {
	if svc.notifier == nil {
		return
	}

	for i := range members {
		svc.notifier.Dispatch(ctx, &common.NotificationItem{
			Kind:           kind,
			RecipientEmail: members[i].Email,
			RecipientName:  members[i].FullName(),
			Fields: map[string]string{
				"event_title": event.Title,
				"event_date":  event.EventDate.Format("2006-01-02"),
				"start_time":  event.StartTime,
				"end_time":    event.EndTime,
				"location":    event.Location,
			},
		})
	}
}
