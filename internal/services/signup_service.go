package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/metrics"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SignupService governs the event signup, waitlist, and staffing-assignment
// lifecycle. A signup is created waitlisted; only an assigner promotes it, and
// capacity is enforced at assignment time, never at signup time.
//
// Assign and AutoAssignByHours lock the event row (SELECT ... FOR UPDATE) and
// recount assigned slots inside the same transaction as the assignment write.
// The lock serializes assigners per event, so under read committed two racing
// assigners cannot both count below capacity; the second blocks until the
// first commits and then sees its assignment in the recount.
type SignupService struct {
	db       *gorm.DB
	notifier Notifier
	reg      *metrics.MetricsRegistry
}

func NewSignupService(db *gorm.DB, notifier Notifier, reg *metrics.MetricsRegistry) *SignupService {
	return &SignupService{
		db:       db,
		notifier: notifier,
		reg:      reg,
	}
}

// SignUp places a member on the event's waitlist for a position. Signups are
// unbounded; there is no capacity check here.
func (svc *SignupService) SignUp(ctx context.Context, eventID, memberID string, position constants.PositionType) (*gormModels.EventSignup, error) {
	var event gormModels.Event
	err := svc.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("event %s: %w", eventID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	if event.IsFinalized {
		return nil, common.ErrEventFinalized
	}

	var existing gormModels.EventSignup
	err = svc.db.WithContext(ctx).
		Where("event_id = ? AND member_id = ?", eventID, memberID).
		First(&existing).Error
	if err == nil {
		return nil, common.ErrDuplicateSignup
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check for existing signup: %w", err)
	}

	signup := gormModels.EventSignup{
		EventID:      eventID,
		MemberID:     memberID,
		PositionType: position,
		SignupTime:   time.Now().UTC(),
	}

	if err := svc.db.WithContext(ctx).Create(&signup).Error; err != nil {
		return nil, fmt.Errorf("failed to create signup: %w", err)
	}

	if svc.reg != nil {
		svc.reg.SignupsTotal.WithLabelValues("event", string(position)).Inc()
	}

	logging.Info("Member joined event waitlist",
		"event_id", eventID,
		"member_id", memberID,
		"position", position,
	)

	return &signup, nil
}

// Assign promotes one waitlisted signup to assigned. The capacity recount and
// the assignment write share a transaction (see type comment).
func (svc *SignupService) Assign(ctx context.Context, signupID string, assigner auth.UserClaims) (*gormModels.EventSignup, error) {
	if !assigner.HasAtLeast(constants.RoleSupervisor) {
		return nil, common.ErrForbidden
	}

	var signup gormModels.EventSignup

	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", signupID).First(&signup).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("signup %s: %w", signupID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch signup: %w", err)
		}

		if signup.IsAssigned {
			return common.ErrAlreadyAssigned
		}

		var event gormModels.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", signup.EventID).First(&event).Error; err != nil {
			return fmt.Errorf("failed to fetch event: %w", err)
		}

		assigned, err := countAssigned(tx, signup.EventID, signup.PositionType)
		if err != nil {
			return err
		}
		if assigned >= int64(event.NeededFor(signup.PositionType)) {
			return common.ErrCapacityExceeded
		}

		now := time.Now().UTC()
		assignerID := assigner.MemberID()
		signup.IsAssigned = true
		signup.AssignedBy = &assignerID
		signup.AssignedTime = &now

		if err := tx.Model(&gormModels.EventSignup{}).
			Where("id = ?", signup.ID).
			Updates(map[string]interface{}{
				"is_assigned":   true,
				"assigned_by":   assignerID,
				"assigned_time": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to assign signup: %w", err)
		}

		return nil
	})
	if err != nil {
		if svc.reg != nil && signup.ID != "" {
			svc.reg.AssignmentsTotal.WithLabelValues(string(signup.PositionType), "rejected").Inc()
		}
		return nil, err
	}

	if svc.reg != nil {
		svc.reg.AssignmentsTotal.WithLabelValues(string(signup.PositionType), "assigned").Inc()
	}

	svc.notifyAssignment(ctx, &signup)

	return &signup, nil
}

// Unassign reverts an assigned signup to the waitlist without deleting it.
func (svc *SignupService) Unassign(ctx context.Context, signupID string, assigner auth.UserClaims) (*gormModels.EventSignup, error) {
	if !assigner.HasAtLeast(constants.RoleSupervisor) {
		return nil, common.ErrForbidden
	}

	var signup gormModels.EventSignup

	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", signupID).First(&signup).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("signup %s: %w", signupID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch signup: %w", err)
		}

		if !signup.IsAssigned {
			return common.ErrNotAssigned
		}

		if err := tx.Model(&gormModels.EventSignup{}).
			Where("id = ?", signup.ID).
			Updates(map[string]interface{}{
				"is_assigned":   false,
				"assigned_by":   nil,
				"assigned_time": nil,
			}).Error; err != nil {
			return fmt.Errorf("failed to unassign signup: %w", err)
		}

		signup.IsAssigned = false
		signup.AssignedBy = nil
		signup.AssignedTime = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Signup returned to waitlist",
		"signup_id", signupID,
		"assigner_id", assigner.MemberID(),
	)

	return &signup, nil
}

// autoAssignCandidate pairs a waitlisted signup with its member's derived
// confirmed-hours total for ordering.
type autoAssignCandidate struct {
	signup     gormModels.EventSignup
	totalHours float64
}

// AutoAssignByHours fills the position's remaining slots from the waitlist,
// prioritizing members with the fewest confirmed hours and breaking ties by
// earliest signup time. The capacity snapshot is taken once inside the
// transaction and decremented in memory as candidates are assigned.
func (svc *SignupService) AutoAssignByHours(ctx context.Context, eventID string, position constants.PositionType, assigner auth.UserClaims) ([]gormModels.EventSignup, error) {
	if !assigner.HasAtLeast(constants.RoleSupervisor) {
		return nil, common.ErrForbidden
	}

	var assigned []gormModels.EventSignup

	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event gormModels.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", eventID).First(&event).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("event %s: %w", eventID, common.ErrNotFound)
			}
			return fmt.Errorf("failed to fetch event: %w", err)
		}

		assignedCount, err := countAssigned(tx, eventID, position)
		if err != nil {
			return err
		}
		remaining := event.NeededFor(position) - int(assignedCount)
		if remaining <= 0 {
			return nil
		}

		var waitlisted []gormModels.EventSignup
		if err := tx.
			Where("event_id = ? AND position_type = ? AND is_assigned = ?", eventID, position, false).
			Find(&waitlisted).Error; err != nil {
			return fmt.Errorf("failed to fetch waitlist: %w", err)
		}
		if len(waitlisted) == 0 {
			return nil
		}

		totals, err := memberHoursTotals(tx, waitlisted)
		if err != nil {
			return err
		}

		candidates := make([]autoAssignCandidate, 0, len(waitlisted))
		for _, s := range waitlisted {
			candidates = append(candidates, autoAssignCandidate{
				signup:     s,
				totalHours: totals[s.MemberID],
			})
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].totalHours != candidates[j].totalHours {
				return candidates[i].totalHours < candidates[j].totalHours
			}
			return candidates[i].signup.SignupTime.Before(candidates[j].signup.SignupTime)
		})

		now := time.Now().UTC()
		assignerID := assigner.MemberID()

		for _, c := range candidates {
			if remaining == 0 {
				break
			}

			if err := tx.Model(&gormModels.EventSignup{}).
				Where("id = ?", c.signup.ID).
				Updates(map[string]interface{}{
					"is_assigned":   true,
					"assigned_by":   assignerID,
					"assigned_time": now,
				}).Error; err != nil {
				return fmt.Errorf("failed to assign signup %s: %w", c.signup.ID, err)
			}

			s := c.signup
			s.IsAssigned = true
			s.AssignedBy = &assignerID
			s.AssignedTime = &now
			assigned = append(assigned, s)
			remaining--
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if svc.reg != nil {
		for range assigned {
			svc.reg.AssignmentsTotal.WithLabelValues(string(position), "assigned").Inc()
		}
	}

	for i := range assigned {
		svc.notifyAssignment(ctx, &assigned[i])
	}

	logging.Info("Auto-assign completed",
		"event_id", eventID,
		"position", position,
		"assigned", len(assigned),
	)

	return assigned, nil
}

// RemoveSignup hard-deletes a signup. Permitted for the signup's own member
// (self-withdrawal) or a Supervisor-or-above assigner.
func (svc *SignupService) RemoveSignup(ctx context.Context, signupID string, requester auth.UserClaims) error {
	var signup gormModels.EventSignup
	err := svc.db.WithContext(ctx).Where("id = ?", signupID).First(&signup).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("signup %s: %w", signupID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to fetch signup: %w", err)
	}

	if signup.MemberID != requester.MemberID() && !requester.HasAtLeast(constants.RoleSupervisor) {
		return common.ErrForbidden
	}

	if err := svc.db.WithContext(ctx).Delete(&gormModels.EventSignup{}, "id = ?", signupID).Error; err != nil {
		return fmt.Errorf("failed to delete signup: %w", err)
	}

	logging.Info("Signup removed",
		"signup_id", signupID,
		"requester_id", requester.MemberID(),
	)

	return nil
}

// StaffingStatus reports needed/assigned/remaining per position for an event.
func (svc *SignupService) StaffingStatus(ctx context.Context, eventID string) (map[constants.PositionType][2]int, error) {
	var event gormModels.Event
	err := svc.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("event %s: %w", eventID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	status := make(map[constants.PositionType][2]int, 3)
	for _, position := range []constants.PositionType{
		constants.PositionSupervisor,
		constants.PositionEMT,
		constants.PositionFAEMR,
	} {
		assigned, err := countAssigned(svc.db.WithContext(ctx), eventID, position)
		if err != nil {
			return nil, err
		}
		status[position] = [2]int{event.NeededFor(position), int(assigned)}
	}
	return status, nil
}

func countAssigned(tx *gorm.DB, eventID string, position constants.PositionType) (int64, error) {
	var count int64
	err := tx.Model(&gormModels.EventSignup{}).
		Where("event_id = ? AND position_type = ? AND is_assigned = ?", eventID, position, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count assigned signups: %w", err)
	}
	return count, nil
}

// memberHoursTotals sums confirmed hours per member for the given signups.
func memberHoursTotals(tx *gorm.DB, signups []gormModels.EventSignup) (map[string]float64, error) {
	memberIDs := make([]string, 0, len(signups))
	for _, s := range signups {
		memberIDs = append(memberIDs, s.MemberID)
	}

	type row struct {
		MemberID string  `gorm:"column:member_id"`
		Total    float64 `gorm:"column:total"`
	}
	var rows []row
	err := tx.Model(&gormModels.EventHours{}).
		Select("member_id, COALESCE(SUM(confirmed_hours), 0) AS total").
		Where("member_id IN ? AND is_confirmed = ?", memberIDs, true).
		Group("member_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum member hours: %w", err)
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.MemberID] = r.Total
	}
	return totals, nil
}

func (svc *SignupService) notifyAssignment(ctx context.Context, signup *gormModels.EventSignup) {
	if svc.notifier == nil {
		return
	}

	var member gormModels.Member
	if err := svc.db.WithContext(ctx).Where("id = ?", signup.MemberID).First(&member).Error; err != nil {
		logging.Warn("Skipping assignment notification, member lookup failed",
			"member_id", signup.MemberID,
			"error", err.Error(),
		)
		return
	}

	var event gormModels.Event
	if err := svc.db.WithContext(ctx).Where("id = ?", signup.EventID).First(&event).Error; err != nil {
		logging.Warn("Skipping assignment notification, event lookup failed",
			"event_id", signup.EventID,
			"error", err.Error(),
		)
		return
	}

	svc.notifier.Dispatch(ctx, &common.NotificationItem{
		Kind:           common.AssignmentMade,
		RecipientEmail: member.Email,
		RecipientName:  member.FullName(),
		Fields: map[string]string{
			"event_title": event.Title,
			"event_date":  event.EventDate.Format("2006-01-02"),
			"start_time":  event.StartTime,
			"end_time":    event.EndTime,
			"location":    event.Location,
			"position":    string(signup.PositionType),
		},
	})
}
