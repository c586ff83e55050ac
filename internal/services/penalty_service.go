package services

import (
	"context"
	"fmt"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"

	"gorm.io/gorm"
)

// PenaltyService assigns deduction records and computes effective totals.
// Auto-removal is lazy: a record past its auto_remove_date stops counting at
// read time, there is no sweep job.
type PenaltyService struct {
	db *gorm.DB
}

func NewPenaltyService(db *gorm.DB) *PenaltyService {
	return &PenaltyService{db: db}
}

// Assign creates a penalty record against a member.
func (svc *PenaltyService) Assign(ctx context.Context, memberID string, points int, reason string, autoRemoveDate *time.Time, assigner auth.UserClaims) (*gormModels.PenaltyPoint, error) {
	if !assigner.HasAtLeast(constants.RoleBoard) {
		return nil, common.ErrForbidden
	}

	var member gormModels.Member
	err := svc.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("member %s: %w", memberID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	penalty := gormModels.PenaltyPoint{
		MemberID:       memberID,
		Points:         points,
		Reason:         reason,
		AssignedBy:     assigner.MemberID(),
		AssignedDate:   time.Now().UTC(),
		AutoRemoveDate: autoRemoveDate,
		IsActive:       true,
	}

	if err := svc.db.WithContext(ctx).Create(&penalty).Error; err != nil {
		return nil, fmt.Errorf("failed to create penalty: %w", err)
	}

	logging.Info("Penalty points assigned",
		"member_id", memberID,
		"points", points,
		"assigned_by", assigner.MemberID(),
	)

	return &penalty, nil
}

// Deactivate turns a penalty record off ahead of its auto-remove date.
func (svc *PenaltyService) Deactivate(ctx context.Context, penaltyID string, actor auth.UserClaims) error {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return common.ErrForbidden
	}

	result := svc.db.WithContext(ctx).Model(&gormModels.PenaltyPoint{}).
		Where("id = ?", penaltyID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate penalty: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("penalty %s: %w", penaltyID, common.ErrNotFound)
	}
	return nil
}

// EffectiveTotal sums points over records still active right now.
func (svc *PenaltyService) EffectiveTotal(ctx context.Context, memberID string) (int, error) {
	var penalties []gormModels.PenaltyPoint
	err := svc.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Find(&penalties).Error
	if err != nil {
		return 0, fmt.Errorf("failed to list penalties: %w", err)
	}

	now := time.Now().UTC()
	total := 0
	for i := range penalties {
		if penalties[i].ActiveAt(now) {
			total += penalties[i].Points
		}
	}
	return total, nil
}
