package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/db/repositories"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"

	"gorm.io/gorm"
)

// MemberService reads profiles with their derived aggregates through the
// sqlx repository and writes through GORM, mirroring the split data layer
// used everywhere else.
type MemberService struct {
	repo     *repositories.MemberRepository
	db       *gorm.DB
	notifier Notifier
}

func NewMemberService(repo *repositories.MemberRepository, db *gorm.DB, notifier Notifier) *MemberService {
	return &MemberService{
		repo:     repo,
		db:       db,
		notifier: notifier,
	}
}

// GetProfile returns a member with derived hours and penalty totals.
func (svc *MemberService) GetProfile(ctx context.Context, memberID string) (*dtos.MemberProfile, error) {
	member, err := svc.repo.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member %s: %w", memberID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	totalHours, err := svc.repo.TotalHours(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum confirmed hours: %w", err)
	}
	pendingHours, err := svc.repo.PendingHours(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending hours: %w", err)
	}
	penaltyTotal, err := svc.repo.PenaltyTotal(ctx, memberID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to sum penalty points: %w", err)
	}

	return &dtos.MemberProfile{
		ID:             member.ID,
		Email:          member.Email,
		FirstName:      member.FirstName,
		LastName:       member.LastName,
		Phone:          member.Phone,
		Role:           member.Role,
		AccountStatus:  member.AccountStatus,
		DuesPaid:       member.DuesPaid,
		DuesExpiration: member.DuesExpiration,
		TotalHours:     totalHours,
		PendingHours:   pendingHours,
		PenaltyPoints:  penaltyTotal,
	}, nil
}

// UpdateProfile patches the member's own editable fields.
func (svc *MemberService) UpdateProfile(ctx context.Context, memberID string, req *dtos.UpdateProfileReq) error {
	if fields := validation.Struct(req); fields != nil {
		return common.NewValidationError(fields)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		return nil
	}

	result := svc.db.WithContext(ctx).Model(&gormModels.Member{}).
		Where("id = ?", memberID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("member %s: %w", memberID, common.ErrNotFound)
	}
	return nil
}

// UpdateMember applies board-level changes: role, account status, dues.
// Account status changes notify the member.
func (svc *MemberService) UpdateMember(ctx context.Context, memberID string, req *dtos.UpdateMemberReq, actor auth.UserClaims) (*gormModels.Member, error) {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return nil, common.ErrForbidden
	}

	if err := validation.UpdateMember(req); err != nil {
		return nil, err
	}

	var member gormModels.Member
	err := svc.db.WithContext(ctx).Where("id = ?", memberID).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("member %s: %w", memberID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	statusChanged := false
	updates := map[string]interface{}{}
	if req.Role != nil {
		updates["role"] = constants.MemberRole(*req.Role)
		member.Role = constants.MemberRole(*req.Role)
	}
	if req.AccountStatus != nil && constants.AccountStatus(*req.AccountStatus) != member.AccountStatus {
		updates["account_status"] = constants.AccountStatus(*req.AccountStatus)
		member.AccountStatus = constants.AccountStatus(*req.AccountStatus)
		statusChanged = true
	}
	if req.DuesPaid != nil {
		updates["dues_paid"] = *req.DuesPaid
		member.DuesPaid = *req.DuesPaid
	}
	if req.DuesExpiration != nil {
		expiration, err := time.Parse("2006-01-02", *req.DuesExpiration)
		if err != nil {
			return nil, common.FieldError("dues_expiration", "must be a date in YYYY-MM-DD format")
		}
		updates["dues_expiration"] = expiration
		member.DuesExpiration = &expiration
	}

	if len(updates) == 0 {
		return &member, nil
	}

	if err := svc.db.WithContext(ctx).Model(&gormModels.Member{}).
		Where("id = ?", memberID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	if statusChanged && svc.notifier != nil {
		svc.notifier.Dispatch(ctx, &common.NotificationItem{
			Kind:           common.AccountStatusChanged,
			RecipientEmail: member.Email,
			RecipientName:  member.FullName(),
			Fields: map[string]string{
				"account_status": string(member.AccountStatus),
			},
		})
	}

	logging.Info("Member updated",
		"member_id", memberID,
		"actor_id", actor.MemberID(),
	)

	return &member, nil
}
