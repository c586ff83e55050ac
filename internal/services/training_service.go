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
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"

	"gorm.io/gorm"
)

// TrainingService owns training session CRUD and training signups. Training
// parallels events but swaps assignment for payment confirmation and, on AHA
// sessions, a price tier per signup type.
type TrainingService struct {
	db       *gorm.DB
	notifier Notifier
	reg      *metrics.MetricsRegistry
}

func NewTrainingService(db *gorm.DB, notifier Notifier, reg *metrics.MetricsRegistry) *TrainingService {
	return &TrainingService{
		db:       db,
		notifier: notifier,
		reg:      reg,
	}
}

// Create validates and inserts a new training session.
func (svc *TrainingService) Create(ctx context.Context, req *dtos.CreateTrainingReq, creator auth.UserClaims) (*gormModels.TrainingSession, error) {
	if !creator.HasAtLeast(constants.RoleBoard) {
		return nil, common.ErrForbidden
	}

	if err := validation.CreateTraining(req, time.Now()); err != nil {
		return nil, err
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return nil, common.FieldError("session_date", "must be a date in YYYY-MM-DD format")
	}

	session := gormModels.TrainingSession{
		Title:         req.Title,
		SessionDate:   sessionDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Location:      req.Location,
		Description:   req.Description,
		IsAHATraining: req.IsAHATraining,
		CPRCost:       req.CPRCost,
		FACost:        req.FACost,
		BothCost:      req.BothCost,
		CreatedBy:     creator.MemberID(),
	}

	if err := svc.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create training session: %w", err)
	}

	logging.Info("Training session created",
		"session_id", session.ID,
		"title", session.Title,
		"created_by", creator.MemberID(),
	)

	return &session, nil
}

// Update patches a training session.
func (svc *TrainingService) Update(ctx context.Context, sessionID string, req *dtos.UpdateTrainingReq, actor auth.UserClaims) (*gormModels.TrainingSession, error) {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return nil, common.ErrForbidden
	}

	var session gormModels.TrainingSession
	err := svc.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("training session %s: %w", sessionID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch training session: %w", err)
	}

	if fields := validation.Struct(req); fields != nil {
		return nil, common.NewValidationError(fields)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		session.Title = *req.Title
	}
	if req.SessionDate != nil {
		sessionDate, err := time.Parse("2006-01-02", *req.SessionDate)
		if err != nil {
			return nil, common.FieldError("session_date", "must be a date in YYYY-MM-DD format")
		}
		updates["session_date"] = sessionDate
		session.SessionDate = sessionDate
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
		session.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
		session.EndTime = *req.EndTime
	}
	if req.Location != nil {
		updates["location"] = *req.Location
		session.Location = *req.Location
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		session.Description = *req.Description
	}
	if req.IsAHATraining != nil {
		updates["is_aha_training"] = *req.IsAHATraining
		session.IsAHATraining = *req.IsAHATraining
	}
	if req.CPRCost != nil {
		updates["cpr_cost"] = *req.CPRCost
		session.CPRCost = req.CPRCost
	}
	if req.FACost != nil {
		updates["fa_cost"] = *req.FACost
		session.FACost = req.FACost
	}
	if req.BothCost != nil {
		updates["both_cost"] = *req.BothCost
		session.BothCost = req.BothCost
	}
	if req.IsFinalized != nil {
		updates["is_finalized"] = *req.IsFinalized
		session.IsFinalized = *req.IsFinalized
	}

	if len(updates) == 0 {
		return &session, nil
	}

	if err := svc.db.WithContext(ctx).Model(&gormModels.TrainingSession{}).
		Where("id = ?", sessionID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update training session: %w", err)
	}

	return &session, nil
}

// Delete removes a training session and its signups.
func (svc *TrainingService) Delete(ctx context.Context, sessionID string, actor auth.UserClaims) error {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return common.ErrForbidden
	}

	var session gormModels.TrainingSession
	err := svc.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("training session %s: %w", sessionID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to fetch training session: %w", err)
	}

	return svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&gormModels.TrainingSignup{}, "session_id = ?", sessionID).Error; err != nil {
			return fmt.Errorf("failed to delete training signups: %w", err)
		}
		if err := tx.Delete(&gormModels.TrainingSession{}, "id = ?", sessionID).Error; err != nil {
			return fmt.Errorf("failed to delete training session: %w", err)
		}
		return nil
	})
}

// SignUp registers a member for a training session. AHA sessions require a
// signup type selecting the price tier; duplicates are rejected like event
// signups.
func (svc *TrainingService) SignUp(ctx context.Context, sessionID, memberID string, signupType constants.TrainingSignupType) (*gormModels.TrainingSignup, float64, error) {
	var session gormModels.TrainingSession
	err := svc.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, fmt.Errorf("training session %s: %w", sessionID, common.ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to fetch training session: %w", err)
	}

	if session.IsFinalized {
		return nil, 0, common.ErrEventFinalized
	}

	var existing gormModels.TrainingSignup
	err = svc.db.WithContext(ctx).
		Where("session_id = ? AND member_id = ?", sessionID, memberID).
		First(&existing).Error
	if err == nil {
		return nil, 0, common.ErrDuplicateSignup
	}
	if err != gorm.ErrRecordNotFound {
		return nil, 0, fmt.Errorf("failed to check for existing signup: %w", err)
	}

	signup := gormModels.TrainingSignup{
		SessionID:  sessionID,
		MemberID:   memberID,
		SignupType: signupType,
		SignupTime: time.Now().UTC(),
	}

	if err := svc.db.WithContext(ctx).Create(&signup).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to create training signup: %w", err)
	}

	if svc.reg != nil {
		svc.reg.SignupsTotal.WithLabelValues("training", string(signupType)).Inc()
	}

	return &signup, session.CostFor(signupType), nil
}

// ConfirmPayment marks a training signup paid and reports the amount owed
// for its tier.
func (svc *TrainingService) ConfirmPayment(ctx context.Context, signupID string, actor auth.UserClaims) (*gormModels.TrainingSignup, float64, error) {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return nil, 0, common.ErrForbidden
	}

	var signup gormModels.TrainingSignup
	err := svc.db.WithContext(ctx).Where("id = ?", signupID).First(&signup).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, fmt.Errorf("training signup %s: %w", signupID, common.ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to fetch training signup: %w", err)
	}

	var session gormModels.TrainingSession
	if err := svc.db.WithContext(ctx).Where("id = ?", signup.SessionID).First(&session).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch training session: %w", err)
	}

	if err := svc.db.WithContext(ctx).Model(&gormModels.TrainingSignup{}).
		Where("id = ?", signupID).
		Update("payment_confirmed", true).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to confirm payment: %w", err)
	}

	signup.PaymentConfirmed = true

	logging.Info("Training payment confirmed",
		"signup_id", signupID,
		"actor_id", actor.MemberID(),
	)

	return &signup, session.CostFor(signup.SignupType), nil
}

// Withdraw hard-deletes a training signup for its owner or a Supervisor+.
func (svc *TrainingService) Withdraw(ctx context.Context, signupID string, requester auth.UserClaims) error {
	var signup gormModels.TrainingSignup
	err := svc.db.WithContext(ctx).Where("id = ?", signupID).First(&signup).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("training signup %s: %w", signupID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to fetch training signup: %w", err)
	}

	if signup.MemberID != requester.MemberID() && !requester.HasAtLeast(constants.RoleSupervisor) {
		return common.ErrForbidden
	}

	if err := svc.db.WithContext(ctx).Delete(&gormModels.TrainingSignup{}, "id = ?", signupID).Error; err != nil {
		return fmt.Errorf("failed to delete training signup: %w", err)
	}

	return nil
}
