package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"

	"gorm.io/gorm"
)

func floatPtr(f float64) *float64 { return &f }

func seedAHASession(t *testing.T, db *gorm.DB) *gormModels.TrainingSession {
	creator := seedMember(t, db, "trainer+"+time.Now().Format("150405.000000000")+"@iu.edu", constants.RoleBoard)
	session := gormModels.TrainingSession{
		Title:         "AHA Heartsaver",
		SessionDate:   time.Now().Add(14 * 24 * time.Hour),
		StartTime:     "09:00",
		EndTime:       "13:00",
		Location:      "Training Room",
		IsAHATraining: true,
		CPRCost:       floatPtr(45),
		FACost:        floatPtr(35),
		BothCost:      floatPtr(70),
		CreatedBy:     creator.ID,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("Failed to seed training session: %v", err)
	}
	return &session
}

func TestTrainingService_Create_AHARequiresCosts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)
	claims := boardClaims(board.ID)

	req := &dtos.CreateTrainingReq{
		Title:         "AHA Heartsaver",
		SessionDate:   time.Now().Add(14 * 24 * time.Hour).Format("2006-01-02"),
		StartTime:     "09:00",
		EndTime:       "13:00",
		Location:      "Training Room",
		IsAHATraining: true,
		// Price tiers missing
	}

	_, err := svc.Create(context.Background(), req, claims)
	var vErr *common.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected validation error for missing AHA costs, got %v", err)
	}
	for _, field := range []string{"cpr_cost", "fa_cost", "both_cost"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Errorf("Expected %s in validation failure fields", field)
		}
	}
}

func TestTrainingService_Create_NonAHANoCostsNeeded(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	req := &dtos.CreateTrainingReq{
		Title:       "Radio Protocols",
		SessionDate: time.Now().Add(7 * 24 * time.Hour).Format("2006-01-02"),
		StartTime:   "18:00",
		EndTime:     "20:00",
		Location:    "Station 1",
	}

	session, err := svc.Create(context.Background(), req, boardClaims(board.ID))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.IsAHATraining {
		t.Error("Expected non-AHA session")
	}
}

func TestTrainingService_SignUp_ReturnsTierCost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	session := seedAHASession(t, db)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	signup, cost, err := svc.SignUp(context.Background(), session.ID, member.ID, constants.TrainingBoth)
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if cost != 70 {
		t.Errorf("Expected both-tier cost 70, got %v", cost)
	}
	if signup.PaymentConfirmed {
		t.Error("New signup must not be payment-confirmed")
	}
}

func TestTrainingService_SignUp_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	session := seedAHASession(t, db)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	ctx := context.Background()
	if _, _, err := svc.SignUp(ctx, session.ID, member.ID, constants.TrainingCPROnly); err != nil {
		t.Fatalf("First signup failed: %v", err)
	}
	_, _, err := svc.SignUp(ctx, session.ID, member.ID, constants.TrainingFAOnly)
	if !errors.Is(err, common.ErrDuplicateSignup) {
		t.Errorf("Expected ErrDuplicateSignup, got %v", err)
	}
}

func TestTrainingService_SignUp_FinalizedRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	session := seedAHASession(t, db)
	db.Model(&gormModels.TrainingSession{}).Where("id = ?", session.ID).Update("is_finalized", true)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	_, _, err := svc.SignUp(context.Background(), session.ID, member.ID, constants.TrainingCPROnly)
	if !errors.Is(err, common.ErrEventFinalized) {
		t.Errorf("Expected ErrEventFinalized, got %v", err)
	}
}

func TestTrainingService_ConfirmPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	session := seedAHASession(t, db)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	ctx := context.Background()
	signup, _, err := svc.SignUp(ctx, session.ID, member.ID, constants.TrainingCPROnly)
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	// Supervisors collect hours, not money
	sup := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	if _, _, err := svc.ConfirmPayment(ctx, signup.ID, supervisorClaims(sup.ID)); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for supervisor, got %v", err)
	}

	confirmed, cost, err := svc.ConfirmPayment(ctx, signup.ID, boardClaims(board.ID))
	if err != nil {
		t.Fatalf("ConfirmPayment failed: %v", err)
	}
	if !confirmed.PaymentConfirmed {
		t.Error("Expected payment_confirmed set")
	}
	if cost != 45 {
		t.Errorf("Expected cpr-tier cost 45, got %v", cost)
	}
}

func TestTrainingService_Withdraw_OwnerOrSupervisor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	session := seedAHASession(t, db)
	owner := seedMember(t, db, "owner@iu.edu", constants.RoleMember)
	other := seedMember(t, db, "other@iu.edu", constants.RoleMember)
	sup := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)

	ctx := context.Background()

	signup, _, _ := svc.SignUp(ctx, session.ID, owner.ID, constants.TrainingCPROnly)
	if err := svc.Withdraw(ctx, signup.ID, memberClaims(other.ID)); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for unrelated member, got %v", err)
	}
	if err := svc.Withdraw(ctx, signup.ID, memberClaims(owner.ID)); err != nil {
		t.Errorf("Owner withdraw should succeed, got %v", err)
	}

	signup2, _, _ := svc.SignUp(ctx, session.ID, owner.ID, constants.TrainingCPROnly)
	if err := svc.Withdraw(ctx, signup2.ID, supervisorClaims(sup.ID)); err != nil {
		t.Errorf("Supervisor withdraw should succeed, got %v", err)
	}
}

func TestTrainingService_Delete_CascadesSignups(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTrainingService(db, NoopNotifier{}, nil)

	session := seedAHASession(t, db)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	ctx := context.Background()
	if _, _, err := svc.SignUp(ctx, session.ID, member.ID, constants.TrainingCPROnly); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if err := svc.Delete(ctx, session.ID, boardClaims(board.ID)); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var signups int64
	db.Model(&gormModels.TrainingSignup{}).Where("session_id = ?", session.ID).Count(&signups)
	if signups != 0 {
		t.Errorf("Expected signups removed along with the session, got %d", signups)
	}
}
