package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&gormModels.Member{},
		&gormModels.Event{},
		&gormModels.EventSignup{},
		&gormModels.EventHours{},
		&gormModels.Certification{},
		&gormModels.PenaltyPoint{},
		&gormModels.TrainingSession{},
		&gormModels.TrainingSignup{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func seedMember(t *testing.T, db *gorm.DB, email string, role constants.MemberRole) *gormModels.Member {
	member := gormModels.Member{
		Email:         email,
		FirstName:     "Test",
		LastName:      "Member",
		Role:          role,
		AccountStatus: constants.AccountActive,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("Failed to seed member: %v", err)
	}
	return &member
}

func seedEvent(t *testing.T, db *gorm.DB, emtNeeded int) *gormModels.Event {
	creator := seedMember(t, db, "creator+"+time.Now().Format("150405.000000000")+"@iu.edu", constants.RoleBoard)
	event := gormModels.Event{
		Title:       "Football Game",
		EventDate:   time.Now().Add(72 * time.Hour),
		StartTime:   "08:00",
		EndTime:     "16:00",
		Location:    "Memorial Stadium",
		EMTNeeded:   emtNeeded,
		CreatedBy:   creator.ID,
		IsFinalized: false,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("Failed to seed event: %v", err)
	}
	return &event
}

func supervisorClaims(id string) auth.UserClaims {
	return &auth.MemberClaims{
		MemberIDValue: id,
		EmailValue:    "supervisor@iu.edu",
		RoleValue:     constants.RoleSupervisor,
		StatusValue:   constants.AccountActive,
	}
}

func memberClaims(id string) auth.UserClaims {
	return &auth.MemberClaims{
		MemberIDValue: id,
		EmailValue:    "member@iu.edu",
		RoleValue:     constants.RoleMember,
		StatusValue:   constants.AccountActive,
	}
}

func TestSignupService_SignUp_DuplicateRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	ctx := context.Background()
	if _, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT); err != nil {
		t.Fatalf("Expected first signup to succeed, got %v", err)
	}

	_, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT)
	if !errors.Is(err, common.ErrDuplicateSignup) {
		t.Errorf("Expected ErrDuplicateSignup, got %v", err)
	}
}

func TestSignupService_SignUp_FinalizedEventRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	db.Model(&gormModels.Event{}).Where("id = ?", event.ID).Update("is_finalized", true)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	_, err := svc.SignUp(context.Background(), event.ID, member.ID, constants.PositionEMT)
	if !errors.Is(err, common.ErrEventFinalized) {
		t.Errorf("Expected ErrEventFinalized, got %v", err)
	}
}

func TestSignupService_SignUp_NoCapacityCheck(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	// One EMT slot but five members may still join the waitlist
	event := seedEvent(t, db, 1)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		member := seedMember(t, db, string(rune('a'+i))+"@iu.edu", constants.RoleMember)
		if _, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT); err != nil {
			t.Fatalf("Waitlist signup %d should succeed regardless of capacity, got %v", i, err)
		}
	}

	var count int64
	db.Model(&gormModels.EventSignup{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 5 {
		t.Errorf("Expected 5 waitlisted signups, got %d", count)
	}
}

func TestSignupService_Assign_CapacityNeverExceeded(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()
	var signupIDs []string
	for i := 0; i < 3; i++ {
		member := seedMember(t, db, string(rune('a'+i))+"@iu.edu", constants.RoleMember)
		signup, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT)
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
		signupIDs = append(signupIDs, signup.ID)
	}

	if _, err := svc.Assign(ctx, signupIDs[0], claims); err != nil {
		t.Fatalf("First assign should succeed, got %v", err)
	}
	if _, err := svc.Assign(ctx, signupIDs[1], claims); err != nil {
		t.Fatalf("Second assign should succeed, got %v", err)
	}

	_, err := svc.Assign(ctx, signupIDs[2], claims)
	if !errors.Is(err, common.ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded on third assign, got %v", err)
	}

	var assigned int64
	db.Model(&gormModels.EventSignup{}).
		Where("event_id = ? AND is_assigned = ?", event.ID, true).
		Count(&assigned)
	if assigned != 2 {
		t.Errorf("Expected exactly 2 assigned, got %d", assigned)
	}
}

// File-backed database so goroutines share real connections; :memory: gives
// every pooled connection its own empty database.
func setupSharedTestDB(t *testing.T) *gorm.DB {
	path := filepath.Join(t.TempDir(), "icems.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&gormModels.Member{},
		&gormModels.Event{},
		&gormModels.EventSignup{},
		&gormModels.EventHours{},
		&gormModels.Certification{},
		&gormModels.PenaltyPoint{},
		&gormModels.TrainingSession{},
		&gormModels.TrainingSignup{},
	); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestSignupService_Assign_ConcurrentAssignersNeverExceedCapacity(t *testing.T) {
	db := setupSharedTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()
	var signupIDs []string
	for i := 0; i < 6; i++ {
		member := seedMember(t, db, string(rune('a'+i))+"@iu.edu", constants.RoleMember)
		signup, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT)
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
		signupIDs = append(signupIDs, signup.ID)
	}

	// Losers fail with capacity or store-contention errors; the invariant
	// under test is only that no interleaving commits past capacity.
	var wg sync.WaitGroup
	for _, id := range signupIDs {
		wg.Add(1)
		go func(signupID string) {
			defer wg.Done()
			_, _ = svc.Assign(ctx, signupID, claims)
		}(id)
	}
	wg.Wait()

	var assigned int64
	db.Model(&gormModels.EventSignup{}).
		Where("event_id = ? AND is_assigned = ?", event.ID, true).
		Count(&assigned)
	if assigned > 2 {
		t.Errorf("Capacity exceeded under concurrent assigns: %d assigned for 2 slots", assigned)
	}
}

func TestSignupService_Assign_AlreadyAssignedRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()
	signup, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT)
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if _, err := svc.Assign(ctx, signup.ID, claims); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	_, err = svc.Assign(ctx, signup.ID, claims)
	if !errors.Is(err, common.ErrAlreadyAssigned) {
		t.Errorf("Expected ErrAlreadyAssigned, got %v", err)
	}
}

func TestSignupService_Assign_MemberForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	ctx := context.Background()
	signup, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT)
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	_, err = svc.Assign(ctx, signup.ID, memberClaims(member.ID))
	if !errors.Is(err, common.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for member-role assigner, got %v", err)
	}
}

func TestSignupService_Unassign_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 1)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	memberA := seedMember(t, db, "a@iu.edu", constants.RoleMember)
	memberB := seedMember(t, db, "b@iu.edu", constants.RoleMember)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()
	signupA, _ := svc.SignUp(ctx, event.ID, memberA.ID, constants.PositionEMT)
	signupB, _ := svc.SignUp(ctx, event.ID, memberB.ID, constants.PositionEMT)

	if _, err := svc.Assign(ctx, signupA.ID, claims); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	// Slot is full; B cannot be assigned
	if _, err := svc.Assign(ctx, signupB.ID, claims); !errors.Is(err, common.ErrCapacityExceeded) {
		t.Fatalf("Expected ErrCapacityExceeded, got %v", err)
	}

	// Unassign A frees the slot without deleting the signup
	unassigned, err := svc.Unassign(ctx, signupA.ID, claims)
	if err != nil {
		t.Fatalf("Unassign failed: %v", err)
	}
	if unassigned.IsAssigned || unassigned.AssignedBy != nil || unassigned.AssignedTime != nil {
		t.Error("Expected unassigned signup with cleared assignment fields")
	}

	if _, err := svc.Assign(ctx, signupB.ID, claims); err != nil {
		t.Errorf("Assign after unassign should succeed, got %v", err)
	}

	// A is back on the waitlist, not gone
	var check gormModels.EventSignup
	if err := db.Where("id = ?", signupA.ID).First(&check).Error; err != nil {
		t.Fatalf("Unassigned signup should still exist: %v", err)
	}
}

func TestSignupService_Unassign_NotAssignedRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 1)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	ctx := context.Background()
	signup, _ := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT)

	_, err := svc.Unassign(ctx, signup.ID, supervisorClaims(supervisor.ID))
	if !errors.Is(err, common.ErrNotAssigned) {
		t.Errorf("Expected ErrNotAssigned, got %v", err)
	}
}

func confirmHoursFor(t *testing.T, db *gorm.DB, eventID, memberID string, hours float64) {
	record := gormModels.EventHours{
		EventID:        eventID,
		MemberID:       memberID,
		ConfirmedHours: hours,
		IsConfirmed:    true,
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("Failed to seed hours: %v", err)
	}
}

func TestSignupService_AutoAssignByHours_LowestHoursFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	pastEvent := seedEvent(t, db, 0)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()

	// Five candidates with different confirmed-hours histories
	hours := map[string]float64{"a": 40, "b": 5, "c": 20, "d": 0, "e": 12}
	members := map[string]*gormModels.Member{}
	for name, h := range hours {
		member := seedMember(t, db, name+"@iu.edu", constants.RoleMember)
		members[name] = member
		if h > 0 {
			confirmHoursFor(t, db, pastEvent.ID, member.ID, h)
		}
		if _, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT); err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
	}

	assigned, err := svc.AutoAssignByHours(ctx, event.ID, constants.PositionEMT, claims)
	if err != nil {
		t.Fatalf("AutoAssignByHours failed: %v", err)
	}

	if len(assigned) != 2 {
		t.Fatalf("Expected 2 assignments for 2 slots, got %d", len(assigned))
	}

	// d has 0 hours, b has 5; everyone else has more
	if assigned[0].MemberID != members["d"].ID {
		t.Errorf("Expected member d (0 hours) assigned first")
	}
	if assigned[1].MemberID != members["b"].ID {
		t.Errorf("Expected member b (5 hours) assigned second")
	}
}

func TestSignupService_AutoAssignByHours_TieBreakBySignupTime(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 1)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()

	first := seedMember(t, db, "first@iu.edu", constants.RoleMember)
	second := seedMember(t, db, "second@iu.edu", constants.RoleMember)

	// Both members have zero hours; signup order decides
	earlier := time.Now().UTC().Add(-2 * time.Hour)
	later := time.Now().UTC().Add(-1 * time.Hour)
	db.Create(&gormModels.EventSignup{
		EventID: event.ID, MemberID: first.ID,
		PositionType: constants.PositionEMT, SignupTime: earlier,
	})
	db.Create(&gormModels.EventSignup{
		EventID: event.ID, MemberID: second.ID,
		PositionType: constants.PositionEMT, SignupTime: later,
	})

	assigned, err := svc.AutoAssignByHours(ctx, event.ID, constants.PositionEMT, claims)
	if err != nil {
		t.Fatalf("AutoAssignByHours failed: %v", err)
	}

	if len(assigned) != 1 {
		t.Fatalf("Expected 1 assignment, got %d", len(assigned))
	}
	if assigned[0].MemberID != first.ID {
		t.Error("Expected the earlier signup to win the tie")
	}
}

func TestSignupService_AutoAssignByHours_RespectsExistingAssignments(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()

	manual := seedMember(t, db, "manual@iu.edu", constants.RoleMember)
	manualSignup, _ := svc.SignUp(ctx, event.ID, manual.ID, constants.PositionEMT)
	if _, err := svc.Assign(ctx, manualSignup.ID, claims); err != nil {
		t.Fatalf("Manual assign failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		member := seedMember(t, db, string(rune('a'+i))+"@iu.edu", constants.RoleMember)
		if _, err := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT); err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
	}

	assigned, err := svc.AutoAssignByHours(ctx, event.ID, constants.PositionEMT, claims)
	if err != nil {
		t.Fatalf("AutoAssignByHours failed: %v", err)
	}

	// Only one slot remains after the manual assignment
	if len(assigned) != 1 {
		t.Errorf("Expected 1 auto-assignment with 1 remaining slot, got %d", len(assigned))
	}
}

func TestSignupService_RemoveSignup_OwnerAndSupervisorOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 2)
	owner := seedMember(t, db, "owner@iu.edu", constants.RoleMember)
	other := seedMember(t, db, "other@iu.edu", constants.RoleMember)

	ctx := context.Background()
	signup, _ := svc.SignUp(ctx, event.ID, owner.ID, constants.PositionEMT)

	if err := svc.RemoveSignup(ctx, signup.ID, memberClaims(other.ID)); !errors.Is(err, common.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-owner member, got %v", err)
	}

	if err := svc.RemoveSignup(ctx, signup.ID, memberClaims(owner.ID)); err != nil {
		t.Errorf("Owner should be able to withdraw, got %v", err)
	}

	var count int64
	db.Model(&gormModels.EventSignup{}).Where("id = ?", signup.ID).Count(&count)
	if count != 0 {
		t.Error("Expected signup to be deleted")
	}
}

func TestSignupService_StaffingStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSignupService(db, NoopNotifier{}, nil)

	event := seedEvent(t, db, 3)
	supervisor := seedMember(t, db, "sup@iu.edu", constants.RoleSupervisor)
	claims := supervisorClaims(supervisor.ID)

	ctx := context.Background()
	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	signup, _ := svc.SignUp(ctx, event.ID, member.ID, constants.PositionEMT)
	if _, err := svc.Assign(ctx, signup.ID, claims); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	status, err := svc.StaffingStatus(ctx, event.ID)
	if err != nil {
		t.Fatalf("StaffingStatus failed: %v", err)
	}

	emt := status[constants.PositionEMT]
	if emt[0] != 3 || emt[1] != 1 {
		t.Errorf("Expected EMT needed=3 assigned=1, got needed=%d assigned=%d", emt[0], emt[1])
	}
}
