package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
)

func TestPenaltyService_AssignAndTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)
	claims := boardClaims(board.ID)

	ctx := context.Background()
	if _, err := svc.Assign(ctx, member.ID, 2, "missed shift", nil, claims); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if _, err := svc.Assign(ctx, member.ID, 3, "late to event", nil, claims); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	total, err := svc.EffectiveTotal(ctx, member.ID)
	if err != nil {
		t.Fatalf("EffectiveTotal failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
}

func TestPenaltyService_Assign_MemberForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	_, err := svc.Assign(context.Background(), member.ID, 2, "missed shift", nil, memberClaims(member.ID))
	if !errors.Is(err, common.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestPenaltyService_Assign_UnknownMember(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db)

	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	_, err := svc.Assign(context.Background(), "00000000-0000-0000-0000-000000000000", 2, "missed shift", nil, boardClaims(board.ID))
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPenaltyService_EffectiveTotal_LazyExpiry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)
	claims := boardClaims(board.ID)

	ctx := context.Background()

	// Auto-remove date already behind us: record stays but stops counting
	past := time.Now().UTC().Add(-24 * time.Hour)
	if _, err := svc.Assign(ctx, member.ID, 4, "old infraction", &past, claims); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	future := time.Now().UTC().Add(30 * 24 * time.Hour)
	if _, err := svc.Assign(ctx, member.ID, 1, "recent infraction", &future, claims); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	total, err := svc.EffectiveTotal(ctx, member.ID)
	if err != nil {
		t.Fatalf("EffectiveTotal failed: %v", err)
	}
	if total != 1 {
		t.Errorf("Expected expired penalty excluded, total 1, got %d", total)
	}
}

func TestPenaltyService_Deactivate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)
	claims := boardClaims(board.ID)

	ctx := context.Background()
	penalty, err := svc.Assign(ctx, member.ID, 3, "missed shift", nil, claims)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	if err := svc.Deactivate(ctx, penalty.ID, claims); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	total, err := svc.EffectiveTotal(ctx, member.ID)
	if err != nil {
		t.Fatalf("EffectiveTotal failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected deactivated penalty excluded, got %d", total)
	}
}

func TestPenaltyService_Deactivate_UnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPenaltyService(db)

	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	err := svc.Deactivate(context.Background(), "00000000-0000-0000-0000-000000000000", boardClaims(board.ID))
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
