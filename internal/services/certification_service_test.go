package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
)

func boardClaims(id string) auth.UserClaims {
	return &auth.MemberClaims{
		MemberIDValue: id,
		EmailValue:    "board@iu.edu",
		RoleValue:     constants.RoleBoard,
		StatusValue:   constants.AccountActive,
	}
}

func TestCertificationService_Upload_StartsPending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificationService(db, NoopNotifier{}, 30*24*time.Hour)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)

	cert, err := svc.Upload(context.Background(), member.ID, constants.CertEMT, "https://files.example/cert.pdf")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if svc.Status(cert) != constants.CertStatusPending {
		t.Errorf("Expected pending status, got %v", svc.Status(cert))
	}
	if cert.IsApproved {
		t.Error("Uploaded certification must not be approved")
	}
}

func TestCertificationService_Approve_WithExpiration(t *testing.T) {
	db := setupTestDB(t)
	lookahead := 30 * 24 * time.Hour
	svc := NewCertificationService(db, NoopNotifier{}, lookahead)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	ctx := context.Background()
	cert, _ := svc.Upload(ctx, member.ID, constants.CertEMT, "https://files.example/cert.pdf")

	expiration := time.Now().UTC().Add(365 * 24 * time.Hour)
	approved, err := svc.Approve(ctx, cert.ID, boardClaims(board.ID), &expiration)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	if svc.Status(approved) != constants.CertStatusApproved {
		t.Errorf("Expected approved status, got %v", svc.Status(approved))
	}

	// The derived status shifts as now approaches the expiration date
	if approved.StatusAt(expiration.Add(-10*24*time.Hour), lookahead) != constants.CertStatusExpiringSoon {
		t.Error("Expected expiring_soon inside the lookahead window")
	}
	if approved.StatusAt(expiration.Add(24*time.Hour), lookahead) != constants.CertStatusExpired {
		t.Error("Expected expired after the expiration date")
	}
}

func TestCertificationService_Approve_NoExpirationNeverExpires(t *testing.T) {
	db := setupTestDB(t)
	lookahead := 30 * 24 * time.Hour
	svc := NewCertificationService(db, NoopNotifier{}, lookahead)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	ctx := context.Background()
	cert, _ := svc.Upload(ctx, member.ID, constants.CertICS100, "https://files.example/ics.pdf")

	approved, err := svc.Approve(ctx, cert.ID, boardClaims(board.ID), nil)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	farFuture := time.Now().UTC().Add(20 * 365 * 24 * time.Hour)
	if approved.StatusAt(farFuture, lookahead) != constants.CertStatusApproved {
		t.Error("Certification without expiration should stay approved")
	}
}

func TestCertificationService_Approve_MemberForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificationService(db, NoopNotifier{}, 30*24*time.Hour)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	cert, _ := svc.Upload(context.Background(), member.ID, constants.CertEMT, "https://files.example/cert.pdf")

	_, err := svc.Approve(context.Background(), cert.ID, memberClaims(member.ID), nil)
	if !errors.Is(err, common.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestCertificationService_Reject_HardDeletes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCertificationService(db, NoopNotifier{}, 30*24*time.Hour)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)

	ctx := context.Background()
	cert, _ := svc.Upload(ctx, member.ID, constants.CertEMT, "https://files.example/cert.pdf")

	if err := svc.Reject(ctx, cert.ID, boardClaims(board.ID)); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	var count int64
	db.Model(&gormModels.Certification{}).Where("id = ?", cert.ID).Count(&count)
	if count != 0 {
		t.Error("Expected rejected certification to be deleted")
	}

	if err := svc.Reject(ctx, cert.ID, boardClaims(board.ID)); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for already-deleted cert, got %v", err)
	}
}

func TestCertificationService_NotifyExpiring_WindowOnly(t *testing.T) {
	db := setupTestDB(t)
	lookahead := 30 * 24 * time.Hour
	svc := NewCertificationService(db, NoopNotifier{}, lookahead)

	member := seedMember(t, db, "emt@iu.edu", constants.RoleMember)
	board := seedMember(t, db, "board@iu.edu", constants.RoleBoard)
	claims := boardClaims(board.ID)

	ctx := context.Background()
	now := time.Now().UTC()

	// Inside the window
	soonCert, _ := svc.Upload(ctx, member.ID, constants.CertEMT, "https://files.example/a.pdf")
	soon := now.Add(10 * 24 * time.Hour)
	if _, err := svc.Approve(ctx, soonCert.ID, claims, &soon); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	// Outside the window
	laterCert, _ := svc.Upload(ctx, member.ID, constants.CertBLSCPR, "https://files.example/b.pdf")
	later := now.Add(90 * 24 * time.Hour)
	if _, err := svc.Approve(ctx, laterCert.ID, claims, &later); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	// Already expired
	expiredCert, _ := svc.Upload(ctx, member.ID, constants.CertICS100, "https://files.example/c.pdf")
	past := now.Add(-24 * time.Hour)
	if _, err := svc.Approve(ctx, expiredCert.ID, claims, &past); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	count, err := svc.NotifyExpiring(ctx)
	if err != nil {
		t.Fatalf("NotifyExpiring failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 certification inside the lookahead window, got %d", count)
	}
}
