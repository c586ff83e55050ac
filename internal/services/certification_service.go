package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"

	"gorm.io/gorm"
)

// CertificationService tracks uploaded certifications through pending →
// approved. Rejection hard-deletes the record; expiration is derived at read
// time, never stored.
type CertificationService struct {
	db        *gorm.DB
	notifier  Notifier
	lookahead time.Duration
}

// ExpiryLookahead reads the expiring-soon window from the environment,
// defaulting to 30 days. Display-layer parameter, not a data invariant.
func ExpiryLookahead() time.Duration {
	days := 30
	if raw := os.Getenv("CERT_EXPIRY_LOOKAHEAD_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

func NewCertificationService(db *gorm.DB, notifier Notifier, lookahead time.Duration) *CertificationService {
	return &CertificationService{
		db:        db,
		notifier:  notifier,
		lookahead: lookahead,
	}
}

// Upload registers a member's certification proof; the file itself lives in
// external storage, we only keep the URL.
func (svc *CertificationService) Upload(ctx context.Context, memberID string, certType constants.CertificationType, fileURL string) (*gormModels.Certification, error) {
	cert := gormModels.Certification{
		MemberID:   memberID,
		CertType:   certType,
		FileURL:    fileURL,
		UploadDate: time.Now().UTC(),
	}

	if err := svc.db.WithContext(ctx).Create(&cert).Error; err != nil {
		return nil, fmt.Errorf("failed to create certification: %w", err)
	}

	logging.Info("Certification uploaded",
		"cert_id", cert.ID,
		"member_id", memberID,
		"cert_type", certType,
	)

	return &cert, nil
}

// Approve marks a certification approved, optionally with an expiration date
// (nil for certifications that never expire, e.g. ICS courses).
func (svc *CertificationService) Approve(ctx context.Context, certID string, approver auth.UserClaims, expirationDate *time.Time) (*gormModels.Certification, error) {
	if !approver.HasAtLeast(constants.RoleBoard) {
		return nil, common.ErrForbidden
	}

	var cert gormModels.Certification
	err := svc.db.WithContext(ctx).Where("id = ?", certID).First(&cert).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("certification %s: %w", certID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch certification: %w", err)
	}

	now := time.Now().UTC()
	approverID := approver.MemberID()

	updates := map[string]interface{}{
		"is_approved":   true,
		"approved_by":   approverID,
		"approved_date": now,
	}
	if expirationDate != nil {
		updates["expiration_date"] = *expirationDate
	}

	if err := svc.db.WithContext(ctx).Model(&gormModels.Certification{}).
		Where("id = ?", certID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to approve certification: %w", err)
	}

	cert.IsApproved = true
	cert.ApprovedBy = &approverID
	cert.ApprovedDate = &now
	if expirationDate != nil {
		cert.ExpirationDate = expirationDate
	}

	logging.Info("Certification approved",
		"cert_id", certID,
		"approved_by", approverID,
	)

	return &cert, nil
}

// Reject hard-deletes a pending certification. No rejected history is kept.
func (svc *CertificationService) Reject(ctx context.Context, certID string, actor auth.UserClaims) error {
	if !actor.HasAtLeast(constants.RoleBoard) {
		return common.ErrForbidden
	}

	var cert gormModels.Certification
	err := svc.db.WithContext(ctx).Where("id = ?", certID).First(&cert).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("certification %s: %w", certID, common.ErrNotFound)
		}
		return fmt.Errorf("failed to fetch certification: %w", err)
	}

	if err := svc.db.WithContext(ctx).Delete(&gormModels.Certification{}, "id = ?", certID).Error; err != nil {
		return fmt.Errorf("failed to delete certification: %w", err)
	}

	logging.Info("Certification rejected",
		"cert_id", certID,
		"member_id", cert.MemberID,
		"actor_id", actor.MemberID(),
	)

	return nil
}

// Status derives the display status for a certification right now.
func (svc *CertificationService) Status(cert *gormModels.Certification) constants.CertificationStatus {
	return cert.StatusAt(time.Now().UTC(), svc.lookahead)
}

// NotifyExpiring enqueues an expiring-soon notification for each approved
// certification inside the lookahead window. Called by the hourly job.
func (svc *CertificationService) NotifyExpiring(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	var certs []gormModels.Certification
	err := svc.db.WithContext(ctx).
		Where("is_approved = ? AND expiration_date IS NOT NULL", true).
		Where("expiration_date > ? AND expiration_date <= ?", now, now.Add(svc.lookahead)).
		Find(&certs).Error
	if err != nil {
		return 0, fmt.Errorf("failed to list expiring certifications: %w", err)
	}

	if svc.notifier == nil {
		return len(certs), nil
	}

	for i := range certs {
		var member gormModels.Member
		if err := svc.db.WithContext(ctx).Where("id = ?", certs[i].MemberID).First(&member).Error; err != nil {
			logging.Warn("Skipping expiry notification, member lookup failed",
				"member_id", certs[i].MemberID,
				"error", err.Error(),
			)
			continue
		}

		svc.notifier.Dispatch(ctx, &common.NotificationItem{
			Kind:           common.CertificationExpiring,
			RecipientEmail: member.Email,
			RecipientName:  member.FullName(),
			Fields: map[string]string{
				"cert_type":       string(certs[i].CertType),
				"expiration_date": certs[i].ExpirationDate.Format("2006-01-02"),
			},
		})
	}

	return len(certs), nil
}
