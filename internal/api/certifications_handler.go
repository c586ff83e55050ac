package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/entities"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"
)

func (h *Handlers) toCertView(c *gormModels.Certification) *dtos.CertificationView {
	return &dtos.CertificationView{
		ID:             c.ID,
		MemberID:       c.MemberID,
		CertType:       c.CertType,
		FileURL:        c.FileURL,
		UploadDate:     c.UploadDate,
		Status:         h.deps.Services.Certification.Status(c),
		ExpirationDate: c.ExpirationDate,
		ApprovedBy:     c.ApprovedBy,
		ApprovedDate:   c.ApprovedDate,
	}
}

// entityCertView derives the status for a row read through sqlx.
func (h *Handlers) entityCertView(c *entities.Certification) dtos.CertificationView {
	derived := gormModels.Certification{
		IsApproved:     c.IsApproved,
		ExpirationDate: c.ExpirationDate,
	}
	return dtos.CertificationView{
		ID:             c.ID,
		MemberID:       c.MemberID,
		CertType:       c.CertType,
		FileURL:        c.FileURL,
		UploadDate:     c.UploadDate,
		Status:         h.deps.Services.Certification.Status(&derived),
		ExpirationDate: c.ExpirationDate,
		ApprovedBy:     c.ApprovedBy,
		ApprovedDate:   c.ApprovedDate,
	}
}

// UploadCertificationHandler handles POST /certifications. The member
// uploads proof for themselves; board approval comes later.
func (h *Handlers) UploadCertificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.UploadCertificationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}
		if fields := validation.Struct(&req); fields != nil {
			respondWithDomainError(w, common.NewValidationError(fields))
			return
		}

		certType, err := validation.CertificationType(req.CertType)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		cert, err := h.deps.Services.Certification.Upload(r.Context(), claims.MemberID(), certType, req.FileURL)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, h.toCertView(cert))
	}
}

// ListMyCertificationsHandler handles GET /members/profile/certifications
func (h *Handlers) ListMyCertificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		certs, err := h.deps.Repo.Certification.ListByMember(r.Context(), claims.MemberID())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		views := make([]dtos.CertificationView, 0, len(certs))
		for i := range certs {
			views = append(views, h.entityCertView(&certs[i]))
		}

		respondWithSuccess(w, http.StatusOK, &views)
	}
}

// ListPendingCertificationsHandler handles GET /certifications/pending.
// Board only; the approval queue.
func (h *Handlers) ListPendingCertificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certs, err := h.deps.Repo.Certification.ListPending(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		views := make([]dtos.CertificationView, 0, len(certs))
		for i := range certs {
			views = append(views, h.entityCertView(&certs[i]))
		}

		respondWithSuccess(w, http.StatusOK, &views)
	}
}

// ApproveCertificationHandler handles POST /certifications/{certID}/approve.
// Board only. An omitted expiration date means the certification never
// expires.
func (h *Handlers) ApproveCertificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certID := chi.URLParam(r, "certID")

		var req dtos.ApproveCertificationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}
		if fields := validation.Struct(&req); fields != nil {
			respondWithDomainError(w, common.NewValidationError(fields))
			return
		}

		var expiration *time.Time
		if req.ExpirationDate != nil {
			parsed, err := time.Parse("2006-01-02", *req.ExpirationDate)
			if err != nil {
				respondWithDomainError(w, common.FieldError("expiration_date", "must be a date in YYYY-MM-DD format"))
				return
			}
			expiration = &parsed
		}

		claims := auth.GetUserClaims(r.Context())
		cert, err := h.deps.Services.Certification.Approve(r.Context(), certID, claims, expiration)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, h.toCertView(cert))
	}
}

// RunCertExpiryScanHandler handles POST /admin/certifications/expiry-scan.
// Admin only; runs the expiring-soon scan on demand instead of waiting for
// the hourly job.
func (h *Handlers) RunCertExpiryScanHandler() http.HandlerFunc {
	type scanResult struct {
		Expiring int `json:"expiring"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.deps.Services.Certification.NotifyExpiring(r.Context())
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, &scanResult{Expiring: count})
	}
}

// RejectCertificationHandler handles DELETE /certifications/{certID}. Board
// only; the record is removed outright.
func (h *Handlers) RejectCertificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certID := chi.URLParam(r, "certID")

		claims := auth.GetUserClaims(r.Context())
		if err := h.deps.Services.Certification.Reject(r.Context(), certID, claims); err != nil {
			respondWithDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
