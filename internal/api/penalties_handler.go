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
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"
)

func toPenaltyView(p *gormModels.PenaltyPoint) *dtos.PenaltyView {
	return &dtos.PenaltyView{
		ID:             p.ID,
		MemberID:       p.MemberID,
		Points:         p.Points,
		Reason:         p.Reason,
		AssignedBy:     p.AssignedBy,
		AssignedDate:   p.AssignedDate,
		AutoRemoveDate: p.AutoRemoveDate,
		IsActive:       p.IsActive,
	}
}

// AssignPenaltyHandler handles POST /penalties. Board only.
func (h *Handlers) AssignPenaltyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.AssignPenaltyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}
		if err := validation.AssignPenalty(&req); err != nil {
			respondWithDomainError(w, err)
			return
		}

		var autoRemove *time.Time
		if req.AutoRemoveDate != nil {
			parsed, err := time.Parse("2006-01-02", *req.AutoRemoveDate)
			if err != nil {
				respondWithDomainError(w, common.FieldError("auto_remove_date", "must be a date in YYYY-MM-DD format"))
				return
			}
			autoRemove = &parsed
		}

		claims := auth.GetUserClaims(r.Context())
		penalty, err := h.deps.Services.Penalty.Assign(r.Context(), req.MemberID, req.Points, req.Reason, autoRemove, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, toPenaltyView(penalty))
	}
}

// DeactivatePenaltyHandler handles DELETE /penalties/{penaltyID}. Board
// only; the row is kept for history with is_active false.
func (h *Handlers) DeactivatePenaltyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		penaltyID := chi.URLParam(r, "penaltyID")

		claims := auth.GetUserClaims(r.Context())
		if err := h.deps.Services.Penalty.Deactivate(r.Context(), penaltyID, claims); err != nil {
			respondWithDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListMyPenaltiesHandler handles GET /members/profile/penalties. Expired
// rows still list; only the effective total treats them as gone.
func (h *Handlers) ListMyPenaltiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		rows, err := h.deps.Repo.Penalty.ListByMember(r.Context(), claims.MemberID())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &rows)
	}
}
