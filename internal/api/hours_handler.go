package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"
)

func toHoursView(h *gormModels.EventHours) *dtos.HoursView {
	return &dtos.HoursView{
		ID:              h.ID,
		EventID:         h.EventID,
		MemberID:        h.MemberID,
		CalculatedHours: h.CalculatedHours,
		ConfirmedHours:  h.ConfirmedHours,
		IsConfirmed:     h.IsConfirmed,
		ConfirmedBy:     h.ConfirmedBy,
		ConfirmedDate:   h.ConfirmedDate,
	}
}

// ConfirmHoursHandler handles POST /events/{eventID}/hours. Supervisor and
// up. Re-confirming overwrites the previous record for the same pair.
func (h *Handlers) ConfirmHoursHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		var req dtos.ConfirmHoursReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}
		if fields := validation.Struct(&req); fields != nil {
			respondWithDomainError(w, common.NewValidationError(fields))
			return
		}

		claims := auth.GetUserClaims(r.Context())
		record, err := h.deps.Services.Hours.ConfirmHours(r.Context(), eventID, req.MemberID, req.Hours, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toHoursView(record))
	}
}

// ListEventHoursHandler handles GET /events/{eventID}/hours. Supervisor and
// up.
func (h *Handlers) ListEventHoursHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		rows, err := h.deps.Repo.Event.ListHours(r.Context(), eventID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &rows)
	}
}

// ListMyHoursHandler handles GET /members/profile/hours
func (h *Handlers) ListMyHoursHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		rows, err := h.deps.Repo.Event.ListMemberHours(r.Context(), claims.MemberID())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &rows)
	}
}
