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

func toSignupView(s *gormModels.EventSignup) *dtos.SignupView {
	return &dtos.SignupView{
		ID:           s.ID,
		EventID:      s.EventID,
		MemberID:     s.MemberID,
		PositionType: s.PositionType,
		SignupTime:   s.SignupTime,
		IsAssigned:   s.IsAssigned,
		AssignedBy:   s.AssignedBy,
		AssignedTime: s.AssignedTime,
	}
}

// EventSignupHandler handles POST /events/{eventID}/signups. Any active
// member can join the waitlist; assignment is a separate step.
func (h *Handlers) EventSignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		var req dtos.EventSignupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		position, err := validation.PositionType(req.PositionType)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		signup, err := h.deps.Services.Signup.SignUp(r.Context(), eventID, claims.MemberID(), position)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, toSignupView(signup))
	}
}

// ListWaitlistHandler handles GET /events/{eventID}/waitlist. Supervisor
// and up; rows carry each member's derived hours and penalty totals so the
// assigner can pick fairly.
func (h *Handlers) ListWaitlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		rows, err := h.deps.Repo.Event.ListWaitlist(r.Context(), eventID, time.Now().UTC())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &rows)
	}
}

// AssignHandler handles POST /events/{eventID}/assign. Supervisor and up.
func (h *Handlers) AssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.AssignReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}
		if fields := validation.Struct(&req); fields != nil {
			respondWithDomainError(w, common.NewValidationError(fields))
			return
		}

		claims := auth.GetUserClaims(r.Context())
		signup, err := h.deps.Services.Signup.Assign(r.Context(), req.SignupID, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toSignupView(signup))
	}
}

// UnassignHandler handles POST /events/{eventID}/unassign. Supervisor and
// up; the signup returns to the waitlist with its original signup time.
func (h *Handlers) UnassignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.AssignReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}
		if fields := validation.Struct(&req); fields != nil {
			respondWithDomainError(w, common.NewValidationError(fields))
			return
		}

		claims := auth.GetUserClaims(r.Context())
		signup, err := h.deps.Services.Signup.Unassign(r.Context(), req.SignupID, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toSignupView(signup))
	}
}

// AutoAssignHandler handles POST /events/{eventID}/auto-assign. Supervisor
// and up. Fills the remaining slots for one position, fewest confirmed
// hours first.
func (h *Handlers) AutoAssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		var req dtos.AutoAssignReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		position, err := validation.PositionType(req.PositionType)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		assigned, err := h.deps.Services.Signup.AutoAssignByHours(r.Context(), eventID, position, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		views := make([]dtos.SignupView, 0, len(assigned))
		for i := range assigned {
			views = append(views, *toSignupView(&assigned[i]))
		}

		respondWithSuccess(w, http.StatusOK, &views)
	}
}

// RemoveSignupHandler handles DELETE /signups/{signupID}. The member can
// remove their own signup; supervisors can remove anyone's.
func (h *Handlers) RemoveSignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signupID := chi.URLParam(r, "signupID")

		claims := auth.GetUserClaims(r.Context())
		if err := h.deps.Services.Signup.RemoveSignup(r.Context(), signupID, claims); err != nil {
			respondWithDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// StaffingStatusHandler handles GET /events/{eventID}/staffing
func (h *Handlers) StaffingStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		status, err := h.deps.Services.Signup.StaffingStatus(r.Context(), eventID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		slots := make([]dtos.StaffingSlot, 0, len(status))
		for _, position := range []constants.PositionType{
			constants.PositionSupervisor,
			constants.PositionEMT,
			constants.PositionFAEMR,
		} {
			counts := status[position]
			slots = append(slots, dtos.StaffingSlot{
				PositionType: position,
				Needed:       counts[0],
				Assigned:     counts[1],
				Remaining:    counts[0] - counts[1],
			})
		}

		respondWithSuccess(w, http.StatusOK, &slots)
	}
}
