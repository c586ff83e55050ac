package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/entities"
	gormModels "github.com/s4ngl/iu-icems-website-sub000/internal/models/gorm"
	"github.com/s4ngl/iu-icems-website-sub000/internal/validation"
)

func toTrainingView(s *gormModels.TrainingSession) *dtos.TrainingSessionView {
	return &dtos.TrainingSessionView{
		ID:            s.ID,
		Title:         s.Title,
		SessionDate:   s.SessionDate.Format("2006-01-02"),
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Location:      s.Location,
		Description:   s.Description,
		IsAHATraining: s.IsAHATraining,
		CPRCost:       s.CPRCost,
		FACost:        s.FACost,
		BothCost:      s.BothCost,
		IsFinalized:   s.IsFinalized,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
	}
}

func toTrainingSignupView(s *gormModels.TrainingSignup, cost float64) *dtos.TrainingSignupView {
	return &dtos.TrainingSignupView{
		SignupID:         s.ID,
		SessionID:        s.SessionID,
		MemberID:         s.MemberID,
		SignupType:       s.SignupType,
		Cost:             cost,
		PaymentConfirmed: s.PaymentConfirmed,
		SignupTime:       s.SignupTime,
	}
}

// ListTrainingSessionsHandler handles GET /training. Public.
func (h *Handlers) ListTrainingSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upcoming := r.URL.Query().Get("upcoming") == "true"

		sessions, err := h.deps.Repo.Training.List(r.Context(), upcoming, time.Now().UTC())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &sessions)
	}
}

// GetTrainingSessionHandler handles GET /training/{sessionID}
func (h *Handlers) GetTrainingSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		session, err := h.deps.Repo.Training.FindByID(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondWithError(w, http.StatusNotFound, constants.MsgTrainingNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess[entities.TrainingSession](w, http.StatusOK, session)
	}
}

// CreateTrainingHandler handles POST /training. Board only. AHA sessions
// must carry all three cost tiers.
func (h *Handlers) CreateTrainingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateTrainingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		session, err := h.deps.Services.Training.Create(r.Context(), &req, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, toTrainingView(session))
	}
}

// UpdateTrainingHandler handles PATCH /training/{sessionID}. Board only.
func (h *Handlers) UpdateTrainingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		var req dtos.UpdateTrainingReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		session, err := h.deps.Services.Training.Update(r.Context(), sessionID, &req, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toTrainingView(session))
	}
}

// DeleteTrainingHandler handles DELETE /training/{sessionID}. Board only.
func (h *Handlers) DeleteTrainingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		claims := auth.GetUserClaims(r.Context())
		if err := h.deps.Services.Training.Delete(r.Context(), sessionID, claims); err != nil {
			respondWithDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// TrainingSignupHandler handles POST /training/{sessionID}/signups. The
// response includes the cost owed for the chosen signup type.
func (h *Handlers) TrainingSignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		var req dtos.TrainingSignupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		signupType, err := validation.TrainingSignupType(req.SignupType)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		signup, cost, err := h.deps.Services.Training.SignUp(r.Context(), sessionID, claims.MemberID(), signupType)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, toTrainingSignupView(signup, cost))
	}
}

// ListTrainingRosterHandler handles GET /training/{sessionID}/roster.
// Supervisor and up.
func (h *Handlers) ListTrainingRosterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")

		roster, err := h.deps.Repo.Training.ListRoster(r.Context(), sessionID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &roster)
	}
}

// ConfirmTrainingPaymentHandler handles POST /training/signups/{signupID}/payment.
// Board only.
func (h *Handlers) ConfirmTrainingPaymentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signupID := chi.URLParam(r, "signupID")

		claims := auth.GetUserClaims(r.Context())
		signup, cost, err := h.deps.Services.Training.ConfirmPayment(r.Context(), signupID, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toTrainingSignupView(signup, cost))
	}
}

// WithdrawTrainingSignupHandler handles DELETE /training/signups/{signupID}
func (h *Handlers) WithdrawTrainingSignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signupID := chi.URLParam(r, "signupID")

		claims := auth.GetUserClaims(r.Context())
		if err := h.deps.Services.Training.Withdraw(r.Context(), signupID, claims); err != nil {
			respondWithDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
