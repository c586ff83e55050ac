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
)

func toEventView(e *gormModels.Event) *dtos.EventView {
	return &dtos.EventView{
		ID:               e.ID,
		Title:            e.Title,
		EventDate:        e.EventDate.Format("2006-01-02"),
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Location:         e.Location,
		Description:      e.Description,
		SupervisorNeeded: e.SupervisorNeeded,
		EMTNeeded:        e.EMTNeeded,
		FAEMRNeeded:      e.FAEMRNeeded,
		IsFinalized:      e.IsFinalized,
		CreatedBy:        e.CreatedBy,
		CreatedAt:        e.CreatedAt,
	}
}

// ListEventsHandler handles GET /events. Public; ?upcoming=true filters to
// events on or after today.
func (h *Handlers) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upcoming := r.URL.Query().Get("upcoming") == "true"

		events, err := h.deps.Repo.Event.List(r.Context(), upcoming, time.Now().UTC())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &events)
	}
}

// GetEventHandler handles GET /events/{eventID}
func (h *Handlers) GetEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		event, err := h.deps.Repo.Event.FindByID(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondWithError(w, http.StatusNotFound, constants.MsgEventNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess[entities.Event](w, http.StatusOK, event)
	}
}

// CreateEventHandler handles POST /events. Board only.
func (h *Handlers) CreateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.CreateEventReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		event, err := h.deps.Services.Event.Create(r.Context(), &req, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusCreated, toEventView(event))
	}
}

// UpdateEventHandler handles PATCH /events/{eventID}. Board only. Omitted
// fields keep their current value.
func (h *Handlers) UpdateEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		var req dtos.UpdateEventReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		event, err := h.deps.Services.Event.Update(r.Context(), eventID, &req, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, toEventView(event))
	}
}

// DeleteEventHandler handles DELETE /events/{eventID}. Board only. Signed-up
// members are notified before the event and its signups go away.
func (h *Handlers) DeleteEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		claims := auth.GetUserClaims(r.Context())
		if err := h.deps.Services.Event.Delete(r.Context(), eventID, claims); err != nil {
			respondWithDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
