package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
)

// GetProfileHandler handles GET /members/profile. Totals on the profile are
// derived at read time from confirmed hours and active penalties.
func (h *Handlers) GetProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetUserClaims(r.Context())

		profile, err := h.deps.Services.Member.GetProfile(r.Context(), claims.MemberID())
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, profile)
	}
}

// UpdateProfileHandler handles PATCH /members/profile
func (h *Handlers) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.UpdateProfileReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		if err := h.deps.Services.Member.UpdateProfile(r.Context(), claims.MemberID(), &req); err != nil {
			respondWithDomainError(w, err)
			return
		}

		profile, err := h.deps.Services.Member.GetProfile(r.Context(), claims.MemberID())
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, profile)
	}
}

// ListMembersHandler handles GET /members. Board only.
func (h *Handlers) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := h.deps.Repo.Member.List(r.Context())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, constants.MsgDBError)
			return
		}

		respondWithSuccess(w, http.StatusOK, &members)
	}
}

// GetMemberHandler handles GET /members/{memberID}. Board only; returns the
// same derived-aggregate profile the member sees.
func (h *Handlers) GetMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID := chi.URLParam(r, "memberID")

		profile, err := h.deps.Services.Member.GetProfile(r.Context(), memberID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, profile)
	}
}

// UpdateMemberHandler handles PATCH /members/{memberID}. Board only. Role,
// account status, and dues changes land here; status changes notify the
// member. The auth cache entry is dropped so the change applies on the
// member's next request.
func (h *Handlers) UpdateMemberHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		memberID := chi.URLParam(r, "memberID")

		var req dtos.UpdateMemberReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		claims := auth.GetUserClaims(r.Context())
		member, err := h.deps.Services.Member.UpdateMember(r.Context(), memberID, &req, claims)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		h.deps.Services.Cache.Delete("claims:" + member.Email)

		profile, err := h.deps.Services.Member.GetProfile(r.Context(), memberID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}

		respondWithSuccess(w, http.StatusOK, profile)
	}
}
