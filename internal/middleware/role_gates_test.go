package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"

	"github.com/stretchr/testify/assert"
)

func requestWithRole(role constants.MemberRole) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	claims := &auth.MemberClaims{
		MemberIDValue: "member-1",
		EmailValue:    "member@iu.edu",
		RoleValue:     role,
		StatusValue:   constants.AccountActive,
	}
	return req.WithContext(auth.SetUserClaims(req.Context(), claims))
}

func gateStatus(t *testing.T, gate func(http.Handler) http.Handler, req *http.Request) int {
	t.Helper()
	rec := httptest.NewRecorder()
	handler := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestIsSupervisorMiddleware(t *testing.T) {
	gate := IsSupervisorMiddleware()

	assert.Equal(t, http.StatusOK, gateStatus(t, gate, requestWithRole(constants.RoleAdmin)))
	assert.Equal(t, http.StatusOK, gateStatus(t, gate, requestWithRole(constants.RoleBoard)))
	assert.Equal(t, http.StatusOK, gateStatus(t, gate, requestWithRole(constants.RoleSupervisor)))
	assert.Equal(t, http.StatusForbidden, gateStatus(t, gate, requestWithRole(constants.RoleMember)))
}

func TestIsBoardMiddleware(t *testing.T) {
	gate := IsBoardMiddleware()

	assert.Equal(t, http.StatusOK, gateStatus(t, gate, requestWithRole(constants.RoleAdmin)))
	assert.Equal(t, http.StatusOK, gateStatus(t, gate, requestWithRole(constants.RoleBoard)))
	assert.Equal(t, http.StatusForbidden, gateStatus(t, gate, requestWithRole(constants.RoleSupervisor)))
	assert.Equal(t, http.StatusForbidden, gateStatus(t, gate, requestWithRole(constants.RoleMember)))
}

func TestIsAdminMiddleware(t *testing.T) {
	gate := IsAdminMiddleware()

	assert.Equal(t, http.StatusOK, gateStatus(t, gate, requestWithRole(constants.RoleAdmin)))
	assert.Equal(t, http.StatusForbidden, gateStatus(t, gate, requestWithRole(constants.RoleBoard)))
}

func TestRoleGates_NoClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusForbidden, gateStatus(t, IsSupervisorMiddleware(), req))
	assert.Equal(t, http.StatusForbidden, gateStatus(t, IsBoardMiddleware(), req))
	assert.Equal(t, http.StatusForbidden, gateStatus(t, IsAdminMiddleware(), req))
}
