package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberRole_HasAtLeast(t *testing.T) {
	// admin > board > supervisor > member
	assert.True(t, RoleAdmin.HasAtLeast(RoleMember))
	assert.True(t, RoleAdmin.HasAtLeast(RoleAdmin))
	assert.True(t, RoleBoard.HasAtLeast(RoleSupervisor))
	assert.True(t, RoleSupervisor.HasAtLeast(RoleSupervisor))
	assert.True(t, RoleSupervisor.HasAtLeast(RoleMember))

	assert.False(t, RoleMember.HasAtLeast(RoleSupervisor))
	assert.False(t, RoleSupervisor.HasAtLeast(RoleBoard))
	assert.False(t, RoleBoard.HasAtLeast(RoleAdmin))
}

func TestMemberRole_HasAtLeast_UnknownRole(t *testing.T) {
	unknown := MemberRole("superuser")
	assert.False(t, unknown.HasAtLeast(RoleMember))
	assert.False(t, RoleAdmin.HasAtLeast(unknown))
}

func TestMemberRole_IsValid(t *testing.T) {
	for _, r := range []MemberRole{RoleAdmin, RoleBoard, RoleSupervisor, RoleMember} {
		assert.True(t, r.IsValid(), "role %s", r)
	}
	assert.False(t, MemberRole("janitor").IsValid())
}

func TestAccountStatus_IsValid(t *testing.T) {
	for _, s := range []AccountStatus{AccountPending, AccountActive, AccountInactive} {
		assert.True(t, s.IsValid(), "status %s", s)
	}
	assert.False(t, AccountStatus("banned").IsValid())
}
