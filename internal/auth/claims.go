package auth

import "github.com/s4ngl/iu-icems-website-sub000/internal/constants"

// UserClaims is the identity attached to every request. Identity is always
// passed explicitly through the request context, never read from ambient
// process state, so services stay unit-testable without a running server.
type UserClaims interface {
	MemberID() string
	Email() string
	Role() constants.MemberRole
	Source() string
	HasAtLeast(min constants.MemberRole) bool
}

// MemberClaims is identity resolved from a bearer token issued by the
// external identity provider plus the matching member row.
type MemberClaims struct {
	MemberIDValue string
	EmailValue    string
	RoleValue     constants.MemberRole
	StatusValue   constants.AccountStatus
}

func (c *MemberClaims) MemberID() string           { return c.MemberIDValue }
func (c *MemberClaims) Email() string              { return c.EmailValue }
func (c *MemberClaims) Role() constants.MemberRole { return c.RoleValue }
func (c *MemberClaims) Source() string             { return "JWT" }

func (c *MemberClaims) HasAtLeast(min constants.MemberRole) bool {
	return c.RoleValue.HasAtLeast(min)
}
