package constants

import (
	"database/sql/driver"
	"fmt"
)

// MemberRole mirrors the Postgres ENUM 'member_role'
type MemberRole string

const (
	RoleAdmin      MemberRole = "admin"
	RoleBoard      MemberRole = "board"
	RoleSupervisor MemberRole = "supervisor"
	RoleMember     MemberRole = "member"
)

// Stringer ­– convenient for fmt / logs
func (r MemberRole) String() string { return string(r) }

// roleRank orders roles by privilege; lower rank = more privileged.
var roleRank = map[MemberRole]int{
	RoleAdmin:      0,
	RoleBoard:      1,
	RoleSupervisor: 2,
	RoleMember:     3,
}

// HasAtLeast reports whether r carries at least the privilege of min.
// Unknown roles never satisfy any privilege check.
func (r MemberRole) HasAtLeast(min MemberRole) bool {
	rank, ok := roleRank[r]
	minRank, minOk := roleRank[min]
	if !ok || !minOk {
		return false
	}
	return rank <= minRank
}

// IsValid reports whether r is one of the known roles.
func (r MemberRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *MemberRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = MemberRole(v)
	case []byte:
		*r = MemberRole(v)
	default:
		return fmt.Errorf("MemberRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r MemberRole) Value() (driver.Value, error) { return string(r), nil }
