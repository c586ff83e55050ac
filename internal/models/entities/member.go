package entities

import (
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
)

type Member struct {
	ID             string                  `db:"id" json:"id"`
	Email          string                  `db:"email" json:"email"`
	FirstName      string                  `db:"first_name" json:"first_name"`
	LastName       string                  `db:"last_name" json:"last_name"`
	Phone          *string                 `db:"phone" json:"phone,omitempty"`
	Role           constants.MemberRole    `db:"role" json:"role"`
	AccountStatus  constants.AccountStatus `db:"account_status" json:"account_status"`
	DuesPaid       bool                    `db:"dues_paid" json:"dues_paid"`
	DuesExpiration *time.Time              `db:"dues_expiration" json:"dues_expiration,omitempty"`
	CreatedAt      time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time               `db:"updated_at" json:"updated_at"`
}
