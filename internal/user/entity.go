// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID               string    `db:"id"`
	ProviderSubject  string    `db:"provider_subject"`
	Email            string    `db:"email"`
	Plan             string    `db:"plan"`
	Role             string    `db:"role"`
	StripeCustomerID *string   `db:"stripe_customer_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (u *User) IsPro() bool {
	return u.Plan == PlanPro
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func ValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanPro
}
