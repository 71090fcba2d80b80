// model/user.go
package model

import "time"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	}
	return "", false
}

// Plan is a subscription tier. Each tier caps the number of rentals a
// subscriber may have open at once.
type Plan string

const (
	PlanNoob   Plan = "NOOB"
	PlanPro    Plan = "PRO"
	PlanLegend Plan = "LEGEND"
)

func ParsePlan(s string) (Plan, bool) {
	switch Plan(s) {
	case PlanNoob, PlanPro, PlanLegend:
		return Plan(s), true
	}
	return "", false
}

// MaxActiveRentals is the concurrent-rental cap for the tier.
func (p Plan) MaxActiveRentals() int {
	switch p {
	case PlanNoob:
		return 1
	case PlanPro:
		return 3
	case PlanLegend:
		return 5
	}
	return 0
}

type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	Plan          Plan      `json:"plan"`
	ActiveRentals int       `json:"active_rentals"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Plan     string `json:"plan" validate:"required"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
