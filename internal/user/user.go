package user

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	userDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/user"
)

// KnownRoles are the roles a user can be placed in.
var KnownRoles = []string{errors.RoleAdmin, errors.RoleUser}

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	ProfileImagePath *string   `json:"profile_image_path,omitempty"`
	PasswordHash     string    `json:"-"`
	Roles            []string  `json:"roles"`
	Plan             Plan      `json:"plan"`
	PlanAssignedAt   time.Time `json:"plan_assigned_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(errors.RoleAdmin)
}

// RoleDisplay joins the roles for listings; users without any role show as "User".
func (u *User) RoleDisplay() string {
	if len(u.Roles) == 0 {
		return errors.RoleUser
	}
	return strings.Join(u.Roles, ", ")
}

func (u *User) Principal() *errors.Principal {
	return &errors.Principal{UserID: u.ID, Email: u.Email, Roles: u.Roles}
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		ProfileImagePath: u.ProfileImagePath,
		Role:             u.RoleDisplay(),
		Plan:             string(u.Plan),
	}
}

func IsKnownRole(role string) bool {
	for _, r := range KnownRoles {
		if r == role {
			return true
		}
	}
	return false
}

func FromDataModel(row *userDatamodel.User, roles []string) *User {
	if roles == nil {
		roles = []string{}
	}
	return &User{
		ID:               row.ID,
		Email:            row.Email,
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		ProfileImagePath: row.ProfileImagePath,
		PasswordHash:     row.PasswordHash,
		Roles:            roles,
		Plan:             planOrFree(row.Plan),
		PlanAssignedAt:   row.PlanAssignedAt,
		CreatedAt:        row.CreatedAt,
	}
}

// planOrFree treats rows written before plans existed as Free.
func planOrFree(name string) Plan {
	if p, err := ParsePlan(name); err == nil {
		return p
	}
	return PlanFree
}
