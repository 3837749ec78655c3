package user

import "time"

type RegisterDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateProfileDTO struct {
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	ProfileImagePath *string `json:"profile_image_path,omitempty"`
}

// UserResponse is the listing shape; Role is the display string of every role.
type UserResponse struct {
	ID               string  `json:"id"`
	Email            string  `json:"email"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	ProfileImagePath *string `json:"profile_image_path,omitempty"`
	Role             string  `json:"role"`
	Plan             string  `json:"plan"`
}

type UpgradePlanDTO struct {
	Plan string `json:"plan"`
}

type SubscriptionResponse struct {
	Plan       string    `json:"plan"`
	AssignedAt time.Time `json:"assigned_at"`
	Changed    bool      `json:"changed"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}
