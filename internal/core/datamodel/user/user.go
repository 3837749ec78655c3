package user

import "time"

// User is read and written through sqlx; the gorm tags only drive AutoMigrate on sqlite.
type User struct {
	ID               string    `db:"id" gorm:"column:id;type:varchar(450);primaryKey"`
	Email            string    `db:"email" gorm:"column:email;type:varchar(256);uniqueIndex;not null"`
	PasswordHash     string    `db:"password_hash" gorm:"column:password_hash;not null"`
	FirstName        string    `db:"first_name" gorm:"column:first_name;type:varchar(100)"`
	LastName         string    `db:"last_name" gorm:"column:last_name;type:varchar(100)"`
	ProfileImagePath *string   `db:"profile_image_path" gorm:"column:profile_image_path;type:varchar(500)"`
	Plan             string    `db:"plan" gorm:"column:plan;type:varchar(20);not null;default:Free"`
	PlanAssignedAt   time.Time `db:"plan_assigned_at" gorm:"column:plan_assigned_at"`
	CreatedAt        time.Time `db:"created_at" gorm:"column:created_at;not null;autoCreateTime:false"`
}

func (User) TableName() string {
	return "users"
}

type UserRole struct {
	UserID string `db:"user_id" gorm:"column:user_id;type:varchar(450);primaryKey"`
	Role   string `db:"role" gorm:"column:role;type:varchar(50);primaryKey"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
