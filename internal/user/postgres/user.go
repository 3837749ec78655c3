package user

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	userDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/user"
	"github.com/jmoiron/sqlx"
)

const userColumns = "id, email, password_hash, first_name, last_name, profile_image_path, plan, plan_assigned_at, created_at"

// Repository is the identity store. Queries are written with ? and rebound for the driver.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	query := r.db.Rebind("SELECT " + userColumns + " FROM users WHERE id = ?")
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	query := r.db.Rebind("SELECT " + userColumns + " FROM users WHERE LOWER(email) = LOWER(?)")
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]userDatamodel.User, error) {
	users := []userDatamodel.User{}
	if err := r.db.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM users ORDER BY email"); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Repository) Roles(ctx context.Context, userID string) ([]string, error) {
	roles := []string{}
	query := r.db.Rebind("SELECT role FROM user_roles WHERE user_id = ? ORDER BY role")
	if err := r.db.SelectContext(ctx, &roles, query, userID); err != nil {
		return nil, err
	}
	return roles, nil
}

// AllRoles maps every user id that has at least one role to its roles.
func (r *Repository) AllRoles(ctx context.Context) (map[string][]string, error) {
	var rows []userDatamodel.UserRole
	if err := r.db.SelectContext(ctx, &rows, "SELECT user_id, role FROM user_roles ORDER BY user_id, role"); err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, row := range rows {
		out[row.UserID] = append(out[row.UserID], row.Role)
	}
	return out, nil
}

// Create inserts the user and its roles in one transaction.
func (r *Repository) Create(ctx context.Context, u *userDatamodel.User, roles ...string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := r.db.Rebind("INSERT INTO users (" + userColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if _, err := tx.ExecContext(ctx, insert,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.ProfileImagePath, u.Plan, u.PlanAssignedAt, u.CreatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	for _, role := range roles {
		if err := r.addRole(ctx, tx, u.ID, role); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AddToRole is a no-op when the user already has the role.
func (r *Repository) AddToRole(ctx context.Context, userID, role string) error {
	return r.addRole(ctx, r.db, userID, role)
}

func (r *Repository) addRole(ctx context.Context, ex sqlx.ExecerContext, userID, role string) error {
	query := r.db.Rebind("INSERT INTO user_roles (user_id, role) VALUES (?, ?) ON CONFLICT (user_id, role) DO NOTHING")
	if _, err := ex.ExecContext(ctx, query, userID, role); err != nil {
		return fmt.Errorf("add role %s: %w", role, err)
	}
	return nil
}

func (r *Repository) RemoveFromRole(ctx context.Context, userID, role string) error {
	query := r.db.Rebind("DELETE FROM user_roles WHERE user_id = ? AND role = ?")
	_, err := r.db.ExecContext(ctx, query, userID, role)
	return err
}

// Delete removes the user and its role assignments. Rows in other tables keyed
// by the user id are left in place.
func (r *Repository) Delete(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.db.Rebind("DELETE FROM user_roles WHERE user_id = ?"), userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, r.db.Rebind("DELETE FROM users WHERE id = ?"), userID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repository) UpdateProfile(ctx context.Context, userID, firstName, lastName string, profileImagePath *string) error {
	query := r.db.Rebind("UPDATE users SET first_name = ?, last_name = ?, profile_image_path = ? WHERE id = ?")
	res, err := r.db.ExecContext(ctx, query, firstName, lastName, profileImagePath, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) UpdatePlan(ctx context.Context, userID, plan string, assignedAt time.Time) error {
	query := r.db.Rebind("UPDATE users SET plan = ?, plan_assigned_at = ? WHERE id = ?")
	res, err := r.db.ExecContext(ctx, query, plan, assignedAt, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}
