package repository

import (
	"context"
	"time"

	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeRemove
	changeSoftDelete
)

type change[T any] struct {
	kind   changeKind
	entity *T
}

// UnitOfWork stages writes for one repository. Nothing reaches the database until SaveChanges.
type UnitOfWork[T any] struct {
	repo    *Repository[T]
	changes []change[T]
}

func (u *UnitOfWork[T]) Add(entity *T) {
	u.changes = append(u.changes, change[T]{kind: changeAdd, entity: entity})
}

func (u *UnitOfWork[T]) Update(entity *T) {
	u.changes = append(u.changes, change[T]{kind: changeUpdate, entity: entity})
}

// Remove stages a hard delete.
func (u *UnitOfWork[T]) Remove(entity *T) {
	u.changes = append(u.changes, change[T]{kind: changeRemove, entity: entity})
}

// SoftDelete stages the entity to be flagged as deleted; the flag is set by SaveChanges.
func (u *UnitOfWork[T]) SoftDelete(entity *T) {
	u.changes = append(u.changes, change[T]{kind: changeSoftDelete, entity: entity})
}

func (u *UnitOfWork[T]) Pending() int {
	return len(u.changes)
}

// SaveChanges stamps audit times on every staged entity, then applies all
// staged changes in a single transaction. On failure nothing is committed, the
// entities get their previous audit fields back and the staged changes are
// kept; on success the unit is emptied.
func (u *UnitOfWork[T]) SaveChanges(ctx context.Context) error {
	if len(u.changes) == 0 {
		return nil
	}

	before := make([]datamodel.Base, len(u.changes))
	for i, c := range u.changes {
		before[i] = *base(c.entity)
	}
	stampAudit(u.changes, u.repo.clock())

	err := u.repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range u.changes {
			if err := apply(tx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for i, c := range u.changes {
			*base(c.entity) = before[i]
		}
		return err
	}

	u.changes = u.changes[:0]
	return nil
}

func stampAudit[T any](changes []change[T], now time.Time) {
	for _, c := range changes {
		b := base(c.entity)
		switch c.kind {
		case changeAdd:
			b.MarkCreated(now)
		case changeUpdate:
			b.MarkUpdated(now)
		case changeSoftDelete:
			b.MarkDeleted()
			b.MarkUpdated(now)
		}
	}
}

func apply[T any](tx *gorm.DB, c change[T]) error {
	switch c.kind {
	case changeAdd:
		return tx.Omit(clause.Associations).Create(c.entity).Error
	case changeUpdate, changeSoftDelete:
		res := tx.Select("*").Omit(clause.Associations).Updates(c.entity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	case changeRemove:
		return tx.Delete(c.entity).Error
	}
	return nil
}

func base[T any](entity *T) *datamodel.Base {
	return any(entity).(datamodel.Entity).Entity()
}
