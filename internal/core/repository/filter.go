package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows a read over T. The *gorm.DB it receives is a fresh condition
// builder; whatever it returns is attached to the outer query as one
// parenthesised group, so an OR inside a filter cannot escape the
// soft-delete conjunction or any sibling filter.
type Filter[T any] func(*gorm.DB) *gorm.DB

func (f Filter[T]) apply(tx *gorm.DB) *gorm.DB {
	if f == nil {
		return tx
	}
	return tx.Where(f(tx.Session(&gorm.Session{NewDB: true})))
}

// Where wraps a raw condition, e.g. Where[Expense]("amount > ?", 10).
func Where[T any](query any, args ...any) Filter[T] {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// Eq matches column = value on the queried table.
func Eq[T any](column string, value any) Filter[T] {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: column}, Value: value})
	}
}

// In matches column IN values on the queried table.
func In[T any](column string, values ...any) Filter[T] {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.IN{Column: clause.Column{Table: clause.CurrentTable, Name: column}, Values: values})
	}
}

// And conjoins filters; nil entries are skipped.
func And[T any](filters ...Filter[T]) Filter[T] {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range filters {
			if f == nil {
				continue
			}
			db = f.apply(db)
		}
		return db
	}
}

// Or disjoins filters; nil entries are skipped. Each operand is grouped on its own.
func Or[T any](filters ...Filter[T]) Filter[T] {
	return func(db *gorm.DB) *gorm.DB {
		first := true
		for _, f := range filters {
			if f == nil {
				continue
			}
			group := f(db.Session(&gorm.Session{NewDB: true}))
			if first {
				db = db.Where(group)
				first = false
				continue
			}
			db = db.Or(group)
		}
		return db
	}
}

// Order is one ORDER BY term over T.
type Order[T any] struct {
	Column string
	Desc   bool
}

func OrderBy[T any](column string, desc bool) Order[T] {
	return Order[T]{Column: column, Desc: desc}
}

// applyOrder falls back to created_at ascending and always ends with id so pages are stable.
func applyOrder[T any](tx *gorm.DB, orders []Order[T]) *gorm.DB {
	if len(orders) == 0 {
		orders = []Order[T]{{Column: "created_at"}}
	}
	hasID := false
	for _, o := range orders {
		if o.Column == "id" {
			hasID = true
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: o.Column},
			Desc:   o.Desc,
		})
	}
	if !hasID {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}})
	}
	return tx
}
