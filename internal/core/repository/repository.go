// Package repository is the generic gorm gateway for every soft-deletable row type.
// Reads always exclude soft-deleted rows; writes are staged on a UnitOfWork and
// committed atomically by SaveChanges.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

type options struct {
	clock func() time.Time
}

type Option func(*options)

// WithClock overrides the time source used for audit stamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

type Repository[T any] struct {
	db    *gorm.DB
	clock func() time.Time
}

// New panics when T does not embed datamodel.Base.
func New[T any](db *gorm.DB, opts ...Option) *Repository[T] {
	if _, ok := any(new(T)).(datamodel.Entity); !ok {
		panic(fmt.Sprintf("repository: %T does not embed datamodel.Base", *new(T)))
	}
	o := options{clock: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository[T]{db: db, clock: o.clock}
}

// query is the single entry point for reads. The soft-delete predicate covers
// the queried table and every preloaded relation.
func (r *Repository[T]) query(ctx context.Context, includes []string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(new(T)).Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: "is_deleted"},
		Value:  false,
	})
	for _, inc := range includes {
		tx = tx.Preload(inc, "is_deleted = ?", false)
	}
	return tx
}

func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID, includes ...string) (*T, error) {
	var item T
	err := r.query(ctx, includes).
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}).
		Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) GetAll(ctx context.Context, includes ...string) ([]T, error) {
	return r.Find(ctx, nil, includes...)
}

// Find returns every live row matching filter in the default order. A nil filter matches all rows.
func (r *Repository[T]) Find(ctx context.Context, filter Filter[T], includes ...string) ([]T, error) {
	var items []T
	tx := applyOrder[T](filter.apply(r.query(ctx, includes)), nil)
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOrdered is Find with caller-supplied ordering.
func (r *Repository[T]) FindOrdered(ctx context.Context, filter Filter[T], orderBy []Order[T], includes ...string) ([]T, error) {
	var items []T
	tx := applyOrder[T](filter.apply(r.query(ctx, includes)), orderBy)
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// First returns the first live row matching filter, or ErrNotFound.
func (r *Repository[T]) First(ctx context.Context, filter Filter[T], includes ...string) (*T, error) {
	var item T
	err := applyOrder[T](filter.apply(r.query(ctx, includes)), nil).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) Count(ctx context.Context, filter Filter[T]) (int64, error) {
	var total int64
	if err := filter.apply(r.query(ctx, nil)).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// PageQuery describes one page of a filtered, ordered read. PageNumber is 1-based.
type PageQuery[T any] struct {
	PageNumber int
	PageSize   int
	Filter     Filter[T]
	OrderBy    []Order[T]
	Includes   []string
}

type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
}

func (p PagedResult[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.TotalItems + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// MapPaged converts the items of a page while keeping its paging metadata.
func MapPaged[T, U any](p PagedResult[T], fn func(T) U) PagedResult[U] {
	out := PagedResult[U]{
		Items:      make([]U, len(p.Items)),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
	}
	for i, item := range p.Items {
		out.Items[i] = fn(item)
	}
	return out
}

// NormalizePage clamps page number and size into their valid ranges.
func NormalizePage(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize
}

// GetPaged counts the filtered set before applying the skip/take window.
func (r *Repository[T]) GetPaged(ctx context.Context, q PageQuery[T]) (PagedResult[T], error) {
	page, size := NormalizePage(q.PageNumber, q.PageSize)
	result := PagedResult[T]{PageNumber: page, PageSize: size, Items: []T{}}

	if err := q.Filter.apply(r.query(ctx, nil)).Count(&result.TotalItems).Error; err != nil {
		return result, err
	}
	if result.TotalItems == 0 {
		return result, nil
	}

	tx := applyOrder[T](q.Filter.apply(r.query(ctx, q.Includes)), q.OrderBy).
		Offset((page - 1) * size).
		Limit(size)
	if err := tx.Find(&result.Items).Error; err != nil {
		return result, err
	}
	return result, nil
}

// Begin starts a unit of work bound to this repository. Units are not safe for concurrent use.
func (r *Repository[T]) Begin() *UnitOfWork[T] {
	return &UnitOfWork[T]{repo: r}
}
