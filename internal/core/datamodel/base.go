package datamodel

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity, audit stamps and soft-delete flag shared by every stored entity.
// Timestamps are written by the repository's unit of work, never by gorm.
type Base struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
	IsDeleted bool       `gorm:"column:is_deleted;not null;index"`
}

// Entity is satisfied by any row that embeds Base.
type Entity interface {
	Entity() *Base
}

func NewBase() Base {
	return Base{ID: uuid.New()}
}

func (b *Base) Entity() *Base {
	return b
}

func (b *Base) MarkCreated(at time.Time) {
	b.CreatedAt = at
}

func (b *Base) MarkUpdated(at time.Time) {
	b.UpdatedAt = &at
}

func (b *Base) MarkDeleted() {
	b.IsDeleted = true
}
