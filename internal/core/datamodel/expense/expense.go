package expense

import (
	"time"

	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	"github.com/frahmantamala/finance-app/internal/core/datamodel/category"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense stores ExpenseDate in UTC; ExpenseOffset keeps the offset it was recorded with, in minutes.
type Expense struct {
	datamodel.Base
	Amount        decimal.Decimal    `gorm:"column:amount;type:decimal(18,2);not null"`
	Currency      string             `gorm:"column:currency;type:varchar(3);not null"`
	ExpenseDate   time.Time          `gorm:"column:expense_date;not null;index"`
	ExpenseOffset int                `gorm:"column:expense_offset_minutes;not null;default:0"`
	Description   *string            `gorm:"column:description;type:varchar(500)"`
	CategoryID    uuid.UUID          `gorm:"column:category_id;type:uuid;not null;index"`
	ReceiptPath   *string            `gorm:"column:receipt_path;type:varchar(500)"`
	UserID        string             `gorm:"column:user_id;type:varchar(450);not null;index"`
	Category      *category.Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (Expense) TableName() string {
	return "expenses"
}
