package budget

import (
	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	"github.com/shopspring/decimal"
)

// Budget has one row per (user_id, month, year); the unique index also covers soft-deleted rows.
type Budget struct {
	datamodel.Base
	UserID   string          `gorm:"column:user_id;type:varchar(450);not null;uniqueIndex:ux_budgets_user_period"`
	Month    int             `gorm:"column:month;not null;uniqueIndex:ux_budgets_user_period"`
	Year     int             `gorm:"column:year;not null;uniqueIndex:ux_budgets_user_period"`
	Amount   decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null"`
	Currency string          `gorm:"column:currency;type:varchar(3);not null"`
}

func (Budget) TableName() string {
	return "budgets"
}
