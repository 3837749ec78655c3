package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SetBudgetDTO is the body of a budget upsert. A blank currency means DefaultCurrency.
type SetBudgetDTO struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

type BudgetResponse struct {
	ID       uuid.UUID `json:"id"`
	Month    int       `json:"month"`
	Year     int       `json:"year"`
	Amount   string    `json:"amount"`
	Currency string    `json:"currency"`
}

// MonthBudgetResponse describes one period; Budget is nil when none is set.
type MonthBudgetResponse struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Budget          *BudgetResponse `json:"budget"`
	DefaultCurrency string          `json:"default_currency"`
}
