package budget

import (
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/core/common/validation"
	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	budgetDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/budget"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinYear = 2000
	MaxYear = 2100

	AmountScale = 2
)

// DefaultCurrency is offered when a user sets a budget without choosing one.
const DefaultCurrency = currency.TZS

// Budget is a monthly spending cap for one user.
type Budget struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"user_id"`
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Amount    decimal.Decimal   `json:"amount"`
	Currency  currency.Currency `json:"currency"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt *time.Time        `json:"updated_at,omitempty"`
}

func NewBudget(userID string, month, year int, amount decimal.Decimal, cur currency.Currency) (*Budget, error) {
	v := validation.NewValidator()
	v.Field("user_id", userID).Required()
	v.Field("month", month).IntRange(1, 12, errors.ErrCodeInvalidMonth)
	v.Field("year", year).IntRange(MinYear, MaxYear, errors.ErrCodeInvalidYear)
	v.Field("amount", amount).NonNegativeDecimal(errors.ErrCodeInvalidAmount).MaxScale(AmountScale, errors.ErrCodeInvalidAmount)
	v.Field("currency", cur).Custom(func(value interface{}) *errors.AppError {
		if !cur.Valid() {
			return errors.NewValidationFieldError("currency", "unsupported currency", errors.ErrCodeInvalidCurrency)
		}
		return nil
	})
	if err := v.Validate(); err != nil {
		return nil, err
	}

	return &Budget{
		ID:       uuid.New(),
		UserID:   userID,
		Month:    month,
		Year:     year,
		Amount:   amount,
		Currency: cur,
	}, nil
}

func (b *Budget) UpdateAmount(amount decimal.Decimal) error {
	v := validation.NewValidator()
	v.Field("amount", amount).NonNegativeDecimal(errors.ErrCodeInvalidAmount).MaxScale(AmountScale, errors.ErrCodeInvalidAmount)
	if err := v.Validate(); err != nil {
		return err
	}
	b.Amount = amount
	return nil
}

// Period is the first instant of the budget's month in loc.
func (b *Budget) Period(loc *time.Location) time.Time {
	return time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, loc)
}

func (b *Budget) ToResponse() BudgetResponse {
	return BudgetResponse{
		ID:       b.ID,
		Month:    b.Month,
		Year:     b.Year,
		Amount:   b.Amount.StringFixed(2),
		Currency: b.Currency.String(),
	}
}

func ToDataModel(b *Budget) *budgetDatamodel.Budget {
	return &budgetDatamodel.Budget{
		Base: datamodel.Base{
			ID:        b.ID,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		},
		UserID:   b.UserID,
		Month:    b.Month,
		Year:     b.Year,
		Amount:   b.Amount,
		Currency: b.Currency.String(),
	}
}

func FromDataModel(row *budgetDatamodel.Budget) *Budget {
	return &Budget{
		ID:        row.ID,
		UserID:    row.UserID,
		Month:     row.Month,
		Year:      row.Year,
		Amount:    row.Amount,
		Currency:  currency.Currency(row.Currency),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
