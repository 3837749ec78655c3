package expense

import (
	"time"

	errors "github.com/frahmantamala/finance-app/internal"
	"github.com/frahmantamala/finance-app/internal/category"
	"github.com/frahmantamala/finance-app/internal/core/common/validation"
	"github.com/frahmantamala/finance-app/internal/core/datamodel"
	expenseDatamodel "github.com/frahmantamala/finance-app/internal/core/datamodel/expense"
	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLength = 500
	MaxReceiptPathLength = 500

	// AmountScale is the number of decimal places an amount may carry.
	AmountScale = 2
)

type Expense struct {
	ID          uuid.UUID          `json:"id"`
	Amount      decimal.Decimal    `json:"amount"`
	Currency    currency.Currency  `json:"currency"`
	ExpenseDate time.Time          `json:"expense_date"`
	Description *string            `json:"description,omitempty"`
	CategoryID  uuid.UUID          `json:"category_id"`
	ReceiptPath *string            `json:"receipt_path,omitempty"`
	UserID      string             `json:"user_id"`
	Category    *category.Category `json:"category,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty"`
	IsDeleted   bool               `json:"-"`
}

// NewExpense validates every field; amount must be strictly positive with at most two decimals.
func NewExpense(amount decimal.Decimal, cur currency.Currency, expenseDate time.Time, categoryID uuid.UUID, userID string, description, receiptPath *string) (*Expense, error) {
	v := validation.NewValidator()
	v.Field("amount", amount).PositiveDecimal(errors.ErrCodeInvalidAmount).MaxScale(AmountScale, errors.ErrCodeInvalidAmount)
	v.Field("currency", cur).Custom(validCurrency)
	v.Field("expense_date", expenseDate).Custom(nonZeroDate)
	v.Field("category_id", categoryID).Required()
	v.Field("user_id", userID).Required()
	v.Field("description", description).MaxLength(MaxDescriptionLength)
	v.Field("receipt_path", receiptPath).MaxLength(MaxReceiptPathLength)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	return &Expense{
		ID:          uuid.New(),
		Amount:      amount,
		Currency:    cur,
		ExpenseDate: expenseDate,
		Description: description,
		CategoryID:  categoryID,
		ReceiptPath: receiptPath,
		UserID:      userID,
	}, nil
}

func validCurrency(value interface{}) *errors.AppError {
	if c, ok := value.(currency.Currency); ok && !c.Valid() {
		return errors.NewValidationFieldError("currency", "unsupported currency", errors.ErrCodeInvalidCurrency)
	}
	return nil
}

func nonZeroDate(value interface{}) *errors.AppError {
	if t, ok := value.(time.Time); ok && t.IsZero() {
		return errors.NewValidationFieldError("expense_date", "expense_date is required", errors.ErrCodeInvalidDate)
	}
	return nil
}

func (e *Expense) UpdateAmount(amount decimal.Decimal) error {
	v := validation.NewValidator()
	v.Field("amount", amount).PositiveDecimal(errors.ErrCodeInvalidAmount).MaxScale(AmountScale, errors.ErrCodeInvalidAmount)
	if err := v.Validate(); err != nil {
		return err
	}
	e.Amount = amount
	return nil
}

func (e *Expense) UpdateCurrency(cur currency.Currency) error {
	v := validation.NewValidator()
	v.Field("currency", cur).Custom(validCurrency)
	if err := v.Validate(); err != nil {
		return err
	}
	e.Currency = cur
	return nil
}

func (e *Expense) UpdateExpenseDate(date time.Time) error {
	v := validation.NewValidator()
	v.Field("expense_date", date).Custom(nonZeroDate)
	if err := v.Validate(); err != nil {
		return err
	}
	e.ExpenseDate = date
	return nil
}

// UpdateCategory moves the expense; the loaded Category relation is dropped when the id changes.
func (e *Expense) UpdateCategory(categoryID uuid.UUID) error {
	v := validation.NewValidator()
	v.Field("category_id", categoryID).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	if e.CategoryID != categoryID {
		e.Category = nil
	}
	e.CategoryID = categoryID
	return nil
}

func (e *Expense) UpdateDescription(description *string) error {
	v := validation.NewValidator()
	v.Field("description", description).MaxLength(MaxDescriptionLength)
	if err := v.Validate(); err != nil {
		return err
	}
	e.Description = description
	return nil
}

// UpdateReceipt stores the path produced by the upload step; nil clears it.
func (e *Expense) UpdateReceipt(path *string) error {
	v := validation.NewValidator()
	v.Field("receipt_path", path).MaxLength(MaxReceiptPathLength)
	if err := v.Validate(); err != nil {
		return err
	}
	e.ReceiptPath = path
	return nil
}

func (e *Expense) OwnedBy(userID string) bool {
	return userID != "" && e.UserID == userID
}

func (e *Expense) ToResponse() ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount.StringFixed(2),
		Currency:    e.Currency.String(),
		ExpenseDate: e.ExpenseDate,
		Description: e.Description,
		CategoryID:  e.CategoryID,
		ReceiptPath: e.ReceiptPath,
		CreatedAt:   e.CreatedAt,
	}
	if e.Category != nil {
		resp.CategoryName = e.Category.Name
	}
	return resp
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		Base: datamodel.Base{
			ID:        e.ID,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
			IsDeleted: e.IsDeleted,
		},
		Amount:        e.Amount,
		Currency:      e.Currency.String(),
		ExpenseDate:   e.ExpenseDate.UTC(),
		ExpenseOffset: offsetMinutes(e.ExpenseDate),
		Description:   e.Description,
		CategoryID:    e.CategoryID,
		ReceiptPath:   e.ReceiptPath,
		UserID:        e.UserID,
	}
}

func offsetMinutes(t time.Time) int {
	_, secs := t.Zone()
	return secs / 60
}

// recordedAt restores the offset an expense date was entered with.
func recordedAt(utc time.Time, offsetMinutes int) time.Time {
	return utc.In(time.FixedZone("", offsetMinutes*60))
}

func FromDataModel(row *expenseDatamodel.Expense) *Expense {
	e := &Expense{
		ID:          row.ID,
		Amount:      row.Amount,
		Currency:    currency.Currency(row.Currency),
		ExpenseDate: recordedAt(row.ExpenseDate, row.ExpenseOffset),
		Description: row.Description,
		CategoryID:  row.CategoryID,
		ReceiptPath: row.ReceiptPath,
		UserID:      row.UserID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		IsDeleted:   row.IsDeleted,
	}
	if row.Category != nil {
		e.Category = category.FromDataModel(row.Category)
	}
	return e
}

func FromDataModelSlice(rows []expenseDatamodel.Expense) []*Expense {
	out := make([]*Expense, len(rows))
	for i := range rows {
		out[i] = FromDataModel(&rows[i])
	}
	return out
}

func (e *Expense) syncBack(row *expenseDatamodel.Expense) {
	e.CreatedAt = row.CreatedAt
	e.UpdatedAt = row.UpdatedAt
	e.IsDeleted = row.IsDeleted
}
