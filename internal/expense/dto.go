package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateExpenseDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ExpenseDate time.Time       `json:"expense_date"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Description *string         `json:"description,omitempty"`
	ReceiptPath *string         `json:"receipt_path,omitempty"`
}

// UpdateExpenseDTO replaces every mutable field of an expense.
type UpdateExpenseDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ExpenseDate time.Time       `json:"expense_date"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Description *string         `json:"description,omitempty"`
	ReceiptPath *string         `json:"receipt_path,omitempty"`
}

// ExpenseQuery narrows a user's expense list. Zero values are ignored; To is exclusive.
type ExpenseQuery struct {
	CategoryID *uuid.UUID
	Currency   string
	From       *time.Time
	To         *time.Time
}

type ExpenseResponse struct {
	ID           uuid.UUID `json:"id"`
	Amount       string    `json:"amount"`
	Currency     string    `json:"currency"`
	ExpenseDate  time.Time `json:"expense_date"`
	Description  *string   `json:"description,omitempty"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	ReceiptPath  *string   `json:"receipt_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

type PagedExpensesResponse struct {
	Items      []ExpenseResponse `json:"items"`
	PageNumber int               `json:"page_number"`
	PageSize   int               `json:"page_size"`
	TotalItems int64             `json:"total_items"`
}
