package dashboard

import (
	"time"

	"github.com/frahmantamala/finance-app/internal/currency"
	"github.com/shopspring/decimal"
)

// TrendWindow is how far back the daily spend trend reaches.
const TrendWindow = 30 * 24 * time.Hour

// Summary is the home screen of one user. Cross-currency figures are in USD.
type Summary struct {
	TotalSpendUSD     decimal.Decimal
	ExpenseCount      int
	CategoryCount     int64
	ThisMonthSpendUSD decimal.Decimal
	Trend             []TrendPoint
	Budget            *BudgetStatus
}

// TrendPoint is the USD spend of one calendar day.
type TrendPoint struct {
	Date      time.Time
	AmountUSD decimal.Decimal
}

// BudgetStatus compares the current month's budget with spend in the budget's own currency.
type BudgetStatus struct {
	Month     int
	Year      int
	Amount    decimal.Decimal
	Currency  currency.Currency
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Exceeded  bool
}

func (s *Summary) ToResponse() SummaryResponse {
	resp := SummaryResponse{
		TotalSpendUSD:     s.TotalSpendUSD.StringFixed(2),
		ExpenseCount:      s.ExpenseCount,
		CategoryCount:     s.CategoryCount,
		ThisMonthSpendUSD: s.ThisMonthSpendUSD.StringFixed(2),
		Trend:             make([]TrendPointResponse, len(s.Trend)),
	}
	for i, p := range s.Trend {
		resp.Trend[i] = TrendPointResponse{
			Date:      p.Date.Format(time.DateOnly),
			Label:     p.Date.Format("Jan 02"),
			AmountUSD: p.AmountUSD.StringFixed(2),
		}
	}
	if s.Budget != nil {
		resp.Budget = &BudgetStatusResponse{
			Month:     s.Budget.Month,
			Year:      s.Budget.Year,
			Amount:    s.Budget.Amount.StringFixed(2),
			Currency:  s.Budget.Currency.String(),
			Spent:     s.Budget.Spent.StringFixed(2),
			Remaining: s.Budget.Remaining.StringFixed(2),
			Exceeded:  s.Budget.Exceeded,
		}
	}
	return resp
}

type SummaryResponse struct {
	TotalSpendUSD     string                `json:"total_spend_usd"`
	ExpenseCount      int                   `json:"expense_count"`
	CategoryCount     int64                 `json:"category_count"`
	ThisMonthSpendUSD string                `json:"this_month_spend_usd"`
	Trend             []TrendPointResponse  `json:"trend"`
	Budget            *BudgetStatusResponse `json:"budget,omitempty"`
}

type TrendPointResponse struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	AmountUSD string `json:"amount_usd"`
}

type BudgetStatusResponse struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
	Exceeded  bool   `json:"exceeded"`
}
