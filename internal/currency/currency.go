package currency

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/finance-app/internal"
)

// Currency is an ISO 4217 code accepted for expenses and budgets.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	TZS Currency = "TZS"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	CHF Currency = "CHF"
	UGX Currency = "UGX"
	KES Currency = "KES"
	RWF Currency = "RWF"
	ZAR Currency = "ZAR"
	CNY Currency = "CNY"
	INR Currency = "INR"
	BRL Currency = "BRL"
	MXN Currency = "MXN"
)

var all = []Currency{USD, EUR, TZS, GBP, JPY, AUD, CAD, CHF, UGX, KES, RWF, ZAR, CNY, INR, BRL, MXN}

func All() []Currency {
	out := make([]Currency, len(all))
	copy(out, all)
	return out
}

func (c Currency) Valid() bool {
	for _, v := range all {
		if v == c {
			return true
		}
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

// Parse is case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", internal.NewValidationFieldError("currency", fmt.Sprintf("unsupported currency %q", s), internal.ErrCodeInvalidCurrency)
	}
	return c, nil
}
