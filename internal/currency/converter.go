package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Units of USD per one unit of each currency, used when no rate is configured.
var defaultRatesToUSD = map[Currency]string{
	USD: "1",
	EUR: "1.08",
	GBP: "1.27",
	JPY: "0.0067",
	AUD: "0.65",
	CAD: "0.74",
	CHF: "1.12",
	TZS: "0.00038",
	UGX: "0.00027",
	KES: "0.0077",
	RWF: "0.00078",
	ZAR: "0.055",
	CNY: "0.14",
	INR: "0.012",
	BRL: "0.20",
	MXN: "0.058",
}

// Converter turns amounts into USD for cross-currency totals. It is read-only after construction.
type Converter struct {
	ratesToUSD map[Currency]decimal.Decimal
}

// NewConverter overlays configured rates (keyed by currency code, any case) on the defaults.
// Unknown codes and non-positive rates are ignored.
func NewConverter(configured map[string]float64) *Converter {
	rates := make(map[Currency]decimal.Decimal, len(all))
	for c, r := range defaultRatesToUSD {
		rates[c] = decimal.RequireFromString(r)
	}
	for code, rate := range configured {
		c := Currency(strings.ToUpper(code))
		if !c.Valid() || rate <= 0 {
			continue
		}
		rates[c] = decimal.NewFromFloat(rate)
	}
	return &Converter{ratesToUSD: rates}
}

// ToUSD returns zero for non-positive amounts, otherwise amount*rate rounded half away from zero to cents.
func (c *Converter) ToUSD(amount decimal.Decimal, cur Currency) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	rate, ok := c.ratesToUSD[cur]
	if !ok {
		rate = decimal.NewFromInt(1)
	}
	return amount.Mul(rate).Round(2)
}

func (c *Converter) Rate(cur Currency) decimal.Decimal {
	return c.ratesToUSD[cur]
}
