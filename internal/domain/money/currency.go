package money

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

type Currency string

const (
	NGN Currency = "NGN"
	GHS Currency = "GHS"
)

// DefaultCurrency is assigned to loanees that register without one.
const DefaultCurrency = NGN

func (c Currency) Valid() bool {
	switch c {
	case NGN, GHS:
		return true
	}
	return false
}

func (c Currency) Symbol() string {
	switch c {
	case NGN:
		return "₦"
	case GHS:
		return "₵"
	}
	return string(c) + " "
}

// Parse accepts a currency code in any case. Empty input yields "" with no error.
func Parse(s string) (Currency, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	c := Currency(s)
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// Format renders amount with the currency symbol and thousands separators, e.g. ₦5,000.50.
func Format(amount decimal.Decimal, c Currency) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return c.Symbol() + s
	}
	out := c.Symbol() + humanize.BigComma(n)
	if frac != "00" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
