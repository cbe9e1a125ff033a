// Package interest estimates simple daily interest for display. Nothing here
// feeds back into settlement: a lender clears a loan at whatever amount they
// consider fully repaid.
package interest

import (
	"time"

	"github.com/shopspring/decimal"
)

var daysPerYearPercent = decimal.NewFromInt(100 * 365)

// DaysElapsed counts whole 24h periods from start to asOf. Partial days are dropped.
func DaysElapsed(start, asOf time.Time) int64 {
	if !asOf.After(start) {
		return 0
	}
	return int64(asOf.Sub(start) / (24 * time.Hour))
}

// Estimate returns principal * rate/100/365 * days, where days is the truncated
// day count between requestDate and asOf. Zero rate or no elapsed time yields zero.
func Estimate(principal, annualRatePercent decimal.Decimal, requestDate, asOf time.Time) decimal.Decimal {
	if annualRatePercent.IsZero() {
		return decimal.Zero
	}
	days := DaysElapsed(requestDate, asOf)
	if days <= 0 {
		return decimal.Zero
	}
	// multiply first so rates like 36.5% stay exact
	return principal.Mul(annualRatePercent).Mul(decimal.NewFromInt(days)).Div(daysPerYearPercent)
}

// AmountDue is principal plus the current estimate.
func AmountDue(principal, annualRatePercent decimal.Decimal, requestDate, asOf time.Time) decimal.Decimal {
	return principal.Add(Estimate(principal, annualRatePercent, requestDate, asOf))
}
