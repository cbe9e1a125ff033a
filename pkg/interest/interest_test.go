package interest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var requested = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEstimate(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		asOf      time.Time
		want      string
	}{
		{"zero rate", "1000", "0", requested.AddDate(1, 0, 0), "0"},
		{"ten days at 36.5%", "1000", "36.5", requested.AddDate(0, 0, 10), "10"},
		{"partial day truncated", "1000", "36.5", requested.Add(10*24*time.Hour + 23*time.Hour), "10"},
		{"less than a day", "1000", "36.5", requested.Add(23 * time.Hour), "0"},
		{"as of request date", "1000", "36.5", requested, "0"},
		{"as of before request", "1000", "36.5", requested.Add(-48 * time.Hour), "0"},
		{"one year at 10%", "5000", "10", requested.AddDate(0, 0, 365), "500"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(d(tt.principal), d(tt.rate), requested, tt.asOf)
			if !got.Equal(d(tt.want)) {
				t.Fatalf("Estimate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAmountDue(t *testing.T) {
	got := AmountDue(d("1000"), d("36.5"), requested, requested.AddDate(0, 0, 10))
	if !got.Equal(d("1010")) {
		t.Fatalf("AmountDue = %s, want 1010", got)
	}
}

func TestDaysElapsed(t *testing.T) {
	if got := DaysElapsed(requested, requested.Add(71*time.Hour)); got != 2 {
		t.Fatalf("DaysElapsed = %d, want 2", got)
	}
	if got := DaysElapsed(requested, requested.Add(-time.Hour)); got != 0 {
		t.Fatalf("DaysElapsed backwards = %d, want 0", got)
	}
}
