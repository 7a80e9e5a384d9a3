package expiry

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(date(2026, time.September, 1)) {
		t.Fatalf("unexpected date: %v", d)
	}

	if _, err := ParseDate("01-09-2026"); err == nil {
		t.Fatalf("expected error for wrong date layout")
	}
}

func TestDaysToExpiry(t *testing.T) {
	now := time.Date(2026, time.August, 25, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		expiry   time.Time
		expected int
	}{
		{date(2026, time.September, 1), 7},
		{date(2026, time.August, 26), 1},
		{date(2026, time.August, 25), 0},
		{date(2026, time.August, 20), -5},
	}

	for _, test := range tests {
		actual := DaysToExpiry(test.expiry, now, time.UTC)
		if actual != test.expected {
			t.Fatalf("DaysToExpiry(%v): expected %d, got %d", test.expiry, test.expected, actual)
		}
	}
}

func TestDaysToExpiryUsesMarketTimezone(t *testing.T) {
	loc, err := MarketLocation(DefaultTimezone)
	if err != nil {
		t.Fatalf("loading %s: %v", DefaultTimezone, err)
	}

	// 20:00 UTC on Aug 24 is already Aug 25 in IST (+05:30), so an Aug 26
	// expiry is one day out, not two.
	now := time.Date(2026, time.August, 24, 20, 0, 0, 0, time.UTC)
	if got := DaysToExpiry(date(2026, time.August, 26), now, loc); got != 1 {
		t.Fatalf("expected 1 day in IST, got %d", got)
	}
}

func TestNextWeekly(t *testing.T) {
	// 2026-08-23 is a Sunday, 2026-08-25 a Tuesday.
	sunday := time.Date(2026, time.August, 23, 9, 0, 0, 0, time.UTC)
	if got := NextWeekly(sunday, time.Tuesday, time.UTC); !got.Equal(date(2026, time.August, 25)) {
		t.Fatalf("expected 2026-08-25, got %v", got)
	}

	// On the expiry day itself, roll a full week forward.
	tuesday := time.Date(2026, time.August, 25, 9, 0, 0, 0, time.UTC)
	if got := NextWeekly(tuesday, time.Tuesday, time.UTC); !got.Equal(date(2026, time.September, 1)) {
		t.Fatalf("expected 2026-09-01, got %v", got)
	}
}

func TestIsMonthly(t *testing.T) {
	// September 2026 Tuesdays: 1, 8, 15, 22, 29.
	if !IsMonthly(date(2026, time.September, 29)) {
		t.Fatalf("2026-09-29 is the last Tuesday of its month")
	}
	if IsMonthly(date(2026, time.September, 22)) {
		t.Fatalf("2026-09-22 is not the last Tuesday of its month")
	}
}

func TestTradingSymbol(t *testing.T) {
	tests := []struct {
		expiry   time.Time
		strike   float64
		optType  string
		expected string
	}{
		// 2024-08-29 is the last Thursday of August 2024 → monthly form.
		{date(2024, time.August, 29), 24500, "CE", "NIFTY24AUG24500CE"},
		// 2024-08-22 is a mid-month Thursday → weekly form.
		{date(2024, time.August, 22), 24500, "CE", "NIFTY2482224500CE"},
		// October weeklies use the "O" month code.
		{date(2024, time.October, 10), 24500, "PE", "NIFTY24O1024500PE"},
		// Option type aliases normalize.
		{date(2024, time.August, 22), 24500, "put", "NIFTY2482224500PE"},
		{date(2024, time.August, 22), 24500, "call", "NIFTY2482224500CE"},
	}

	for _, test := range tests {
		actual := TradingSymbol("NIFTY", test.expiry, test.strike, test.optType)
		if actual != test.expected {
			t.Fatalf("TradingSymbol(%v, %s): expected %s, got %s",
				test.expiry.Format("2006-01-02"), test.optType, test.expected, actual)
		}
	}
}
