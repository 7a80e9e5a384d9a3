// Package expiry resolves days-to-expiry from calendar dates and formats
// NSE derivative (NFO/BFO) trading symbols for a given expiry and strike.
package expiry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultTimezone is the exchange timezone used for day counting.
const DefaultTimezone = "Asia/Kolkata"

// MarketLocation loads the timezone used for calendar-day arithmetic.
func MarketLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDate parses an expiry date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// DaysToExpiry returns the number of calendar days between "today" in loc
// and the expiry date. The expiry's year/month/day are taken as written;
// only now is converted into the market timezone. Same-day expiry yields 0,
// matching the dte > 0 guard downstream.
func DaysToExpiry(expiryDate, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	n := now.In(loc)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	ed := time.Date(expiryDate.Year(), expiryDate.Month(), expiryDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(ed.Sub(today).Hours() / 24)
}

// NextWeekly returns the next weekly expiry date strictly after today: the
// upcoming occurrence of the given weekday, or a week out when today is
// already that weekday (a same-day expiry has dte 0 and cannot be priced).
func NextWeekly(now time.Time, w time.Weekday, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	n := now.In(loc)
	days := (int(w) - int(n.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	d := n.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// IsMonthly reports whether the date is the month's last occurrence of its
// weekday, which is how NSE distinguishes the monthly contract from the
// weekly ones.
func IsMonthly(d time.Time) bool {
	return d.AddDate(0, 0, 7).Month() != d.Month()
}

// TradingSymbol formats a Zerodha-style NFO trading symbol.
//
// Monthly contracts: INDEX + YY + MMM + STRIKE + CE/PE
//
//	NIFTY24AUG24500CE
//
// Weekly contracts:  INDEX + YY + M + DD + STRIKE + CE/PE, where M is 1-9
// for Jan-Sep and O/N/D for Oct/Nov/Dec:
//
//	NIFTY2482224500CE (2024-08-22)
//	NIFTY24O1024500PE (2024-10-10)
func TradingSymbol(index string, expiryDate time.Time, strike float64, optionType string) string {
	yy := expiryDate.Format("06")
	k := int(math.Round(strike))
	t := normalizeOptionType(optionType)

	if IsMonthly(expiryDate) {
		return fmt.Sprintf("%s%s%s%d%s", strings.ToUpper(index), yy,
			strings.ToUpper(expiryDate.Format("Jan")), k, t)
	}
	return fmt.Sprintf("%s%s%s%s%d%s", strings.ToUpper(index), yy,
		weeklyMonthCode(expiryDate.Month()), expiryDate.Format("02"), k, t)
}

func weeklyMonthCode(m time.Month) string {
	switch m {
	case time.October:
		return "O"
	case time.November:
		return "N"
	case time.December:
		return "D"
	default:
		return strconv.Itoa(int(m))
	}
}

func normalizeOptionType(optionType string) string {
	switch strings.ToLower(optionType) {
	case "put", "pe", "p":
		return "PE"
	default:
		return "CE"
	}
}
