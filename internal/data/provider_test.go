package data

import (
	"errors"
	"testing"
	"time"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/rangecalc"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/testutil"
)

func futureExpiry(days int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestSyntheticSpot(t *testing.T) {
	prov := NewSyntheticProvider()

	spot, err := prov.GetSpot("NIFTY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spot != 24000 {
		t.Fatalf("expected synthetic NIFTY spot 24000, got %f", spot)
	}

	if _, err := prov.GetSpot("NO-SUCH-INDEX"); err == nil {
		t.Fatalf("expected error for unknown index")
	}
}

func TestRoundToNearestStrike(t *testing.T) {
	prov := NewSyntheticProvider()

	tests := []struct {
		index    string
		price    float64
		expected float64
	}{
		{"NIFTY", 24013, 24000},
		{"NIFTY", 24026, 24050},
		{"BANKNIFTY", 52049, 52000},
		{"BANKNIFTY", 52051, 52100},
		{"SENSEX", 80050, 80100},
	}

	for _, test := range tests {
		actual := prov.RoundToNearestStrike(test.index, test.price)
		if actual != test.expected {
			t.Fatalf("RoundToNearestStrike(%s, %f): expected %f, got %f",
				test.index, test.price, test.expected, actual)
		}
	}
}

func TestRoundToNearestStrikeIsIdempotent(t *testing.T) {
	// A provider falling back on a straddle lookup hands down the strike it
	// already chose; re-rounding an on-grid value must not move it.
	prov := NewSyntheticProvider()
	for _, price := range []float64{24013, 24026, 23999.9, 24000} {
		strike := prov.RoundToNearestStrike("NIFTY", price)
		if again := prov.RoundToNearestStrike("NIFTY", strike); again != strike {
			t.Fatalf("re-rounding %f moved the strike: %f → %f", price, strike, again)
		}
	}
}

func TestSyntheticStraddleRejectsPastExpiry(t *testing.T) {
	prov := NewSyntheticProvider()
	if _, _, _, err := prov.GetATMStraddle("NIFTY", futureExpiry(-1), 24000); err == nil {
		t.Fatalf("expected error for past expiry")
	}
}

func TestFetchLiveInputsSynthetic(t *testing.T) {
	prov := NewSyntheticProvider()

	q, err := FetchLiveInputs(prov, "NIFTY", futureExpiry(7), synthRiskFree, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Spot != 24000 {
		t.Fatalf("expected spot 24000, got %f", q.Spot)
	}
	if q.Strike != 24000 {
		t.Fatalf("expected ATM strike 24000, got %f", q.Strike)
	}
	if q.DTE != 7 {
		t.Fatalf("expected dte 7, got %d", q.DTE)
	}
	// The synthetic straddle is priced at synthIV, so the solve recovers it.
	testutil.AlmostEqual(t, "implied iv percent", synthIV*100, q.IVPercent, 0.05)
}

func TestFetchLiveInputsRejectsPastExpiry(t *testing.T) {
	prov := NewSyntheticProvider()
	for _, days := range []int{0, -3} {
		_, err := FetchLiveInputs(prov, "NIFTY", futureExpiry(days), synthRiskFree, time.UTC)
		if !errors.Is(err, rangecalc.ErrInvalidInput) {
			t.Fatalf("expiry %+d days: expected ErrInvalidInput, got %v", days, err)
		}
	}
}
