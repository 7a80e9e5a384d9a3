package data

import (
	"fmt"
	"time"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/expiry"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/pricing"
)

// Reference levels the synthetic provider quotes around. The straddle it
// fabricates is priced at synthIV so an implied-vol solve on its quotes
// recovers that same figure.
const (
	synthIV       = 0.125
	synthRiskFree = 0.065
)

var synthSpots = map[string]float64{
	"NIFTY":     24000,
	"BANKNIFTY": 52000,
	"FINNIFTY":  23500,
	"SENSEX":    80000,
}

// synthProvider implements Provider with fabricated but self-consistent
// quotes. Used when no Kite credentials are configured and in tests.
type synthProvider struct {
	secondary Provider
}

func NewSyntheticProvider() Provider { return &synthProvider{} }

func (synthProv *synthProvider) Secondary() Provider {
	return synthProv.secondary
}

func (synthProv *synthProvider) GetSpot(index string) (float64, error) {
	if spot, ok := synthSpots[index]; ok {
		return spot, nil
	}
	if synthProv.secondary != nil {
		return synthProv.secondary.GetSpot(index)
	}
	return 0, fmt.Errorf("no synthetic spot for index %q", index)
}

func (synthProv *synthProvider) GetATMStraddle(index string, expiryDate time.Time, spot float64) (strike, callPrice, putPrice float64, err error) {
	strike = synthProv.RoundToNearestStrike(index, spot)

	dte := expiry.DaysToExpiry(expiryDate, time.Now(), time.UTC)
	if dte <= 0 {
		return 0, 0, 0, fmt.Errorf("synthetic straddle needs a future expiry, got %s", expiryDate.Format("2006-01-02"))
	}

	T := float64(dte) / 365
	callPrice = pricing.BlackScholesPrice(true, spot, strike, T, synthRiskFree, synthIV)
	putPrice = pricing.BlackScholesPrice(false, spot, strike, T, synthRiskFree, synthIV)
	return strike, callPrice, putPrice, nil
}

func (synthProv *synthProvider) RoundToNearestStrike(index string, price float64) float64 {
	return roundToInterval(price, strikeIntervalFor(index))
}
