// Package data provides market data providers used to fill in the
// calculator's inputs (spot price and ATM implied volatility) from a live
// source when the user doesn't supply them.
package data

import (
	"fmt"
	"math"
	"time"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/expiry"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/logger"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/pricing"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/rangecalc"
)

// Provider supplies market data
type Provider interface {
	Secondary() Provider
	GetSpot(index string) (float64, error)
	GetATMStraddle(index string, expiryDate time.Time, spot float64) (strike, callPrice, putPrice float64, err error)
	RoundToNearestStrike(index string, price float64) float64
}

// quoteSymbols maps index names to the exchange quote symbols used for
// spot lookups.
var quoteSymbols = map[string]string{
	"NIFTY":     "NSE:NIFTY 50",
	"BANKNIFTY": "NSE:NIFTY BANK",
	"FINNIFTY":  "NSE:NIFTY FIN SERVICE",
	"SENSEX":    "BSE:SENSEX",
}

// strikeIntervals holds the strike spacing per index.
var strikeIntervals = map[string]float64{
	"NIFTY":     50,
	"BANKNIFTY": 100,
	"FINNIFTY":  50,
	"SENSEX":    100,
}

func strikeIntervalFor(index string) float64 {
	if iv, ok := strikeIntervals[index]; ok {
		return iv
	}
	return 50
}

func roundToInterval(price, interval float64) float64 {
	return math.Round(price/interval) * interval
}

// LiveQuote bundles the calculator inputs fetched from a provider.
type LiveQuote struct {
	Index     string  `json:"index"`
	Spot      float64 `json:"spot"`
	Strike    float64 `json:"strike"`
	IVPercent float64 `json:"iv_percent"`
	DTE       int     `json:"dte"`
}

// FetchLiveInputs resolves spot, ATM strike and straddle-implied volatility
// for the given index and expiry. riskFree is the annual rate used by the
// implied-vol solve; loc is the market timezone for day counting.
func FetchLiveInputs(p Provider, index string, expiryDate time.Time, riskFree float64, loc *time.Location) (*LiveQuote, error) {
	dte := expiry.DaysToExpiry(expiryDate, time.Now(), loc)
	if dte <= 0 {
		// Caller input, not a provider fault: surfaces as InvalidInput.
		return nil, fmt.Errorf("%w: expiry %s is not in the future (dte=%d)",
			rangecalc.ErrInvalidInput, expiryDate.Format("2006-01-02"), dte)
	}

	spot, err := p.GetSpot(index)
	if err != nil {
		return nil, fmt.Errorf("fetching %s spot: %w", index, err)
	}

	strike, callPrice, putPrice, err := p.GetATMStraddle(index, expiryDate, spot)
	if err != nil {
		return nil, fmt.Errorf("fetching %s ATM straddle: %w", index, err)
	}
	logger.Debugf("ATM straddle %s strike=%.0f call=%.2f put=%.2f", index, strike, callPrice, putPrice)

	T := float64(dte) / 365
	sigma, err := pricing.ImpliedVolFromStraddle(spot, strike, T, riskFree, callPrice, putPrice)
	if err != nil {
		return nil, fmt.Errorf("solving implied vol for %s: %w", index, err)
	}

	return &LiveQuote{
		Index:     index,
		Spot:      spot,
		Strike:    strike,
		IVPercent: sigma * 100,
		DTE:       dte,
	}, nil
}
