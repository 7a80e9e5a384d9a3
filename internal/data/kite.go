package data

import (
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/expiry"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/logger"
)

// kiteProvider implements Provider using the Zerodha Kite Connect API.
type kiteProvider struct {
	client    *kiteconnect.Client
	secondary Provider
}

// NewKiteProvider constructs a Kite-backed provider. The access token must
// be a valid daily session token; Kite invalidates them every morning.
func NewKiteProvider(apiKey, accessToken string) Provider {
	logger.Infof("initializing Kite data provider")
	client := kiteconnect.New(apiKey)
	client.SetAccessToken(accessToken)
	return &kiteProvider{client: client}
}

// NewKiteProviderWithFallback constructs a Kite provider that delegates to
// secondary when a lookup fails.
func NewKiteProviderWithFallback(apiKey, accessToken string, secondary Provider) Provider {
	p := NewKiteProvider(apiKey, accessToken).(*kiteProvider)
	p.secondary = secondary
	return p
}

// Secondary returns the configured fallback Provider, if any.
func (kiteProv *kiteProvider) Secondary() Provider {
	return kiteProv.secondary
}

// GetSpot fetches the index spot price via a full quote on the exchange
// symbol (e.g. "NSE:NIFTY 50").
func (kiteProv *kiteProvider) GetSpot(index string) (float64, error) {
	symbol, ok := quoteSymbols[index]
	if !ok {
		return 0, fmt.Errorf("unknown index %q", index)
	}

	quotes, err := kiteProv.client.GetQuote(symbol)
	if err != nil {
		if kiteProv.secondary != nil {
			logger.Debugf("kite spot lookup failed (%v), trying secondary", err)
			return kiteProv.secondary.GetSpot(index)
		}
		return 0, fmt.Errorf("kite quote for %s: %w", symbol, err)
	}

	q, ok := quotes[symbol]
	if !ok || q.LastPrice <= 0 {
		return 0, fmt.Errorf("no last price in kite quote for %s", symbol)
	}
	logger.Tracef("kite quote %s last_price=%.2f", symbol, q.LastPrice)
	return q.LastPrice, nil
}

// GetATMStraddle fetches last prices for the call and put at the strike
// nearest the spot.
func (kiteProv *kiteProvider) GetATMStraddle(index string, expiryDate time.Time, spot float64) (strike, callPrice, putPrice float64, err error) {
	strike = kiteProv.RoundToNearestStrike(index, spot)

	ceSymbol := "NFO:" + expiry.TradingSymbol(index, expiryDate, strike, "CE")
	peSymbol := "NFO:" + expiry.TradingSymbol(index, expiryDate, strike, "PE")
	logger.Debugf("fetching straddle quotes %s / %s", ceSymbol, peSymbol)

	quotes, err := kiteProv.client.GetQuote(ceSymbol, peSymbol)
	if err != nil {
		if kiteProv.secondary != nil {
			logger.Debugf("kite straddle lookup failed (%v), trying secondary", err)
			// strike is already on the grid and rounding is idempotent, so
			// the fallback prices the same contract this lookup attempted.
			return kiteProv.secondary.GetATMStraddle(index, expiryDate, strike)
		}
		return 0, 0, 0, fmt.Errorf("kite option quotes: %w", err)
	}

	ce, okCE := quotes[ceSymbol]
	pe, okPE := quotes[peSymbol]
	if !okCE || !okPE || ce.LastPrice <= 0 || pe.LastPrice <= 0 {
		return 0, 0, 0, fmt.Errorf("incomplete straddle quotes for %s strike %.0f", index, strike)
	}
	return strike, ce.LastPrice, pe.LastPrice, nil
}

// RoundToNearestStrike snaps a price onto the index's strike grid.
func (kiteProv *kiteProvider) RoundToNearestStrike(index string, price float64) float64 {
	return roundToInterval(price, strikeIntervalFor(index))
}
