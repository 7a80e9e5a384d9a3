// Package rangecalc computes expected price-range bands for an index from a
// spot price, an annualized implied volatility percentage, and a number of
// days to expiry.
//
// The one-standard-deviation point move is
//
//	move = spot × (iv/100) × sqrt(dte/365)
//
// and each band at multiplier m is (spot − m·move, spot + m·move). Bands
// widen monotonically with the multiplier, so for the default 1/2/3 SD set:
//
//	lower_3 ≤ lower_2 ≤ lower_1 ≤ spot ≤ upper_1 ≤ upper_2 ≤ upper_3
//
// Everything here is pure arithmetic: no state, no I/O, recomputed per call.
package rangecalc

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/pricing"
)

// ErrInvalidInput is returned when the inputs cannot produce a range:
// non-positive days to expiry, non-positive spot, or an IV percentage
// outside (0, 100].
var ErrInvalidInput = errors.New("invalid input")

// Band is one probability band around the spot.
type Band struct {
	// Sigma is the standard-deviation multiplier (1, 2, 3, or a custom
	// confidence-derived value such as 1.96).
	Sigma float64 `json:"sigma"`
	// Probability is the two-sided normal probability of expiring inside
	// the band (0.6827 for 1 SD, 0.9545 for 2 SD, 0.9973 for 3 SD).
	Probability float64 `json:"probability"`
	Lower       float64 `json:"lower"`
	Upper       float64 `json:"upper"`
}

// Bands is the result of one range computation.
type Bands struct {
	Spot      float64 `json:"spot"`
	IVPercent float64 `json:"iv_percent"`
	DTE       int     `json:"dte"`
	// PointMove is the one-standard-deviation move in index points.
	PointMove float64 `json:"point_move"`
	// Levels are ordered by ascending sigma.
	Levels []Band `json:"levels"`
}

// Compute returns the 1/2/3 standard-deviation bands for the given inputs.
// ivPercent is a percentage (12.5 means 12.5%).
func Compute(spot, ivPercent float64, dte int) (*Bands, error) {
	return ComputeAt(spot, ivPercent, dte, []float64{1, 2, 3})
}

// ComputeAt computes bands at caller-chosen sigma multipliers. Multipliers
// are sorted ascending in the result so the widening invariant holds by
// position.
func ComputeAt(spot, ivPercent float64, dte int, multipliers []float64) (*Bands, error) {
	if dte <= 0 {
		return nil, fmt.Errorf("%w: days to expiry must be greater than 0, got %d", ErrInvalidInput, dte)
	}
	if spot <= 0 {
		return nil, fmt.Errorf("%w: spot price must be positive, got %f", ErrInvalidInput, spot)
	}
	if ivPercent <= 0 || ivPercent > 100 {
		return nil, fmt.Errorf("%w: iv percent must be in (0,100], got %f", ErrInvalidInput, ivPercent)
	}
	if len(multipliers) == 0 {
		return nil, fmt.Errorf("%w: no sigma multipliers given", ErrInvalidInput)
	}

	move := spot * (ivPercent / 100) * math.Sqrt(float64(dte)/365)

	ms := append([]float64(nil), multipliers...)
	sort.Float64s(ms)

	b := &Bands{
		Spot:      spot,
		IVPercent: ivPercent,
		DTE:       dte,
		PointMove: move,
		Levels:    make([]Band, 0, len(ms)),
	}
	for _, m := range ms {
		if m <= 0 {
			return nil, fmt.Errorf("%w: sigma multiplier must be positive, got %f", ErrInvalidInput, m)
		}
		b.Levels = append(b.Levels, Band{
			Sigma:       m,
			Probability: 2*pricing.NormCDF(m) - 1,
			Lower:       spot - m*move,
			Upper:       spot + m*move,
		})
	}
	return b, nil
}

// MultiplierForConfidence converts a two-sided confidence level into the
// sigma multiplier whose band covers it, e.g. 0.95 → 1.96.
func MultiplierForConfidence(p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("%w: confidence must be in (0,1), got %f", ErrInvalidInput, p)
	}
	return pricing.NormInv((1 + p) / 2), nil
}
