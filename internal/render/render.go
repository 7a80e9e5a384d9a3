// Package render builds the plain-text presentation of a computed range:
// a per-band summary and a level ladder. It only produces strings; callers
// decide where they go.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/rangecalc"
)

// FormatLevel rounds a price onto the exchange tick grid and formats it
// with thousands separators. A tick of 1 or more drops the decimals.
func FormatLevel(v, tick float64) string {
	if tick <= 0 {
		tick = 0.05
	}
	d := decimal.NewFromFloat(v)
	t := decimal.NewFromFloat(tick)
	rounded, _ := d.Div(t).Round(0).Mul(t).Float64()

	digits := 2
	if tick >= 1 {
		digits = 0
	}
	return humanize.CommafWithDigits(rounded, digits)
}

// Summary renders one line per band with its probability, expected move and
// range, e.g.:
//
//	1 SD (68.3%): ±415.45 pts  23,584.55 – 24,415.45
func Summary(b *rangecalc.Bands, tick float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s expected range, %d days to expiry (IV %.2f%%)\n",
		FormatLevel(b.Spot, tick), b.DTE, b.IVPercent)
	for _, lvl := range b.Levels {
		fmt.Fprintf(&sb, "%s SD (%.1f%%): ±%s pts  %s – %s\n",
			sigmaLabel(lvl.Sigma),
			lvl.Probability*100,
			FormatLevel(lvl.Sigma*b.PointMove, tick),
			FormatLevel(lvl.Lower, tick),
			FormatLevel(lvl.Upper, tick),
		)
	}
	return sb.String()
}

// Ladder renders the levels stacked around spot, widest band outermost:
//
//	UPPER 3SD: 25,246.35  (extreme resistance)
//	UPPER 2SD: 24,830.9
//	UPPER 1SD: 24,415.45
//	   SPOT  : 24,000
//	LOWER 1SD: 23,584.55
//	LOWER 2SD: 23,169.1
//	LOWER 3SD: 22,753.65  (extreme support)
func Ladder(b *rangecalc.Bands, tick float64) string {
	var sb strings.Builder
	last := len(b.Levels) - 1

	for i := last; i >= 0; i-- {
		lvl := b.Levels[i]
		fmt.Fprintf(&sb, "UPPER %sSD: %s", sigmaLabel(lvl.Sigma), FormatLevel(lvl.Upper, tick))
		if i == last {
			sb.WriteString("  (extreme resistance)")
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "   SPOT  : %s\n", FormatLevel(b.Spot, tick))

	for i := 0; i <= last; i++ {
		lvl := b.Levels[i]
		fmt.Fprintf(&sb, "LOWER %sSD: %s", sigmaLabel(lvl.Sigma), FormatLevel(lvl.Lower, tick))
		if i == last {
			sb.WriteString("  (extreme support)")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sigmaLabel(m float64) string {
	return strconv.FormatFloat(m, 'g', 4, 64)
}
