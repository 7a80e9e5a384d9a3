// Package report writes a computed range set to disk as JSON and CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/rangecalc"
)

func WriteJSON(b *rangecalc.Bands, outdir string) error {
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "ranges.json"), buf, 0644)
}

func WriteCSV(b *rangecalc.Bands, outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "ranges.csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"sigma", "probability", "lower", "upper", "spot", "point_move", "iv_percent", "dte"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, lvl := range b.Levels {
		row := []string{
			fmt.Sprintf("%g", lvl.Sigma),
			fmt.Sprintf("%.6f", lvl.Probability),
			fmt.Sprintf("%.2f", lvl.Lower),
			fmt.Sprintf("%.2f", lvl.Upper),
			fmt.Sprintf("%.2f", b.Spot),
			fmt.Sprintf("%.2f", b.PointMove),
			fmt.Sprintf("%.2f", b.IVPercent),
			fmt.Sprintf("%d", b.DTE),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
