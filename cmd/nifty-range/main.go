package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/api"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/config"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/data"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/expiry"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/logger"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/rangecalc"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/render"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/report"
)

func main() {
	spot := flag.Float64("spot", 0, "index spot price")
	iv := flag.Float64("iv", 0, "ATM implied volatility in percent (e.g. 12.5)")
	dte := flag.Int("dte", 0, "days to expiry")
	expiryStr := flag.String("expiry", "", "expiry date YYYY-MM-DD (alternative to -dte)")
	index := flag.String("index", "", "index name (NIFTY, BANKNIFTY, FINNIFTY, SENSEX)")
	live := flag.Bool("live", false, "fetch spot and IV from the market data provider")
	rest := flag.Bool("rest", false, "run as REST server instead of a one-shot calculation")
	port := flag.String("port", "", "REST listen address override, e.g. :9090")
	confidence := flag.Float64("confidence", 0, "add a band for this two-sided confidence, e.g. 0.95")
	out := flag.String("out", "", "write JSON and CSV reports to this directory")
	verbosity := flag.Int("v", 1, "verbosity: 0 errors, 1 info, 2 debug, 3 trace")
	flag.Parse()

	logger.SetVerbosity(*verbosity)

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("loading config: %v", err)
		os.Exit(1)
	}
	if *index == "" {
		*index = cfg.Market.Index
	}
	if *port != "" {
		cfg.App.ListenAddr = *port
	}

	loc, err := expiry.MarketLocation(cfg.Market.Timezone)
	if err != nil {
		logger.Errorf("loading market timezone: %v", err)
		os.Exit(1)
	}

	// choose provider
	var prov data.Provider
	if cfg.Kite.Enabled() {
		prov = data.NewKiteProviderWithFallback(cfg.Kite.APIKey, cfg.Kite.AccessToken, data.NewSyntheticProvider())
		logger.Infof("kite provider enabled")
	} else {
		prov = data.NewSyntheticProvider()
		logger.Infof("synthetic provider enabled (set KITE_API_KEY and KITE_ACCESS_TOKEN for live data)")
	}

	if *rest {
		srv, err := api.NewServer(cfg, prov)
		if err != nil {
			logger.Errorf("building server: %v", err)
			os.Exit(1)
		}
		logger.Infof("starting REST server on %s", cfg.App.ListenAddr)
		if err := srv.ListenAndServe(); err != nil {
			logger.Errorf("server stopped: %v", err)
			os.Exit(1)
		}
		return
	}

	var expiryDate time.Time
	if *expiryStr != "" {
		expiryDate, err = expiry.ParseDate(*expiryStr)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		*dte = expiry.DaysToExpiry(expiryDate, time.Now(), loc)
		logger.Debugf("expiry %s resolves to %d days", *expiryStr, *dte)
	}

	if *live {
		if expiryDate.IsZero() {
			expiryDate = expiry.NextWeekly(time.Now(), time.Tuesday, loc)
			logger.Infof("no expiry given, using next weekly expiry %s", expiryDate.Format("2006-01-02"))
		}
		quote, err := data.FetchLiveInputs(prov, *index, expiryDate, cfg.Market.RiskFreeRate, loc)
		if err != nil {
			logger.Errorf("fetching live inputs: %v", err)
			os.Exit(1)
		}
		logger.Infof("%s spot=%.2f strike=%.0f iv=%.2f%% dte=%d",
			quote.Index, quote.Spot, quote.Strike, quote.IVPercent, quote.DTE)
		*spot, *iv, *dte = quote.Spot, quote.IVPercent, quote.DTE
	}

	multipliers := []float64{1, 2, 3}
	if *confidence > 0 {
		m, err := rangecalc.MultiplierForConfidence(*confidence)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
		multipliers = append(multipliers, m)
	}

	bands, err := rangecalc.ComputeAt(*spot, *iv, *dte, multipliers)
	if err != nil {
		logger.Errorf("cannot compute range: %v", err)
		os.Exit(1)
	}

	fmt.Print(render.Summary(bands, cfg.Market.TickSize))
	fmt.Println()
	fmt.Print(render.Ladder(bands, cfg.Market.TickSize))

	if *out != "" {
		if err := os.MkdirAll(*out, 0755); err != nil {
			logger.Errorf("could not create output dir %s: %v", *out, err)
			os.Exit(1)
		}
		if err := report.WriteJSON(bands, *out); err != nil {
			logger.Errorf("writing JSON report: %v", err)
		}
		if err := report.WriteCSV(bands, *out); err != nil {
			logger.Errorf("writing CSV report: %v", err)
		}
		logger.Infof("wrote reports to %s", *out)
	}
}
