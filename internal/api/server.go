// Package api exposes the range calculator over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kryptosavv/Nifty-SD-Calculator/internal/config"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/data"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/expiry"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/logger"
	"github.com/kryptosavv/Nifty-SD-Calculator/internal/rangecalc"
)

// Server serves range computations over HTTP.
type Server struct {
	router *mux.Router
	cfg    *config.Config
	prov   data.Provider
	loc    *time.Location
}

// NewServer builds a Server with its routes registered. prov may be nil,
// which disables the live endpoint.
func NewServer(cfg *config.Config, prov data.Provider) (*Server, error) {
	loc, err := expiry.MarketLocation(cfg.Market.Timezone)
	if err != nil {
		return nil, err
	}
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
		prov:   prov,
		loc:    loc,
	}
	s.routes()
	return s, nil
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// ListenAndServe blocks serving HTTP on the configured address.
func (s *Server) ListenAndServe() error {
	logger.Infof("listening on %s", s.cfg.App.ListenAddr)
	return http.ListenAndServe(s.cfg.App.ListenAddr, s.router)
}

func (s *Server) routes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debugf("%s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	})

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/range", s.handleRange).Methods("GET")
	api.HandleFunc("/live-range", s.handleLiveRange).Methods("GET")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleRange computes bands from explicit query parameters:
//
//	GET /api/range?spot=24000&iv=12.5&dte=7
//	GET /api/range?spot=24000&iv=12.5&expiry=2026-09-01
func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spot, err := strconv.ParseFloat(q.Get("spot"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "spot must be a number")
		return
	}
	iv, err := strconv.ParseFloat(q.Get("iv"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "iv must be a number (percent)")
		return
	}

	var dte int
	if expiryStr := q.Get("expiry"); expiryStr != "" {
		d, err := expiry.ParseDate(expiryStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		dte = expiry.DaysToExpiry(d, time.Now(), s.loc)
	} else {
		dte, err = strconv.Atoi(q.Get("dte"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "dte must be an integer")
			return
		}
	}

	bands, err := rangecalc.Compute(spot, iv, dte)
	if err != nil {
		if errors.Is(err, rangecalc.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bands)
}

type liveRangeResponse struct {
	Quote *data.LiveQuote  `json:"quote"`
	Bands *rangecalc.Bands `json:"bands"`
}

// handleLiveRange fetches spot and straddle-implied IV from the data
// provider, then computes bands:
//
//	GET /api/live-range?index=NIFTY&expiry=2026-09-01
//
// When expiry is omitted the next weekly expiry is used.
func (s *Server) handleLiveRange(w http.ResponseWriter, r *http.Request) {
	if s.prov == nil {
		writeError(w, http.StatusServiceUnavailable, "no market data provider configured")
		return
	}

	index := r.URL.Query().Get("index")
	if index == "" {
		index = s.cfg.Market.Index
	}

	var expiryDate time.Time
	if expiryStr := r.URL.Query().Get("expiry"); expiryStr != "" {
		d, err := expiry.ParseDate(expiryStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		expiryDate = d
	} else {
		expiryDate = expiry.NextWeekly(time.Now(), time.Tuesday, s.loc)
	}

	quote, err := data.FetchLiveInputs(s.prov, index, expiryDate, s.cfg.Market.RiskFreeRate, s.loc)
	if err != nil {
		if errors.Is(err, rangecalc.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	bands, err := rangecalc.Compute(quote.Spot, quote.IVPercent, quote.DTE)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, liveRangeResponse{Quote: quote, Bands: bands})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
