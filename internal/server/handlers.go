package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"StockWatch/internal/calculator"
	"StockWatch/internal/collector"
	"StockWatch/internal/model"
)

// stockSummary is the at-a-glance block shown above each chart.
type stockSummary struct {
	LastClose   float64 `json:"last_close"`
	PeriodHigh  float64 `json:"period_high"`
	PeriodLow   float64 `json:"period_low"`
	TotalVolume string  `json:"total_volume"`
	Bars        int     `json:"bars"`
}

// stockResponse is the per-symbol wire format. Failed symbols carry an error
// string instead of data; they are reported, never dropped.
type stockResponse struct {
	Symbol  string           `json:"symbol"`
	Error   string           `json:"error,omitempty"`
	Summary *stockSummary    `json:"summary,omitempty"`
	Data    *model.StockData `json:"data,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	symbols := splitSymbols(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbols query parameter is required"})
		return
	}

	period := s.defaultPeriod
	if p := r.URL.Query().Get("period"); p != "" {
		period = model.Period(p)
	}
	if !period.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported period: " + period.String()})
		return
	}

	start := time.Now()
	results := s.orch.FetchAll(r.Context(), symbols, period)
	s.log.Info("stocks request served",
		zap.Int("symbols", len(symbols)),
		zap.String("period", period.String()),
		zap.Duration("elapsed", time.Since(start)))

	writeJSON(w, http.StatusOK, toStockResponses(results))
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		writeJSON(w, http.StatusOK, s.dir.Search(q))
		return
	}
	writeJSON(w, http.StatusOK, s.dir.ListAll())
}

func (s *Server) handleTickerLookup(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	company, ok := s.dir.Lookup(symbol)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "ticker not found: " + symbol})
		return
	}
	writeJSON(w, http.StatusOK, model.TickerRecord{Symbol: strings.ToUpper(symbol), Company: company})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, _ *http.Request) {
	if s.sched == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no watchlist configured"})
		return
	}
	results, refreshedAt, ok := s.sched.Snapshot()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "watchlist not refreshed yet"})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		RefreshedAt time.Time       `json:"refreshed_at"`
		Stocks      []stockResponse `json:"stocks"`
	}{RefreshedAt: refreshedAt, Stocks: toStockResponses(results)})
}

func toStockResponses(results []model.FetchResult) []stockResponse {
	out := make([]stockResponse, len(results))
	for i, res := range results {
		out[i] = stockResponse{Symbol: res.Symbol}
		if res.Err != nil {
			out[i].Error = errorMessage(res.Err)
			continue
		}
		out[i].Data = res.Data
		out[i].Summary = summarize(res.Data)
	}
	return out
}

func summarize(data *model.StockData) *stockSummary {
	bars := data.Prices.Bars
	if len(bars) == 0 {
		return nil
	}
	high, low, err := calculator.Range(bars)
	if err != nil {
		return nil
	}
	var volume float64
	for _, b := range bars {
		volume += b.Volume
	}
	return &stockSummary{
		LastClose:   bars[len(bars)-1].Close,
		PeriodHigh:  high,
		PeriodLow:   low,
		TotalVolume: humanize.Comma(int64(volume)),
		Bars:        len(bars),
	}
}

// errorMessage maps the fetch error taxonomy to stable user-facing strings.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, collector.ErrUnknownTicker):
		return "unknown ticker"
	case errors.Is(err, collector.ErrInvalidPeriod):
		return "invalid period"
	case errors.Is(err, collector.ErrProviderUnavailable):
		return "data provider unavailable"
	default:
		return err.Error()
	}
}

func splitSymbols(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
