package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"StockWatch/internal/directory"
	"StockWatch/internal/model"
	"StockWatch/internal/orchestrator"
	"StockWatch/internal/scheduler"
)

// Server exposes the dashboard HTTP API and the static chart page.
type Server struct {
	httpServer    *http.Server
	dir           *directory.Directory
	orch          *orchestrator.Orchestrator
	sched         *scheduler.Scheduler // nil when no watchlist is configured
	defaultPeriod model.Period
	staticDir     string
	log           *zap.Logger
}

type Options struct {
	Listen        string
	Directory     *directory.Directory
	Orchestrator  *orchestrator.Orchestrator
	Scheduler     *scheduler.Scheduler
	DefaultPeriod model.Period
	StaticDir     string
	Log           *zap.Logger
}

func New(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.StaticDir == "" {
		opts.StaticDir = "web/static"
	}
	s := &Server{
		dir:           opts.Directory,
		orch:          opts.Orchestrator,
		sched:         opts.Scheduler,
		defaultPeriod: opts.DefaultPeriod,
		staticDir:     opts.StaticDir,
		log:           opts.Log,
	}
	s.httpServer = &http.Server{
		Addr:              opts.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       time.Minute,
	}
	return s
}

// Router builds the mux router. Exposed separately for handler tests.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/stocks", s.handleStocks).Methods(http.MethodGet)
	r.HandleFunc("/api/tickers", s.handleTickers).Methods(http.MethodGet)
	r.HandleFunc("/api/tickers/{symbol}", s.handleTickerLookup).Methods(http.MethodGet)
	r.HandleFunc("/api/watchlist", s.handleWatchlist).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
	return r
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("http server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
