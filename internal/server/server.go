// Package server exposes the dashboard state over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/singleflight"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
)

// Config holds the listener settings.
type Config struct {
	Address         string
	RefreshInterval time.Duration
	GracefulTimeout time.Duration
}

// Machine is the subset of *dashboard.Machine used by the handlers.
type Machine interface {
	Current() dashboard.ViewModel
	Load(ctx context.Context) dashboard.ViewModel
}

// Server serves the dashboard view model, refresh trigger and metrics.
type Server struct {
	cfg      Config
	machine  Machine
	http     *http.Server
	listener net.Listener

	// cycles collapses overlapping refresh requests into one load cycle.
	cycles singleflight.Group

	// base is the context handed to background cycles; cancelled on Shutdown.
	base   context.Context
	cancel context.CancelFunc
}

// New binds a listener on cfg.Address. gatherer may be nil, in which case
// the default Prometheus registry is exposed.
func New(cfg Config, m Machine, gatherer prometheus.Gatherer) (*Server, error) {
	if m == nil {
		return nil, errors.New("server: nil machine")
	}
	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Address, err)
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	base, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		machine:  m,
		listener: lis,
		base:     base,
		cancel:   cancel,
	}
	s.http = &http.Server{
		Handler:      s.Handler(gatherer),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s, nil
}

// Handler builds the route table.
func (s *Server) Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Start runs an initial cycle in the background and serves until Shutdown.
func (s *Server) Start() error {
	if s.http == nil || s.listener == nil {
		return fmt.Errorf("server not initialised")
	}
	s.refresh()
	if s.cfg.RefreshInterval > 0 {
		go s.refreshLoop(s.cfg.RefreshInterval)
	}
	logf("listening on %s", s.Address())
	err := s.http.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.http == nil {
		return nil
	}
	err := s.http.Shutdown(ctx)
	// Shutdown only closes listeners Serve has seen.
	_ = s.listener.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Address exposes the bound listener address.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GracefulTimeout returns the configured graceful timeout duration.
func (s *Server) GracefulTimeout() time.Duration {
	if s.cfg.GracefulTimeout <= 0 {
		return 10 * time.Second
	}
	return s.cfg.GracefulTimeout
}

func (s *Server) refreshLoop(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.base.Done():
			return
		case <-t.C:
			logf("periodic refresh")
			<-s.refresh()
		}
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.machine.Current())
}

// refresh starts a load cycle unless one is already running, in which case
// the caller joins it.
func (s *Server) refresh() <-chan singleflight.Result {
	return s.cycles.DoChan("refresh", func() (any, error) {
		return s.machine.Load(s.base), nil
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.refresh()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logf("encode response: %v", err)
	}
}
