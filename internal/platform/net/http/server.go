package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
)

// Server pairs a chi mux with a stdlib http.Server and a drain window
type Server struct {
	addr  string
	grace time.Duration
	mux   *chi.Mux
	srv   *stdhttp.Server
}

// NewServer reads ADDR/PORT and the timeout knobs under cfg's prefix.
// opts receive the *chi.Mux so callers can mount routes and middleware
// before Run
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	addr := listenAddr(cfg)
	return &Server{
		addr:  addr,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		mux:   m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// listenAddr resolves where to bind. ADDR wins when set; a bare PORT is
// validated and becomes ":port"; neither set falls back to :4000
func listenAddr(cfg config.Conf) string {
	if addr := cfg.MayString("ADDR", ""); addr != "" {
		return addr
	}
	if cfg.MayString("PORT", "") != "" {
		return cfg.MustPort("PORT")
	}
	return ":4000"
}

// Router exposes the chi mux behind the Router seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run listens until the server fails or ctx is cancelled. Cancellation
// drains in-flight requests for up to the SHUTDOWN_GRACE window
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()
	log.Info().Str("addr", s.addr).Msg("http listening")

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("http draining")
	sctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	// ListenAndServe returns ErrServerClosed once Shutdown completes
	<-errc
	return nil
}

// Shutdown stops the server without waiting for ctx cancellation
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
