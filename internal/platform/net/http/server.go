package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strings"
	"time"

	"numwash/internal/platform/config"
	"numwash/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// drainWindow bounds how long a cancelled Run waits for in-flight requests
const drainWindow = 5 * time.Second

// Server owns a chi mux and the stdlib http.Server serving it
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer wires a mux and server from config
// The listen address resolves ADDR first, then PORT, then ":4000"
// opts run against the bare *chi.Mux before any routes are mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := listenAddr(cfg)
	mux := chi.NewRouter()
	for _, o := range opts {
		o(mux)
	}
	return &Server{
		addr: addr,
		mux:  mux,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// listenAddr picks the bind address; a bare numeric PORT becomes ":<port>"
func listenAddr(cfg config.Conf) string {
	if a := cfg.MayString("ADDR", ""); a != "" {
		return a
	}
	p := cfg.MayString("PORT", "4000")
	if !strings.Contains(p, ":") {
		return ":" + p
	}
	return p
}

// Router exposes the mux through the Router facade
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr reports the resolved listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until the listener fails or ctx is cancelled
// Cancellation drains in-flight requests for up to drainWindow
// A closed server (external Shutdown included) reports nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("draining in-flight requests")
		stopCtx, cancel := context.WithTimeout(context.Background(), drainWindow)
		defer cancel()
		if err := s.srv.Shutdown(stopCtx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}

// Shutdown drains with the deadline the caller brought
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
