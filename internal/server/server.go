package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"stocktracker/config"
	"stocktracker/internal/market/memorystore"
	"stocktracker/internal/market/simulator"
	"stocktracker/internal/watchlist"
	"stocktracker/pkg/market"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StockStore is the read and refresh surface of the live collection.
type StockStore interface {
	Snapshot() memorystore.Snapshot
	GetBySymbol(symbol string) (market.StockRecord, bool)
	Refresh(ctx context.Context) error
	Subscribe() (<-chan memorystore.Snapshot, memorystore.CancelFunc)
}

// Watchlist is the user's durable set of watched symbols.
type Watchlist interface {
	Add(ctx context.Context, symbol string) error
	Remove(ctx context.Context, symbol string) error
	Toggle(ctx context.Context, symbol string) (bool, error)
	Contains(symbol string) bool
	Symbols() map[string]struct{}
	Entries() []watchlist.Entry
}

// Server exposes the dashboard state over HTTP and pushes store updates over WebSocket.
type Server struct {
	cfg       config.ServerConfig
	stocks    StockStore
	watchlist Watchlist
	rand      simulator.Rand
	logger    *zap.Logger
	upgrader  websocket.Upgrader

	// connMu orders conns.Add against Close so no connection registers after Wait
	connMu  sync.Mutex
	closed  bool
	closing chan struct{}
	conns   sync.WaitGroup
}

func New(cfg config.ServerConfig, stocks StockStore, wl Watchlist, rnd simulator.Rand, logger *zap.Logger) *Server {
	return &Server{
		cfg:       cfg,
		stocks:    stocks,
		watchlist: wl,
		rand:      rnd,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
		closing: make(chan struct{}),
	}
}

// originChecker accepts same-origin handshakes and those whose Origin is listed.
// "*" accepts any origin.
func originChecker(allowed []string) func(*http.Request) bool {
	if slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimRight(a, "/"), origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/stocks", s.handleStocks)
	mux.HandleFunc("GET /api/stocks/{symbol}", s.handleStock)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	mux.HandleFunc("GET /api/watchlist", s.handleWatchlist)
	mux.HandleFunc("PUT /api/watchlist/{symbol}", s.handleWatchlistAdd)
	mux.HandleFunc("DELETE /api/watchlist/{symbol}", s.handleWatchlistRemove)
	mux.HandleFunc("POST /api/watchlist/{symbol}/toggle", s.handleWatchlistToggle)

	mux.HandleFunc("GET /ws", s.handleWS)

	return s.logRequests(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully and disconnects
// WebSocket clients.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.Close()
	s.logger.Info("server stopped")
	return err
}

// Close disconnects every WebSocket client and waits for their goroutines.
func (s *Server) Close() {
	s.connMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.closing)
	}
	s.connMu.Unlock()

	s.conns.Wait()
}

// track registers a WebSocket connection. It fails once Close has begun.
func (s *Server) track() bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	if s.closed {
		return false
	}
	s.conns.Add(1)
	return true
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
