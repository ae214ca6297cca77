// Package ws serves merge sessions to programmatic clients over WebSocket.
// Each connection owns at most one session; commands are handled in arrival order.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RulesFunc resolves the rules for a variant id.
type RulesFunc func(variant string) (config.Rules, error)

// ServerConfig holds configuration for the WebSocket server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Variant is used when a "new" command names none.
	Variant string

	// Rules resolves variant rules for each new game.
	Rules RulesFunc

	// Store records finished games. Optional.
	Store *storage.Store

	// Logger defaults to a timestamped stderr logger.
	Logger *log.Logger
}

// Server accepts WebSocket connections on /ws.
type Server struct {
	config ServerConfig
	logger *log.Logger
	http   *http.Server

	mu       sync.Mutex
	conns    map[*Connection]struct{}
	closing  bool
	handlers sync.WaitGroup // Live connection handlers, including result recording
}

// NewServer creates a new WebSocket server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Rules == nil {
		return nil, errors.New("ws: server needs a rules resolver")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "merge2048-ws",
		})
	}

	s := &Server{
		config: cfg,
		logger: logger,
		conns:  make(map[*Connection]struct{}),
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	logger := s.logger.With("remote", r.RemoteAddr)
	c := NewConnection(conn, logger)
	if !s.track(c) {
		c.Close("server shutting down")
		return
	}
	defer s.untrack(c)
	logger.Info("client connected")

	game := newGameHandler(s.config, logger)

	go c.WritePump()
	c.ReadPump(game)

	game.close()
	logger.Info("client disconnected")
}

// track registers a live connection. It refuses new ones once shutdown began.
func (s *Server) track(c *Connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[c] = struct{}{}
	s.handlers.Add(1)
	return true
}

func (s *Server) untrack(c *Connection) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.handlers.Done()
}

// closeConnections stops accepting sessions and closes every live connection,
// which ends its read loop and records any unfinished game.
func (s *Server) closeConnections() {
	s.mu.Lock()
	s.closing = true
	conns := make([]*Connection, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close("server shutting down")
	}
}

// ListenAndServe starts the server and blocks until ctx is done or the server fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("ws server: %w", err)
	}
	s.logger.Info("starting WebSocket server", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ws server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down WebSocket server")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
// http.Server.Shutdown leaves hijacked WebSocket connections open, so they are
// closed here and their handlers are waited for.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.closeConnections()

	done := make(chan struct{})
	go func() {
		s.handlers.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = fmt.Errorf("ws server: waiting for connections: %w", ctx.Err())
		}
	}
	return err
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
