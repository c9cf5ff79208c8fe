// Package rpc serves wallet clients over WebSocket.
package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/lnevm/bridge/internal/bridge"
	"github.com/lnevm/bridge/pkg/logging"
)

// Server status values reported in the connection hello.
const (
	ServerStatusActive = "ACTIVE"
	ServerStatusMock   = "MOCK"
)

// Server accepts WebSocket connections and routes swap requests to the
// coordinator.
type Server struct {
	coordinator *bridge.Coordinator
	log         *logging.Logger
	mock        bool

	server   *http.Server
	listener net.Listener
}

// NewServer creates a client-facing server. When mock is set the hello
// message reports MOCK so wallets know no real satoshis move.
func NewServer(coordinator *bridge.Coordinator, mock bool) *Server {
	return &Server{
		coordinator: coordinator,
		log:         logging.GetDefault().Component("rpc"),
		mock:        mock,
	}
}

// Start begins listening for client connections.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleWS)
	mux.HandleFunc("GET /ws", s.handleWS)

	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("server error", "error", err)
		}
	}()

	s.log.Info("client server started", "addr", listener.Addr(), "status", s.status())
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) status() string {
	if s.mock {
		return ServerStatusMock
	}
	return ServerStatusActive
}
