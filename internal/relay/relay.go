// Package relay exposes a small HTTP service that claims contracts on
// behalf of clients. A client that cannot afford gas posts its contract id
// and preimage; the relay verifies the claim locally and submits the
// withdrawal from the operator key. The service keeps no state, so any
// number of relays can run side by side.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/pkg/helpers"
	"github.com/lnevm/bridge/pkg/logging"
)

// ChainClient is the contract surface the relay needs.
type ChainClient interface {
	GetContract(ctx context.Context, contractID [32]byte) (*htlc.ContractDetails, error)
	Withdraw(ctx context.Context, contractID [32]byte, preimage [32]byte) (common.Hash, error)
}

// Request is a claim submission.
type Request struct {
	ContractID string `json:"contractId"`
	Preimage   string `json:"preimage"`
}

// Response reports the claim outcome.
type Response struct {
	Status  string `json:"status"`
	TxHash  string `json:"txHash,omitempty"`
	Message string `json:"message,omitempty"`
}

// Server is the relay HTTP server.
type Server struct {
	chain ChainClient
	log   *logging.Logger

	server   *http.Server
	listener net.Listener
}

// NewServer creates a relay server.
func NewServer(chain ChainClient) *Server {
	return &Server{
		chain: chain,
		log:   logging.GetDefault().Component("relay"),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/relay", s.handleRelay).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return r
}

// Start begins serving claims.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("relay server error", "error", err)
		}
	}()

	s.log.Info("relay server started", "addr", listener.Addr())
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

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Status: "ok"})
}

// handleRelay validates a claim before spending gas on it. Everything the
// contract will check is checked here first; the chain stays the final
// arbiter.
func (s *Server) handleRelay(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	contractID, err := helpers.HexToHash32(req.ContractID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contract id")
		return
	}
	preimage, err := helpers.HexToHash32(req.Preimage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid preimage")
		return
	}

	log := s.log.With("contract", req.ContractID)

	details, err := s.chain.GetContract(r.Context(), contractID)
	if err != nil {
		log.Warn("contract lookup failed", "error", err)
		writeError(w, http.StatusNotFound, "contract not found")
		return
	}

	switch {
	case details.Withdrawn:
		writeError(w, http.StatusConflict, "contract already withdrawn")
		return
	case details.Refunded:
		writeError(w, http.StatusConflict, "contract already refunded")
		return
	case !htlc.VerifyPreimage(preimage, details.Hashlock):
		writeError(w, http.StatusBadRequest, "preimage does not match hashlock")
		return
	}

	txHash, err := s.chain.Withdraw(r.Context(), contractID, preimage)
	if err != nil {
		log.Error("withdrawal failed", "error", err)
		writeError(w, http.StatusBadGateway, "withdrawal failed")
		return
	}

	log.Info("relayed withdrawal", "tx", txHash)
	writeJSON(w, http.StatusOK, Response{Status: "success", TxHash: txHash.Hex()})
}

func writeJSON(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Response{Status: "error", Message: message})
}
