// Package main provides the lnbridged daemon - the swap coordinator.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/lnevm/bridge/internal/bridge"
	"github.com/lnevm/bridge/internal/config"
	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/internal/lightning"
	"github.com/lnevm/bridge/internal/rpc"
	"github.com/lnevm/bridge/internal/storage"
	"github.com/lnevm/bridge/pkg/helpers"
	"github.com/lnevm/bridge/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	var (
		dataDir     = flag.String("data-dir", "~/.lnbridge", "Data directory")
		listenAddr  = flag.String("listen", "", "WebSocket listen address, overrides config")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	// Set up logging (initial, may be overridden by config)
	log := logging.New(&logging.Config{Level: "info"})
	logging.SetDefault(log)

	if *showVersion {
		log.Infof("lnbridged %s (commit: %s)", version, commit)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*dataDir)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// CLI flags take precedence over the config file
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", "error", err, "path", config.ConfigPath(*dataDir))
	}

	// Update logging with config level
	log = logging.New(&logging.Config{Level: cfg.Logging.Level})
	logging.SetDefault(log)

	log.Info("Config loaded", "path", config.ConfigPath(*dataDir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	store, err := storage.New(&storage.Config{DataDir: cfg.Storage.DataDir})
	if err != nil {
		log.Fatal("Failed to initialize storage", "error", err)
	}
	defer store.Close()

	serverID, err := store.GetSetting("server_id")
	if err != nil {
		log.Fatal("Failed to read server id", "error", err)
	}
	if serverID == "" {
		serverID = uuid.New().String()
		if err := store.SetSetting("server_id", serverID); err != nil {
			log.Fatal("Failed to persist server id", "error", err)
		}
	}
	log.Info("Storage initialized", "dir", cfg.Storage.DataDir, "server", serverID)

	// Initialize the contract client
	key, err := htlc.ParsePrivateKey(cfg.Chain.PrivateKey)
	if err != nil {
		log.Fatal("Invalid operator key", "error", err)
	}
	chain, err := htlc.NewClient(cfg.Chain.RPCURL, common.HexToAddress(cfg.Chain.ContractAddress), key, cfg.Chain.GasPriceWei)
	if err != nil {
		log.Fatal("Failed to connect to chain", "error", err)
	}
	defer chain.Close()
	if cfg.Chain.ChainID != 0 && chain.ChainID().Uint64() != cfg.Chain.ChainID {
		log.Fatal("Chain id mismatch", "want", cfg.Chain.ChainID, "got", chain.ChainID())
	}
	log.Info("Contract client initialized",
		"contract", cfg.Chain.ContractAddress,
		"operator", htlc.AddressFromPrivateKey(key),
		"chain_id", chain.ChainID(),
	)

	// Select the Lightning client. No macaroon means mock mode: the full
	// flow runs, but no satoshis move.
	ln, mock := newLightningClient(ctx, cfg, log)
	defer ln.Close()

	coordinator := bridge.NewCoordinator(&bridge.Config{
		Lightning: ln,
		Chain:     chain,
		Store:     store,
		Policy: bridge.Policy{
			MinSats:           cfg.Policy.MinSats,
			MaxSats:           cfg.Policy.MaxSats,
			MinExpiryBuffer:   cfg.Policy.MinExpiryBuffer(),
			MaxRoutingFeeSats: cfg.Policy.MaxRoutingFeeSats,
			SetupFeeSats:      cfg.Policy.SetupFeeSats,
			InvoiceExpiry:     cfg.Policy.InvoiceExpiry(),
			HoldWindow:        cfg.Policy.HoldWindow(),
			ContractPoll:      cfg.Recovery.ContractPoll(),
		},
		Log: log.Component("bridge"),
	})
	log.Info("Coordinator initialized",
		"min_sats", cfg.Policy.MinSats,
		"max_sats", cfg.Policy.MaxSats,
		"hold_window", cfg.Policy.HoldWindow(),
	)

	// Re-arm watches for swaps a previous run left open: a funded escrow
	// keeps polling for the client's claim, uncommitted swaps are closed.
	if err := coordinator.ResumeOpenSwaps(ctx); err != nil {
		log.Warn("Failed to resume open swaps", "error", err)
	}

	// Recovery picks up where crashed or failed withdrawals left off.
	recovery := bridge.NewRecoveryWorker(chain, store,
		log.Component("recovery"), cfg.Recovery.SweepInterval(), cfg.Recovery.AlertAfter())
	recovery.Start(ctx)
	defer recovery.Stop()

	go watchContracts(ctx, chain, log.Component("chain"))

	server := rpc.NewServer(coordinator, mock)
	if err := server.Start(cfg.Server.ListenAddr); err != nil {
		log.Fatal("Failed to start client server", "error", err)
	}
	defer server.Stop()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	log.Info("Shutting down...")
	cancel()
}

func newLightningClient(ctx context.Context, cfg *config.Config, log *logging.Logger) (lightning.Client, bool) {
	if cfg.Lightning.MacaroonPath == "" {
		log.Warn("No LND macaroon configured, running with a mock Lightning client")
		return lightning.NewMockClient(), true
	}

	lnd, err := lightning.NewLNDClient(lightning.LNDConfig{
		Host:         cfg.Lightning.Host,
		TLSCertPath:  cfg.Lightning.TLSCertPath,
		MacaroonPath: cfg.Lightning.MacaroonPath,
	}, log.Component("lnd"))
	if err != nil {
		log.Fatal("Failed to connect to LND", "error", err)
	}

	pubkey, err := lnd.NodePubkey(ctx)
	if err != nil {
		log.Fatal("Failed to reach LND node", "host", cfg.Lightning.Host, "error", err)
	}
	log.Info("Connected to LND", "host", cfg.Lightning.Host, "pubkey", pubkey)
	return lnd, false
}

// watchContracts logs escrow creations as they land on-chain. Visibility
// only; the swap flows read contract state directly.
func watchContracts(ctx context.Context, chain *htlc.Client, log *logging.Logger) {
	events, err := chain.WatchNewContracts(ctx, nil)
	if err != nil {
		log.Warn("Contract event watch unavailable", "error", err)
		return
	}
	for ev := range events {
		log.Info("New contract observed",
			"contract", helpers.Hash32ToHex(ev.ContractID),
			"sender", ev.Sender,
			"sats", helpers.WeiToSats(ev.Amount),
		)
	}
}
