// Package main provides the lnrelayd daemon - a stateless withdrawal relay.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lnevm/bridge/internal/config"
	"github.com/lnevm/bridge/internal/contracts/htlc"
	"github.com/lnevm/bridge/internal/relay"
	"github.com/lnevm/bridge/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	var (
		dataDir     = flag.String("data-dir", "~/.lnbridge", "Data directory")
		listenAddr  = flag.String("listen", "", "HTTP listen address, overrides config")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	log := logging.New(&logging.Config{Level: "info"})
	logging.SetDefault(log)

	if *showVersion {
		log.Infof("lnrelayd %s (commit: %s)", version, commit)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*dataDir)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if *listenAddr != "" {
		cfg.Server.RelayAddr = *listenAddr
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", "error", err, "path", config.ConfigPath(*dataDir))
	}

	log = logging.New(&logging.Config{Level: cfg.Logging.Level})
	logging.SetDefault(log)

	key, err := htlc.ParsePrivateKey(cfg.Chain.PrivateKey)
	if err != nil {
		log.Fatal("Invalid relay key", "error", err)
	}
	chain, err := htlc.NewClient(cfg.Chain.RPCURL, common.HexToAddress(cfg.Chain.ContractAddress), key, cfg.Chain.GasPriceWei)
	if err != nil {
		log.Fatal("Failed to connect to chain", "error", err)
	}
	defer chain.Close()
	log.Info("Contract client initialized",
		"contract", cfg.Chain.ContractAddress,
		"relayer", htlc.AddressFromPrivateKey(key),
	)

	server := relay.NewServer(chain)
	if err := server.Start(cfg.Server.RelayAddr); err != nil {
		log.Fatal("Failed to start relay server", "error", err)
	}
	defer server.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	log.Info("Shutting down...")
}
