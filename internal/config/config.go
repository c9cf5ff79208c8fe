// Package config provides centralized configuration for the bridge daemons.
// All operator-tunable parameters (policy bounds, timeouts, endpoints, fees)
// are defined here; nothing below this package hardcodes them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the coordinator and relay daemons.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Chain     ChainConfig     `yaml:"chain"`
	Lightning LightningConfig `yaml:"lightning"`
	Policy    PolicyConfig    `yaml:"policy"`
	Recovery  RecoveryConfig  `yaml:"recovery"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds listen addresses.
type ServerConfig struct {
	// ListenAddr is the coordinator's WebSocket listen address.
	ListenAddr string `yaml:"listen_addr"`

	// RelayAddr is the relay daemon's HTTP listen address.
	RelayAddr string `yaml:"relay_addr"`
}

// ChainConfig holds settlement-ledger access parameters.
type ChainConfig struct {
	RPCURL          string `yaml:"rpc_url"`
	ChainID         uint64 `yaml:"chain_id"`
	ContractAddress string `yaml:"contract_address"`

	// PrivateKey is the operator's hex-encoded signing key. Prefer
	// setting it via the LNBRIDGE_PRIVATE_KEY environment variable;
	// the env var wins over the file value.
	PrivateKey string `yaml:"private_key,omitempty"`

	// GasPriceWei pins the gas price for contract transactions.
	// 0 means let the node suggest one.
	GasPriceWei int64 `yaml:"gas_price_wei"`
}

// LightningConfig holds LND connection parameters. An empty MacaroonPath
// puts the coordinator in mock mode: no Lightning node is contacted and
// payments are simulated.
type LightningConfig struct {
	Host         string `yaml:"host"`
	TLSCertPath  string `yaml:"tls_cert_path"`
	MacaroonPath string `yaml:"macaroon_path"`
}

// PolicyConfig bounds what swaps the operator accepts. Durations are in
// seconds.
type PolicyConfig struct {
	// MinSats and MaxSats bound the invoice amount.
	MinSats int64 `yaml:"min_sats"`
	MaxSats int64 `yaml:"max_sats"`

	// MinExpiryBufferSecs is the minimum remaining life an on-chain
	// timelock must have before the operator commits the Lightning leg.
	MinExpiryBufferSecs int64 `yaml:"min_expiry_buffer_secs"`

	// MaxRoutingFeeSats caps the fee paid to route an outbound payment.
	MaxRoutingFeeSats int64 `yaml:"max_routing_fee_sats"`

	// SetupFeeSats is the receive-side base fee invoice amount.
	SetupFeeSats int64 `yaml:"setup_fee_sats"`

	// InvoiceExpirySecs is how long generated invoices stay payable.
	InvoiceExpirySecs int64 `yaml:"invoice_expiry_secs"`

	// HoldWindowSecs is the receive-side hold-invoice lifetime and the
	// matching on-chain timelock horizon.
	HoldWindowSecs int64 `yaml:"hold_window_secs"`
}

// RecoveryConfig tunes the background loops.
type RecoveryConfig struct {
	// SweepIntervalSecs is how often cached failed withdrawals are retried.
	SweepIntervalSecs int64 `yaml:"sweep_interval_secs"`

	// ContractPollSecs is how often an open receive swap polls its contract.
	ContractPollSecs int64 `yaml:"contract_poll_secs"`

	// AlertAfterSecs marks a cached withdrawal as a standing liability
	// worth shouting about.
	AlertAfterSecs int64 `yaml:"alert_after_secs"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a config with sane defaults. Policy defaults match
// the public bridge deployment: tiny amounts, short windows.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:3003",
			RelayAddr:  "127.0.0.1:3004",
		},
		Chain: ChainConfig{
			GasPriceWei: 1_000_000, // 0.001 gwei
		},
		Policy: PolicyConfig{
			MinSats:             2,
			MaxSats:             42,
			MinExpiryBufferSecs: 180,
			MaxRoutingFeeSats:   100,
			SetupFeeSats:        10,
			InvoiceExpirySecs:   180,
			HoldWindowSecs:      600,
		},
		Recovery: RecoveryConfig{
			SweepIntervalSecs: 30,
			ContractPollSecs:  5,
			AlertAfterSecs:    3600,
		},
		Storage: StorageConfig{
			DataDir: "~/.lnbridge",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigPath returns the config file path for a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// LoadConfig loads config.yaml from the data directory, creating it with
// defaults if it does not exist. The LNBRIDGE_PRIVATE_KEY environment
// variable overrides the chain private key in either case.
func LoadConfig(dataDir string) (*Config, error) {
	path := ConfigPath(dataDir)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.Storage.DataDir = dataDir
		if err := SaveConfig(cfg, dataDir); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		applyEnv(cfg)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// SaveConfig writes the config to the data directory.
func SaveConfig(cfg *Config, dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(ConfigPath(dataDir), data, 0600)
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("LNBRIDGE_PRIVATE_KEY"); key != "" {
		cfg.Chain.PrivateKey = key
	}
}

// Validate checks for required fields.
func (c *Config) Validate() error {
	if c.Chain.RPCURL == "" {
		return fmt.Errorf("chain.rpc_url is required")
	}
	if c.Chain.ContractAddress == "" {
		return fmt.Errorf("chain.contract_address is required")
	}
	if c.Chain.PrivateKey == "" {
		return fmt.Errorf("chain private key is required (set LNBRIDGE_PRIVATE_KEY)")
	}
	if c.Policy.MinSats <= 0 || c.Policy.MaxSats < c.Policy.MinSats {
		return fmt.Errorf("invalid policy sat bounds [%d, %d]", c.Policy.MinSats, c.Policy.MaxSats)
	}
	return nil
}

// MinExpiryBuffer returns the policy buffer as a duration.
func (p PolicyConfig) MinExpiryBuffer() time.Duration {
	return time.Duration(p.MinExpiryBufferSecs) * time.Second
}

// InvoiceExpiry returns the invoice lifetime as a duration.
func (p PolicyConfig) InvoiceExpiry() time.Duration {
	return time.Duration(p.InvoiceExpirySecs) * time.Second
}

// HoldWindow returns the hold-invoice lifetime as a duration.
func (p PolicyConfig) HoldWindow() time.Duration {
	return time.Duration(p.HoldWindowSecs) * time.Second
}

// SweepInterval returns the recovery sweep interval as a duration.
func (r RecoveryConfig) SweepInterval() time.Duration {
	return time.Duration(r.SweepIntervalSecs) * time.Second
}

// ContractPoll returns the contract poll interval as a duration.
func (r RecoveryConfig) ContractPoll() time.Duration {
	return time.Duration(r.ContractPollSecs) * time.Second
}

// AlertAfter returns the cached-payment alert horizon as a duration.
func (r RecoveryConfig) AlertAfter() time.Duration {
	return time.Duration(r.AlertAfterSecs) * time.Second
}
