package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	Storage StorageConfig `yaml:"storage"`
	State   StateConfig   `yaml:"state"`
	Log     LogConfig     `yaml:"log"`
}

type LedgerConfig struct {
	// ContractAddress is the deployed crowdfunding contract.
	ContractAddress string `yaml:"contract_address"`
	// Endpoint is the network RPC endpoint used for the read-only
	// fallback connection.
	Endpoint string `yaml:"endpoint"`
	// PollInterval controls how often ledger events are polled, e.g. "5s".
	PollInterval string `yaml:"poll_interval"`
}

type StorageConfig struct {
	// API is the storage node RPC endpoint.
	API string `yaml:"api"`
	// Gateway is the base URL used to build fetchable content paths.
	Gateway string `yaml:"gateway"`
}

type StateConfig struct {
	// Path holds the persisted session state (the last-connected account).
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Ledger: LedgerConfig{
			Endpoint:     "http://127.0.0.1:8545",
			PollInterval: "5s",
		},
		Storage: StorageConfig{
			API:     "http://127.0.0.1:5001",
			Gateway: "http://127.0.0.1:8080/ipfs",
		},
		State: StateConfig{
			Path: "fundconn.state.json",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("FUNDCONN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if addr := os.Getenv("FUNDCONN_CONTRACT_ADDRESS"); addr != "" {
		cfg.Ledger.ContractAddress = addr
	}
	if endpoint := os.Getenv("FUNDCONN_NETWORK_RPC"); endpoint != "" {
		cfg.Ledger.Endpoint = endpoint
	}
	if interval := os.Getenv("FUNDCONN_POLL_INTERVAL"); interval != "" {
		cfg.Ledger.PollInterval = interval
	}
	if api := os.Getenv("FUNDCONN_STORAGE_API"); api != "" {
		cfg.Storage.API = api
	}
	if gateway := os.Getenv("FUNDCONN_STORAGE_GATEWAY"); gateway != "" {
		cfg.Storage.Gateway = gateway
	}
	if statePath := os.Getenv("FUNDCONN_STATE_PATH"); statePath != "" {
		cfg.State.Path = statePath
	}
	if level := os.Getenv("FUNDCONN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Ledger.ContractAddress != "" && !common.IsHexAddress(cfg.Ledger.ContractAddress) {
		return Config{}, fmt.Errorf("invalid contract address %q", cfg.Ledger.ContractAddress)
	}
	if _, err := cfg.EventPollInterval(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// EventPollInterval parses the configured poll interval.
func (c Config) EventPollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Ledger.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll interval %q: %w", c.Ledger.PollInterval, err)
	}
	return d, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
