package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// ConfigFileName is the project configuration file looked up from the working directory
const ConfigFileName = "hookroute.toml"

// ProjectTOML represents the raw hookroute.toml structure
type ProjectTOML struct {
	ExplorerURL  string            `toml:"explorer_url"`
	API          apiTOML           `toml:"api"`
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
	ChainIDs     map[string]uint64 `toml:"chain_ids"`
	Status       statusTOML        `toml:"status"`
	Swap         swapTOML          `toml:"swap"`
	Hook         hookTOML          `toml:"hook"`
	Route        routeTOML         `toml:"route"`
}

type apiTOML struct {
	BaseURL      string `toml:"base_url"`
	IntegratorID string `toml:"integrator_id"`
	Timeout      string `toml:"timeout"`
}

type statusTOML struct {
	PollInterval     string `toml:"poll_interval"`
	NotFoundInterval string `toml:"not_found_interval"`
	NotFoundLimit    *int   `toml:"not_found_limit"`
	MaxPolls         *int   `toml:"max_polls"`
}

type swapTOML struct {
	PoolFee  *uint32 `toml:"pool_fee"`
	Deadline string  `toml:"deadline"`
}

type hookTOML struct {
	Provider    string `toml:"provider"`
	Description string `toml:"description"`
	LogoURI     string `toml:"logo_uri"`
}

type routeTOML struct {
	Slippage                *float64 `toml:"slippage"`
	EnableExpress           *bool    `toml:"enable_express"`
	ReceiveGasOnDestination *bool    `toml:"receive_gas_on_destination"`
}

// knownChainIDs resolves rpc_endpoints names that need no chain_ids entry
var knownChainIDs = map[string]uint64{
	"arbitrum": domain.ChainIDArbitrum,
	"base":     domain.ChainIDBase,
}

// defaultRpcEndpoints are used when hookroute.toml declares no endpoints
var defaultRpcEndpoints = map[string]string{
	"arbitrum": "https://arb-mainnet.g.alchemy.com/v2/${ALCHEMY_API_KEY}",
	"base":     "https://base-mainnet.g.alchemy.com/v2/${ALCHEMY_API_KEY}",
}

// loadEnvFiles loads .env files from the project root for variable expansion
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectConfig parses hookroute.toml into cfg. A missing file leaves the
// defaults in place and returns an empty path.
func loadProjectConfig(projectRoot string, cfg *config.RuntimeConfig) (string, error) {
	path := filepath.Join(projectRoot, ConfigFileName)

	var raw ProjectTOML
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
		}
	} else {
		path = ""
	}

	if err := applyProjectConfig(&raw, cfg); err != nil {
		return "", err
	}
	return path, nil
}

func applyProjectConfig(raw *ProjectTOML, cfg *config.RuntimeConfig) error {
	if raw.ExplorerURL != "" {
		cfg.ExplorerURL = os.ExpandEnv(raw.ExplorerURL)
	}

	// API
	if raw.API.BaseURL != "" {
		cfg.API.BaseURL = os.ExpandEnv(raw.API.BaseURL)
	}
	if raw.API.IntegratorID != "" {
		cfg.API.IntegratorID = os.ExpandEnv(raw.API.IntegratorID)
	}
	if err := parseDuration("api.timeout", raw.API.Timeout, &cfg.API.Timeout); err != nil {
		return err
	}

	// Networks
	networks, err := resolveNetworks(raw.RpcEndpoints, raw.ChainIDs)
	if err != nil {
		return err
	}
	cfg.Networks = networks

	// Status policy
	if err := parseDuration("status.poll_interval", raw.Status.PollInterval, &cfg.Status.PollInterval); err != nil {
		return err
	}
	if err := parseDuration("status.not_found_interval", raw.Status.NotFoundInterval, &cfg.Status.NotFoundInterval); err != nil {
		return err
	}
	if raw.Status.NotFoundLimit != nil {
		if *raw.Status.NotFoundLimit <= 0 {
			return fmt.Errorf("status.not_found_limit must be positive, got %d", *raw.Status.NotFoundLimit)
		}
		cfg.Status.NotFoundLimit = *raw.Status.NotFoundLimit
	}
	if raw.Status.MaxPolls != nil {
		if *raw.Status.MaxPolls < 0 {
			return fmt.Errorf("status.max_polls must not be negative, got %d", *raw.Status.MaxPolls)
		}
		cfg.Status.MaxPolls = *raw.Status.MaxPolls
	}

	// Swap
	if raw.Swap.PoolFee != nil {
		cfg.Swap.PoolFee = *raw.Swap.PoolFee
	}
	if err := parseDuration("swap.deadline", raw.Swap.Deadline, &cfg.Swap.Deadline); err != nil {
		return err
	}

	// Hook metadata
	if raw.Hook.Provider != "" {
		cfg.Hook.Provider = raw.Hook.Provider
	}
	if raw.Hook.Description != "" {
		cfg.Hook.Description = raw.Hook.Description
	}
	if raw.Hook.LogoURI != "" {
		cfg.Hook.LogoURI = os.ExpandEnv(raw.Hook.LogoURI)
	}

	// Route defaults
	if raw.Route.Slippage != nil {
		cfg.Route.Slippage = *raw.Route.Slippage
	}
	if raw.Route.EnableExpress != nil {
		cfg.Route.EnableExpress = *raw.Route.EnableExpress
	}
	if raw.Route.ReceiveGasOnDestination != nil {
		cfg.Route.ReceiveGasOnDestination = *raw.Route.ReceiveGasOnDestination
	}

	return nil
}

// resolveNetworks expands endpoint URLs and assigns chain ids. Names are
// resolved through chainIDs, then the built-in names, then as a decimal id.
func resolveNetworks(endpoints map[string]string, chainIDs map[string]uint64) (map[uint64]*config.Network, error) {
	networks := make(map[uint64]*config.Network)

	if len(endpoints) == 0 {
		if os.Getenv("ALCHEMY_API_KEY") == "" {
			return networks, nil
		}
		endpoints = defaultRpcEndpoints
	}

	for name, url := range endpoints {
		chainID, err := chainIDFor(name, chainIDs)
		if err != nil {
			return nil, err
		}
		if existing, ok := networks[chainID]; ok {
			return nil, fmt.Errorf("rpc endpoints %s and %s both resolve to chain %d", existing.Name, name, chainID)
		}
		networks[chainID] = &config.Network{
			ChainID: chainID,
			Name:    name,
			RPCURL:  os.ExpandEnv(url),
		}
	}
	return networks, nil
}

func chainIDFor(name string, chainIDs map[string]uint64) (uint64, error) {
	if id, ok := chainIDs[name]; ok {
		return id, nil
	}
	if id, ok := knownChainIDs[strings.ToLower(name)]; ok {
		return id, nil
	}
	if id, err := strconv.ParseUint(name, 10, 64); err == nil {
		return id, nil
	}
	return 0, fmt.Errorf("unknown chain id for rpc endpoint %q, add it to [chain_ids]", name)
}

func parseDuration(key, value string, dst *time.Duration) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %s", key, value)
	}
	*dst = d
	return nil
}
