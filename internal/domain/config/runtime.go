package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and adapters and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	ConfigFile  string // empty when no hookroute.toml was found

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Signing key for the source chain, hex encoded. Empty for read-only commands.
	PrivateKey string

	API      APIConfig
	Networks map[uint64]*Network
	Status   StatusPolicy
	Swap     SwapConfig
	Hook     HookMetadata
	Route    RouteDefaults

	// ExplorerURL is the cross-chain explorer base, transaction hashes are appended to /gmp/
	ExplorerURL string
}

// APIConfig configures the route and status service
type APIConfig struct {
	BaseURL      string
	IntegratorID string
	Timeout      time.Duration
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// StatusPolicy controls the status reconciliation loop
type StatusPolicy struct {
	// PollInterval is the wait between queries once the transaction is indexed
	PollInterval time.Duration
	// NotFoundInterval is the wait after the service reports the transaction unknown
	NotFoundInterval time.Duration
	// NotFoundLimit is the number of not-found answers after which the loop gives up
	NotFoundLimit int
	// MaxPolls caps the number of non-terminal answers. Zero means unbounded.
	MaxPolls int
}

// DefaultStatusPolicy returns the polling cadence the status service asks integrators to use
func DefaultStatusPolicy() StatusPolicy {
	return StatusPolicy{
		PollInterval:     5 * time.Second,
		NotFoundInterval: 20 * time.Second,
		NotFoundLimit:    15,
		MaxPolls:         0,
	}
}

// SwapConfig configures the exact-output swap that funds the relay fee
type SwapConfig struct {
	// PoolFee is the Uniswap v3 fee tier in hundredths of a bip
	PoolFee uint32
	// Deadline is added to the current time to produce the swap deadline
	Deadline time.Duration
}

// DefaultSwapConfig returns the low fee tier with a one day deadline
func DefaultSwapConfig() SwapConfig {
	return SwapConfig{
		PoolFee:  500,
		Deadline: 24 * time.Hour,
	}
}

// HookMetadata is attached to every composed hook plan
type HookMetadata struct {
	Provider    string
	Description string
	LogoURI     string
}

// RouteDefaults are applied to route requests built from the command line
type RouteDefaults struct {
	Slippage                float64
	EnableExpress           bool
	ReceiveGasOnDestination bool
}
