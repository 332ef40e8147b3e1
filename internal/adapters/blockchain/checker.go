package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// CheckerAdapter reads the chain id an RPC endpoint serves
type CheckerAdapter struct {
	timeout time.Duration
}

// NewCheckerAdapter creates a new chain checker
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{timeout: 5 * time.Second}
}

// ChainID dials rpcURL and returns its chain id
func (c *CheckerAdapter) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainChecker = (*CheckerAdapter)(nil)
