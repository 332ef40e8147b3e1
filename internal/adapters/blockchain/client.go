package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// Backend is the subset of the JSON-RPC client the adapters need.
// It satisfies bind.DeployBackend so receipts can be awaited with bind.WaitMined.
type Backend interface {
	ethereum.ContractCaller
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

var _ Backend = (*ethclient.Client)(nil)

// DialFunc opens a backend for an RPC url
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// ClientProvider dials one client per configured network and reuses it
type ClientProvider struct {
	networks map[uint64]*config.Network
	dial     DialFunc

	mu      sync.Mutex
	clients map[uint64]Backend
}

// NewClientProvider creates a provider over the configured RPC endpoints
func NewClientProvider(cfg *config.RuntimeConfig) *ClientProvider {
	return &ClientProvider{
		networks: cfg.Networks,
		dial:     dialEthClient,
		clients:  make(map[uint64]Backend),
	}
}

func dialEthClient(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Backend returns the client for chainID, dialing it on first use
func (p *ClientProvider) Backend(ctx context.Context, chainID uint64) (Backend, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[chainID]; ok {
		return client, nil
	}

	network, ok := p.networks[chainID]
	if !ok || network.RPCURL == "" {
		return nil, fmt.Errorf("%w: chain %d has no rpc endpoint", domain.ErrNetworkNotConfigured, chainID)
	}

	client, err := p.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC for chain %d: %w", chainID, err)
	}
	p.clients[chainID] = client
	return client, nil
}

// Close releases every dialed client
func (p *ClientProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, client := range p.clients {
		if closer, ok := client.(interface{ Close() }); ok {
			closer.Close()
		}
		delete(p.clients, id)
	}
}

// call runs a read-only eth_call against the latest block
func call(ctx context.Context, backend Backend, to common.Address, data []byte) ([]byte, error) {
	return backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}
