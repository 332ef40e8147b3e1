package usecase

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/domain"
)

// FeeQuoter prices relaying an asset to another network through its token vault
type FeeQuoter interface {
	QuoteSend(ctx context.Context, vault common.Address, req domain.FeeQuoteRequest) (*domain.FeeQuote, error)
}

// SwapQuoter reads Uniswap v3 pools and quotes swaps on the destination network
type SwapQuoter interface {
	GetPool(ctx context.Context, tokenA, tokenB common.Address, fee uint32) (*domain.PoolInfo, error)
	QuoteExactOutputSingle(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountOut *big.Int) (*big.Int, error)
}

// CallEncoder produces calldata for the contracts hook plans call
type CallEncoder interface {
	Approve(spender common.Address, amount *big.Int) ([]byte, error)
	Withdraw(amount *big.Int) ([]byte, error)
	GatewayDeposit(token common.Address, amount *big.Int, receiver common.Address, dstEID uint32) ([]byte, error)
	ExactOutputSingle(params domain.ExactOutputSingleParams) ([]byte, error)
	Supply(asset common.Address, amount *big.Int, onBehalfOf common.Address, referralCode uint16) ([]byte, error)
}

// RouteClient asks the route service for a transaction template
type RouteClient interface {
	GetRoute(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResult, error)
}

// StatusClient queries the route status service. It returns an error wrapping
// domain.ErrTransactionNotFound while the transaction is not indexed yet.
type StatusClient interface {
	GetStatus(ctx context.Context, query domain.StatusQuery) (*domain.StatusReport, error)
}

// TokenAllowance reads and raises ERC-20 allowances of the configured signer
type TokenAllowance interface {
	Allowance(ctx context.Context, chainID uint64, token, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, chainID uint64, token, spender common.Address, amount *big.Int) (*domain.SentTransaction, error)
}

// TransactionSender signs and broadcasts transactions with the configured key
type TransactionSender interface {
	Address() (common.Address, error)
	Send(ctx context.Context, req domain.TxRequest) (*domain.SentTransaction, error)
}

// ChainChecker reads the chain id an RPC endpoint serves
type ChainChecker interface {
	ChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// Clock provides time and interruptible waits
type Clock interface {
	Now() time.Time
	// Sleep waits for d or returns ctx.Err() as soon as ctx is done
	Sleep(ctx context.Context, d time.Duration) error
}

// InteractiveSelector asks the user to pick or confirm
type InteractiveSelector interface {
	SelectAsset(ctx context.Context, assets []domain.Asset, prompt string) (domain.Asset, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Execution stages reported through ProgressSink
const (
	StageComposing = "composing"
	StageRouting   = "routing"
	StageApproving = "approving"
	StageSending   = "sending"
	StageTracking  = "tracking"
	StageCompleted = "completed"
)
