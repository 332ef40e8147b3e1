package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// Slippage bound applied to quoted swap inputs, as a fraction
const (
	maxInNumerator   = 11
	maxInDenominator = 10
)

// MaxAmountIn bounds a quoted swap input at floor(quoted * 11 / 10)
func MaxAmountIn(quoted *big.Int) (*big.Int, error) {
	if quoted == nil || quoted.Sign() < 0 {
		return nil, fmt.Errorf("%w: quoted input %v", domain.ErrInvalidAmount, quoted)
	}

	q, overflow := uint256.FromBig(quoted)
	if overflow {
		return nil, fmt.Errorf("%w: quoted input %s exceeds uint256", domain.ErrInvalidAmount, quoted)
	}

	bounded, overflow := new(uint256.Int).MulOverflow(q, uint256.NewInt(maxInNumerator))
	if overflow {
		return nil, fmt.Errorf("%w: slippage bound of %s overflows uint256", domain.ErrInvalidAmount, quoted)
	}

	return bounded.Div(bounded, uint256.NewInt(maxInDenominator)).ToBig(), nil
}

// SwapParams describes an exact-output swap on the destination network
type SwapParams struct {
	TokenIn   common.Address
	TokenOut  common.Address
	AmountOut *big.Int
	Recipient common.Address
	// Fee overrides the configured pool fee tier when non-zero
	Fee uint32
}

// BuildSwapCalldata quotes an exact-output swap and encodes the router call
type BuildSwapCalldata struct {
	quoter  SwapQuoter
	encoder CallEncoder
	clock   Clock
	swap    config.SwapConfig
}

// NewBuildSwapCalldata creates a new swap calldata builder
func NewBuildSwapCalldata(quoter SwapQuoter, encoder CallEncoder, clock Clock, cfg *config.RuntimeConfig) *BuildSwapCalldata {
	swap := cfg.Swap
	defaults := config.DefaultSwapConfig()
	if swap.PoolFee == 0 {
		swap.PoolFee = defaults.PoolFee
	}
	if swap.Deadline <= 0 {
		swap.Deadline = defaults.Deadline
	}

	return &BuildSwapCalldata{
		quoter:  quoter,
		encoder: encoder,
		clock:   clock,
		swap:    swap,
	}
}

// Run resolves the pool, quotes the input and encodes exactOutputSingle
func (uc *BuildSwapCalldata) Run(ctx context.Context, params SwapParams) (*domain.SwapCalldata, error) {
	if params.AmountOut == nil || params.AmountOut.Sign() <= 0 {
		return nil, fmt.Errorf("%w: swap output must be positive", domain.ErrInvalidAmount)
	}

	fee := params.Fee
	if fee == 0 {
		fee = uc.swap.PoolFee
	}

	pool, err := uc.quoter.GetPool(ctx, params.TokenIn, params.TokenOut, fee)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve swap pool: %w", err)
	}

	quoted, err := uc.quoter.QuoteExactOutputSingle(ctx, params.TokenIn, params.TokenOut, pool.Fee, params.AmountOut)
	if err != nil {
		return nil, fmt.Errorf("failed to quote swap: %w", err)
	}

	maxIn, err := MaxAmountIn(quoted)
	if err != nil {
		return nil, err
	}

	deadline := big.NewInt(uc.clock.Now().Add(uc.swap.Deadline).Unix())

	data, err := uc.encoder.ExactOutputSingle(domain.ExactOutputSingleParams{
		TokenIn:           params.TokenIn,
		TokenOut:          params.TokenOut,
		Fee:               pool.Fee,
		Recipient:         params.Recipient,
		Deadline:          deadline,
		AmountOut:         params.AmountOut,
		AmountInMaximum:   maxIn,
		SqrtPriceLimitX96: new(big.Int),
	})
	if err != nil {
		return nil, err
	}

	return &domain.SwapCalldata{
		CallData:        data,
		Pool:            *pool,
		AmountOut:       params.AmountOut,
		QuotedAmountIn:  quoted,
		AmountInMaximum: maxIn,
		Deadline:        deadline,
	}, nil
}
