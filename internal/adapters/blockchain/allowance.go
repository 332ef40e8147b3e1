package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/adapters/abi"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// ApproveGasLimit is the fixed gas limit of allowance approvals
const ApproveGasLimit uint64 = 200_000

// Allowance reads token.allowance(owner, spender) on chainID
func (w *Wallet) Allowance(ctx context.Context, chainID uint64, token, owner, spender common.Address) (*big.Int, error) {
	data, err := w.encoder.Allowance(owner, spender)
	if err != nil {
		return nil, err
	}

	backend, err := w.clients.Backend(ctx, chainID)
	if err != nil {
		return nil, err
	}

	out, err := call(ctx, backend, token, data)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowance of %s on %s: %w", spender.Hex(), token.Hex(), err)
	}

	return w.encoder.DecodeUint256(abi.ERC20, "allowance", out)
}

// Approve sends token.approve(spender, amount) and waits until it is mined
func (w *Wallet) Approve(ctx context.Context, chainID uint64, token, spender common.Address, amount *big.Int) (*domain.SentTransaction, error) {
	data, err := w.encoder.Approve(spender, amount)
	if err != nil {
		return nil, err
	}

	return w.Send(ctx, domain.TxRequest{
		ChainID:  chainID,
		To:       token,
		Data:     data,
		Value:    new(big.Int),
		GasLimit: ApproveGasLimit,
	})
}

// Ensure the wallet implements the interface
var _ usecase.TokenAllowance = (*Wallet)(nil)
