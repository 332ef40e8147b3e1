package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/domain"
)

// ApproveParams describes the allowance a route target needs
type ApproveParams struct {
	ChainID uint64
	Token   common.Address
	Spender common.Address
	Amount  *big.Int
}

// ApproveResult reports what the allowance guard did
type ApproveResult struct {
	Skipped bool
	Reason  string
	// Current is the allowance before any approval, nil for native tokens
	Current *big.Int
	Tx      *domain.SentTransaction
}

// ApproveSpending makes sure the route target may pull the source amount
type ApproveSpending struct {
	allowance TokenAllowance
	sender    TransactionSender
	log       *slog.Logger
}

// NewApproveSpending creates a new allowance guard
func NewApproveSpending(allowance TokenAllowance, sender TransactionSender, log *slog.Logger) *ApproveSpending {
	return &ApproveSpending{
		allowance: allowance,
		sender:    sender,
		log:       log.With("component", "ApproveSpending"),
	}
}

// Run approves exactly params.Amount when the current allowance is lower
func (uc *ApproveSpending) Run(ctx context.Context, params ApproveParams) (*ApproveResult, error) {
	if params.Token == domain.NativeAddress {
		return &ApproveResult{Skipped: true, Reason: "native token needs no allowance"}, nil
	}
	if params.Amount == nil || params.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: approval amount must be positive", domain.ErrInvalidAmount)
	}

	owner, err := uc.sender.Address()
	if err != nil {
		return nil, err
	}

	current, err := uc.allowance.Allowance(ctx, params.ChainID, params.Token, owner, params.Spender)
	if err != nil {
		return nil, err
	}

	if current.Cmp(params.Amount) >= 0 {
		uc.log.Debug("allowance sufficient", "token", params.Token.Hex(), "spender", params.Spender.Hex(), "allowance", current)
		return &ApproveResult{Skipped: true, Reason: "allowance already sufficient", Current: current}, nil
	}

	tx, err := uc.allowance.Approve(ctx, params.ChainID, params.Token, params.Spender, params.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to approve %s for %s: %w", params.Spender.Hex(), params.Token.Hex(), err)
	}

	uc.log.Info("approved spending", "token", params.Token.Hex(), "spender", params.Spender.Hex(), "amount", params.Amount, "tx", tx.Hash.Hex())
	return &ApproveResult{Current: current, Tx: tx}, nil
}
