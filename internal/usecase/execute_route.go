package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// DefaultExplorerURL is the cross-chain explorer transactions are linked to
const DefaultExplorerURL = "https://axelarscan.io"

// ErrExecutionCancelled is returned when the user declines to send the route
var ErrExecutionCancelled = errors.New("execution cancelled")

// ExplorerLink returns the explorer page of a routed transaction
func ExplorerLink(base, txHash string) string {
	if base == "" {
		base = DefaultExplorerURL
	}
	return strings.TrimRight(base, "/") + "/gmp/" + txHash
}

// ExecuteParams describes a full route run. At most one of Hook and Lending is set.
type ExecuteParams struct {
	FromChain  uint64
	ToChain    uint64
	FromToken  common.Address
	ToToken    common.Address
	FromAmount *big.Int
	// ToAddress defaults to the signer
	ToAddress common.Address

	Hook    *ComposeParams
	Lending *LendingParams

	// SkipConfirm sends without asking
	SkipConfirm bool
}

// ExecuteResult collects every step of a route run
type ExecuteResult struct {
	Plan         *domain.HookPlan
	Route        *domain.RouteResult
	Approval     *ApproveResult
	Tx           *domain.SentTransaction
	ExplorerLink string
	Tracking     *TrackResult
}

// ExecuteRoute composes, routes, approves, sends and tracks one transfer
type ExecuteRoute struct {
	compose  *ComposeHook
	route    *GetRoute
	approve  *ApproveSpending
	track    *TrackStatus
	sender   TransactionSender
	selector InteractiveSelector
	progress ProgressSink
	cfg      *config.RuntimeConfig
	log      *slog.Logger
}

// NewExecuteRoute creates the end-to-end driver
func NewExecuteRoute(
	compose *ComposeHook,
	route *GetRoute,
	approve *ApproveSpending,
	track *TrackStatus,
	sender TransactionSender,
	selector InteractiveSelector,
	progress ProgressSink,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *ExecuteRoute {
	return &ExecuteRoute{
		compose:  compose,
		route:    route,
		approve:  approve,
		track:    track,
		sender:   sender,
		selector: selector,
		progress: progress,
		cfg:      cfg,
		log:      log.With("component", "ExecuteRoute"),
	}
}

// Run executes params. The result is returned alongside errors from the
// point the transaction was sent, so callers can still show its hash.
func (uc *ExecuteRoute) Run(ctx context.Context, params ExecuteParams) (*ExecuteResult, error) {
	if params.Hook != nil && params.Lending != nil {
		return nil, fmt.Errorf("a route carries at most one hook")
	}

	from, err := uc.sender.Address()
	if err != nil {
		return nil, err
	}
	toAddress := params.ToAddress
	if toAddress == (common.Address{}) {
		toAddress = from
	}

	result := &ExecuteResult{}

	if params.Hook != nil || params.Lending != nil {
		uc.stage(ctx, StageComposing, "composing hook plan")
		if params.Hook != nil {
			result.Plan, err = uc.compose.Run(ctx, *params.Hook)
		} else {
			result.Plan, err = uc.compose.RunLending(ctx, *params.Lending)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to compose hook: %w", err)
		}
	}

	uc.stage(ctx, StageRouting, "requesting route")
	result.Route, err = uc.route.Run(ctx, &domain.RouteRequest{
		FromChain:               params.FromChain,
		ToChain:                 params.ToChain,
		FromToken:               params.FromToken,
		ToToken:                 params.ToToken,
		FromAmount:              params.FromAmount,
		FromAddress:             from,
		ToAddress:               toAddress,
		Slippage:                uc.cfg.Route.Slippage,
		EnableExpress:           uc.cfg.Route.EnableExpress,
		ReceiveGasOnDestination: uc.cfg.Route.ReceiveGasOnDestination,
		PostHook:                result.Plan,
	})
	if err != nil {
		return nil, err
	}

	if !params.SkipConfirm && !uc.cfg.NonInteractive {
		uc.stop(ctx)
		ok, err := uc.selector.Confirm(ctx, fmt.Sprintf("Send route transaction to %s", result.Route.Target.Hex()))
		if err != nil {
			return result, err
		}
		if !ok {
			return result, ErrExecutionCancelled
		}
	}

	uc.stage(ctx, StageApproving, "checking allowance")
	result.Approval, err = uc.approve.Run(ctx, ApproveParams{
		ChainID: params.FromChain,
		Token:   params.FromToken,
		Spender: result.Route.Target,
		Amount:  params.FromAmount,
	})
	if err != nil {
		return result, err
	}

	uc.stage(ctx, StageSending, "sending route transaction")
	result.Tx, err = uc.sender.Send(ctx, domain.TxRequest{
		ChainID:  params.FromChain,
		To:       result.Route.Target,
		Data:     result.Route.Data,
		Value:    result.Route.Value,
		GasLimit: result.Route.GasLimit,
	})
	if result.Tx != nil {
		result.ExplorerLink = ExplorerLink(uc.cfg.ExplorerURL, result.Tx.Hash.Hex())
	}
	if err != nil {
		return result, fmt.Errorf("failed to send route transaction: %w", err)
	}
	uc.progress.Info(fmt.Sprintf("Transaction sent: %s", result.ExplorerLink))

	uc.stage(ctx, StageTracking, "waiting for status")
	result.Tracking, err = uc.track.Run(ctx, TrackParams{
		TxHash:    result.Tx.Hash.Hex(),
		RequestID: result.Route.RequestID,
		FromChain: params.FromChain,
		ToChain:   params.ToChain,
	})
	uc.stop(ctx)
	if err != nil {
		return result, err
	}

	if !result.Tracking.Status.IsSuccess() {
		return result, &domain.ExecutionRevertError{
			TxHash: result.Tx.Hash.Hex(),
			Status: result.Tracking.Status,
		}
	}
	return result, nil
}

func (uc *ExecuteRoute) stage(ctx context.Context, stage, message string) {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: message, Spinner: true})
}

func (uc *ExecuteRoute) stop(ctx context.Context) {
	uc.progress.OnProgress(ctx, ProgressEvent{Spinner: false})
}
