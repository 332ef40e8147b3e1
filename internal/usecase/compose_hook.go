package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// Advisory gas estimates handed to the executor per step
const (
	sameNetworkStepGas uint64 = 70_000
	bridgeApproveGas   uint64 = 50_000
	bridgeSwapGas      uint64 = 200_000
	bridgeUnwrapGas    uint64 = 150_000
	bridgeDepositGas   uint64 = 50_000
	lendingApproveGas  uint64 = 200_000
	lendingSupplyGas   uint64 = 500_000
)

// Argument slots the executor overwrites with its measured balance
const (
	tokenAmountSlot  = 1
	unwrapAmountSlot = 0
)

const lendingReferralCode uint16 = 0

// maxUint256 is the unlimited approval amount
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ComposeParams selects the hook plan for a deposit. A nil DestinationEID
// deposits on the home network, otherwise the funds are relayed onward.
type ComposeParams struct {
	DepositAsset   domain.Asset
	Receiver       common.Address
	DestinationEID *uint32
}

// LendingParams selects a lending-supply hook plan
type LendingParams struct {
	Asset    domain.Asset
	Receiver common.Address
	// FundAmount pre-funds the executor when set
	FundAmount *big.Int
}

// ComposeHook builds the destination call chain the executor runs after the route lands
type ComposeHook struct {
	book    *domain.AddressBook
	fees    *QuoteRelayFee
	swaps   *BuildSwapCalldata
	encoder CallEncoder
	meta    config.HookMetadata
	log     *slog.Logger
}

// NewComposeHook creates a new hook composer
func NewComposeHook(
	book *domain.AddressBook,
	fees *QuoteRelayFee,
	swaps *BuildSwapCalldata,
	encoder CallEncoder,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *ComposeHook {
	return &ComposeHook{
		book:    book,
		fees:    fees,
		swaps:   swaps,
		encoder: encoder,
		meta:    cfg.Hook,
		log:     log.With("component", "ComposeHook"),
	}
}

// Run composes the plan for params. Inputs are checked before any network call.
func (uc *ComposeHook) Run(ctx context.Context, params ComposeParams) (*domain.HookPlan, error) {
	if !uc.book.IsSupported(params.DepositAsset) {
		return nil, &domain.UnsupportedAssetError{Asset: params.DepositAsset, Supported: uc.book.DepositAssets()}
	}
	if params.Receiver == (common.Address{}) {
		return nil, fmt.Errorf("%w: receiver must be set", domain.ErrInvalidAddress)
	}

	var (
		plan *domain.HookPlan
		err  error
	)
	switch {
	case params.DestinationEID == nil:
		plan, err = uc.sameNetworkPlan(params.DepositAsset, params.Receiver)
	case *params.DestinationEID == uc.book.EID:
		return nil, &domain.PlanConstructionError{
			Step:   -1,
			Reason: fmt.Sprintf("destination eid %d is the home network, omit it to deposit locally", *params.DestinationEID),
		}
	default:
		plan, err = uc.onwardBridge(ctx, params.DepositAsset, params.Receiver, *params.DestinationEID)
	}
	if err != nil {
		return nil, err
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	uc.log.Debug("hook plan composed", "kind", plan.Kind, "calls", len(plan.Calls), "gas", plan.TotalEstimatedGas())
	return plan, nil
}

// RunLending composes an approve + supply plan into the lending pool
func (uc *ComposeHook) RunLending(ctx context.Context, params LendingParams) (*domain.HookPlan, error) {
	if params.Asset.ChainID != uc.book.ChainID || params.Asset.IsNative() {
		return nil, &domain.UnsupportedAssetError{Asset: params.Asset, Supported: uc.book.DepositAssets()}
	}
	if params.Receiver == (common.Address{}) {
		return nil, fmt.Errorf("%w: receiver must be set", domain.ErrInvalidAddress)
	}
	if params.FundAmount != nil && params.FundAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: fund amount must be positive", domain.ErrInvalidAmount)
	}

	plan, err := uc.lendingSupplyPlan(params)
	if err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *ComposeHook) onwardBridge(ctx context.Context, asset domain.Asset, receiver common.Address, dstEID uint32) (*domain.HookPlan, error) {
	fee, err := uc.fees.Run(ctx, QuoteFeeParams{Asset: asset, Receiver: receiver, DstEID: dstEID})
	if err != nil {
		return nil, err
	}

	swap, err := uc.swaps.Run(ctx, SwapParams{
		TokenIn:   asset.Address,
		TokenOut:  uc.book.WrappedNative.Address,
		AmountOut: fee.NativeFee,
		Recipient: uc.book.Contracts.Multicall,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("relay fee funded by swap", "nativeFee", fee.NativeFee, "maxIn", swap.AmountInMaximum, "pool", swap.Pool.Address.Hex())
	return uc.onwardBridgePlan(asset, receiver, dstEID, fee.NativeFee, swap)
}

// sameNetworkPlan approves the gateway and deposits the full balance for receiver
func (uc *ComposeHook) sameNetworkPlan(asset domain.Asset, receiver common.Address) (*domain.HookPlan, error) {
	contracts := uc.book.Contracts

	approve, err := uc.encoder.Approve(contracts.Gateway, maxUint256)
	if err != nil {
		return nil, err
	}
	deposit, err := uc.encoder.GatewayDeposit(asset.Address, new(big.Int), receiver, uc.book.EID)
	if err != nil {
		return nil, err
	}

	plan := uc.newPlan(domain.PlanKindSameNetwork, asset)
	plan.Calls = []domain.ChainCall{
		uc.fullBalanceCall("approve gateway", asset.Address, approve, sameNetworkStepGas, asset, tokenAmountSlot),
		uc.fullBalanceCall("deposit", contracts.Gateway, deposit, sameNetworkStepGas, asset, tokenAmountSlot),
	}
	return plan, nil
}

// onwardBridgePlan swaps part of the deposit for the relay fee, unwraps it and
// deposits the rest with the fee attached towards dstEID
func (uc *ComposeHook) onwardBridgePlan(asset domain.Asset, receiver common.Address, dstEID uint32, nativeFee *big.Int, swap *domain.SwapCalldata) (*domain.HookPlan, error) {
	contracts := uc.book.Contracts
	weth := uc.book.WrappedNative
	native := domain.NativeAsset(uc.book.ChainID)

	approveRouter, err := uc.encoder.Approve(contracts.SwapRouter, maxUint256)
	if err != nil {
		return nil, err
	}
	unwrap, err := uc.encoder.Withdraw(new(big.Int))
	if err != nil {
		return nil, err
	}
	approveGateway, err := uc.encoder.Approve(contracts.Gateway, maxUint256)
	if err != nil {
		return nil, err
	}
	deposit, err := uc.encoder.GatewayDeposit(asset.Address, new(big.Int), receiver, dstEID)
	if err != nil {
		return nil, err
	}

	swapCall := domain.ChainCall{
		Label:        "swap for relay fee",
		ChainID:      uc.book.ChainID,
		Target:       contracts.SwapRouter,
		CallData:     swap.CallData,
		Value:        new(big.Int),
		Kind:         domain.CallKindStatic,
		EstimatedGas: bridgeSwapGas,
		Produces:     []domain.Asset{weth},
	}

	unwrapCall := uc.fullBalanceCall("unwrap", weth.Address, unwrap, bridgeUnwrapGas, weth, unwrapAmountSlot)
	unwrapCall.Produces = []domain.Asset{native}

	depositCall := uc.fullBalanceCall("deposit and relay", contracts.Gateway, deposit, bridgeDepositGas, asset, tokenAmountSlot)
	depositCall.Value = new(big.Int).Set(nativeFee)

	plan := uc.newPlan(domain.PlanKindOnwardBridge, asset)
	plan.NativeFee = new(big.Int).Set(nativeFee)
	plan.Calls = []domain.ChainCall{
		uc.fullBalanceCall("approve swap router", asset.Address, approveRouter, bridgeApproveGas, asset, tokenAmountSlot),
		swapCall,
		unwrapCall,
		uc.fullBalanceCall("approve gateway", asset.Address, approveGateway, bridgeApproveGas, asset, tokenAmountSlot),
		depositCall,
	}
	return plan, nil
}

// lendingSupplyPlan approves the lending pool and supplies the full balance
func (uc *ComposeHook) lendingSupplyPlan(params LendingParams) (*domain.HookPlan, error) {
	pool := uc.book.Contracts.LendingPool
	asset := params.Asset

	approve, err := uc.encoder.Approve(pool, maxUint256)
	if err != nil {
		return nil, err
	}
	supply, err := uc.encoder.Supply(asset.Address, new(big.Int), params.Receiver, lendingReferralCode)
	if err != nil {
		return nil, err
	}

	plan := uc.newPlan(domain.PlanKindLendingSupply, asset)
	if params.FundAmount != nil {
		funding := asset
		plan.FundingAsset = &funding
		plan.FundingAmount = new(big.Int).Set(params.FundAmount)
	}
	plan.Calls = []domain.ChainCall{
		uc.fullBalanceCall("approve lending pool", asset.Address, approve, lendingApproveGas, asset, tokenAmountSlot),
		uc.fullBalanceCall("supply", pool, supply, lendingSupplyGas, asset, tokenAmountSlot),
	}
	return plan, nil
}

func (uc *ComposeHook) newPlan(kind domain.PlanKind, input domain.Asset) *domain.HookPlan {
	description := uc.meta.Description
	if description == "" {
		description = defaultDescriptions[kind]
	}
	return &domain.HookPlan{
		Kind:        kind,
		ChainID:     uc.book.ChainID,
		Description: description,
		Provider:    uc.meta.Provider,
		LogoURI:     uc.meta.LogoURI,
		InputAsset:  input,
	}
}

func (uc *ComposeHook) fullBalanceCall(label string, target common.Address, data []byte, gas uint64, asset domain.Asset, slot int) domain.ChainCall {
	return domain.ChainCall{
		Label:        label,
		ChainID:      uc.book.ChainID,
		Target:       target,
		CallData:     data,
		Value:        new(big.Int),
		Kind:         domain.CallKindFullBalance,
		EstimatedGas: gas,
		Substitution: &domain.Substitution{Asset: asset, ArgumentSlot: slot},
	}
}

var defaultDescriptions = map[domain.PlanKind]string{
	domain.PlanKindSameNetwork:   "Deposit through gateway",
	domain.PlanKindOnwardBridge:  "Swap for relay fee and deposit through gateway",
	domain.PlanKindLendingSupply: "Supply to lending pool",
}
