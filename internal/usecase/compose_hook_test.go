package usecase

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

var testReceiver = common.HexToAddress("0x728F58cd379b47185243Ce981a514C17ed0F6Fc6")

type composeFixture struct {
	book    *domain.AddressBook
	fees    *mockFeeQuoter
	swaps   *mockSwapQuoter
	encoder *stubEncoder
	clock   *fakeClock
	uc      *ComposeHook
}

func newComposeFixture() *composeFixture {
	f := &composeFixture{
		book:    domain.DefaultAddressBook(),
		fees:    &mockFeeQuoter{},
		swaps:   &mockSwapQuoter{},
		encoder: &stubEncoder{},
		clock:   newFakeClock(),
	}
	cfg := &config.RuntimeConfig{
		Swap: config.DefaultSwapConfig(),
		Hook: config.HookMetadata{Provider: "hookroute"},
	}
	f.uc = NewComposeHook(
		f.book,
		NewQuoteRelayFee(f.book, f.fees),
		NewBuildSwapCalldata(f.swaps, f.encoder, f.clock, cfg),
		f.encoder,
		cfg,
		testLogger(),
	)
	return f
}

func eid(v uint32) *uint32 { return &v }

func TestComposeHook_SameNetwork(t *testing.T) {
	f := newComposeFixture()

	plan, err := f.uc.Run(context.Background(), ComposeParams{
		DepositAsset: domain.ArbitrumUSDC,
		Receiver:     testReceiver,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanKindSameNetwork, plan.Kind)
	assert.Equal(t, "hookroute", plan.Provider)
	require.Len(t, plan.Calls, 2)

	for _, call := range plan.Calls {
		assert.Equal(t, domain.CallKindFullBalance, call.Kind)
		assert.Equal(t, uint64(70_000), call.EstimatedGas)
		require.NotNil(t, call.Substitution)
		assert.Equal(t, domain.ArbitrumUSDC, call.Substitution.Asset)
		assert.Equal(t, 1, call.Substitution.ArgumentSlot)
		assert.Equal(t, 36, call.Substitution.ByteOffset())
	}

	assert.Equal(t, domain.ArbitrumUSDC.Address, plan.Calls[0].Target)
	assert.Equal(t, f.book.Contracts.Gateway, plan.Calls[1].Target)
	assert.Equal(t, []common.Address{f.book.Contracts.Gateway}, f.encoder.approvals)
	require.Len(t, f.encoder.deposits, 1)
	assert.Equal(t, domain.EIDArbitrum, f.encoder.deposits[0].DstEID)
	assert.Equal(t, testReceiver, f.encoder.deposits[0].Receiver)

	assert.Zero(t, f.fees.calls, "same network plans need no fee quote")
	assert.Zero(t, f.swaps.calls)
}

func TestComposeHook_OnwardBridge(t *testing.T) {
	f := newComposeFixture()
	nativeFee := big.NewInt(123_456_789)
	f.fees.quoteFunc = func(_ context.Context, vault common.Address, req domain.FeeQuoteRequest) (*domain.FeeQuote, error) {
		expectedVault, _ := f.book.Vault(domain.ArbitrumUSDC)
		assert.Equal(t, expectedVault, vault)
		assert.Equal(t, domain.EIDBase, req.DstEID)
		assert.Equal(t, testReceiver, req.Receiver)
		return &domain.FeeQuote{NativeFee: nativeFee, LzTokenFee: new(big.Int)}, nil
	}
	f.swaps.quoteFunc = func(_ context.Context, in, out common.Address, fee uint32, amountOut *big.Int) (*big.Int, error) {
		assert.Equal(t, domain.ArbitrumUSDC.Address, in)
		assert.Equal(t, domain.ArbitrumWETH.Address, out)
		assert.Equal(t, uint32(500), fee)
		assert.Equal(t, nativeFee, amountOut)
		return big.NewInt(1_000_001), nil
	}

	plan, err := f.uc.Run(context.Background(), ComposeParams{
		DepositAsset:   domain.ArbitrumUSDC,
		Receiver:       testReceiver,
		DestinationEID: eid(domain.EIDBase),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanKindOnwardBridge, plan.Kind)
	assert.Equal(t, nativeFee, plan.NativeFee)
	require.Len(t, plan.Calls, 5)

	approveRouter, swap, unwrap, approveGateway, deposit := plan.Calls[0], plan.Calls[1], plan.Calls[2], plan.Calls[3], plan.Calls[4]

	assert.Equal(t, domain.CallKindFullBalance, approveRouter.Kind)
	assert.Equal(t, uint64(50_000), approveRouter.EstimatedGas)

	assert.Equal(t, domain.CallKindStatic, swap.Kind)
	assert.Equal(t, f.book.Contracts.SwapRouter, swap.Target)
	assert.Equal(t, uint64(200_000), swap.EstimatedGas)
	assert.Nil(t, swap.Substitution)

	assert.Equal(t, domain.CallKindFullBalance, unwrap.Kind)
	assert.Equal(t, domain.ArbitrumWETH.Address, unwrap.Target)
	assert.Equal(t, domain.ArbitrumWETH, unwrap.Substitution.Asset)
	assert.Equal(t, 0, unwrap.Substitution.ArgumentSlot)
	assert.Equal(t, uint64(150_000), unwrap.EstimatedGas)

	assert.Equal(t, domain.CallKindFullBalance, approveGateway.Kind)
	assert.Equal(t, uint64(50_000), approveGateway.EstimatedGas)

	assert.Equal(t, f.book.Contracts.Gateway, deposit.Target)
	assert.Equal(t, nativeFee, deposit.Value)
	assert.Equal(t, domain.ArbitrumUSDC, deposit.Substitution.Asset)
	assert.Equal(t, 1, deposit.Substitution.ArgumentSlot)

	assert.Equal(t, []common.Address{f.book.Contracts.SwapRouter, f.book.Contracts.Gateway}, f.encoder.approvals)

	require.Len(t, f.encoder.swaps, 1)
	params := f.encoder.swaps[0]
	assert.Equal(t, f.book.Contracts.Multicall, params.Recipient)
	assert.Equal(t, big.NewInt(1_100_001), params.AmountInMaximum, "floor(1000001 * 11 / 10)")
	assert.Equal(t, f.clock.Now().Add(config.DefaultSwapConfig().Deadline).Unix(), params.Deadline.Int64())

	require.Len(t, f.encoder.deposits, 1)
	assert.Equal(t, domain.EIDBase, f.encoder.deposits[0].DstEID)
}

func TestComposeHook_RejectsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		params  ComposeParams
		checkFn func(t *testing.T, err error)
	}{
		{
			name: "unsupported asset",
			params: ComposeParams{
				DepositAsset:   domain.ArbitrumWETH,
				Receiver:       testReceiver,
				DestinationEID: eid(domain.EIDBase),
			},
			checkFn: func(t *testing.T, err error) {
				var unsupported *domain.UnsupportedAssetError
				require.ErrorAs(t, err, &unsupported)
				assert.Len(t, unsupported.Supported, 2)
			},
		},
		{
			name: "asset on another chain",
			params: ComposeParams{
				DepositAsset: domain.BaseUSDC,
				Receiver:     testReceiver,
			},
			checkFn: func(t *testing.T, err error) {
				var unsupported *domain.UnsupportedAssetError
				assert.ErrorAs(t, err, &unsupported)
			},
		},
		{
			name: "destination is home network",
			params: ComposeParams{
				DepositAsset:   domain.ArbitrumUSDT,
				Receiver:       testReceiver,
				DestinationEID: eid(domain.EIDArbitrum),
			},
			checkFn: func(t *testing.T, err error) {
				var planErr *domain.PlanConstructionError
				assert.ErrorAs(t, err, &planErr)
			},
		},
		{
			name: "missing receiver",
			params: ComposeParams{
				DepositAsset:   domain.ArbitrumUSDC,
				DestinationEID: eid(domain.EIDBase),
			},
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrInvalidAddress)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newComposeFixture()
			_, err := f.uc.Run(context.Background(), tt.params)
			tt.checkFn(t, err)
			assert.Zero(t, f.fees.calls, "no fee quote expected")
			assert.Zero(t, f.swaps.calls, "no pool or quoter reads expected")
		})
	}
}

func TestComposeHook_RelayFailuresPropagate(t *testing.T) {
	t.Run("pool missing", func(t *testing.T) {
		f := newComposeFixture()
		f.swaps.poolFunc = func(context.Context, common.Address, common.Address, uint32) (*domain.PoolInfo, error) {
			return nil, domain.ErrPoolNotFound
		}
		_, err := f.uc.Run(context.Background(), ComposeParams{
			DepositAsset:   domain.ArbitrumUSDC,
			Receiver:       testReceiver,
			DestinationEID: eid(domain.EIDBase),
		})
		assert.ErrorIs(t, err, domain.ErrPoolNotFound)
	})

	t.Run("fee quote fails", func(t *testing.T) {
		f := newComposeFixture()
		f.fees.quoteFunc = func(context.Context, common.Address, domain.FeeQuoteRequest) (*domain.FeeQuote, error) {
			return nil, &domain.RemoteServiceError{Service: "token vault", Method: "quoteSend"}
		}
		_, err := f.uc.Run(context.Background(), ComposeParams{
			DepositAsset:   domain.ArbitrumUSDC,
			Receiver:       testReceiver,
			DestinationEID: eid(domain.EIDBase),
		})
		var remoteErr *domain.RemoteServiceError
		assert.ErrorAs(t, err, &remoteErr)
		assert.Zero(t, f.swaps.calls)
	})
}

func TestComposeHook_Lending(t *testing.T) {
	f := newComposeFixture()

	plan, err := f.uc.RunLending(context.Background(), LendingParams{
		Asset:      domain.ArbitrumUSDC,
		Receiver:   testReceiver,
		FundAmount: big.NewInt(300_000),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanKindLendingSupply, plan.Kind)
	require.Len(t, plan.Calls, 2)
	assert.Equal(t, uint64(200_000), plan.Calls[0].EstimatedGas)
	assert.Equal(t, uint64(500_000), plan.Calls[1].EstimatedGas)
	assert.Equal(t, f.book.Contracts.LendingPool, plan.Calls[1].Target)
	assert.Equal(t, []common.Address{f.book.Contracts.LendingPool}, f.encoder.approvals)
	require.NotNil(t, plan.FundingAsset)
	assert.Equal(t, big.NewInt(300_000), plan.FundingAmount)

	_, err = f.uc.RunLending(context.Background(), LendingParams{Asset: domain.NativeAsset(domain.ChainIDArbitrum), Receiver: testReceiver})
	var unsupported *domain.UnsupportedAssetError
	assert.ErrorAs(t, err, &unsupported)
}
