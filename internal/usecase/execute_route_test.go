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

type executeFixture struct {
	compose   *composeFixture
	routes    *mockRouteClient
	allowance *mockAllowance
	sender    *mockSender
	status    *mockStatusClient
	selector  *mockSelector
	cfg       *config.RuntimeConfig
	uc        *ExecuteRoute
}

func newExecuteFixture(answers ...statusAnswer) *executeFixture {
	f := &executeFixture{
		compose:   newComposeFixture(),
		routes:    &mockRouteClient{},
		allowance: &mockAllowance{},
		sender:    &mockSender{address: testReceiver},
		status:    &mockStatusClient{answers: answers},
		selector:  &mockSelector{confirm: true},
		cfg: &config.RuntimeConfig{
			Status: config.DefaultStatusPolicy(),
			Route:  config.RouteDefaults{Slippage: 1, EnableExpress: true},
		},
	}
	f.uc = NewExecuteRoute(
		f.compose.uc,
		NewGetRoute(f.routes, testLogger()),
		NewApproveSpending(f.allowance, f.sender, testLogger()),
		NewTrackStatus(f.status, newFakeClock(), f.cfg, NopProgress{}, testLogger()),
		f.sender,
		f.selector,
		NopProgress{},
		f.cfg,
		testLogger(),
	)
	return f
}

func testExecuteParams() ExecuteParams {
	return ExecuteParams{
		FromChain:  domain.ChainIDBase,
		ToChain:    domain.ChainIDArbitrum,
		FromToken:  domain.BaseUSDC.Address,
		ToToken:    domain.ArbitrumUSDC.Address,
		FromAmount: big.NewInt(300_000),
		Hook: &ComposeParams{
			DepositAsset: domain.ArbitrumUSDC,
			Receiver:     testReceiver,
		},
	}
}

func TestExecuteRoute_Success(t *testing.T) {
	f := newExecuteFixture(statusAnswer{status: domain.StatusOngoing}, statusAnswer{status: domain.StatusSuccess})

	var routed *domain.RouteRequest
	f.routes.routeFunc = func(_ context.Context, req *domain.RouteRequest) (*domain.RouteResult, error) {
		routed = req
		return &domain.RouteResult{
			Target:    common.HexToAddress("0xce16F69375520ab01377ce7B88f5BA8C48F8D666"),
			Data:      []byte{1, 2, 3},
			Value:     big.NewInt(7),
			GasLimit:  1_500_000,
			RequestID: "req-7",
		}, nil
	}

	result, err := f.uc.Run(context.Background(), testExecuteParams())
	require.NoError(t, err)

	require.NotNil(t, routed.PostHook)
	assert.Equal(t, domain.PlanKindSameNetwork, routed.PostHook.Kind)
	assert.Equal(t, testReceiver, routed.FromAddress)
	assert.Equal(t, testReceiver, routed.ToAddress, "defaults to the signer")
	assert.True(t, routed.EnableExpress)

	assert.Equal(t, 1, f.selector.confirmed)
	require.Len(t, f.allowance.approved, 1)

	require.Len(t, f.sender.sent, 1)
	sent := f.sender.sent[0]
	assert.Equal(t, domain.ChainIDBase, sent.ChainID)
	assert.Equal(t, []byte{1, 2, 3}, sent.Data)
	assert.Equal(t, big.NewInt(7), sent.Value)
	assert.Equal(t, uint64(1_500_000), sent.GasLimit)

	assert.Equal(t, "https://axelarscan.io/gmp/"+result.Tx.Hash.Hex(), result.ExplorerLink)
	assert.Equal(t, domain.StatusSuccess, result.Tracking.Status)
	require.Len(t, f.status.queries, 2)
	assert.Equal(t, "req-7", f.status.queries[0].RequestID)
}

func TestExecuteRoute_NonSuccessTerminal(t *testing.T) {
	f := newExecuteFixture(statusAnswer{status: domain.StatusNeedsGas})

	result, err := f.uc.Run(context.Background(), testExecuteParams())
	var revertErr *domain.ExecutionRevertError
	require.ErrorAs(t, err, &revertErr)
	assert.Equal(t, domain.StatusNeedsGas, revertErr.Status)
	assert.NotEmpty(t, result.ExplorerLink)
}

func TestExecuteRoute_Declined(t *testing.T) {
	f := newExecuteFixture()
	f.selector.confirm = false

	_, err := f.uc.Run(context.Background(), testExecuteParams())
	assert.ErrorIs(t, err, ErrExecutionCancelled)
	assert.Empty(t, f.sender.sent)
	assert.Empty(t, f.allowance.approved)
}

func TestExecuteRoute_SkipConfirm(t *testing.T) {
	f := newExecuteFixture(statusAnswer{status: domain.StatusSuccess})
	params := testExecuteParams()
	params.SkipConfirm = true

	_, err := f.uc.Run(context.Background(), params)
	require.NoError(t, err)
	assert.Zero(t, f.selector.confirmed)
}

func TestExecuteRoute_ComposeFailureStopsEarly(t *testing.T) {
	f := newExecuteFixture()
	params := testExecuteParams()
	params.Hook.DepositAsset = domain.ArbitrumWETH

	_, err := f.uc.Run(context.Background(), params)
	var unsupported *domain.UnsupportedAssetError
	require.ErrorAs(t, err, &unsupported)
	assert.Zero(t, f.routes.calls)
	assert.Empty(t, f.sender.sent)
}

func TestExecuteRoute_WithoutHook(t *testing.T) {
	f := newExecuteFixture(statusAnswer{status: domain.StatusSuccess})
	params := testExecuteParams()
	params.Hook = nil
	params.SkipConfirm = true

	result, err := f.uc.Run(context.Background(), params)
	require.NoError(t, err)
	assert.Nil(t, result.Plan)
}

func TestExplorerLink(t *testing.T) {
	assert.Equal(t, "https://axelarscan.io/gmp/0x1", ExplorerLink("", "0x1"))
	assert.Equal(t, "https://testnet.axelarscan.io/gmp/0x1", ExplorerLink("https://testnet.axelarscan.io/", "0x1"))
}
