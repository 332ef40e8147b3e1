package usecase

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockFeeQuoter struct {
	calls     int
	quoteFunc func(context.Context, common.Address, domain.FeeQuoteRequest) (*domain.FeeQuote, error)
}

func (m *mockFeeQuoter) QuoteSend(ctx context.Context, vault common.Address, req domain.FeeQuoteRequest) (*domain.FeeQuote, error) {
	m.calls++
	if m.quoteFunc != nil {
		return m.quoteFunc(ctx, vault, req)
	}
	return &domain.FeeQuote{NativeFee: big.NewInt(1_000_000_000_000), LzTokenFee: new(big.Int)}, nil
}

type mockSwapQuoter struct {
	calls     int
	poolFunc  func(ctx context.Context, a, b common.Address, fee uint32) (*domain.PoolInfo, error)
	quoteFunc func(ctx context.Context, in, out common.Address, fee uint32, amountOut *big.Int) (*big.Int, error)
}

func (m *mockSwapQuoter) GetPool(ctx context.Context, a, b common.Address, fee uint32) (*domain.PoolInfo, error) {
	m.calls++
	if m.poolFunc != nil {
		return m.poolFunc(ctx, a, b, fee)
	}
	return &domain.PoolInfo{Address: common.HexToAddress("0x00000000000000000000000000000000000000aa"), Token0: a, Token1: b, Fee: fee}, nil
}

func (m *mockSwapQuoter) QuoteExactOutputSingle(ctx context.Context, in, out common.Address, fee uint32, amountOut *big.Int) (*big.Int, error) {
	m.calls++
	if m.quoteFunc != nil {
		return m.quoteFunc(ctx, in, out, fee, amountOut)
	}
	return big.NewInt(3_000_000), nil
}

// stubEncoder returns calldata with the right head size for each method and
// remembers the arguments it was given
type stubEncoder struct {
	approvals []common.Address
	deposits  []stubDeposit
	swaps     []domain.ExactOutputSingleParams
	supplies  []common.Address
}

type stubDeposit struct {
	Token    common.Address
	Receiver common.Address
	DstEID   uint32
}

func stubCalldata(selector uint32, words int) []byte {
	data := make([]byte, 4+32*words)
	binary.BigEndian.PutUint32(data, selector)
	return data
}

func (e *stubEncoder) Approve(spender common.Address, _ *big.Int) ([]byte, error) {
	e.approvals = append(e.approvals, spender)
	return stubCalldata(0x095ea7b3, 2), nil
}

func (e *stubEncoder) Withdraw(*big.Int) ([]byte, error) {
	return stubCalldata(0x2e1a7d4d, 1), nil
}

func (e *stubEncoder) GatewayDeposit(token common.Address, _ *big.Int, receiver common.Address, dstEID uint32) ([]byte, error) {
	e.deposits = append(e.deposits, stubDeposit{Token: token, Receiver: receiver, DstEID: dstEID})
	return stubCalldata(0x00000001, 4), nil
}

func (e *stubEncoder) ExactOutputSingle(params domain.ExactOutputSingleParams) ([]byte, error) {
	e.swaps = append(e.swaps, params)
	return stubCalldata(0xdb3e2198, 8), nil
}

func (e *stubEncoder) Supply(asset common.Address, _ *big.Int, _ common.Address, _ uint16) ([]byte, error) {
	e.supplies = append(e.supplies, asset)
	return stubCalldata(0x617ba037, 4), nil
}

type mockStatusClient struct {
	queries []domain.StatusQuery
	answers []statusAnswer
}

type statusAnswer struct {
	status domain.TransactionStatus
	err    error
}

func (m *mockStatusClient) GetStatus(_ context.Context, query domain.StatusQuery) (*domain.StatusReport, error) {
	m.queries = append(m.queries, query)
	if len(m.answers) == 0 {
		return &domain.StatusReport{Status: domain.StatusOngoing}, nil
	}
	answer := m.answers[0]
	if len(m.answers) > 1 {
		m.answers = m.answers[1:]
	}
	if answer.err != nil {
		return nil, answer.err
	}
	return &domain.StatusReport{Status: answer.status}, nil
}

// fakeClock records sleeps without waiting
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) count(d time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.sleeps {
		if s == d {
			n++
		}
	}
	return n
}

type mockRouteClient struct {
	calls     int
	routeFunc func(context.Context, *domain.RouteRequest) (*domain.RouteResult, error)
}

func (m *mockRouteClient) GetRoute(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResult, error) {
	m.calls++
	if m.routeFunc != nil {
		return m.routeFunc(ctx, req)
	}
	return &domain.RouteResult{
		Target:    common.HexToAddress("0xce16F69375520ab01377ce7B88f5BA8C48F8D666"),
		Data:      []byte{0xde, 0xad},
		Value:     big.NewInt(5),
		GasLimit:  1_000_000,
		RequestID: "req-1",
	}, nil
}

type mockAllowance struct {
	current     *big.Int
	approved    []*big.Int
	approveFunc func(ctx context.Context, chainID uint64, token, spender common.Address, amount *big.Int) (*domain.SentTransaction, error)
}

func (m *mockAllowance) Allowance(context.Context, uint64, common.Address, common.Address, common.Address) (*big.Int, error) {
	if m.current == nil {
		return new(big.Int), nil
	}
	return m.current, nil
}

func (m *mockAllowance) Approve(ctx context.Context, chainID uint64, token, spender common.Address, amount *big.Int) (*domain.SentTransaction, error) {
	m.approved = append(m.approved, amount)
	if m.approveFunc != nil {
		return m.approveFunc(ctx, chainID, token, spender, amount)
	}
	return &domain.SentTransaction{Hash: common.HexToHash("0xa11"), Succeeded: true}, nil
}

type mockSender struct {
	address  common.Address
	noSigner bool
	sent     []domain.TxRequest
	sendFunc func(context.Context, domain.TxRequest) (*domain.SentTransaction, error)
}

func (m *mockSender) Address() (common.Address, error) {
	if m.noSigner {
		return common.Address{}, domain.ErrMissingSigner
	}
	return m.address, nil
}

func (m *mockSender) Send(ctx context.Context, req domain.TxRequest) (*domain.SentTransaction, error) {
	m.sent = append(m.sent, req)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, req)
	}
	return &domain.SentTransaction{Hash: common.HexToHash("0xbeef"), From: m.address, Succeeded: true}, nil
}

type mockSelector struct {
	confirm   bool
	confirmed int
}

func (m *mockSelector) SelectAsset(_ context.Context, assets []domain.Asset, _ string) (domain.Asset, error) {
	if len(assets) == 0 {
		return domain.Asset{}, errors.New("no assets")
	}
	return assets[0], nil
}

func (m *mockSelector) Confirm(context.Context, string) (bool, error) {
	m.confirmed++
	return m.confirm, nil
}

type mockChecker struct {
	chainIDs map[string]uint64
}

func (m *mockChecker) ChainID(_ context.Context, rpcURL string) (uint64, error) {
	id, ok := m.chainIDs[rpcURL]
	if !ok {
		return 0, errors.New("connection refused")
	}
	return id, nil
}
