package usecase

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

func TestMaxAmountIn(t *testing.T) {
	tests := []struct {
		name     string
		quoted   *big.Int
		expected *big.Int
		wantErr  bool
	}{
		{name: "exact", quoted: big.NewInt(1000), expected: big.NewInt(1100)},
		{name: "rounds down", quoted: big.NewInt(1_000_001), expected: big.NewInt(1_100_001)},
		{name: "small", quoted: big.NewInt(9), expected: big.NewInt(9)},
		{name: "zero", quoted: big.NewInt(0), expected: big.NewInt(0)},
		{name: "negative", quoted: big.NewInt(-1), wantErr: true},
		{name: "nil", quoted: nil, wantErr: true},
		{name: "overflows uint256", quoted: new(big.Int).Lsh(big.NewInt(1), 255), wantErr: true},
		{name: "wider than uint256", quoted: new(big.Int).Lsh(big.NewInt(1), 256), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxAmountIn(tt.quoted)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, tt.expected.Cmp(got), "got %s", got)
		})
	}
}

func TestMaxAmountIn_MatchesFloorDivision(t *testing.T) {
	for _, q := range []int64{1, 7, 10, 11, 99, 12345, 987654321} {
		got, err := MaxAmountIn(big.NewInt(q))
		require.NoError(t, err)
		assert.Equal(t, q*11/10, got.Int64())
	}
}

func TestBuildSwapCalldata(t *testing.T) {
	clock := newFakeClock()
	quoter := &mockSwapQuoter{
		poolFunc: func(_ context.Context, a, b common.Address, fee uint32) (*domain.PoolInfo, error) {
			assert.Equal(t, uint32(3000), fee)
			return &domain.PoolInfo{Token0: a, Token1: b, Fee: fee}, nil
		},
		quoteFunc: func(_ context.Context, _, _ common.Address, fee uint32, _ *big.Int) (*big.Int, error) {
			assert.Equal(t, uint32(3000), fee)
			return big.NewInt(2000), nil
		},
	}
	encoder := &stubEncoder{}
	uc := NewBuildSwapCalldata(quoter, encoder, clock, &config.RuntimeConfig{
		Swap: config.SwapConfig{PoolFee: 3000, Deadline: time.Hour},
	})

	recipient := common.HexToAddress("0xEa749Fd6bA492dbc14c24FE8A3d08769229b896c")
	swap, err := uc.Run(context.Background(), SwapParams{
		TokenIn:   domain.ArbitrumUSDC.Address,
		TokenOut:  domain.ArbitrumWETH.Address,
		AmountOut: big.NewInt(10),
		Recipient: recipient,
	})
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(2000), swap.QuotedAmountIn)
	assert.Equal(t, big.NewInt(2200), swap.AmountInMaximum)
	assert.Equal(t, clock.Now().Add(time.Hour).Unix(), swap.Deadline.Int64())
	assert.Len(t, swap.CallData, 4+8*32)

	require.Len(t, encoder.swaps, 1)
	assert.Equal(t, recipient, encoder.swaps[0].Recipient)
	assert.Equal(t, uint32(3000), encoder.swaps[0].Fee)
	assert.Equal(t, 0, encoder.swaps[0].SqrtPriceLimitX96.Sign())
}

func TestBuildSwapCalldata_RejectsEmptyOutput(t *testing.T) {
	quoter := &mockSwapQuoter{}
	uc := NewBuildSwapCalldata(quoter, &stubEncoder{}, newFakeClock(), &config.RuntimeConfig{})

	_, err := uc.Run(context.Background(), SwapParams{AmountOut: big.NewInt(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Zero(t, quoter.calls)
}
