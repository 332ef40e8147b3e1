package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hookroute/internal/domain"
)

func word(v *big.Int) []byte {
	return common.LeftPadBytes(v.Bytes(), 32)
}

func TestEncoder_Selectors(t *testing.T) {
	e := NewEncoder()
	addr := common.HexToAddress("0x728F58cd379b47185243Ce981a514C17ed0F6Fc6")

	approve, err := e.Approve(addr, big.NewInt(1))
	require.NoError(t, err)
	allowance, err := e.Allowance(addr, addr)
	require.NoError(t, err)
	withdraw, err := e.Withdraw(nil)
	require.NoError(t, err)
	swap, err := e.ExactOutputSingle(domain.ExactOutputSingleParams{Fee: 500})
	require.NoError(t, err)
	supply, err := e.Supply(addr, nil, addr, 0)
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		selector string
		length   int
	}{
		{name: "approve", data: approve, selector: "0x095ea7b3", length: 4 + 2*32},
		{name: "allowance", data: allowance, selector: "0xdd62ed3e", length: 4 + 2*32},
		{name: "withdraw", data: withdraw, selector: "0x2e1a7d4d", length: 4 + 32},
		{name: "exactOutputSingle", data: swap, selector: "0xdb3e2198", length: 4 + 8*32},
		{name: "supply", data: supply, selector: "0x617ba037", length: 4 + 4*32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.selector, hexutil.Encode(tt.data[:4]))
			assert.Len(t, tt.data, tt.length)
		})
	}
}

func TestEncoder_ArgumentSlots(t *testing.T) {
	e := NewEncoder()
	token := domain.ArbitrumUSDC.Address
	receiver := common.HexToAddress("0x728F58cd379b47185243Ce981a514C17ed0F6Fc6")

	t.Run("approve amount sits in slot 1", func(t *testing.T) {
		data, err := e.Approve(receiver, big.NewInt(0xabcdef))
		require.NoError(t, err)
		sub := domain.Substitution{ArgumentSlot: 1}
		assert.Equal(t, word(big.NewInt(0xabcdef)), data[sub.ByteOffset():sub.ByteOffset()+32])
	})

	t.Run("deposit layout", func(t *testing.T) {
		data, err := e.GatewayDeposit(token, big.NewInt(0), receiver, domain.EIDBase)
		require.NoError(t, err)
		require.Len(t, data, 4+4*32)
		assert.Equal(t, common.LeftPadBytes(token.Bytes(), 32), data[4:36])
		assert.Equal(t, make([]byte, 32), data[36:68], "amount placeholder is zero")
		assert.Equal(t, common.LeftPadBytes(receiver.Bytes(), 32), data[68:100])
		assert.Equal(t, word(big.NewInt(int64(domain.EIDBase))), data[100:132])
	})

	t.Run("withdraw amount sits in slot 0", func(t *testing.T) {
		data, err := e.Withdraw(big.NewInt(9))
		require.NoError(t, err)
		assert.Equal(t, word(big.NewInt(9)), data[4:36])
	})
}

func TestEncoder_QuoteSend(t *testing.T) {
	e := NewEncoder()
	receiver := common.HexToAddress("0x728F58cd379b47185243Ce981a514C17ed0F6Fc6")

	data, err := e.QuoteSend(domain.FeeQuoteRequest{
		DstEID:       domain.EIDBase,
		Receiver:     receiver,
		AmountLD:     big.NewInt(10_000_000),
		MinAmountLD:  big.NewInt(10_000_000),
		ExtraOptions: hexutil.MustDecode("0x0003010011010000000000000000000000000003d090"),
	})
	require.NoError(t, err)

	method := TokenVault.Methods["quoteSend"]
	assert.Equal(t, method.ID, data[:4])

	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Len(t, args, 2)

	param := *abi.ConvertType(args[0], new(sendParam)).(*sendParam)
	assert.Equal(t, domain.EIDBase, param.DstEid)
	assert.Equal(t, common.LeftPadBytes(receiver.Bytes(), 32), param.To[:])
	assert.Equal(t, big.NewInt(10_000_000), param.AmountLD)
	assert.Empty(t, param.ComposeMsg)
	assert.Equal(t, false, args[1])
}

func TestEncoder_DecodeQuoteSend(t *testing.T) {
	e := NewEncoder()

	output := append(word(big.NewInt(5_000_000_000_000)), word(big.NewInt(3))...)
	fee, err := e.DecodeQuoteSend(output)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5_000_000_000_000), fee.NativeFee)
	assert.Equal(t, big.NewInt(3), fee.LzTokenFee)

	_, err = e.DecodeQuoteSend([]byte{1, 2})
	assert.Error(t, err)
}

func TestEncoder_DecodeUint256(t *testing.T) {
	e := NewEncoder()

	v, err := e.DecodeUint256(ERC20, "allowance", word(big.NewInt(77)))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(77), v)

	addr := common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1")
	got, err := e.DecodeAddress(Pool, "token0", common.LeftPadBytes(addr.Bytes(), 32))
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}
