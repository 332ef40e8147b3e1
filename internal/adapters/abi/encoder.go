package abi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// Encoder packs calldata for hook plan calls and the read-only quote calls
type Encoder struct{}

// NewEncoder creates a new calldata encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// sendParam mirrors the OFT SendParam struct
type sendParam struct {
	DstEid       uint32
	To           [32]byte
	AmountLD     *big.Int
	MinAmountLD  *big.Int
	ExtraOptions []byte
	ComposeMsg   []byte
	OftCmd       []byte
}

// messagingFee mirrors the OFT MessagingFee struct
type messagingFee struct {
	NativeFee  *big.Int
	LzTokenFee *big.Int
}

// exactOutputSingleParams mirrors ISwapRouter.ExactOutputSingleParams
type exactOutputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountOut         *big.Int
	AmountInMaximum   *big.Int
	SqrtPriceLimitX96 *big.Int
}

// Approve encodes ERC20.approve(spender, amount)
func (e *Encoder) Approve(spender common.Address, amount *big.Int) ([]byte, error) {
	return pack(ERC20, "approve", spender, orZero(amount))
}

// Allowance encodes ERC20.allowance(owner, spender)
func (e *Encoder) Allowance(owner, spender common.Address) ([]byte, error) {
	return pack(ERC20, "allowance", owner, spender)
}

// Withdraw encodes WETH.withdraw(amount)
func (e *Encoder) Withdraw(amount *big.Int) ([]byte, error) {
	return pack(WETH, "withdraw", orZero(amount))
}

// GatewayDeposit encodes Gateway.deposit(token, amount, receiver, dstEid)
func (e *Encoder) GatewayDeposit(token common.Address, amount *big.Int, receiver common.Address, dstEID uint32) ([]byte, error) {
	return pack(Gateway, "deposit", token, orZero(amount), receiver, dstEID)
}

// ExactOutputSingle encodes SwapRouter.exactOutputSingle(params)
func (e *Encoder) ExactOutputSingle(params domain.ExactOutputSingleParams) ([]byte, error) {
	return pack(SwapRouter, "exactOutputSingle", exactOutputSingleParams{
		TokenIn:           params.TokenIn,
		TokenOut:          params.TokenOut,
		Fee:               new(big.Int).SetUint64(uint64(params.Fee)),
		Recipient:         params.Recipient,
		Deadline:          orZero(params.Deadline),
		AmountOut:         orZero(params.AmountOut),
		AmountInMaximum:   orZero(params.AmountInMaximum),
		SqrtPriceLimitX96: orZero(params.SqrtPriceLimitX96),
	})
}

// Supply encodes Pool.supply(asset, amount, onBehalfOf, referralCode)
func (e *Encoder) Supply(asset common.Address, amount *big.Int, onBehalfOf common.Address, referralCode uint16) ([]byte, error) {
	return pack(LendingPool, "supply", asset, orZero(amount), onBehalfOf, referralCode)
}

// QuoteSend encodes TokenVault.quoteSend(sendParam, false).
// The receiver is left-padded to bytes32, the LayerZero address form.
func (e *Encoder) QuoteSend(req domain.FeeQuoteRequest) ([]byte, error) {
	var to [32]byte
	copy(to[:], common.LeftPadBytes(req.Receiver.Bytes(), 32))

	return pack(TokenVault, "quoteSend", sendParam{
		DstEid:       req.DstEID,
		To:           to,
		AmountLD:     orZero(req.AmountLD),
		MinAmountLD:  orZero(req.MinAmountLD),
		ExtraOptions: orEmpty(req.ExtraOptions),
		ComposeMsg:   orEmpty(req.ComposeMsg),
		OftCmd:       orEmpty(req.OFTCmd),
	}, false)
}

// DecodeQuoteSend decodes the MessagingFee returned by quoteSend
func (e *Encoder) DecodeQuoteSend(output []byte) (*domain.FeeQuote, error) {
	values, err := TokenVault.Unpack("quoteSend", output)
	if err != nil {
		return nil, fmt.Errorf("failed to decode quoteSend output: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected quoteSend output length %d", len(values))
	}

	fee := *abi.ConvertType(values[0], new(messagingFee)).(*messagingFee)
	return &domain.FeeQuote{
		NativeFee:  fee.NativeFee,
		LzTokenFee: fee.LzTokenFee,
	}, nil
}

// QuoteExactOutputSingle encodes Quoter.quoteExactOutputSingle
func (e *Encoder) QuoteExactOutputSingle(tokenIn, tokenOut common.Address, fee uint32, amountOut *big.Int) ([]byte, error) {
	return pack(Quoter, "quoteExactOutputSingle",
		tokenIn, tokenOut, new(big.Int).SetUint64(uint64(fee)), orZero(amountOut), new(big.Int))
}

// DecodeUint256 decodes a single uint256 return value of method
func (e *Encoder) DecodeUint256(contract abi.ABI, method string, output []byte) (*big.Int, error) {
	values, err := contract.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s output: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected %s output length %d", method, len(values))
	}
	v, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s output type %T", method, values[0])
	}
	return v, nil
}

// DecodeAddress decodes a single address return value of method
func (e *Encoder) DecodeAddress(contract abi.ABI, method string, output []byte) (common.Address, error) {
	values, err := contract.Unpack(method, output)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to decode %s output: %w", method, err)
	}
	if len(values) != 1 {
		return common.Address{}, fmt.Errorf("unexpected %s output length %d", method, len(values))
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected %s output type %T", method, values[0])
	}
	return addr, nil
}

func pack(contract abi.ABI, method string, args ...interface{}) ([]byte, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method, err)
	}
	return data, nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func orEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Ensure the encoder implements the interface
var _ usecase.CallEncoder = (*Encoder)(nil)
