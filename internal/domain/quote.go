package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// FeeQuoteRequest describes the relay message a token vault is asked to price
type FeeQuoteRequest struct {
	DstEID       uint32
	Receiver     common.Address
	AmountLD     *big.Int
	MinAmountLD  *big.Int
	ExtraOptions []byte
	ComposeMsg   []byte
	OFTCmd       []byte
}

// FeeQuote is the fee of relaying a message. It is only valid at the moment it
// was fetched and is never cached.
type FeeQuote struct {
	NativeFee  *big.Int
	LzTokenFee *big.Int
}

// PoolInfo describes a Uniswap v3 pool
type PoolInfo struct {
	Address common.Address
	Token0  common.Address
	Token1  common.Address
	Fee     uint32
}

// ExactOutputSingleParams mirrors ISwapRouter.ExactOutputSingleParams
type ExactOutputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               uint32
	Recipient         common.Address
	Deadline          *big.Int
	AmountOut         *big.Int
	AmountInMaximum   *big.Int
	SqrtPriceLimitX96 *big.Int
}

// SwapCalldata is a ready to submit exact-output swap
type SwapCalldata struct {
	CallData        []byte
	Pool            PoolInfo
	AmountOut       *big.Int
	QuotedAmountIn  *big.Int
	AmountInMaximum *big.Int
	Deadline        *big.Int
}

// TxRequest is a transaction to sign and broadcast
type TxRequest struct {
	ChainID  uint64
	To       common.Address
	Data     []byte
	Value    *big.Int
	GasLimit uint64
}

// SentTransaction is a broadcast transaction with its receipt outcome
type SentTransaction struct {
	Hash        common.Hash
	From        common.Address
	GasPrice    *big.Int
	BlockNumber uint64
	Succeeded   bool
}
