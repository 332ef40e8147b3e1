package blockchain

import (
	"bytes"
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/hookroute/internal/adapters/abi"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// SwapQuoterAdapter reads Uniswap v3 pools and the quoter contract
type SwapQuoterAdapter struct {
	clients   *ClientProvider
	encoder   *abi.Encoder
	chainID   uint64
	contracts domain.Contracts
}

// NewSwapQuoterAdapter creates a swap quoter for the address book's network
func NewSwapQuoterAdapter(clients *ClientProvider, encoder *abi.Encoder, book *domain.AddressBook) *SwapQuoterAdapter {
	return &SwapQuoterAdapter{
		clients:   clients,
		encoder:   encoder,
		chainID:   book.ChainID,
		contracts: book.Contracts,
	}
}

// SortTokens orders a token pair the way pools store them
func SortTokens(tokenA, tokenB common.Address) (common.Address, common.Address) {
	if bytes.Compare(tokenA.Bytes(), tokenB.Bytes()) < 0 {
		return tokenA, tokenB
	}
	return tokenB, tokenA
}

// PoolAddress derives the CREATE2 address of a pool from its factory
func PoolAddress(factory common.Address, initCodeHash common.Hash, tokenA, tokenB common.Address, fee uint32) common.Address {
	token0, token1 := SortTokens(tokenA, tokenB)

	key := make([]byte, 0, 96)
	key = append(key, common.LeftPadBytes(token0.Bytes(), 32)...)
	key = append(key, common.LeftPadBytes(token1.Bytes(), 32)...)
	key = append(key, common.LeftPadBytes(new(big.Int).SetUint64(uint64(fee)).Bytes(), 32)...)

	salt := crypto.Keccak256Hash(key)
	return crypto.CreateAddress2(factory, salt, initCodeHash.Bytes())
}

// GetPool resolves the pool for a pair and fee tier and reads its immutables
func (s *SwapQuoterAdapter) GetPool(ctx context.Context, tokenA, tokenB common.Address, fee uint32) (*domain.PoolInfo, error) {
	backend, err := s.clients.Backend(ctx, s.chainID)
	if err != nil {
		return nil, err
	}

	poolAddr := PoolAddress(s.contracts.PoolFactory, s.contracts.PoolInitCodeHash, tokenA, tokenB, fee)

	code, err := backend.CodeAt(ctx, poolAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at pool %s: %w", poolAddr.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: %s/%s fee %d (no code at %s)", domain.ErrPoolNotFound, tokenA.Hex(), tokenB.Hex(), fee, poolAddr.Hex())
	}

	token0, err := s.readAddress(ctx, backend, poolAddr, "token0")
	if err != nil {
		return nil, err
	}
	token1, err := s.readAddress(ctx, backend, poolAddr, "token1")
	if err != nil {
		return nil, err
	}

	feeData, err := abi.Pool.Pack("fee")
	if err != nil {
		return nil, fmt.Errorf("failed to encode fee: %w", err)
	}
	out, err := call(ctx, backend, poolAddr, feeData)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool fee: %w", err)
	}
	poolFee, err := s.encoder.DecodeUint256(abi.Pool, "fee", out)
	if err != nil {
		return nil, err
	}

	return &domain.PoolInfo{
		Address: poolAddr,
		Token0:  token0,
		Token1:  token1,
		Fee:     uint32(poolFee.Uint64()),
	}, nil
}

// QuoteExactOutputSingle returns the input needed to receive amountOut of tokenOut
func (s *SwapQuoterAdapter) QuoteExactOutputSingle(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountOut *big.Int) (*big.Int, error) {
	data, err := s.encoder.QuoteExactOutputSingle(tokenIn, tokenOut, fee, amountOut)
	if err != nil {
		return nil, err
	}

	backend, err := s.clients.Backend(ctx, s.chainID)
	if err != nil {
		return nil, err
	}

	out, err := call(ctx, backend, s.contracts.Quoter, data)
	if err != nil {
		return nil, &domain.RemoteServiceError{
			Service: "swap quoter",
			Method:  "quoteExactOutputSingle",
			URL:     s.contracts.Quoter.Hex(),
			Err:     err,
		}
	}

	return s.encoder.DecodeUint256(abi.Quoter, "quoteExactOutputSingle", out)
}

func (s *SwapQuoterAdapter) readAddress(ctx context.Context, backend Backend, pool common.Address, method string) (common.Address, error) {
	data, err := abi.Pool.Pack(method)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to encode %s: %w", method, err)
	}
	out, err := call(ctx, backend, pool, data)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read pool %s: %w", method, err)
	}
	return s.encoder.DecodeAddress(abi.Pool, method, out)
}

// Ensure the adapter implements the interface
var _ usecase.SwapQuoter = (*SwapQuoterAdapter)(nil)
