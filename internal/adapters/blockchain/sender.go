package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/hookroute/internal/adapters/abi"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// gasPriceMultiplier is applied to the node's suggested gas price
const gasPriceMultiplier = 2

// Wallet signs and broadcasts transactions with a single private key
type Wallet struct {
	clients *ClientProvider
	encoder *abi.Encoder
	key     *ecdsa.PrivateKey
	log     *slog.Logger
}

// NewWallet creates a wallet from the configured private key. A wallet without
// a key can still read allowances but fails on anything that signs.
func NewWallet(cfg *config.RuntimeConfig, clients *ClientProvider, encoder *abi.Encoder, log *slog.Logger) (*Wallet, error) {
	w := &Wallet{
		clients: clients,
		encoder: encoder,
		log:     log.With("component", "Wallet"),
	}

	if cfg.PrivateKey == "" {
		return w, nil
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	w.key = key
	return w, nil
}

// Address returns the signer address
func (w *Wallet) Address() (common.Address, error) {
	if w.key == nil {
		return common.Address{}, domain.ErrMissingSigner
	}
	return crypto.PubkeyToAddress(w.key.PublicKey), nil
}

// Send signs req as a legacy transaction, broadcasts it and waits for the receipt.
// A reverted receipt is returned together with an ExecutionRevertError.
func (w *Wallet) Send(ctx context.Context, req domain.TxRequest) (*domain.SentTransaction, error) {
	from, err := w.Address()
	if err != nil {
		return nil, err
	}

	backend, err := w.clients.Backend(ctx, req.ChainID)
	if err != nil {
		return nil, err
	}

	suggested, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	gasPrice := new(big.Int).Mul(suggested, big.NewInt(gasPriceMultiplier))

	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce for %s: %w", from.Hex(), err)
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	to := req.To
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      req.GasLimit,
		To:       &to,
		Value:    value,
		Data:     req.Data,
	})

	signer := types.LatestSignerForChainID(new(big.Int).SetUint64(req.ChainID))
	signed, err := types.SignTx(tx, signer, w.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	w.log.Debug("transaction sent", "hash", signed.Hash().Hex(), "to", to.Hex(), "nonce", nonce, "gasPrice", gasPrice)

	receipt, err := bind.WaitMined(ctx, backend, signed)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", signed.Hash().Hex(), err)
	}

	sent := &domain.SentTransaction{
		Hash:      signed.Hash(),
		From:      from,
		GasPrice:  gasPrice,
		Succeeded: receipt.Status == types.ReceiptStatusSuccessful,
	}
	if receipt.BlockNumber != nil {
		sent.BlockNumber = receipt.BlockNumber.Uint64()
	}

	if !sent.Succeeded {
		return sent, &domain.ExecutionRevertError{
			TxHash: sent.Hash.Hex(),
			Reason: fmt.Sprintf("receipt status %d in block %d", receipt.Status, sent.BlockNumber),
		}
	}
	return sent, nil
}

// Ensure the wallet implements the interface
var _ usecase.TransactionSender = (*Wallet)(nil)
