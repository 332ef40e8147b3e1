package blockchain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/adapters/abi"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// FeeQuoterAdapter prices relay messages by calling quoteSend on a token vault
type FeeQuoterAdapter struct {
	clients *ClientProvider
	encoder *abi.Encoder
	chainID uint64
}

// NewFeeQuoterAdapter creates a fee quoter for the address book's network
func NewFeeQuoterAdapter(clients *ClientProvider, encoder *abi.Encoder, book *domain.AddressBook) *FeeQuoterAdapter {
	return &FeeQuoterAdapter{
		clients: clients,
		encoder: encoder,
		chainID: book.ChainID,
	}
}

// QuoteSend returns the fee the vault charges for relaying req
func (q *FeeQuoterAdapter) QuoteSend(ctx context.Context, vault common.Address, req domain.FeeQuoteRequest) (*domain.FeeQuote, error) {
	data, err := q.encoder.QuoteSend(req)
	if err != nil {
		return nil, err
	}

	backend, err := q.clients.Backend(ctx, q.chainID)
	if err != nil {
		return nil, err
	}

	out, err := call(ctx, backend, vault, data)
	if err != nil {
		return nil, &domain.RemoteServiceError{
			Service: "token vault",
			Method:  "quoteSend",
			URL:     vault.Hex(),
			Payload: req,
			Err:     err,
		}
	}

	return q.encoder.DecodeQuoteSend(out)
}

// Ensure the adapter implements the interface
var _ usecase.FeeQuoter = (*FeeQuoterAdapter)(nil)
