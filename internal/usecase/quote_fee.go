package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/pkg/lzoptions"
)

const (
	// RelayQuoteAmount is the amount (in local decimals) relay fees are quoted for
	RelayQuoteAmount = 10_000_000
	// RelayLzReceiveGas is the destination gas the executor forwards to lzReceive
	RelayLzReceiveGas = 250_000
)

// QuoteFeeParams identifies an onward relay
type QuoteFeeParams struct {
	Asset    domain.Asset
	Receiver common.Address
	DstEID   uint32
}

// QuoteRelayFee prices relaying a deposit asset from the home network to another one
type QuoteRelayFee struct {
	book *domain.AddressBook
	fees FeeQuoter
}

// NewQuoteRelayFee creates a new relay fee quote use case
func NewQuoteRelayFee(book *domain.AddressBook, fees FeeQuoter) *QuoteRelayFee {
	return &QuoteRelayFee{
		book: book,
		fees: fees,
	}
}

// Run quotes the relay fee. The quote is fetched fresh on every call.
func (uc *QuoteRelayFee) Run(ctx context.Context, params QuoteFeeParams) (*domain.FeeQuote, error) {
	vault, ok := uc.book.Vault(params.Asset)
	if !ok {
		return nil, &domain.UnsupportedAssetError{Asset: params.Asset, Supported: uc.book.DepositAssets()}
	}
	if params.DstEID == uc.book.EID {
		return nil, &domain.PlanConstructionError{
			Step:   -1,
			Reason: fmt.Sprintf("destination eid %d is the home network", params.DstEID),
		}
	}

	options, err := lzoptions.New().
		AddExecutorLzReceiveOption(big.NewInt(RelayLzReceiveGas), big.NewInt(0)).
		Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode executor options: %w", err)
	}

	quote, err := uc.fees.QuoteSend(ctx, vault, domain.FeeQuoteRequest{
		DstEID:       params.DstEID,
		Receiver:     params.Receiver,
		AmountLD:     big.NewInt(RelayQuoteAmount),
		MinAmountLD:  big.NewInt(RelayQuoteAmount),
		ExtraOptions: options,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to quote relay fee: %w", err)
	}
	return quote, nil
}
