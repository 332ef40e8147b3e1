package cli

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hookroute/internal/adapters/interactive"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// parseAddress parses a hex address flag. An empty value is allowed unless required.
func parseAddress(name, value string, required bool) (common.Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return common.Address{}, fmt.Errorf("--%s is required", name)
		}
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: --%s %q", domain.ErrInvalidAddress, name, value)
	}
	return common.HexToAddress(value), nil
}

// parseAmount parses a positive base-10 integer in base units
func parseAmount(name, value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: --%s %q must be a positive integer in base units", domain.ErrInvalidAmount, name, value)
	}
	return amount, nil
}

// resolveAsset resolves a deposit asset reference, prompting when ref is
// empty and suggesting the closest symbol when it is unknown
func resolveAsset(ctx context.Context, book *domain.AddressBook, selector usecase.InteractiveSelector, ref string) (domain.Asset, error) {
	if ref == "" {
		asset, err := selector.SelectAsset(ctx, book.DepositAssets(), "Select deposit asset")
		if errors.Is(err, interactive.ErrNonInteractive) {
			return domain.Asset{}, fmt.Errorf("an asset is required in non-interactive mode (one of %s)", strings.Join(book.Symbols(), ", "))
		}
		return asset, err
	}

	asset, err := book.FindAsset(ref)
	if err != nil {
		if suggestion := interactive.SuggestAsset(ref, book.DepositAssets()); suggestion != "" {
			return domain.Asset{}, fmt.Errorf("%w (did you mean %s?)", err, suggestion)
		}
		return domain.Asset{}, err
	}
	return asset, nil
}
