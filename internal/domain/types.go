package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain IDs of the networks the router is used with
const (
	ChainIDArbitrum uint64 = 42161
	ChainIDBase     uint64 = 8453
)

// LayerZero endpoint IDs
const (
	EIDArbitrum uint32 = 30110
	EIDBase     uint32 = 30184
)

// NativeAddress is the sentinel the route service uses for the chain's native currency
var NativeAddress = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// Asset identifies a token (or the native currency) on one network.
// Assets are defined once at configuration time and never mutated.
type Asset struct {
	ChainID  uint64         `json:"chainId" yaml:"chainId"`
	Address  common.Address `json:"address" yaml:"address"`
	Decimals uint8          `json:"decimals" yaml:"decimals"`
	Symbol   string         `json:"symbol" yaml:"symbol"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
}

// IsNative reports whether the asset is the native currency sentinel
func (a Asset) IsNative() bool {
	return a.Address == NativeAddress
}

// Key returns a stable identifier of the asset across networks
func (a Asset) Key() string {
	return fmt.Sprintf("%d:%s", a.ChainID, strings.ToLower(a.Address.Hex()))
}

// Same reports whether two assets live on the same chain at the same address
func (a Asset) Same(other Asset) bool {
	return a.ChainID == other.ChainID && a.Address == other.Address
}

func (a Asset) String() string {
	if a.Symbol != "" {
		return fmt.Sprintf("%s (%s on %d)", a.Symbol, a.Address.Hex(), a.ChainID)
	}
	return fmt.Sprintf("%s on %d", a.Address.Hex(), a.ChainID)
}

// NativeAsset returns the native currency of a chain
func NativeAsset(chainID uint64) Asset {
	return Asset{
		ChainID:  chainID,
		Address:  NativeAddress,
		Decimals: 18,
		Symbol:   "ETH",
		Name:     "Ether",
	}
}

// TransactionStatus is the status reported by the route status service
type TransactionStatus string

const (
	StatusSuccess        TransactionStatus = "success"
	StatusPartialSuccess TransactionStatus = "partial_success"
	StatusNeedsGas       TransactionStatus = "needs_gas"
	StatusNotFound       TransactionStatus = "not_found"
	StatusOngoing        TransactionStatus = "ongoing"
	StatusPending        TransactionStatus = "pending"
)

// terminalStatuses are the statuses after which polling stops. not_found is
// only final once the not-found budget is spent, so it is not listed here.
var terminalStatuses = []TransactionStatus{
	StatusSuccess,
	StatusPartialSuccess,
	StatusNeedsGas,
}

// TerminalStatuses returns a copy of the terminal status set
func TerminalStatuses() []TransactionStatus {
	out := make([]TransactionStatus, len(terminalStatuses))
	copy(out, terminalStatuses)
	return out
}

// IsTerminal reports whether polling should stop at this status
func (s TransactionStatus) IsTerminal() bool {
	for _, t := range terminalStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// IsNotFound reports whether the status service has not indexed the transaction yet
func (s TransactionStatus) IsNotFound() bool {
	return s == StatusNotFound
}

// IsSuccess reports whether the routed transaction fully completed
func (s TransactionStatus) IsSuccess() bool {
	return s == StatusSuccess
}

func (s TransactionStatus) String() string {
	return string(s)
}
