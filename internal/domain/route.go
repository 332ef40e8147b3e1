package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// RouteRequest asks the route service for a transaction moving FromAmount of
// FromToken on FromChain to ToToken on ToChain, optionally running PostHook
// on the destination once the funds land.
type RouteRequest struct {
	FromChain               uint64         `validate:"required"`
	ToChain                 uint64         `validate:"required"`
	FromToken               common.Address `validate:"required"`
	ToToken                 common.Address `validate:"required"`
	FromAmount              *big.Int       `validate:"required"`
	FromAddress             common.Address `validate:"required"`
	ToAddress               common.Address `validate:"required"`
	Slippage                float64        `validate:"gte=0,lte=100"`
	EnableExpress           bool
	ReceiveGasOnDestination bool
	PostHook                *HookPlan `validate:"-"`
}

// RouteResult is the signed transaction template returned by the route service
type RouteResult struct {
	Target    common.Address
	Data      []byte
	Value     *big.Int
	GasLimit  uint64
	RequestID string

	// QuoteID and estimate fields are informational
	QuoteID          string
	ToAmount         string
	ToAmountMin      string
	EstimatedTimeSec int
}

// StatusQuery identifies a routed transaction for the status service
type StatusQuery struct {
	TransactionID string `validate:"required"`
	RequestID     string `validate:"required"`
	FromChainID   uint64 `validate:"required"`
	ToChainID     uint64 `validate:"required"`
}

// StatusReport is one answer of the status service
type StatusReport struct {
	Status TransactionStatus
	// ID is the service's own identifier for the routed transaction
	ID string
	// AxelarURL links to the cross-chain explorer when present
	AxelarURL string
}
