package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrTransactionNotFound is returned while the status service has not indexed a transaction yet
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPollLimitReached is returned when the status loop spent its configured poll budget
	ErrPollLimitReached = errors.New("status poll limit reached")

	// ErrMissingRequestID is returned when the route service omits the request id header
	ErrMissingRequestID = errors.New("missing request id")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned when an amount is not a positive base-10 integer
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNetworkNotConfigured is returned when no RPC endpoint is configured for a chain
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrMissingSigner is returned when an operation needs a private key and none is configured
	ErrMissingSigner = errors.New("no signer configured")

	// ErrPoolNotFound is returned when no Uniswap pool exists for a token pair and fee
	ErrPoolNotFound = errors.New("pool not found")
)

// UnsupportedAssetError is returned when a deposit asset is outside the supported set
type UnsupportedAssetError struct {
	Asset     Asset
	Supported []Asset
	// Suggestion is an optional close match for symbol lookups
	Suggestion string
}

func (e *UnsupportedAssetError) Error() string {
	symbols := make([]string, 0, len(e.Supported))
	for _, a := range e.Supported {
		symbols = append(symbols, a.Symbol)
	}
	msg := fmt.Sprintf("unsupported deposit asset %s, supported: %s", e.Asset, strings.Join(symbols, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", e.Suggestion)
	}
	return msg
}

// PlanConstructionError is returned when a hook plan cannot be built or fails validation
type PlanConstructionError struct {
	// Step is the zero-based index of the offending call, -1 for plan level problems
	Step   int
	Reason string
}

func (e *PlanConstructionError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("invalid hook plan: %s", e.Reason)
	}
	return fmt.Sprintf("invalid hook plan: step %d: %s", e.Step, e.Reason)
}

// RemoteServiceError is returned when a route, status or quote call fails
type RemoteServiceError struct {
	Service    string
	Method     string
	URL        string
	StatusCode int
	Body       string
	// Payload is the request that was sent, kept for diagnosis
	Payload any
	Err     error
}

func (e *RemoteServiceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", e.Service, e.Method, e.URL)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": API error (status %d)", e.StatusCode)
		if e.Body != "" {
			fmt.Fprintf(&b, ": %s", e.Body)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// ExecutionRevertError reports a routed transaction that did not settle cleanly,
// either reverted on the source chain or ended in a non-success terminal status
type ExecutionRevertError struct {
	TxHash string
	Status TransactionStatus
	Reason string
}

func (e *ExecutionRevertError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("transaction %s ended with status %s", e.TxHash, e.Status)
	}
	return fmt.Sprintf("transaction %s reverted: %s", e.TxHash, e.Reason)
}
