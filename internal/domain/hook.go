package domain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallKind tells the multicall executor how to treat a call's arguments.
// The numeric values are the executor's wire encoding.
type CallKind int

const (
	// CallKindStatic means the amounts embedded in the calldata are final
	CallKindStatic CallKind = 0
	// CallKindFullBalance makes the executor overwrite one argument with its
	// measured balance of the substitution asset at execution time
	CallKindFullBalance CallKind = 1
	// CallKindFullNativeBalance attaches the executor's whole native balance as value
	CallKindFullNativeBalance CallKind = 2
)

func (k CallKind) String() string {
	switch k {
	case CallKindStatic:
		return "STATIC"
	case CallKindFullBalance:
		return "FULL_BALANCE_OF_PRIOR_OUTPUT"
	case CallKindFullNativeBalance:
		return "FULL_NATIVE_BALANCE"
	default:
		return fmt.Sprintf("CallKind(%d)", int(k))
	}
}

// ChainTypeEVM is the only chain type hooks are built for
const ChainTypeEVM = "evm"

// selectorSize is the length of the function selector prefix in calldata
const selectorSize = 4

// wordSize is the size of one ABI head slot
const wordSize = 32

// Substitution names the asset whose live balance replaces an argument
type Substitution struct {
	Asset        Asset `json:"asset" yaml:"asset"`
	ArgumentSlot int   `json:"argumentSlot" yaml:"argumentSlot"`
}

// ByteOffset returns the offset of the overwritten word inside the calldata
func (s Substitution) ByteOffset() int {
	return selectorSize + wordSize*s.ArgumentSlot
}

// ChainCall is one step of a hook plan
type ChainCall struct {
	Label        string         `json:"label" yaml:"label"`
	ChainID      uint64         `json:"chainId" yaml:"chainId"`
	Target       common.Address `json:"target" yaml:"target"`
	CallData     []byte         `json:"callData" yaml:"callData"`
	Value        *big.Int       `json:"value" yaml:"value"`
	Kind         CallKind       `json:"callKind" yaml:"callKind"`
	EstimatedGas uint64         `json:"estimatedGas" yaml:"estimatedGas"`
	Substitution *Substitution  `json:"substitution,omitempty" yaml:"substitution,omitempty"`

	// Produces lists assets the call leaves in the executor after it runs
	Produces []Asset `json:"produces,omitempty" yaml:"produces,omitempty"`
}

// PlanKind is the shape of a hook plan
type PlanKind string

const (
	PlanKindSameNetwork   PlanKind = "same_network"
	PlanKindOnwardBridge  PlanKind = "onward_bridge"
	PlanKindLendingSupply PlanKind = "lending_supply"
)

// HookPlan is an ordered list of calls the executor runs after the bridged funds arrive.
// Order is load-bearing: the executor runs calls strictly in sequence.
type HookPlan struct {
	Kind        PlanKind    `json:"kind" yaml:"kind"`
	ChainID     uint64      `json:"chainId" yaml:"chainId"`
	Calls       []ChainCall `json:"calls" yaml:"calls"`
	Description string      `json:"description" yaml:"description"`
	Provider    string      `json:"provider" yaml:"provider"`
	LogoURI     string      `json:"logoURI,omitempty" yaml:"logoURI,omitempty"`

	// InputAsset is the asset the route delivers to the executor
	InputAsset Asset `json:"inputAsset" yaml:"inputAsset"`

	// Funding is only used when the plan needs to be pre-funded
	FundingAsset  *Asset   `json:"fundingAsset,omitempty" yaml:"fundingAsset,omitempty"`
	FundingAmount *big.Int `json:"fundingAmount,omitempty" yaml:"fundingAmount,omitempty"`

	// NativeFee is the relay fee quoted for an onward bridge, nil otherwise
	NativeFee *big.Int `json:"nativeFee,omitempty" yaml:"nativeFee,omitempty"`
}

// TotalEstimatedGas sums the advisory gas estimates of every call
func (p *HookPlan) TotalEstimatedGas() uint64 {
	var total uint64
	for _, c := range p.Calls {
		total += c.EstimatedGas
	}
	return total
}

// Validate checks that every full-balance substitution reads an asset the
// executor holds at that point, and that its slot fits in the calldata.
func (p *HookPlan) Validate() error {
	if len(p.Calls) == 0 {
		return &PlanConstructionError{Step: -1, Reason: "plan has no calls"}
	}

	available := map[string]bool{p.InputAsset.Key(): true}
	if p.FundingAsset != nil {
		available[p.FundingAsset.Key()] = true
	}

	for i, call := range p.Calls {
		if call.ChainID != p.ChainID {
			return &PlanConstructionError{
				Step:   i,
				Reason: fmt.Sprintf("call targets chain %d, plan executes on %d", call.ChainID, p.ChainID),
			}
		}
		if len(call.CallData) < selectorSize {
			return &PlanConstructionError{Step: i, Reason: "calldata shorter than a selector"}
		}

		switch call.Kind {
		case CallKindFullBalance:
			sub := call.Substitution
			if sub == nil {
				return &PlanConstructionError{Step: i, Reason: "full balance call without substitution"}
			}
			if sub.ArgumentSlot < 0 {
				return &PlanConstructionError{Step: i, Reason: fmt.Sprintf("negative argument slot %d", sub.ArgumentSlot)}
			}
			if sub.ByteOffset()+wordSize > len(call.CallData) {
				return &PlanConstructionError{
					Step:   i,
					Reason: fmt.Sprintf("argument slot %d is outside %d bytes of calldata", sub.ArgumentSlot, len(call.CallData)),
				}
			}
			if !available[sub.Asset.Key()] {
				return &PlanConstructionError{
					Step:   i,
					Reason: fmt.Sprintf("substitution reads %s which no earlier step produces", sub.Asset),
				}
			}
		case CallKindStatic, CallKindFullNativeBalance:
		default:
			return &PlanConstructionError{Step: i, Reason: fmt.Sprintf("unknown call kind %d", int(call.Kind))}
		}

		for _, out := range call.Produces {
			available[out.Key()] = true
		}
	}

	return nil
}
