package squid

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/hookroute/internal/domain"
)

// Executor call types. They match domain.CallKind values one to one.
const (
	callTypeDefault           = 0
	callTypeFullTokenBalance  = 1
	callTypeFullNativeBalance = 2
)

type routeRequest struct {
	FromAddress             string    `json:"fromAddress"`
	FromChain               string    `json:"fromChain"`
	FromToken               string    `json:"fromToken"`
	FromAmount              string    `json:"fromAmount"`
	ToChain                 string    `json:"toChain"`
	ToToken                 string    `json:"toToken"`
	ToAddress               string    `json:"toAddress"`
	Slippage                float64   `json:"slippage,omitempty"`
	EnableExpress           bool      `json:"enableExpress"`
	ReceiveGasOnDestination bool      `json:"receiveGasOnDestination"`
	PostHook                *postHook `json:"postHook,omitempty"`
}

type postHook struct {
	ChainType   string     `json:"chainType"`
	Calls       []hookCall `json:"calls"`
	Provider    string     `json:"provider"`
	Description string     `json:"description"`
	LogoURI     string     `json:"logoURI,omitempty"`
	FundAmount  string     `json:"fundAmount,omitempty"`
	FundToken   string     `json:"fundToken,omitempty"`
}

type hookCall struct {
	ChainType    string      `json:"chainType"`
	CallType     int         `json:"callType"`
	Target       string      `json:"target"`
	Value        string      `json:"value"`
	CallData     string      `json:"callData"`
	Payload      hookPayload `json:"payload"`
	EstimatedGas string      `json:"estimatedGas"`
}

type hookPayload struct {
	TokenAddress string `json:"tokenAddress"`
	InputPos     int    `json:"inputPos"`
}

type routeResponse struct {
	Route struct {
		QuoteID            string `json:"quoteId"`
		TransactionRequest struct {
			Target   string `json:"target"`
			Data     string `json:"data"`
			Value    string `json:"value"`
			GasLimit string `json:"gasLimit"`
		} `json:"transactionRequest"`
		Estimate struct {
			ToAmount               string `json:"toAmount"`
			ToAmountMin            string `json:"toAmountMin"`
			EstimatedRouteDuration int    `json:"estimatedRouteDuration"`
		} `json:"estimate"`
	} `json:"route"`
}

type statusResponse struct {
	ID                     string `json:"id"`
	Status                 string `json:"status"`
	SquidTransactionStatus string `json:"squidTransactionStatus"`
	AxelarTransactionURL   string `json:"axelarTransactionUrl"`
}

func toRouteRequest(req *domain.RouteRequest) *routeRequest {
	out := &routeRequest{
		FromAddress:             req.FromAddress.Hex(),
		FromChain:               strconv.FormatUint(req.FromChain, 10),
		FromToken:               req.FromToken.Hex(),
		FromAmount:              req.FromAmount.String(),
		ToChain:                 strconv.FormatUint(req.ToChain, 10),
		ToToken:                 req.ToToken.Hex(),
		ToAddress:               req.ToAddress.Hex(),
		Slippage:                req.Slippage,
		EnableExpress:           req.EnableExpress,
		ReceiveGasOnDestination: req.ReceiveGasOnDestination,
	}
	if req.PostHook != nil {
		out.PostHook = toPostHook(req.PostHook)
	}
	return out
}

func toPostHook(plan *domain.HookPlan) *postHook {
	hook := &postHook{
		ChainType:   domain.ChainTypeEVM,
		Calls:       make([]hookCall, 0, len(plan.Calls)),
		Provider:    plan.Provider,
		Description: plan.Description,
		LogoURI:     plan.LogoURI,
	}
	if plan.FundingAsset != nil && plan.FundingAmount != nil {
		hook.FundToken = plan.FundingAsset.Address.Hex()
		hook.FundAmount = plan.FundingAmount.String()
	}

	for _, call := range plan.Calls {
		// the service wants a payload on every call, unused ones carry the input asset
		payload := hookPayload{TokenAddress: plan.InputAsset.Address.Hex()}
		if call.Substitution != nil {
			payload.TokenAddress = call.Substitution.Asset.Address.Hex()
			payload.InputPos = call.Substitution.ArgumentSlot
		}

		hook.Calls = append(hook.Calls, hookCall{
			ChainType:    domain.ChainTypeEVM,
			CallType:     toCallType(call.Kind),
			Target:       call.Target.Hex(),
			Value:        amountString(call.Value),
			CallData:     hexutil.Encode(call.CallData),
			Payload:      payload,
			EstimatedGas: strconv.FormatUint(call.EstimatedGas, 10),
		})
	}
	return hook
}

func toCallType(kind domain.CallKind) int {
	switch kind {
	case domain.CallKindFullBalance:
		return callTypeFullTokenBalance
	case domain.CallKindFullNativeBalance:
		return callTypeFullNativeBalance
	default:
		return callTypeDefault
	}
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func (r *routeResponse) toResult(requestID string) (*domain.RouteResult, error) {
	txReq := r.Route.TransactionRequest
	if !common.IsHexAddress(txReq.Target) {
		return nil, fmt.Errorf("%w: route target %q", domain.ErrInvalidAddress, txReq.Target)
	}

	data, err := hexutil.Decode(txReq.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode route data: %w", err)
	}

	value := new(big.Int)
	if txReq.Value != "" {
		if _, ok := value.SetString(txReq.Value, 0); !ok {
			return nil, fmt.Errorf("%w: route value %q", domain.ErrInvalidAmount, txReq.Value)
		}
	}

	var gasLimit uint64
	if txReq.GasLimit != "" {
		gasLimit, err = strconv.ParseUint(txReq.GasLimit, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse route gas limit %q: %w", txReq.GasLimit, err)
		}
	}

	return &domain.RouteResult{
		Target:           common.HexToAddress(txReq.Target),
		Data:             data,
		Value:            value,
		GasLimit:         gasLimit,
		RequestID:        requestID,
		QuoteID:          r.Route.QuoteID,
		ToAmount:         r.Route.Estimate.ToAmount,
		ToAmountMin:      r.Route.Estimate.ToAmountMin,
		EstimatedTimeSec: r.Route.Estimate.EstimatedRouteDuration,
	}, nil
}

func (r *statusResponse) toReport() *domain.StatusReport {
	status := r.SquidTransactionStatus
	if status == "" {
		status = r.Status
	}
	return &domain.StatusReport{
		Status:    domain.TransactionStatus(status),
		ID:        r.ID,
		AxelarURL: r.AxelarTransactionURL,
	}
}
