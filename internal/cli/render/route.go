package render

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// RouteView is the exported form of a route result
type RouteView struct {
	RequestID        string `json:"requestId" yaml:"requestId"`
	QuoteID          string `json:"quoteId,omitempty" yaml:"quoteId,omitempty"`
	Target           string `json:"target" yaml:"target"`
	Value            string `json:"value" yaml:"value"`
	GasLimit         uint64 `json:"gasLimit" yaml:"gasLimit"`
	Data             string `json:"data" yaml:"data"`
	ToAmount         string `json:"toAmount,omitempty" yaml:"toAmount,omitempty"`
	ToAmountMin      string `json:"toAmountMin,omitempty" yaml:"toAmountMin,omitempty"`
	EstimatedTimeSec int    `json:"estimatedRouteDuration,omitempty" yaml:"estimatedRouteDuration,omitempty"`
}

// NewRouteView converts a route result for export
func NewRouteView(route *domain.RouteResult) RouteView {
	value := route.Value
	if value == nil {
		value = new(big.Int)
	}
	return RouteView{
		RequestID:        route.RequestID,
		QuoteID:          route.QuoteID,
		Target:           route.Target.Hex(),
		Value:            value.String(),
		GasLimit:         route.GasLimit,
		Data:             hexutil.Encode(route.Data),
		ToAmount:         route.ToAmount,
		ToAmountMin:      route.ToAmountMin,
		EstimatedTimeSec: route.EstimatedTimeSec,
	}
}

// RouteRenderer renders route service answers
type RouteRenderer struct {
	out    io.Writer
	format Format
}

// NewRouteRenderer creates a new route renderer
func NewRouteRenderer(out io.Writer, format Format) *RouteRenderer {
	return &RouteRenderer{
		out:    out,
		format: format,
	}
}

// Render writes the route
func (r *RouteRenderer) Render(route *domain.RouteResult) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, NewRouteView(route))
	}
	r.renderRoute(route)
	return nil
}

func (r *RouteRenderer) renderRoute(route *domain.RouteResult) {
	view := NewRouteView(route)

	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "🛣️  Route:")
	fmt.Fprintf(r.out, "  Request ID:  %s\n", view.RequestID)
	if view.QuoteID != "" {
		fmt.Fprintf(r.out, "  Quote ID:    %s\n", view.QuoteID)
	}
	fmt.Fprintf(r.out, "  Target:      %s\n", color.New(color.FgYellow).Sprint(view.Target))
	fmt.Fprintf(r.out, "  Value:       %s\n", FormatNative(route.Value))
	fmt.Fprintf(r.out, "  Gas limit:   %d\n", view.GasLimit)
	fmt.Fprintf(r.out, "  Calldata:    %s (%d bytes)\n", shortHex(view.Data, 8), len(route.Data))
	if view.ToAmount != "" {
		fmt.Fprintf(r.out, "  To amount:   %s (min %s)\n", view.ToAmount, view.ToAmountMin)
	}
	if view.EstimatedTimeSec > 0 {
		fmt.Fprintf(r.out, "  Est. time:   %s\n", time.Duration(view.EstimatedTimeSec)*time.Second)
	}
}

// ExecuteView is the exported form of a full route run
type ExecuteView struct {
	Plan         *PlanView  `json:"plan,omitempty" yaml:"plan,omitempty"`
	Route        *RouteView `json:"route,omitempty" yaml:"route,omitempty"`
	ApprovalTx   string     `json:"approvalTx,omitempty" yaml:"approvalTx,omitempty"`
	TxHash       string     `json:"txHash,omitempty" yaml:"txHash,omitempty"`
	ExplorerLink string     `json:"explorerLink,omitempty" yaml:"explorerLink,omitempty"`
	Status       string     `json:"status,omitempty" yaml:"status,omitempty"`
	Polls        int        `json:"polls,omitempty" yaml:"polls,omitempty"`
}

// NewExecuteView converts a run result for export
func NewExecuteView(result *usecase.ExecuteResult) ExecuteView {
	var view ExecuteView
	if result.Plan != nil {
		plan := NewPlanView(result.Plan)
		view.Plan = &plan
	}
	if result.Route != nil {
		route := NewRouteView(result.Route)
		view.Route = &route
	}
	if result.Approval != nil && result.Approval.Tx != nil {
		view.ApprovalTx = result.Approval.Tx.Hash.Hex()
	}
	if result.Tx != nil {
		view.TxHash = result.Tx.Hash.Hex()
	}
	view.ExplorerLink = result.ExplorerLink
	if result.Tracking != nil {
		view.Status = string(result.Tracking.Status)
		view.Polls = result.Tracking.Polls
	}
	return view
}

// ExecuteRenderer renders the outcome of a full route run
type ExecuteRenderer struct {
	out    io.Writer
	format Format
}

// NewExecuteRenderer creates a new run renderer
func NewExecuteRenderer(out io.Writer, format Format) *ExecuteRenderer {
	return &ExecuteRenderer{
		out:    out,
		format: format,
	}
}

// Render writes whatever part of the run completed
func (r *ExecuteRenderer) Render(result *usecase.ExecuteResult) error {
	if result == nil {
		return nil
	}
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, NewExecuteView(result))
	}

	if result.Plan != nil {
		if err := NewPlanRenderer(r.out, r.format).Render(result.Plan); err != nil {
			return err
		}
		fmt.Fprintln(r.out)
	}
	if result.Route != nil {
		(&RouteRenderer{out: r.out, format: r.format}).renderRoute(result.Route)
		fmt.Fprintln(r.out)
	}
	if result.Approval != nil {
		if result.Approval.Skipped {
			fmt.Fprintf(r.out, "Approval: skipped (%s)\n", result.Approval.Reason)
		} else if result.Approval.Tx != nil {
			fmt.Fprintf(r.out, "Approval: %s\n", result.Approval.Tx.Hash.Hex())
		}
	}
	if result.Tx != nil {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Transaction sent: %s", result.Tx.Hash.Hex())))
		fmt.Fprintf(r.out, "  Explorer: %s\n", color.New(color.FgBlue).Sprint(result.ExplorerLink))
	}
	if result.Tracking != nil {
		fmt.Fprintf(r.out, "  Status:   %s (after %d polls)\n", FormatStatus(result.Tracking.Status), result.Tracking.Polls)
	}
	return nil
}
