package render

import (
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/hookroute/internal/domain"
)

// SwapView is the exported form of swap calldata
type SwapView struct {
	Pool            string `json:"pool" yaml:"pool"`
	Fee             uint32 `json:"fee" yaml:"fee"`
	AmountOut       string `json:"amountOut" yaml:"amountOut"`
	QuotedAmountIn  string `json:"quotedAmountIn" yaml:"quotedAmountIn"`
	AmountInMaximum string `json:"amountInMaximum" yaml:"amountInMaximum"`
	Deadline        string `json:"deadline" yaml:"deadline"`
	CallData        string `json:"callData" yaml:"callData"`
}

// SwapRenderer renders exact-output swap quotes
type SwapRenderer struct {
	out    io.Writer
	format Format
}

// NewSwapRenderer creates a new swap renderer
func NewSwapRenderer(out io.Writer, format Format) *SwapRenderer {
	return &SwapRenderer{
		out:    out,
		format: format,
	}
}

// Render writes the swap
func (r *SwapRenderer) Render(swap *domain.SwapCalldata) error {
	view := SwapView{
		Pool:            swap.Pool.Address.Hex(),
		Fee:             swap.Pool.Fee,
		AmountOut:       bigString(swap.AmountOut),
		QuotedAmountIn:  bigString(swap.QuotedAmountIn),
		AmountInMaximum: bigString(swap.AmountInMaximum),
		Deadline:        bigString(swap.Deadline),
		CallData:        hexutil.Encode(swap.CallData),
	}
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, view)
	}

	fmt.Fprintf(r.out, "Pool:          %s (fee %d)\n", view.Pool, view.Fee)
	fmt.Fprintf(r.out, "Amount out:    %s\n", view.AmountOut)
	fmt.Fprintf(r.out, "Quoted in:     %s\n", view.QuotedAmountIn)
	fmt.Fprintf(r.out, "Max in:        %s\n", view.AmountInMaximum)
	if swap.Deadline != nil && swap.Deadline.IsInt64() {
		fmt.Fprintf(r.out, "Deadline:      %s\n", time.Unix(swap.Deadline.Int64(), 0).UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(r.out, "Calldata:      %s\n", view.CallData)
	return nil
}
