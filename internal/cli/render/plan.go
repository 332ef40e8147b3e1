package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/hookroute/internal/domain"
)

// PlanView is the exported form of a hook plan
type PlanView struct {
	Kind          string     `json:"kind" yaml:"kind"`
	ChainID       uint64     `json:"chainId" yaml:"chainId"`
	Provider      string     `json:"provider" yaml:"provider"`
	Description   string     `json:"description" yaml:"description"`
	LogoURI       string     `json:"logoURI,omitempty" yaml:"logoURI,omitempty"`
	InputAsset    string     `json:"inputAsset" yaml:"inputAsset"`
	FundingAsset  string     `json:"fundingAsset,omitempty" yaml:"fundingAsset,omitempty"`
	FundingAmount string     `json:"fundingAmount,omitempty" yaml:"fundingAmount,omitempty"`
	NativeFee     string     `json:"nativeFee,omitempty" yaml:"nativeFee,omitempty"`
	EstimatedGas  uint64     `json:"estimatedGas" yaml:"estimatedGas"`
	Calls         []CallView `json:"calls" yaml:"calls"`
}

// CallView is the exported form of one hook call
type CallView struct {
	Label        string `json:"label" yaml:"label"`
	CallType     string `json:"callType" yaml:"callType"`
	Target       string `json:"target" yaml:"target"`
	Value        string `json:"value" yaml:"value"`
	CallData     string `json:"callData" yaml:"callData"`
	EstimatedGas uint64 `json:"estimatedGas" yaml:"estimatedGas"`
	// BalanceOf and ByteOffset are set for full balance calls
	BalanceOf  string `json:"balanceOf,omitempty" yaml:"balanceOf,omitempty"`
	ByteOffset *int   `json:"byteOffset,omitempty" yaml:"byteOffset,omitempty"`
}

// NewPlanView converts a plan for export
func NewPlanView(plan *domain.HookPlan) PlanView {
	view := PlanView{
		Kind:          string(plan.Kind),
		ChainID:       plan.ChainID,
		Provider:      plan.Provider,
		Description:   plan.Description,
		LogoURI:       plan.LogoURI,
		InputAsset:    plan.InputAsset.Address.Hex(),
		FundingAmount: bigString(plan.FundingAmount),
		NativeFee:     bigString(plan.NativeFee),
		EstimatedGas:  plan.TotalEstimatedGas(),
		Calls: lo.Map(plan.Calls, func(c domain.ChainCall, _ int) CallView {
			view := CallView{
				Label:        c.Label,
				CallType:     c.Kind.String(),
				Target:       c.Target.Hex(),
				Value:        lo.Ternary(c.Value == nil, "0", bigString(c.Value)),
				CallData:     hexutil.Encode(c.CallData),
				EstimatedGas: c.EstimatedGas,
			}
			if c.Substitution != nil {
				offset := c.Substitution.ByteOffset()
				view.BalanceOf = c.Substitution.Asset.Address.Hex()
				view.ByteOffset = &offset
			}
			return view
		}),
	}
	if plan.FundingAsset != nil {
		view.FundingAsset = plan.FundingAsset.Address.Hex()
	}
	return view
}

// PlanRenderer renders composed hook plans
type PlanRenderer struct {
	out    io.Writer
	format Format
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer, format Format) *PlanRenderer {
	return &PlanRenderer{
		out:    out,
		format: format,
	}
}

// Render writes the plan
func (r *PlanRenderer) Render(plan *domain.HookPlan) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, NewPlanView(plan))
	}

	color.New(color.Bold).Fprintf(r.out, "📋 Hook Plan (%s on chain %d):\n", plan.Kind, plan.ChainID)
	fmt.Fprintf(r.out, "  Provider:    %s\n", plan.Provider)
	fmt.Fprintf(r.out, "  Description: %s\n", plan.Description)
	fmt.Fprintf(r.out, "  Input:       %s\n", color.New(color.FgYellow).Sprint(plan.InputAsset))
	if plan.FundingAsset != nil {
		fmt.Fprintf(r.out, "  Funding:     %s\n", FormatAssetAmount(plan.FundingAmount, *plan.FundingAsset))
	}
	if plan.NativeFee != nil {
		fmt.Fprintf(r.out, "  Relay fee:   %s\n", FormatNative(plan.NativeFee))
	}
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, renderCallTable(plan.Calls))
	fmt.Fprintf(r.out, "\nTotal estimated gas: %d\n", plan.TotalEstimatedGas())
	return nil
}

func renderCallTable(calls []domain.ChainCall) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight:     "   ",
		MiddleHorizontal: "─",
	}
	t.Style().Options.SeparateHeader = true

	t.AppendHeader(table.Row{"#", "Step", "Call type", "Target", "Value", "Gas", "Balance of"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for i, c := range calls {
		balanceOf := ""
		if c.Substitution != nil {
			balanceOf = fmt.Sprintf("%s @%d", c.Substitution.Asset.Symbol, c.Substitution.ByteOffset())
		}
		t.AppendRow(table.Row{
			i + 1,
			c.Label,
			c.Kind.String(),
			shortHex(c.Target.Hex(), 6),
			lo.Ternary(c.Value == nil || c.Value.Sign() == 0, "0", FormatNative(c.Value)),
			c.EstimatedGas,
			balanceOf,
		})
	}
	return t.Render()
}

func bigString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}
