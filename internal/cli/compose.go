package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hookroute/internal/app"
	"github.com/trebuchet-org/hookroute/internal/cli/render"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// hookFlags selects the hook attached to a route
type hookFlags struct {
	asset      string
	receiver   string
	dstEID     uint32
	lending    bool
	fundAmount string
}

func (f *hookFlags) bind(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringVar(&f.asset, prefix+"asset", "", "Deposit asset symbol or address on the destination network")
	cmd.Flags().StringVar(&f.receiver, prefix+"receiver", "", "Address credited by the hook")
	cmd.Flags().Uint32Var(&f.dstEID, prefix+"dst-eid", 0, "Relay onward to this endpoint id instead of depositing locally")
	cmd.Flags().BoolVar(&f.lending, prefix+"lending", false, "Supply the asset to the lending pool instead of the gateway")
	cmd.Flags().StringVar(&f.fundAmount, prefix+"fund-amount", "", "Pre-fund the executor with this amount for lending plans")
}

// enabled reports whether any hook option was given
func (f *hookFlags) enabled() bool {
	return f.asset != "" || f.lending || f.dstEID != 0
}

// params builds composer parameters, exactly one of the results is non-nil
func (f *hookFlags) params(ctx context.Context, a *app.App, prefix string) (*usecase.ComposeParams, *usecase.LendingParams, error) {
	if f.lending && f.dstEID != 0 {
		return nil, nil, fmt.Errorf("--%slending and --%sdst-eid cannot be combined", prefix, prefix)
	}

	receiver, err := parseAddress(prefix+"receiver", f.receiver, true)
	if err != nil {
		return nil, nil, err
	}
	asset, err := resolveAsset(ctx, a.AddressBook, a.Selector, f.asset)
	if err != nil {
		return nil, nil, err
	}

	if f.lending {
		lending := &usecase.LendingParams{Asset: asset, Receiver: receiver}
		if f.fundAmount != "" {
			if lending.FundAmount, err = parseAmount(prefix+"fund-amount", f.fundAmount); err != nil {
				return nil, nil, err
			}
		}
		return nil, lending, nil
	}

	compose := &usecase.ComposeParams{DepositAsset: asset, Receiver: receiver}
	if f.dstEID != 0 {
		eid := f.dstEID
		compose.DestinationEID = &eid
	}
	return compose, nil, nil
}

// NewComposeCmd creates the compose command
func NewComposeCmd() *cobra.Command {
	var flags hookFlags

	cmd := &cobra.Command{
		Use:   "compose [asset]",
		Short: "Compose a destination hook call chain",
		Long: `Compose the call chain the destination executor runs after a route lands.

Without --dst-eid the asset is approved and deposited to the receiver on the
destination network. With --dst-eid the plan also swaps for the relay fee and
forwards the full balance to the given endpoint. --lending supplies the asset
to the lending pool instead.

Examples:
  hookroute compose USDC --receiver 0x...
  hookroute compose USDT --receiver 0x... --dst-eid 30184 -o json
  hookroute compose USDC --receiver 0x... --lending`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				flags.asset = args[0]
			}

			plan, err := composePlan(cmd.Context(), app, &flags, "")
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return render.NewPlanRenderer(cmd.OutOrStdout(), format).Render(plan)
		},
	}

	flags.bind(cmd, "")
	cmd.Flags().Lookup("asset").Hidden = true

	return cmd
}

func composePlan(ctx context.Context, a *app.App, flags *hookFlags, prefix string) (*domain.HookPlan, error) {
	compose, lending, err := flags.params(ctx, a, prefix)
	if err != nil {
		return nil, err
	}
	return runComposer(ctx, a, compose, lending)
}

func runComposer(ctx context.Context, a *app.App, compose *usecase.ComposeParams, lending *usecase.LendingParams) (*domain.HookPlan, error) {
	if lending != nil {
		return a.ComposeHook.RunLending(ctx, *lending)
	}
	return a.ComposeHook.Run(ctx, *compose)
}
