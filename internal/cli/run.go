package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hookroute/internal/app"
	"github.com/trebuchet-org/hookroute/internal/cli/render"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

const hookPrefix = "hook-"

// routeFlags describe the transfer a route is requested for
type routeFlags struct {
	fromChain   uint64
	toChain     uint64
	fromToken   string
	toToken     string
	amount      string
	fromAddress string
	toAddress   string
	hook        hookFlags
}

func (f *routeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.fromChain, "from-chain", domain.ChainIDBase, "Source chain id")
	cmd.Flags().Uint64Var(&f.toChain, "to-chain", domain.ChainIDArbitrum, "Destination chain id")
	cmd.Flags().StringVar(&f.fromToken, "from-token", "", "Token sent on the source chain")
	cmd.Flags().StringVar(&f.toToken, "to-token", "", "Token received on the destination chain")
	cmd.Flags().StringVar(&f.amount, "amount", "", "Amount of --from-token in base units")
	cmd.Flags().StringVar(&f.toAddress, "to-address", "", "Recipient on the destination chain, defaults to the sender")
	f.hook.bind(cmd, hookPrefix)
}

// execute builds the full run parameters
func (f *routeFlags) execute(ctx context.Context, a *app.App) (usecase.ExecuteParams, error) {
	params := usecase.ExecuteParams{
		FromChain: f.fromChain,
		ToChain:   f.toChain,
	}

	var err error
	if params.FromToken, err = parseAddress("from-token", f.fromToken, true); err != nil {
		return params, err
	}
	if params.ToToken, err = parseAddress("to-token", f.toToken, true); err != nil {
		return params, err
	}
	if params.FromAmount, err = parseAmount("amount", f.amount); err != nil {
		return params, err
	}
	if params.ToAddress, err = parseAddress("to-address", f.toAddress, false); err != nil {
		return params, err
	}

	if f.hook.enabled() {
		if f.hook.receiver == "" {
			f.hook.receiver = f.toAddress
		}
		params.Hook, params.Lending, err = f.hook.params(ctx, a, hookPrefix)
		if err != nil {
			return params, err
		}
	}
	return params, nil
}

// NewRouteCmd creates the route command
func NewRouteCmd() *cobra.Command {
	var flags routeFlags

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Request a route without sending it",
		Long: `Request a route transaction from the route service and print it.

The hook flags attach a composed call chain as the post hook, exactly as
"hookroute run" would send it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params, err := flags.execute(cmd.Context(), app)
			if err != nil {
				return err
			}
			from, err := parseAddress("from-address", flags.fromAddress, true)
			if err != nil {
				return err
			}
			to := params.ToAddress
			if to == (common.Address{}) {
				to = from
			}

			req := &domain.RouteRequest{
				FromChain:               params.FromChain,
				ToChain:                 params.ToChain,
				FromToken:               params.FromToken,
				ToToken:                 params.ToToken,
				FromAmount:              params.FromAmount,
				FromAddress:             from,
				ToAddress:               to,
				Slippage:                app.Config.Route.Slippage,
				EnableExpress:           app.Config.Route.EnableExpress,
				ReceiveGasOnDestination: app.Config.Route.ReceiveGasOnDestination,
			}
			if params.Hook != nil || params.Lending != nil {
				if req.PostHook, err = runComposer(cmd.Context(), app, params.Hook, params.Lending); err != nil {
					return err
				}
			}

			route, err := app.GetRoute.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return render.NewRouteRenderer(cmd.OutOrStdout(), format).Render(route)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&flags.fromAddress, "from-address", "", "Sender on the source chain")

	return cmd
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var (
		flags routeFlags
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compose, route, send and track a transfer",
		Long: `Run a full transfer with the configured signer (HOOKROUTE_PRIVATE_KEY or PRIVATE_KEY):

  1. compose the hook plan when hook flags are given
  2. request the route
  3. approve the route target for the source amount if needed
  4. send the route transaction with a doubled gas price
  5. poll the status service until the transfer settles

Examples:
  hookroute run --from-token 0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913 \
    --to-token 0xaf88d065e77c8cC2239327C5EDb3A432268e5831 --amount 1000000 \
    --hook-asset USDC --hook-receiver 0x...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params, err := flags.execute(cmd.Context(), app)
			if err != nil {
				return err
			}
			params.SkipConfirm = yes

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			result, runErr := app.ExecuteRoute.Run(cmd.Context(), params)
			if errors.Is(runErr, usecase.ErrExecutionCancelled) {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning("Cancelled, nothing was sent"))
				return nil
			}
			if err := render.NewExecuteRenderer(cmd.OutOrStdout(), format).Render(result); err != nil {
				return err
			}
			return runErr
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Send without asking for confirmation")

	return cmd
}
