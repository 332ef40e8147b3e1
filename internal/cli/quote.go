package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hookroute/internal/cli/render"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// NewQuoteFeeCmd creates the quote-fee command
func NewQuoteFeeCmd() *cobra.Command {
	var (
		receiver string
		dstEID   uint32
	)

	cmd := &cobra.Command{
		Use:   "quote-fee [asset]",
		Short: "Quote the native fee of relaying a deposit asset onward",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if dstEID == 0 {
				return fmt.Errorf("--dst-eid is required")
			}

			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			asset, err := resolveAsset(cmd.Context(), app.AddressBook, app.Selector, ref)
			if err != nil {
				return err
			}
			to, err := parseAddress("receiver", receiver, true)
			if err != nil {
				return err
			}

			quote, err := app.QuoteRelayFee.Run(cmd.Context(), usecase.QuoteFeeParams{
				Asset:    asset,
				Receiver: to,
				DstEID:   dstEID,
			})
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return render.NewFeeRenderer(cmd.OutOrStdout(), format).Render(asset, dstEID, quote)
		},
	}

	cmd.Flags().StringVar(&receiver, "receiver", "", "Receiver on the destination endpoint")
	cmd.Flags().Uint32Var(&dstEID, "dst-eid", 0, "Destination endpoint id")

	return cmd
}

// NewSwapQuoteCmd creates the swap-quote command
func NewSwapQuoteCmd() *cobra.Command {
	var (
		tokenIn   string
		tokenOut  string
		amountOut string
		recipient string
		fee       uint32
	)

	cmd := &cobra.Command{
		Use:   "swap-quote",
		Short: "Quote an exact-output swap and print the router calldata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.SwapParams{Fee: fee}
			if params.TokenIn, err = parseAddress("token-in", tokenIn, true); err != nil {
				return err
			}
			if params.TokenOut, err = parseAddress("token-out", tokenOut, true); err != nil {
				return err
			}
			if params.Recipient, err = parseAddress("recipient", recipient, true); err != nil {
				return err
			}
			if params.AmountOut, err = parseAmount("amount-out", amountOut); err != nil {
				return err
			}

			swap, err := app.BuildSwapCalldata.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return render.NewSwapRenderer(cmd.OutOrStdout(), format).Render(swap)
		},
	}

	cmd.Flags().StringVar(&tokenIn, "token-in", "", "Token paid into the pool")
	cmd.Flags().StringVar(&tokenOut, "token-out", "", "Token received from the pool")
	cmd.Flags().StringVar(&amountOut, "amount-out", "", "Exact output amount in base units")
	cmd.Flags().StringVar(&recipient, "recipient", "", "Recipient of the output")
	cmd.Flags().Uint32Var(&fee, "fee", 0, "Pool fee tier, defaults to the configured tier")

	return cmd
}
