package cli

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hookroute/internal/cli/render"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var (
		requestID string
		fromChain uint64
		toChain   uint64
	)

	cmd := &cobra.Command{
		Use:   "status <tx-hash>",
		Short: "Follow a routed transaction until it settles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			hash, err := hexutil.Decode(args[0])
			if err != nil || len(hash) != 32 {
				return fmt.Errorf("invalid transaction hash %q", args[0])
			}
			if requestID == "" {
				return fmt.Errorf("--request-id is required")
			}

			result, trackErr := app.TrackStatus.Run(cmd.Context(), usecase.TrackParams{
				TxHash:    args[0],
				RequestID: requestID,
				FromChain: fromChain,
				ToChain:   toChain,
			})
			if result == nil {
				return trackErr
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if err := render.NewStatusRenderer(cmd.OutOrStdout(), format).Render(result); err != nil {
				return err
			}
			if errors.Is(trackErr, domain.ErrPollLimitReached) {
				fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning("Poll limit reached before the transfer settled"))
				return nil
			}
			return trackErr
		},
	}

	cmd.Flags().StringVar(&requestID, "request-id", "", "Request id returned with the route")
	cmd.Flags().Uint64Var(&fromChain, "from-chain", domain.ChainIDBase, "Source chain id")
	cmd.Flags().Uint64Var(&toChain, "to-chain", domain.ChainIDArbitrum, "Destination chain id")

	return cmd
}
