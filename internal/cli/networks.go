package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hookroute/internal/cli/render"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List configured RPC endpoints",
		Long: `List all networks configured in the [rpc_endpoints] section of hookroute.toml.

With --check every endpoint is dialed and the chain id it serves is compared
with the configured one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{Check: check})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Query each endpoint for its chain id")

	return cmd
}
