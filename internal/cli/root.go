package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/hookroute/internal/app"
	"github.com/trebuchet-org/hookroute/internal/cli/render"
	"github.com/trebuchet-org/hookroute/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cleanup func()

	rootCmd := &cobra.Command{
		Use:   "hookroute",
		Short: "Cross-chain routes with destination hook call chains",
		Long: `hookroute composes destination-chain hook call chains, requests a cross-chain
route for them, sends the route transaction and follows it until it settles.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			v.Set("json", format != render.FormatTable)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			cancel := func() {}
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			cleanup = func() {
				cancel()
				appInstance.Close()
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("format", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("integrator-id", "", "Route service integrator id (env INTEGRATOR_ID)")
	rootCmd.PersistentFlags().String("api-url", "", "Route service base URL")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "inspect",
		Title: "Inspection Commands",
	})

	for _, c := range []*cobra.Command{NewComposeCmd(), NewRouteCmd(), NewRunCmd(), NewStatusCmd()} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewQuoteFeeCmd(), NewSwapQuoteCmd(), NewNetworksCmd()} {
		c.GroupID = "inspect"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// outputFormat reads the --format flag
func outputFormat(cmd *cobra.Command) (render.Format, error) {
	value, err := cmd.Flags().GetString("format")
	if err != nil {
		return render.FormatTable, nil
	}
	return render.ParseFormat(value)
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
