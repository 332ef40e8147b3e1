//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/hookroute/internal/adapters"
	"github.com/trebuchet-org/hookroute/internal/config"
	"github.com/trebuchet-org/hookroute/internal/logging"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewQuoteRelayFee,
		usecase.NewBuildSwapCalldata,
		usecase.NewComposeHook,
		usecase.NewGetRoute,
		usecase.NewTrackStatus,
		usecase.NewApproveSpending,
		usecase.NewExecuteRoute,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
