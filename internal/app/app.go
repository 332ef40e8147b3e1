package app

import (
	"github.com/trebuchet-org/hookroute/internal/adapters/blockchain"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config      *config.RuntimeConfig
	AddressBook *domain.AddressBook

	// Shared dependencies
	Selector usecase.InteractiveSelector
	Progress usecase.ProgressSink

	// Use cases
	QuoteRelayFee     *usecase.QuoteRelayFee
	BuildSwapCalldata *usecase.BuildSwapCalldata
	ComposeHook       *usecase.ComposeHook
	GetRoute          *usecase.GetRoute
	TrackStatus       *usecase.TrackStatus
	ApproveSpending   *usecase.ApproveSpending
	ExecuteRoute      *usecase.ExecuteRoute
	ListNetworks      *usecase.ListNetworks

	// clients is closed when the command finishes
	clients *blockchain.ClientProvider
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	book *domain.AddressBook,
	selector usecase.InteractiveSelector,
	progress usecase.ProgressSink,
	quoteRelayFee *usecase.QuoteRelayFee,
	buildSwapCalldata *usecase.BuildSwapCalldata,
	composeHook *usecase.ComposeHook,
	getRoute *usecase.GetRoute,
	trackStatus *usecase.TrackStatus,
	approveSpending *usecase.ApproveSpending,
	executeRoute *usecase.ExecuteRoute,
	listNetworks *usecase.ListNetworks,
	clients *blockchain.ClientProvider,
) (*App, error) {
	return &App{
		Config:            cfg,
		AddressBook:       book,
		Selector:          selector,
		Progress:          progress,
		QuoteRelayFee:     quoteRelayFee,
		BuildSwapCalldata: buildSwapCalldata,
		ComposeHook:       composeHook,
		GetRoute:          getRoute,
		TrackStatus:       trackStatus,
		ApproveSpending:   approveSpending,
		ExecuteRoute:      executeRoute,
		ListNetworks:      listNetworks,
		clients:           clients,
	}, nil
}

// Close releases the RPC connections opened by the run
func (a *App) Close() {
	if a.clients != nil {
		a.clients.Close()
	}
}
