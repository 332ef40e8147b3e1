package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/hookroute/internal/adapters/abi"
	"github.com/trebuchet-org/hookroute/internal/adapters/blockchain"
	"github.com/trebuchet-org/hookroute/internal/adapters/clock"
	"github.com/trebuchet-org/hookroute/internal/adapters/interactive"
	"github.com/trebuchet-org/hookroute/internal/adapters/progress"
	"github.com/trebuchet-org/hookroute/internal/adapters/squid"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// ProvideAddressBook provides the address book of the home network
func ProvideAddressBook() *domain.AddressBook {
	return domain.DefaultAddressBook()
}

// EncodingSet provides calldata encoding
var EncodingSet = wire.NewSet(
	abi.NewEncoder,
	wire.Bind(new(usecase.CallEncoder), new(*abi.Encoder)),
)

// BlockchainSet provides RPC backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClientProvider,

	blockchain.NewFeeQuoterAdapter,
	wire.Bind(new(usecase.FeeQuoter), new(*blockchain.FeeQuoterAdapter)),

	blockchain.NewSwapQuoterAdapter,
	wire.Bind(new(usecase.SwapQuoter), new(*blockchain.SwapQuoterAdapter)),

	blockchain.NewWallet,
	wire.Bind(new(usecase.TransactionSender), new(*blockchain.Wallet)),
	wire.Bind(new(usecase.TokenAllowance), new(*blockchain.Wallet)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.ChainChecker), new(*blockchain.CheckerAdapter)),
)

// RouteServiceSet provides the route and status service client
var RouteServiceSet = wire.NewSet(
	squid.NewClient,
	wire.Bind(new(usecase.RouteClient), new(*squid.Client)),
	wire.Bind(new(usecase.StatusClient), new(*squid.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// RuntimeSet provides time and progress reporting
var RuntimeSet = wire.NewSet(
	clock.NewSystemClock,
	wire.Bind(new(usecase.Clock), new(*clock.SystemClock)),

	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ProvideAddressBook,
	EncodingSet,
	BlockchainSet,
	RouteServiceSet,
	InteractiveSet,
	RuntimeSet,
)
