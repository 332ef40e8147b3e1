package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Check dials every endpoint and compares the chain id it serves
	Check bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	ChainID uint64
	RPCURL  string
	// LiveChainID is what the endpoint reported, zero when not checked
	LiveChainID uint64
	Error       error
}

// ListNetworks is a use case for listing configured networks
type ListNetworks struct {
	networks map[uint64]*config.Network
	checker  ChainChecker
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, checker ChainChecker) *ListNetworks {
	return &ListNetworks{
		networks: cfg.Networks,
		checker:  checker,
	}
}

// Run lists networks ordered by chain id
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networks := make([]NetworkStatus, 0, len(uc.networks))
	for chainID, network := range uc.networks {
		status := NetworkStatus{
			Name:    network.Name,
			ChainID: chainID,
			RPCURL:  network.RPCURL,
		}

		if params.Check {
			live, err := uc.checker.ChainID(ctx, network.RPCURL)
			switch {
			case err != nil:
				status.Error = err
			case live != chainID:
				status.LiveChainID = live
				status.Error = fmt.Errorf("chain ID mismatch: expected %d, got %d", chainID, live)
			default:
				status.LiveChainID = live
			}
		}

		networks = append(networks, status)
	}

	sort.Slice(networks, func(i, j int) bool {
		return networks[i].ChainID < networks[j].ChainID
	})

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
