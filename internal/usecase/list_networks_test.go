package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

func TestListNetworks(t *testing.T) {
	cfg := &config.RuntimeConfig{
		Networks: map[uint64]*config.Network{
			42161: {ChainID: 42161, Name: "arbitrum", RPCURL: "http://arb"},
			8453:  {ChainID: 8453, Name: "base", RPCURL: "http://base"},
			10:    {ChainID: 10, Name: "optimism", RPCURL: "http://down"},
		},
	}
	checker := &mockChecker{chainIDs: map[string]uint64{
		"http://arb":  42161,
		"http://base": 1,
	}}

	t.Run("sorted without checks", func(t *testing.T) {
		result, err := NewListNetworks(cfg, checker).Run(context.Background(), ListNetworksParams{})
		require.NoError(t, err)
		require.Len(t, result.Networks, 3)
		assert.Equal(t, uint64(10), result.Networks[0].ChainID)
		assert.Equal(t, uint64(8453), result.Networks[1].ChainID)
		assert.Equal(t, uint64(42161), result.Networks[2].ChainID)
		for _, n := range result.Networks {
			assert.NoError(t, n.Error)
			assert.Zero(t, n.LiveChainID)
		}
	})

	t.Run("checks endpoints", func(t *testing.T) {
		result, err := NewListNetworks(cfg, checker).Run(context.Background(), ListNetworksParams{Check: true})
		require.NoError(t, err)

		assert.Error(t, result.Networks[0].Error, "unreachable")
		assert.ErrorContains(t, result.Networks[1].Error, "chain ID mismatch")
		assert.NoError(t, result.Networks[2].Error)
		assert.Equal(t, uint64(42161), result.Networks[2].LiveChainID)
	})
}
