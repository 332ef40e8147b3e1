package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// RenderNetworksList renders the list of configured networks
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured, add [rpc_endpoints] to hookroute.toml or set ALCHEMY_API_KEY")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		switch {
		case network.Error != nil:
			fmt.Fprintf(r.out, "  ❌ %s - Chain ID: %d - Error: %v\n", network.Name, network.ChainID, network.Error)
		case network.LiveChainID != 0:
			fmt.Fprintf(r.out, "  ✅ %s - Chain ID: %d\n", network.Name, network.ChainID)
		default:
			fmt.Fprintf(r.out, "  • %s - Chain ID: %d\n", network.Name, network.ChainID)
		}
	}

	return nil
}
