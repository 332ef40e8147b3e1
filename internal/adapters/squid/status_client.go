package squid

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// GetStatus asks for the current status of a routed transaction. A 404 is
// returned as a RemoteServiceError wrapping domain.ErrTransactionNotFound.
func (c *Client) GetStatus(ctx context.Context, query domain.StatusQuery) (*domain.StatusReport, error) {
	values := url.Values{}
	values.Set("transactionId", query.TransactionID)
	values.Set("requestId", query.RequestID)
	values.Set("fromChainId", strconv.FormatUint(query.FromChainID, 10))
	values.Set("toChainId", strconv.FormatUint(query.ToChainID, 10))

	var resp statusResponse
	if _, err := c.do(ctx, http.MethodGet, "/v2/status", values, nil, &resp); err != nil {
		return nil, err
	}

	return resp.toReport(), nil
}

// Ensure the client implements the interface
var _ usecase.StatusClient = (*Client)(nil)
