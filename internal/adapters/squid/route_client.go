package squid

import (
	"context"
	"net/http"

	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// GetRoute requests a route and returns its transaction template together
// with the request id the status service needs later
func (c *Client) GetRoute(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResult, error) {
	payload := toRouteRequest(req)

	var resp routeResponse
	header, err := c.do(ctx, http.MethodPost, "/v2/route", nil, payload, &resp)
	if err != nil {
		return nil, err
	}

	requestID := header.Get(requestIDHeader)
	if requestID == "" {
		return nil, domain.ErrMissingRequestID
	}

	result, err := resp.toResult(requestID)
	if err != nil {
		return nil, err
	}

	c.log.Debug("route received", "requestId", requestID, "target", result.Target.Hex(), "gasLimit", result.GasLimit)
	return result, nil
}

// Ensure the client implements the interface
var _ usecase.RouteClient = (*Client)(nil)
