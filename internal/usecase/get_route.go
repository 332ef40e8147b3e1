package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/hookroute/internal/domain"
)

// GetRoute validates a route request and asks the route service for it
type GetRoute struct {
	client RouteClient
	log    *slog.Logger
}

// NewGetRoute creates a new route use case
func NewGetRoute(client RouteClient, log *slog.Logger) *GetRoute {
	return &GetRoute{
		client: client,
		log:    log.With("component", "GetRoute"),
	}
}

// Run validates req before any HTTP call and returns the transaction template
func (uc *GetRoute) Run(ctx context.Context, req *domain.RouteRequest) (*domain.RouteResult, error) {
	if req == nil {
		return nil, fmt.Errorf("route request is required")
	}
	if err := validateStruct("route request", req); err != nil {
		return nil, err
	}
	if req.FromAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: fromAmount must be positive", domain.ErrInvalidAmount)
	}
	if req.PostHook != nil {
		if req.PostHook.ChainID != req.ToChain {
			return nil, &domain.PlanConstructionError{
				Step:   -1,
				Reason: fmt.Sprintf("hook executes on chain %d but the route ends on %d", req.PostHook.ChainID, req.ToChain),
			}
		}
		if err := req.PostHook.Validate(); err != nil {
			return nil, err
		}
	}

	uc.log.Debug("requesting route", "fromChain", req.FromChain, "toChain", req.ToChain, "amount", req.FromAmount, "hook", req.PostHook != nil)

	result, err := uc.client.GetRoute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return result, nil
}
