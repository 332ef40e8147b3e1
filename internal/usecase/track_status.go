package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
)

// TrackParams identifies a routed transaction to follow
type TrackParams struct {
	TxHash    string
	RequestID string
	FromChain uint64
	ToChain   uint64
}

// TrackResult is the outcome of the status loop
type TrackResult struct {
	Status domain.TransactionStatus
	// Report is the last answer of the status service, nil if it never found the transaction
	Report *domain.StatusReport
	// Polls is the number of status queries made
	Polls int
	// NotFound is the number of queries answered with not found
	NotFound int
}

// TrackStatus polls the status service until the routed transaction settles
type TrackStatus struct {
	client   StatusClient
	clock    Clock
	policy   config.StatusPolicy
	progress ProgressSink
	log      *slog.Logger
}

// NewTrackStatus creates a new status loop. Unset policy fields fall back to defaults.
func NewTrackStatus(client StatusClient, clock Clock, cfg *config.RuntimeConfig, progress ProgressSink, log *slog.Logger) *TrackStatus {
	policy := cfg.Status
	defaults := config.DefaultStatusPolicy()
	if policy.PollInterval <= 0 {
		policy.PollInterval = defaults.PollInterval
	}
	if policy.NotFoundInterval <= 0 {
		policy.NotFoundInterval = defaults.NotFoundInterval
	}
	if policy.NotFoundLimit <= 0 {
		policy.NotFoundLimit = defaults.NotFoundLimit
	}
	if policy.MaxPolls < 0 {
		policy.MaxPolls = 0
	}

	return &TrackStatus{
		client:   client,
		clock:    clock,
		policy:   policy,
		progress: progress,
		log:      log.With("component", "TrackStatus"),
	}
}

// Run polls until a terminal status, the not-found budget is spent, the poll
// limit is hit or ctx is done. Not-found answers are never reset by later
// answers, so the budget counts every one of them over the whole run.
func (uc *TrackStatus) Run(ctx context.Context, params TrackParams) (*TrackResult, error) {
	query := domain.StatusQuery{
		TransactionID: params.TxHash,
		RequestID:     params.RequestID,
		FromChainID:   params.FromChain,
		ToChainID:     params.ToChain,
	}
	if err := validateStruct("status query", query); err != nil {
		return nil, err
	}

	result := &TrackResult{}
	for {
		report, err := uc.client.GetStatus(ctx, query)
		result.Polls++

		notFound := errors.Is(err, domain.ErrTransactionNotFound) ||
			(err == nil && report != nil && report.Status.IsNotFound())

		switch {
		case notFound:
			result.NotFound++
			result.Status = domain.StatusNotFound
			if report != nil {
				result.Report = report
			}
			if result.NotFound >= uc.policy.NotFoundLimit {
				uc.log.Warn("transaction not found, giving up", "tx", params.TxHash, "attempts", result.NotFound)
				return result, nil
			}
			if err := uc.pollLimit(result); err != nil {
				return result, err
			}
			uc.report(ctx, fmt.Sprintf("not indexed yet (%d/%d)", result.NotFound, uc.policy.NotFoundLimit))
			if err := uc.clock.Sleep(ctx, uc.policy.NotFoundInterval); err != nil {
				return result, err
			}
			continue

		case err != nil:
			return result, fmt.Errorf("failed to get status: %w", err)
		case report == nil:
			return result, fmt.Errorf("failed to get status: empty response")
		}

		result.Status = report.Status
		result.Report = report
		uc.log.Debug("route status", "tx", params.TxHash, "status", report.Status)

		if report.Status.IsTerminal() {
			return result, nil
		}
		if err := uc.pollLimit(result); err != nil {
			return result, err
		}

		uc.report(ctx, fmt.Sprintf("status %s", report.Status))
		if err := uc.clock.Sleep(ctx, uc.policy.PollInterval); err != nil {
			return result, err
		}
	}
}

func (uc *TrackStatus) pollLimit(result *TrackResult) error {
	if uc.policy.MaxPolls > 0 && result.Polls >= uc.policy.MaxPolls {
		return fmt.Errorf("%w after %d queries, last status %s", domain.ErrPollLimitReached, result.Polls, result.Status)
	}
	return nil
}

func (uc *TrackStatus) report(ctx context.Context, message string) {
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageTracking,
		Message: message,
		Spinner: true,
	})
}
