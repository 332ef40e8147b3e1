package progress

import (
	"github.com/trebuchet-org/hookroute/internal/domain/config"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// NewProgressSink uses the spinner on interactive terminals and discards
// progress for JSON output and non-interactive runs
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON || cfg.NonInteractive {
		return usecase.NopProgress{}
	}
	return NewSpinnerProgressReporter()
}
