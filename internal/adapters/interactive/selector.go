package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/hookroute/internal/domain"
	"github.com/trebuchet-org/hookroute/internal/domain/config"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// ErrNonInteractive is returned when a prompt is needed in non-interactive mode
var ErrNonInteractive = errors.New("interactive selection not available in non-interactive mode")

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectAsset asks the user to pick one of assets
func (s *SelectorAdapter) SelectAsset(ctx context.Context, assets []domain.Asset, prompt string) (domain.Asset, error) {
	if len(assets) == 0 {
		return domain.Asset{}, fmt.Errorf("no assets provided for selection")
	}

	if len(assets) == 1 {
		return assets[0], nil
	}

	if s.config.NonInteractive {
		return domain.Asset{}, ErrNonInteractive
	}

	options := formatAssetOptions(assets)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return domain.Asset{}, fmt.Errorf("selection cancelled: %w", err)
	}

	return assets[index], nil
}

// Confirm asks a yes/no question. Non-interactive runs never confirm implicitly.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return false, ErrNonInteractive
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// SuggestAsset returns the symbol of the closest supported asset or ""
func SuggestAsset(ref string, assets []domain.Asset) string {
	if ref == "" || len(assets) == 0 {
		return ""
	}

	symbols := make([]string, len(assets))
	for i, a := range assets {
		symbols[i] = strings.ToUpper(a.Symbol)
	}

	matches := fuzzy.Find(strings.ToUpper(ref), symbols)
	if len(matches) == 0 {
		return ""
	}
	return assets[matches[0].Index].Symbol
}

// formatAssetOptions renders "SYMBOL  Name (0xaddress)"
func formatAssetOptions(assets []domain.Asset) []string {
	options := make([]string, len(assets))
	for i, asset := range assets {
		symbol := color.New(color.FgWhite, color.Bold).Sprint(asset.Symbol)
		addr := color.New(color.FgBlue).Sprint(asset.Address.Hex())
		if asset.Name != "" {
			options[i] = fmt.Sprintf("%s  %s (%s)", symbol, asset.Name, addr)
		} else {
			options[i] = fmt.Sprintf("%s (%s)", symbol, addr)
		}
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.InteractiveSelector = (*SelectorAdapter)(nil)
