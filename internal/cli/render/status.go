package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// StatusView is the exported form of a tracking result
type StatusView struct {
	Status    string `json:"status" yaml:"status"`
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	AxelarURL string `json:"axelarUrl,omitempty" yaml:"axelarUrl,omitempty"`
	Polls     int    `json:"polls" yaml:"polls"`
	NotFound  int    `json:"notFound" yaml:"notFound"`
}

// StatusRenderer renders the outcome of the status loop
type StatusRenderer struct {
	out    io.Writer
	format Format
}

// NewStatusRenderer creates a new status renderer
func NewStatusRenderer(out io.Writer, format Format) *StatusRenderer {
	return &StatusRenderer{
		out:    out,
		format: format,
	}
}

// Render writes the final status
func (r *StatusRenderer) Render(result *usecase.TrackResult) error {
	view := StatusView{
		Status:   string(result.Status),
		Polls:    result.Polls,
		NotFound: result.NotFound,
	}
	if result.Report != nil {
		view.ID = result.Report.ID
		view.AxelarURL = result.Report.AxelarURL
	}

	if r.format != FormatTable {
		return writeStructured(r.out, r.format, view)
	}

	fmt.Fprintf(r.out, "Status: %s\n", FormatStatus(result.Status))
	if view.ID != "" {
		fmt.Fprintf(r.out, "  ID:       %s\n", view.ID)
	}
	if view.AxelarURL != "" {
		fmt.Fprintf(r.out, "  Explorer: %s\n", color.New(color.FgBlue).Sprint(view.AxelarURL))
	}
	color.New(color.FgHiBlack).Fprintf(r.out, "  %d polls, %d not found\n", view.Polls, view.NotFound)
	return nil
}
