package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/hookroute/internal/usecase"
)

// SpinnerProgressReporter renders execution stages behind a spinner
type SpinnerProgressReporter struct {
	spinner      *spinner.Spinner
	out          io.Writer
	stages       []stageInfo
	currentStage string
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

var stageNames = map[string]string{
	usecase.StageComposing: "Composing",
	usecase.StageRouting:   "Routing",
	usecase.StageApproving: "Approving",
	usecase.StageSending:   "Sending",
	usecase.StageTracking:  "Tracking",
	usecase.StageCompleted: "Completed",
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter on stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     os.Stderr,
		stages:  []stageInfo{},
	}
}

// OnProgress handles progress events. A new stage closes the previous one.
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != "" && event.Stage != r.currentStage {
		r.enterStage(event.Stage)
	}

	if len(r.stages) > 0 {
		r.stages[len(r.stages)-1].Message = event.Message
	}

	if event.Stage == usecase.StageCompleted {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		return
	}

	if event.Spinner {
		r.updateSpinnerDisplay()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

func (r *SpinnerProgressReporter) printPaused(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) enterStage(stage string) {
	if len(r.stages) > 0 {
		idx := len(r.stages) - 1
		r.stages[idx].EndTime = time.Now()
		r.stages[idx].Status = "completed"
	}

	r.currentStage = stage
	r.stages = append(r.stages, stageInfo{
		Stage:     stage,
		StartTime: time.Now(),
		Status:    "running",
	})
}

// updateSpinnerDisplay shows the stage trail followed by the latest message
func (r *SpinnerProgressReporter) updateSpinnerDisplay() {
	var display string

	for i, stage := range r.stages {
		name, ok := stageNames[stage.Stage]
		if !ok {
			continue
		}

		var icon string
		var stageColor *color.Color
		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}

		if i > 0 {
			display += " → "
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(name), duration)
	}

	if n := len(r.stages); n > 0 && r.stages[n-1].Message != "" {
		display += " " + color.New(color.Faint).Sprint(r.stages[n-1].Message)
	}

	r.spinner.Suffix = " " + display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
