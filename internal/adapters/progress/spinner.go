package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// SpinnerSink renders deploy and verify progress. Interactive terminals get
// a spinner; otherwise every event is printed as a plain line.
type SpinnerSink struct {
	out         io.Writer
	interactive bool

	mu         sync.Mutex
	spinner    *spinner.Spinner
	stageStart time.Time
}

// NewSpinnerSink creates a progress sink writing to out
func NewSpinnerSink(out io.Writer, interactive bool) *SpinnerSink {
	return &SpinnerSink{out: out, interactive: interactive}
}

// OnProgress handles progress events
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := event.Message
	if event.Total > 1 {
		message = fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, message)
	}

	if event.Stage == usecase.StageCompleted {
		s.stop()
		elapsed := ""
		if !s.stageStart.IsZero() {
			elapsed = fmt.Sprintf(" (%s)", time.Since(s.stageStart).Round(time.Millisecond))
		}
		fmt.Fprintf(s.out, "%s %s%s\n", color.GreenString("✓"), message, elapsed)
		s.stageStart = time.Time{}
		return
	}

	if s.stageStart.IsZero() {
		s.stageStart = time.Now()
	}

	if !s.interactive || !event.Spinner {
		s.stop()
		if message != "" {
			fmt.Fprintln(s.out, message)
		}
		return
	}

	if s.spinner == nil {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spinner.Writer = s.out
		_ = s.spinner.Color("cyan", "bold")
	}
	s.spinner.Suffix = " " + message
	if !s.spinner.Active() {
		s.spinner.Start()
	}
}

// Info prints an info message
func (s *SpinnerSink) Info(message string) {
	s.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (s *SpinnerSink) Error(message string) {
	s.print(color.New(color.FgRed), message)
}

// Stop halts the spinner if one is running
func (s *SpinnerSink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
}

func (s *SpinnerSink) print(c *color.Color, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasActive := s.spinner != nil && s.spinner.Active()
	if wasActive {
		s.spinner.Stop()
	}

	c.Fprintln(s.out, message)

	if wasActive {
		s.spinner.Start()
	}
}

func (s *SpinnerSink) stop() {
	if s.spinner != nil && s.spinner.Active() {
		s.spinner.Stop()
	}
}

var _ usecase.ProgressSink = (*SpinnerSink)(nil)
