// Package display handles terminal output: errors, assistant replies,
// optional markdown rendering, and progress spinners.
package display

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
)

var renderer *glamour.TermRenderer

// InitRenderer sets up the markdown renderer. Called once when the
// render flag is enabled; rendering falls back to plain output on error.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	renderer = r
	return nil
}

// ShowError prints an error message to stderr.
func ShowError(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

// ShowContent prints an assistant reply as plain text.
func ShowContent(content string) {
	fmt.Println(content)
}

// ShowContentRendered prints an assistant reply as rendered markdown,
// falling back to plain text when the renderer is unavailable.
func ShowContentRendered(content string) {
	if renderer == nil {
		ShowContent(content)
		return
	}
	out, err := renderer.Render(content)
	if err != nil {
		ShowContent(content)
		return
	}
	fmt.Print(out)
}

// Spinner wraps a progress spinner shown while a request is in flight.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with the given status message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins the spinner animation.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop halts the spinner and clears its line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}
