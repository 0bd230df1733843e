package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/motomind/motomind/internal/ui/styles"
	"golang.org/x/term"
)

// Spinner provides a simple animated spinner for long operations such as
// loading events from the database. It draws on stderr so stdout stays
// clean for piping.
type Spinner struct {
	message string
	out     io.Writer
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a new spinner with the given message
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the spinner animation in the background
func (s *Spinner) Start() {
	// Accessible mode or non-TTY: just print static message
	if styles.IsAccessible() || !term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintln(s.out, s.message+"...")
		close(s.stopped)
		return
	}

	go func() {
		defer close(s.stopped)
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				// Clear the spinner line
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				frame := styles.Render(style, frames[i%len(frames)])
				fmt.Fprintf(s.out, "\r%s %s", frame, s.message)
				i++
			}
		}
	}()
}

// Stop stops the spinner and waits for the line to be cleared.
func (s *Spinner) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, styles.SuccessMsg(msg))
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, styles.ErrorMsg(msg))
}
