package ui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// InlineSpinner animates a single status line while a load cycle runs.
// A nil writer makes every method a no-op.
type InlineSpinner struct {
	writer  io.Writer
	message string
	every   time.Duration

	mu       sync.Mutex
	running  bool
	frame    int
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewInlineSpinner creates a spinner writing to w.
func NewInlineSpinner(w io.Writer, message string) *InlineSpinner {
	return &InlineSpinner{
		writer:   w,
		message:  message,
		every:    80 * time.Millisecond,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *InlineSpinner) Start() {
	if s.writer == nil {
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.every)
		defer ticker.Stop()
		defer close(s.doneChan)

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.frame = (s.frame + 1) % len(spinnerFrames)
				fmt.Fprintf(s.writer, "\r\033[K%s %s", Secondary.Render(spinnerFrames[s.frame]), s.message)
				s.mu.Unlock()
			}
		}
	}()
}

// Stop clears the line and prints the final result.
func (s *InlineSpinner) Stop(success bool, finalMessage string) {
	if s.writer == nil {
		return
	}
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	<-s.doneChan

	fmt.Fprint(s.writer, "\r\033[K")
	if success {
		fmt.Fprintln(s.writer, FormatStatus("success", finalMessage))
	} else {
		fmt.Fprintln(s.writer, FormatStatus("warning", Warning.Render(finalMessage)))
	}
}
