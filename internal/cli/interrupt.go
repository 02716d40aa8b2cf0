package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptHandler cancels a command context on SIGINT/SIGTERM and tells the
// user what was cut short.
type InterruptHandler struct {
	writer      io.Writer
	notify      func(chan<- os.Signal)
	task        string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a new interrupt handler.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer: writer,
		notify: func(c chan<- os.Signal) {
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		},
	}
}

// HandleInterrupts returns a context canceled on the first interrupt. task names
// the work in the interrupt message. The returned stop function releases the
// signal handler.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, task string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	h.task = task

	sigChan := make(chan os.Signal, 1)
	h.notify(sigChan)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			h.mu.Lock()
			if !h.interrupted {
				h.interrupted = true
				h.showInterruptMessage()
			}
			h.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func (h *InterruptHandler) showInterruptMessage() {
	msg := "\n" + FormatWarning("Interrupted!")
	if h.task != "" {
		msg += "\n" + FormatInfo(h.task+" canceled.")
	}
	msg += "\n"

	if _, err := fmt.Fprint(h.writer, msg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write interrupt message: %v\n", err)
	}
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
