// Package signal turns SIGINT and SIGTERM into context cancellation for
// teamcal commands, so a slow backend fetch is abandoned as soon as the
// user presses Ctrl+C.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler owns a context derived from the caller's and remembers which
// signal, if any, canceled it.
type Handler struct {
	ctx    context.Context //nolint:containedctx // the handler is the context's owner
	cancel context.CancelFunc

	signals chan os.Signal
	quit    chan struct{}

	mu          sync.Mutex
	received    os.Signal
	interrupted chan struct{}
	stopped     bool
}

// NewHandler derives a context from parent and starts watching for
// SIGINT and SIGTERM. Callers must call Stop when the command returns.
//
//	h := signal.NewHandler(context.Background())
//	err := cli.Execute(h.Context(), info)
//	h.Stop()
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		signals:     make(chan os.Signal, 1),
		quit:        make(chan struct{}),
		interrupted: make(chan struct{}),
	}

	signal.Notify(h.signals, syscall.SIGINT, syscall.SIGTERM)
	go h.watch()

	return h
}

// Context is canceled by the first signal, by Stop, or with the parent.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted is closed when the first signal arrives.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// WasInterrupted reports whether a signal canceled the context.
func (h *Handler) WasInterrupted() bool {
	return h.Signal() != nil
}

// Signal returns the signal that canceled the context, or nil.
func (h *Handler) Signal() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// Stop detaches from the OS and cancels the context. Repeated calls are no-ops.
func (h *Handler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	signal.Stop(h.signals)
	close(h.quit)
	h.cancel()
}

// handleSignal records sig and cancels the context. Later signals are ignored.
func (h *Handler) handleSignal(sig os.Signal) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.received != nil {
		return
	}
	h.received = sig
	close(h.interrupted)
	h.cancel()
}

func (h *Handler) watch() {
	for {
		select {
		case sig := <-h.signals:
			h.handleSignal(sig)
		case <-h.quit:
			return
		case <-h.ctx.Done():
			return
		}
	}
}
