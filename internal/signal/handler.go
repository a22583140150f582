// Package signal cancels the context of a gitflow run on SIGINT or SIGTERM.
//
// A canceled context stops the git or build tool process that is running;
// the workflow then fails at that step and leaves the repository as it is.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler owns a context that is canceled by the first interrupt signal.
type Handler struct {
	ctx    context.Context //nolint:containedctx // the handler owns the context lifecycle
	cancel context.CancelFunc

	sigChan     chan os.Signal
	stopped     chan struct{}
	interrupted chan struct{}

	mu       sync.Mutex
	received os.Signal
	once     sync.Once
	stopOnce sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM. Call Stop when the run ends.
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		sigChan:     make(chan os.Signal, 1),
		stopped:     make(chan struct{}),
		interrupted: make(chan struct{}),
	}
	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()
	return h
}

// Context returns the context canceled on interrupt.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted is closed once a signal was received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Signal returns the first signal received, or nil.
func (h *Handler) Signal() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// WasInterrupted reports whether a signal ended the run.
func (h *Handler) WasInterrupted() bool {
	select {
	case <-h.interrupted:
		return true
	default:
		return false
	}
}

// Stop stops listening and cancels the context. It is safe to call more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.stopped)
		h.cancel()
	})
}

func (h *Handler) handle(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()
		h.cancel()
		close(h.interrupted)
	})
}

// listen keeps draining the channel after the first signal so repeated
// Ctrl+C never blocks delivery.
func (h *Handler) listen() {
	for {
		select {
		case <-h.stopped:
			return
		case sig := <-h.sigChan:
			h.handle(sig)
		}
	}
}
