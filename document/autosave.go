package document

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"coursecanvas/logging"
)

// ErrStopped is returned by Flush after Stop.
var ErrStopped = errors.New("autosaver stopped")

// Autosaver coalesces change notifications into one save after a quiet
// period. Touch may be called from the event loop at any rate; the save
// function runs on a timer goroutine or inside Flush, never concurrently
// with itself.
type Autosaver struct {
	quiet time.Duration
	save  func() error
	log   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	dirty   bool
	stopped bool
	saves   int
	lastErr error

	saving sync.Mutex
}

// NewAutosaver calls save once quiet has passed without a Touch.
func NewAutosaver(quiet time.Duration, save func() error) *Autosaver {
	return &Autosaver{
		quiet: quiet,
		save:  save,
		log:   logging.For("autosave"),
	}
}

// Touch marks the document dirty and restarts the quiet period.
func (a *Autosaver) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.dirty = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.quiet, func() { _ = a.Flush() })
}

// Flush saves now if anything changed since the last save.
func (a *Autosaver) Flush() error {
	a.saving.Lock()
	defer a.saving.Unlock()

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.stopped {
		a.mu.Unlock()
		return ErrStopped
	}
	if !a.dirty {
		a.mu.Unlock()
		return nil
	}
	a.dirty = false
	a.mu.Unlock()

	err := a.save()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = err
	if err != nil {
		// keep the changes pending so the next Touch or Flush retries
		a.dirty = true
		a.log.Warn("autosave failed", "error", err)
		return err
	}
	a.saves++
	a.log.Debug("autosaved", "saves", a.saves)
	return nil
}

// Stop cancels any pending save. Unsaved changes are dropped; call Flush
// first to keep them.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.stopped = true
}

// Dirty reports whether changes are waiting to be saved.
func (a *Autosaver) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// Saves returns how many saves succeeded.
func (a *Autosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}

// Err returns the result of the last save attempt.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
