package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Event struct {
	Path string
	Time time.Time
}

type Options struct {
	Path          string        // file to watch
	Debounce      time.Duration // collapse bursts within this window (0 = no debounce)
	Stabilization time.Duration // require file size to be stable for this duration before emitting (0 = no stabilization)
	PollInterval  time.Duration // interval used for stabilization checks
}

// Watcher watches a single file for writes and replacements and emits an
// event once the file is considered "ready". The parent directory is watched
// so that editors which save by rename are still seen.
type Watcher struct {
	opts Options

	mu      sync.Mutex
	w       *fsnotify.Watcher
	cancel  context.CancelFunc
	started bool
	closed  bool
}

// New creates a new Watcher for the given options.
func New(opts Options) (*Watcher, error) {
	if opts.Path == "" {
		return nil, errors.New("watch path is empty")
	}
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	opts.Path = abs
	if opts.PollInterval <= 0 {
		opts.PollInterval = 200 * time.Millisecond
	}
	return &Watcher{opts: opts}, nil
}

// Start begins watching and returns a channel of stabilized events.
// Cancel the provided context to stop the watcher.
func (w *Watcher) Start(ctx context.Context) (<-chan Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return nil, errors.New("watcher already started")
	}
	if w.closed {
		return nil, errors.New("watcher closed")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.opts.Path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("add watch: %w", err)
	}

	w.w = fsw
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.started = true

	out := make(chan Event, 16)
	go w.run(ctx, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, out chan<- Event) {
	defer func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		_ = w.w.Close()
		close(out)
		w.closed = true
	}()

	var pendingSince time.Time

	var debounceTicker *time.Ticker
	var tick <-chan time.Time
	if w.opts.Debounce > 0 {
		debounceTicker = time.NewTicker(w.opts.Debounce)
		defer debounceTicker.Stop()
		tick = debounceTicker.C
	}

	emitReady := func() {
		if !w.waitStable(ctx) {
			return
		}
		select {
		case out <- Event{Path: w.opts.Path, Time: time.Now()}:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.opts.Path {
				continue
			}
			if !(ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename)) {
				continue
			}
			if w.opts.Debounce > 0 {
				pendingSince = time.Now()
			} else {
				emitReady()
			}

		case _, ok := <-w.w.Errors:
			if !ok {
				continue
			}
			// Non-fatal; the next write will be picked up.

		case now := <-tick:
			if !pendingSince.IsZero() && now.Sub(pendingSince) >= w.opts.Debounce {
				pendingSince = time.Time{}
				emitReady()
			}
		}
	}
}

// waitStable blocks until the file size has not changed for the stabilization
// window. It reports false if the file vanished or ctx ended.
func (w *Watcher) waitStable(ctx context.Context) bool {
	if w.opts.Stabilization <= 0 {
		return true
	}
	lastSize := int64(-1)
	lastChange := time.Now()
	deadline := time.Now().Add(time.Minute) // safety cap to avoid infinite wait
	for {
		info, err := os.Stat(w.opts.Path)
		if err != nil || !info.Mode().IsRegular() {
			return false
		}
		now := time.Now()
		if info.Size() != lastSize {
			lastSize = info.Size()
			lastChange = now
		}
		if now.Sub(lastChange) >= w.opts.Stabilization || now.After(deadline) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(w.opts.PollInterval):
		}
	}
}

// Close stops the watcher if running.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}
