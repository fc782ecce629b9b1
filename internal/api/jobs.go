package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Roelanb/wacheck/internal/checker"
)

// Jobs runs one batch at a time. Starting a new batch abandons the previous
// one, matching a backend that keeps a single global status.
type Jobs struct {
	delay time.Duration
	now   func() time.Time

	mu      sync.Mutex
	id      string
	started time.Time
	status  checker.BatchStatus
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewJobs returns a runner that spends delay on every number.
func NewJobs(delay time.Duration) *Jobs {
	return &Jobs{delay: delay, now: time.Now}
}

// Start resets the status and checks numbers in the background.
func (j *Jobs) Start(numbers []string) string {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.id = uuid.NewString()
	j.started = j.now()
	j.status = checker.BatchStatus{Running: true, Total: len(numbers), Results: []checker.CheckResult{}}
	id := j.id
	j.mu.Unlock()

	list := append([]string(nil), numbers...)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run(ctx, id, list)
	}()
	return id
}

func (j *Jobs) run(ctx context.Context, id string, numbers []string) {
	for _, n := range numbers {
		if err := sleep(ctx, j.delay); err != nil {
			return
		}
		res := Check(strings.TrimSpace(n), j.now())
		res.Number = n
		res.Timestamp = ""
		if !j.update(id, func(st *checker.BatchStatus) {
			st.Results = append(st.Results, res)
			st.Progress++
		}) {
			return
		}
	}
	j.update(id, func(st *checker.BatchStatus) { st.Running = false })
}

// update applies fn if id is still the current job.
func (j *Jobs) update(id string, fn func(*checker.BatchStatus)) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.id != id {
		return false
	}
	fn(&j.status)
	return true
}

// Snapshot returns a copy of the current batch status.
func (j *Jobs) Snapshot() checker.BatchStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	st := j.status
	st.Results = append([]checker.CheckResult{}, j.status.Results...)
	return st
}

// Current reports the active job id and when it started.
func (j *Jobs) Current() (string, time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.id, j.started
}

// Close stops the running job and waits for it to exit.
func (j *Jobs) Close() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
	}
	j.mu.Unlock()
	j.wg.Wait()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
