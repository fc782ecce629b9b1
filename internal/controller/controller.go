package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Roelanb/wacheck/internal/backend"
	"github.com/Roelanb/wacheck/internal/checker"
)

const (
	DefaultPollInterval      = 1 * time.Second
	DefaultErrorPollInterval = 2 * time.Second
	DefaultNotificationTTL   = 3 * time.Second
	DefaultCallTimeout       = 30 * time.Second
)

// Button captions, idle and busy.
const (
	CaptionInit          = "Initialize WhatsApp Session"
	CaptionInitBusy      = "Initializing..."
	CaptionCheckSingle   = "Check Number"
	CaptionSingleBusy    = "Checking..."
	CaptionCheckBatch    = "Start Batch Check"
	CaptionBatchStarting = "Starting..."
)

// Backend is the lookup service as the controller sees it.
type Backend interface {
	SessionStatus(ctx context.Context) (checker.SessionState, error)
	Initialize(ctx context.Context) (backend.InitResult, error)
	CheckSingle(ctx context.Context, number string) (checker.CheckResult, error)
	StartBatch(ctx context.Context, numbers []string) (backend.BatchStarted, error)
	Status(ctx context.Context) (checker.BatchStatus, error)
}

// Logger is the subset of zap.SugaredLogger the controller uses.
type Logger interface {
	Infow(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	Debugw(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
}

// Controller binds user actions to backend calls and renders the outcome on a
// View. All failures end up on the view; no operation returns an error.
type Controller struct {
	backend Backend
	view    View
	clock   Clock
	log     Logger

	pollInterval  time.Duration
	errorInterval time.Duration
	notifyTTL     time.Duration
	callTimeout   time.Duration

	mu                 sync.Mutex
	sessionInitialized bool
	batchRunning       bool
	enabled            map[Control]bool

	polls sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(c Clock) Option { return func(ctl *Controller) { ctl.clock = c } }

func WithLogger(l Logger) Option { return func(ctl *Controller) { ctl.log = l } }

// WithPollIntervals sets the regular and after-error delays of the status loop.
func WithPollIntervals(every, afterError time.Duration) Option {
	return func(ctl *Controller) {
		if every > 0 {
			ctl.pollInterval = every
		}
		if afterError > 0 {
			ctl.errorInterval = afterError
		}
	}
}

func WithNotificationTTL(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.notifyTTL = d
		}
	}
}

// WithCallTimeout bounds each individual backend request.
func WithCallTimeout(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.callTimeout = d
		}
	}
}

// New builds a controller. The check controls start disabled until a session
// is known to be ready.
func New(b Backend, v View, opts ...Option) *Controller {
	c := &Controller{
		backend:       b,
		view:          v,
		clock:         realClock{},
		log:           zap.NewNop().Sugar(),
		pollInterval:  DefaultPollInterval,
		errorInterval: DefaultErrorPollInterval,
		notifyTTL:     DefaultNotificationTTL,
		callTimeout:   DefaultCallTimeout,
		enabled: map[Control]bool{
			ControlInit:        true,
			ControlCheckSingle: false,
			ControlCheckBatch:  false,
		},
	}
	for _, o := range opts {
		o(c)
	}
	v.SetControl(ControlInit, true, CaptionInit)
	v.SetControl(ControlCheckSingle, false, CaptionCheckSingle)
	v.SetControl(ControlCheckBatch, false, CaptionCheckBatch)
	return c
}

// SessionInitialized reports the last known session state.
func (c *Controller) SessionInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionInitialized
}

// Enabled reports whether a control currently accepts input.
func (c *Controller) Enabled(ctl Control) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled[ctl]
}

// BatchRunning reports whether a status loop is active.
func (c *Controller) BatchRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batchRunning
}

// Wait blocks until every status loop started by CheckBatchNumbers has returned.
func (c *Controller) Wait() { c.polls.Wait() }

// CheckSessionStatus mirrors the backend session flag into the status label
// and the check controls.
func (c *Controller) CheckSessionStatus(ctx context.Context) {
	c.log.Debugw("checking session status")
	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	st, err := c.backend.SessionStatus(cctx)
	var appErr *backend.AppError
	if errors.As(err, &appErr) {
		c.log.Warnw("session status reported error", "error", appErr.Message)
		st, err = checker.SessionState{}, nil
	}
	if err != nil {
		c.log.Errorw("session status failed", "error", err)
		c.view.SetSessionStatus(StatusError, "Connection Error")
		return
	}
	c.log.Infow("session status", "initialized", st.Initialized)
	if st.Initialized {
		c.markSessionReady()
		return
	}
	c.mu.Lock()
	c.sessionInitialized = false
	c.mu.Unlock()
	c.view.SetSessionStatus(StatusError, "Session Not Ready")
	c.setControl(ControlCheckSingle, false, CaptionCheckSingle)
	if !c.BatchRunning() {
		c.setControl(ControlCheckBatch, false, CaptionCheckBatch)
	}
}

// InitializeSession asks the backend to start a session.
func (c *Controller) InitializeSession(ctx context.Context) {
	if !c.acquire(ControlInit, CaptionInitBusy) {
		return
	}
	defer c.setControl(ControlInit, true, CaptionInit)

	c.log.Infow("initializing session")
	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	res, err := c.backend.Initialize(cctx)
	var appErr *backend.AppError
	if errors.As(err, &appErr) {
		res, err = backend.InitResult{Message: appErr.Message}, nil
	}
	switch {
	case err != nil:
		c.log.Errorw("initialize failed", "error", err)
		c.notify("Connection error", checker.KindError)
	case res.Success:
		c.markSessionReady()
		c.notify("Session initialized successfully!", checker.KindSuccess)
	default:
		c.log.Warnw("initialize rejected", "message", res.Message)
		c.notify("Failed to initialize session", checker.KindError)
	}
}

// CheckSingleNumber looks up one number and renders exactly one row, or a
// validation notice when the input is blank.
func (c *Controller) CheckSingleNumber(ctx context.Context, number string) {
	number = strings.TrimSpace(number)
	if number == "" {
		c.notify("Please enter a phone number", checker.KindError)
		return
	}
	if !c.acquire(ControlCheckSingle, CaptionSingleBusy) {
		return
	}
	defer func() {
		c.setControl(ControlCheckSingle, c.SessionInitialized(), CaptionCheckSingle)
	}()

	c.view.ClearSingleResult()
	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	res, err := c.backend.CheckSingle(cctx, number)
	if err != nil {
		c.log.Errorw("single check failed", "number", number, "error", err)
		c.view.RenderSingleResult(checker.Row{Number: number, Message: "Connection error", Kind: checker.KindError})
		return
	}
	c.log.Infow("single check", "number", number, "registered", res.Registered, "error", res.Error)
	if res.Number == "" {
		res.Number = number
	}
	c.view.RenderSingleResult(checker.BatchRow(res))
}

// CheckBatchNumbers submits the non-blank lines of text as a batch job and,
// once accepted, starts polling in the background. It reports whether the job
// was accepted.
func (c *Controller) CheckBatchNumbers(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		c.notify("Please enter phone numbers", checker.KindError)
		return false
	}
	numbers := checker.SplitNumbers(text)
	if len(numbers) == 0 {
		c.notify("No valid numbers found", checker.KindError)
		return false
	}
	if !c.acquireBatch() {
		return false
	}

	c.view.ShowProgress(true)
	c.view.ClearBatchResults()

	cctx, cancel := c.callCtx(ctx)
	defer cancel()
	started, err := c.backend.StartBatch(cctx, numbers)
	if err != nil {
		var appErr *backend.AppError
		if errors.As(err, &appErr) {
			c.log.Warnw("batch rejected", "error", appErr.Message)
			c.notify(appErr.Message, checker.KindError)
		} else {
			c.log.Errorw("batch start failed", "error", err)
			c.notify("Failed to start batch check", checker.KindError)
		}
		c.view.ShowProgress(false)
		c.setBatchRunning(false)
		c.setControl(ControlCheckBatch, true, CaptionCheckBatch)
		return false
	}
	c.log.Infow("batch started", "numbers", len(numbers), "total", started.Total)

	c.polls.Add(1)
	go func() {
		defer c.polls.Done()
		c.MonitorBatchProgress(ctx)
	}()
	return true
}

// MonitorBatchProgress polls the job status until the backend reports it is
// no longer running. Successful polls are spaced by the poll interval, failed
// ones by the error interval. Only ctx cancellation stops it early.
func (c *Controller) MonitorBatchProgress(ctx context.Context) {
	for {
		delay := c.pollInterval
		cctx, cancel := c.callCtx(ctx)
		st, err := c.backend.Status(cctx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				c.setBatchRunning(false)
				return
			}
			c.log.Errorw("error monitoring progress", "error", err)
			delay = c.errorInterval
		} else {
			c.UpdateBatchProgress(st.Progress, st.Total)
			if !st.Running {
				c.DisplayBatchResults(st.Results)
				c.setBatchRunning(false)
				c.setControl(ControlCheckBatch, true, CaptionCheckBatch)
				return
			}
		}
		if err := c.clock.Sleep(ctx, delay); err != nil {
			c.setBatchRunning(false)
			return
		}
	}
}

// UpdateBatchProgress renders progress/total; a zero total renders 0%.
func (c *Controller) UpdateBatchProgress(progress, total int) {
	c.view.SetProgress(checker.Percent(progress, total), checker.ProgressLabel(progress, total))
}

// DisplayBatchResults renders the finished job and posts the summary notice.
func (c *Controller) DisplayBatchResults(results []checker.CheckResult) {
	if len(results) == 0 {
		c.view.RenderBatchResults(nil)
		return
	}
	c.view.RenderBatchResults(checker.BatchRows(results))
	c.view.ShowProgress(false)
	sum := checker.Summarize(results)
	c.log.Infow("batch finished", "registered", sum.Registered, "not_registered", sum.NotRegistered, "errors", sum.Errors)
	c.notify(sum.String(), checker.KindInfo)
}

func (c *Controller) markSessionReady() {
	c.mu.Lock()
	c.sessionInitialized = true
	running := c.batchRunning
	c.mu.Unlock()
	c.view.SetSessionStatus(StatusConnected, "Session Ready")
	c.view.ShowSessionInfo(true)
	c.setControl(ControlCheckSingle, true, CaptionCheckSingle)
	if !running {
		c.setControl(ControlCheckBatch, true, CaptionCheckBatch)
	}
}

// acquire disables ctl if it is enabled and reports whether it did. A
// disabled control swallows the action.
func (c *Controller) acquire(ctl Control, busyCaption string) bool {
	c.mu.Lock()
	if !c.enabled[ctl] {
		c.mu.Unlock()
		c.log.Debugw("action ignored, control disabled", "control", string(ctl))
		return false
	}
	c.enabled[ctl] = false
	c.mu.Unlock()
	c.view.SetControl(ctl, false, busyCaption)
	return true
}

// acquireBatch is acquire for the batch control that also marks the batch as
// running in the same critical section, so session refreshes leave the
// control alone from submission on.
func (c *Controller) acquireBatch() bool {
	c.mu.Lock()
	if !c.enabled[ControlCheckBatch] {
		c.mu.Unlock()
		c.log.Debugw("action ignored, control disabled", "control", string(ControlCheckBatch))
		return false
	}
	c.enabled[ControlCheckBatch] = false
	c.batchRunning = true
	c.mu.Unlock()
	c.view.SetControl(ControlCheckBatch, false, CaptionBatchStarting)
	return true
}

func (c *Controller) setBatchRunning(v bool) {
	c.mu.Lock()
	c.batchRunning = v
	c.mu.Unlock()
}

func (c *Controller) setControl(ctl Control, enabled bool, caption string) {
	c.mu.Lock()
	c.enabled[ctl] = enabled
	c.mu.Unlock()
	c.view.SetControl(ctl, enabled, caption)
}

func (c *Controller) notify(msg string, kind checker.ResultKind) {
	n := Notification{
		ID:      uuid.NewString(),
		Message: msg,
		Kind:    kind,
		TTL:     c.notifyTTL,
	}
	c.log.Infow("notification", "message", msg, "kind", string(kind))
	c.view.Notify(n)
	c.clock.AfterFunc(n.TTL, func() { c.view.Dismiss(n.ID) })
}

func (c *Controller) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.callTimeout)
}
