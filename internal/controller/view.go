package controller

import (
	"time"

	"github.com/Roelanb/wacheck/internal/checker"
)

// Control names one of the user-triggerable actions.
type Control string

const (
	ControlInit        Control = "init"
	ControlCheckSingle Control = "check-single"
	ControlCheckBatch  Control = "check-batch"
)

// Session label states.
const (
	StatusConnected = "connected"
	StatusError     = "error"
)

// Notification is a transient message. The controller dismisses it after TTL.
type Notification struct {
	ID      string
	Message string
	Kind    checker.ResultKind
	TTL     time.Duration
}

// View is the rendering target the controller drives. Implementations must
// accept calls from any goroutine.
type View interface {
	SetSessionStatus(state, text string)
	ShowSessionInfo(visible bool)
	SetControl(c Control, enabled bool, caption string)

	ClearSingleResult()
	RenderSingleResult(row checker.Row)

	ShowProgress(visible bool)
	SetProgress(percent float64, label string)
	ClearBatchResults()
	// RenderBatchResults receives an empty slice when the job produced nothing.
	RenderBatchResults(rows []checker.Row)

	Notify(n Notification)
	Dismiss(id string)
}
