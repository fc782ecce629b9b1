package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Roelanb/wacheck/internal/checker"
	"github.com/Roelanb/wacheck/internal/controller"
)

type sessionStatusMsg struct{ state, text string }

type sessionInfoMsg struct{ visible bool }

type controlMsg struct {
	control controller.Control
	enabled bool
	caption string
}

type singleClearedMsg struct{}

type singleResultMsg struct{ row checker.Row }

type progressVisibleMsg struct{ visible bool }

type progressMsg struct {
	percent float64
	label   string
}

type batchClearedMsg struct{}

type batchResultsMsg struct{ rows []checker.Row }

type notifyMsg struct{ n controller.Notification }

type dismissMsg struct{ id string }

// View forwards controller updates into a running tea.Program. Updates sent
// before Attach are dropped; the model seeds its initial state from the
// controller instead.
type View struct {
	mu sync.RWMutex
	p  *tea.Program
}

var _ controller.View = (*View)(nil)

func NewView() *View { return &View{} }

// Attach routes subsequent updates to p.
func (v *View) Attach(p *tea.Program) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.p = p
}

func (v *View) send(msg tea.Msg) {
	v.mu.RLock()
	p := v.p
	v.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

func (v *View) SetSessionStatus(state, text string) { v.send(sessionStatusMsg{state: state, text: text}) }
func (v *View) ShowSessionInfo(visible bool)         { v.send(sessionInfoMsg{visible: visible}) }
func (v *View) SetControl(c controller.Control, enabled bool, caption string) {
	v.send(controlMsg{control: c, enabled: enabled, caption: caption})
}
func (v *View) ClearSingleResult()                 { v.send(singleClearedMsg{}) }
func (v *View) RenderSingleResult(row checker.Row) { v.send(singleResultMsg{row: row}) }
func (v *View) ShowProgress(visible bool)          { v.send(progressVisibleMsg{visible: visible}) }
func (v *View) SetProgress(percent float64, label string) {
	v.send(progressMsg{percent: percent, label: label})
}
func (v *View) ClearBatchResults()                    { v.send(batchClearedMsg{}) }
func (v *View) RenderBatchResults(rows []checker.Row) { v.send(batchResultsMsg{rows: rows}) }
func (v *View) Notify(n controller.Notification)      { v.send(notifyMsg{n: n}) }
func (v *View) Dismiss(id string)                     { v.send(dismissMsg{id: id}) }
