package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Roelanb/wacheck/internal/checker"
	"github.com/Roelanb/wacheck/internal/controller"
)

type fakeController struct {
	mu      sync.Mutex
	calls   []string
	enabled map[controller.Control]bool
}

func (f *fakeController) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeController) CheckSessionStatus(context.Context) { f.record("status") }
func (f *fakeController) InitializeSession(context.Context)  { f.record("init") }
func (f *fakeController) CheckSingleNumber(_ context.Context, number string) {
	f.record("single:" + number)
}
func (f *fakeController) CheckBatchNumbers(_ context.Context, text string) bool {
	f.record("batch:" + text)
	return true
}
func (f *fakeController) Enabled(c controller.Control) bool { return f.enabled[c] }

func newTestModel(t *testing.T) (Model, *fakeController) {
	t.Helper()
	ctl := &fakeController{enabled: map[controller.Control]bool{controller.ControlInit: true}}
	m := NewModel(context.Background(), ctl, "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	return next.(Model), ctl
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNewModel_SeedsControlsFromController(t *testing.T) {
	m, _ := newTestModel(t)
	if !m.controls[controller.ControlInit].enabled {
		t.Fatalf("init should start enabled")
	}
	if m.controls[controller.ControlCheckSingle].enabled || m.controls[controller.ControlCheckBatch].enabled {
		t.Fatalf("check controls should start disabled")
	}
	if !strings.Contains(m.View(), controller.CaptionInit) {
		t.Fatalf("view missing init caption")
	}
}

func TestUpdate_SessionStatusAndInfo(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = step(t, m, sessionStatusMsg{state: controller.StatusConnected, text: "Session Ready"})
	m, _ = step(t, m, sessionInfoMsg{visible: true})
	out := m.View()
	if !strings.Contains(out, "Session Ready") {
		t.Fatalf("view missing status label:\n%s", out)
	}
	if !strings.Contains(out, "session is active") {
		t.Fatalf("view missing session info:\n%s", out)
	}
}

func TestUpdate_NotificationsAreDismissedByID(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = step(t, m, notifyMsg{n: controller.Notification{ID: "a", Message: "first", Kind: checker.KindSuccess}})
	m, _ = step(t, m, notifyMsg{n: controller.Notification{ID: "b", Message: "second", Kind: checker.KindError}})
	m, _ = step(t, m, dismissMsg{id: "a"})
	if len(m.notifications) != 1 || m.notifications[0].ID != "b" {
		t.Fatalf("notifications=%+v", m.notifications)
	}
	m, _ = step(t, m, dismissMsg{id: "missing"})
	if len(m.notifications) != 1 {
		t.Fatalf("unknown id should be ignored")
	}
}

func TestUpdate_BatchResults(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = step(t, m, batchResultsMsg{rows: []checker.Row{
		{Number: "15551234567", Message: "REGISTERED on WhatsApp", Kind: checker.KindSuccess},
		{Number: "123", Message: "Invalid phone number", Kind: checker.KindError},
	}})
	out := m.results.View()
	if !strings.Contains(out, "15551234567") || !strings.Contains(out, "Invalid phone number") {
		t.Fatalf("results missing rows:\n%s", out)
	}

	m, _ = step(t, m, batchResultsMsg{})
	if !strings.Contains(m.results.View(), noResults) {
		t.Fatalf("empty results should show placeholder")
	}
}

func TestUpdate_ProgressShownWhileRunning(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := step(t, m, progressVisibleMsg{visible: true})
	if cmd == nil || !m.spinning {
		t.Fatalf("spinner should start while progress is visible")
	}
	m, _ = step(t, m, progressMsg{percent: 50, label: "2 / 4"})
	if !strings.Contains(m.View(), "2 / 4") {
		t.Fatalf("view missing progress label")
	}
	m, _ = step(t, m, progressVisibleMsg{visible: false})
	if strings.Contains(m.View(), "2 / 4") {
		t.Fatalf("hidden progress still rendered")
	}
}

func TestKeys_DispatchControllerOperations(t *testing.T) {
	m, ctl := newTestModel(t)

	m.single.SetValue("15551234567")
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should produce a command")
	}
	cmd()

	m.batch.SetValue("1\n2")
	m, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	cmd()

	_, cmd = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	cmd()

	want := []string{"single:15551234567", "batch:1\n2", "init"}
	if len(ctl.calls) != len(want) {
		t.Fatalf("calls=%q", ctl.calls)
	}
	for i := range want {
		if ctl.calls[i] != want[i] {
			t.Fatalf("call %d=%q want %q", i, ctl.calls[i], want[i])
		}
	}
}

func TestKeys_TabCyclesFocus(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != paneBatch || !m.batch.Focused() || m.single.Focused() {
		t.Fatalf("focus=%v", m.focus)
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != paneSingle || !m.single.Focused() {
		t.Fatalf("focus=%v", m.focus)
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != paneResults {
		t.Fatalf("focus=%v", m.focus)
	}
}

func TestView_DropsUpdatesBeforeAttach(t *testing.T) {
	v := NewView()
	v.Notify(controller.Notification{ID: "x", Message: "ignored"})
	v.SetControl(controller.ControlInit, false, controller.CaptionInitBusy)
}
