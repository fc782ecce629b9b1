// Package console renders controller output as plain lines for the
// non-interactive subcommands.
package console

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/Roelanb/wacheck/internal/checker"
	"github.com/Roelanb/wacheck/internal/controller"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50E3C2")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8CA1AE"))
	numberStyle  = lipgloss.NewStyle().Bold(true)
)

const barWidth = 30

// View writes every update as a line. Progress lines are only written when
// the label changes, so repeated polls stay quiet.
type View struct {
	mu        sync.Mutex
	out       io.Writer
	lastLabel string

	// counters used by the CLI to pick an exit status
	errorRows int
	rows      int
}

var _ controller.View = (*View)(nil)

func New(out io.Writer) *View { return &View{out: out} }

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format+"\n", args...)
}

func (v *View) SetSessionStatus(state, text string) {
	style := successStyle
	if state != controller.StatusConnected {
		style = errorStyle
	}
	v.printf("session: %s", style.Render(text))
}

func (v *View) ShowSessionInfo(bool) {}

func (v *View) SetControl(controller.Control, bool, string) {}

func (v *View) ClearSingleResult() {}

func (v *View) RenderSingleResult(row checker.Row) {
	v.count(row)
	v.printf("%s", FormatRow(row))
}

func (v *View) ShowProgress(visible bool) {
	if !visible {
		v.mu.Lock()
		v.lastLabel = ""
		v.mu.Unlock()
	}
}

func (v *View) SetProgress(percent float64, label string) {
	v.mu.Lock()
	if label == v.lastLabel {
		v.mu.Unlock()
		return
	}
	v.lastLabel = label
	v.mu.Unlock()
	v.printf("progress: %s %s (%.0f%%)", Bar(percent, barWidth), label, percent)
}

func (v *View) ClearBatchResults() {}

func (v *View) RenderBatchResults(rows []checker.Row) {
	if len(rows) == 0 {
		v.printf("%s", infoStyle.Render("No results to display"))
		return
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		v.count(r)
		lines = append(lines, FormatRow(r))
	}
	v.printf("%s", strings.Join(lines, "\n"))
}

func (v *View) Notify(n controller.Notification) {
	v.printf("%s", styleFor(n.Kind).Render(n.Message))
}

func (v *View) Dismiss(string) {}

// Rows reports how many result rows were rendered and how many of them were errors.
func (v *View) Rows() (total, errors int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rows, v.errorRows
}

func (v *View) count(r checker.Row) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows++
	if r.Kind == checker.KindError {
		v.errorRows++
	}
}

// FormatRow renders "<icon> <number>  <message>" in the row's colour.
func FormatRow(r checker.Row) string {
	style := styleFor(r.Kind)
	return fmt.Sprintf("%s %s  %s", style.Render(checker.Icon(r.Kind)), numberStyle.Render(r.Number), style.Render(r.Message))
}

// Bar renders a fixed-width ASCII progress bar for percent in [0,100].
func Bar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}
	p := math.Max(0, math.Min(100, percent))
	filled := int(math.Round(p / 100 * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func styleFor(k checker.ResultKind) lipgloss.Style {
	switch k {
	case checker.KindSuccess:
		return successStyle
	case checker.KindError:
		return errorStyle
	default:
		return infoStyle
	}
}
