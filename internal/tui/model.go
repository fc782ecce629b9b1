package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Roelanb/wacheck/internal/checker"
	"github.com/Roelanb/wacheck/internal/controller"
)

// Controller is the subset of *controller.Controller the model drives.
type Controller interface {
	CheckSessionStatus(ctx context.Context)
	InitializeSession(ctx context.Context)
	CheckSingleNumber(ctx context.Context, number string)
	CheckBatchNumbers(ctx context.Context, text string) bool
	Enabled(c controller.Control) bool
}

type pane int

const (
	paneSingle pane = iota
	paneBatch
	paneResults
	paneCount
)

type controlState struct {
	enabled bool
	caption string
}

var idleCaptions = map[controller.Control]string{
	controller.ControlInit:        controller.CaptionInit,
	controller.ControlCheckSingle: controller.CaptionCheckSingle,
	controller.ControlCheckBatch:  controller.CaptionCheckBatch,
}

const noResults = "No results to display"

type Model struct {
	ctx context.Context
	ctl Controller

	single   textinput.Model
	batch    textarea.Model
	results  viewport.Model
	bar      progress.Model
	spinner  spinner.Model
	spinning bool

	focus    pane
	showHelp bool
	width    int
	height   int
	ready    bool

	sessionState string
	sessionText  string
	sessionInfo  bool
	controls     map[controller.Control]controlState

	singleRow    *checker.Row
	showProgress bool
	percent      float64
	progressText string

	notifications []controller.Notification
}

// NewModel builds the interface around ctl. Operations run with ctx, so
// cancelling it stops any batch polling.
func NewModel(ctx context.Context, ctl Controller, numbers string) Model {
	single := textinput.New()
	single.Placeholder = "+15551234567"
	single.CharLimit = 32
	single.Width = 30
	single.Focus()

	batch := textarea.New()
	batch.Placeholder = "One phone number per line"
	batch.ShowLineNumbers = true
	batch.SetWidth(40)
	batch.SetHeight(8)
	batch.SetValue(numbers)
	batch.Blur()

	results := viewport.New(60, 10)
	results.SetContent(infoStyle.Render(noResults))

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(accentSecondary)

	controls := make(map[controller.Control]controlState, len(idleCaptions))
	for c, caption := range idleCaptions {
		controls[c] = controlState{enabled: ctl.Enabled(c), caption: caption}
	}

	return Model{
		ctx:         ctx,
		ctl:         ctl,
		single:      single,
		batch:       batch,
		results:     results,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:     spin,
		focus:       paneSingle,
		showHelp:    true,
		sessionText: "Checking session...",
		controls:    controls,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.run(func(ctx context.Context) {
		m.ctl.CheckSessionStatus(ctx)
	}))
}

// run wraps a controller operation as a command. The controller reports
// through the View, so the command itself yields no message.
func (m Model) run(op func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		op(ctx)
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionStatusMsg:
		m.sessionState = msg.state
		m.sessionText = msg.text
		return m, nil

	case sessionInfoMsg:
		m.sessionInfo = msg.visible
		return m, nil

	case controlMsg:
		m.controls[msg.control] = controlState{enabled: msg.enabled, caption: msg.caption}
		return m, m.startSpinner()

	case singleClearedMsg:
		m.singleRow = nil
		return m, nil

	case singleResultMsg:
		row := msg.row
		m.singleRow = &row
		return m, nil

	case progressVisibleMsg:
		m.showProgress = msg.visible
		return m, m.startSpinner()

	case progressMsg:
		m.percent = msg.percent
		m.progressText = msg.label
		return m, nil

	case batchClearedMsg:
		m.results.SetContent("")
		return m, nil

	case batchResultsMsg:
		m.results.SetContent(renderRows(msg.rows))
		m.results.GotoTop()
		return m, nil

	case notifyMsg:
		m.notifications = append(m.notifications, msg.n)
		return m, nil

	case dismissMsg:
		for i, n := range m.notifications {
			if n.ID == msg.id {
				m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
				break
			}
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, keys.Next):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil
	case key.Matches(msg, keys.Prev):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil
	case key.Matches(msg, keys.Init):
		return m, m.run(m.ctl.InitializeSession)
	case key.Matches(msg, keys.Refresh):
		return m, m.run(m.ctl.CheckSessionStatus)
	case key.Matches(msg, keys.Batch):
		text := m.batch.Value()
		return m, m.run(func(ctx context.Context) { m.ctl.CheckBatchNumbers(ctx, text) })
	case key.Matches(msg, keys.Check) && m.focus == paneSingle:
		number := m.single.Value()
		return m, m.run(func(ctx context.Context) { m.ctl.CheckSingleNumber(ctx, number) })
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case paneSingle:
		m.single, cmd = m.single.Update(msg)
	case paneBatch:
		m.batch, cmd = m.batch.Update(msg)
	case paneResults:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	m.single.Blur()
	m.batch.Blur()
	switch p {
	case paneSingle:
		m.single.Focus()
	case paneBatch:
		m.batch.Focus()
	}
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m Model) busy() bool {
	if m.showProgress {
		return true
	}
	for c, s := range m.controls {
		if !s.enabled && s.caption != idleCaptions[c] {
			return true
		}
	}
	return false
}

func (m *Model) resize() {
	w := maxInt(40, m.width-4)
	half := maxInt(30, w/2-2)
	m.single.Width = half - 4
	m.batch.SetWidth(half - 2)
	m.results.Width = w - 4
	m.results.Height = maxInt(5, m.height-24)
	m.bar.Width = maxInt(20, half-12)
}

func (m Model) View() string {
	if !m.ready {
		return "Starting wacheck..."
	}
	w := maxInt(40, m.width-4)
	half := maxInt(30, w/2-2)

	header := headerStyle.Render("WhatsApp Number Checker")
	session := m.renderSession()

	singleBody := m.single.View() + "\n" + m.button(controller.ControlCheckSingle)
	if m.singleRow != nil {
		singleBody += "\n" + renderRow(*m.singleRow)
	}
	batchBody := m.batch.View() + "\n" + m.button(controller.ControlCheckBatch)
	if m.showProgress {
		batchBody += "\n" + m.bar.ViewAs(m.percent/100) + " " + m.progressText
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		renderPanel("Single Number", singleBody, half, m.focus == paneSingle),
		renderPanel("Batch Check", batchBody, half, m.focus == paneBatch),
	)
	results := renderPanel("Batch Results", m.results.View(), w, m.focus == paneResults)

	parts := []string{header, session, top, results}
	if n := m.renderNotifications(); n != "" {
		parts = append(parts, n)
	}
	if m.showHelp {
		parts = append(parts, helpStyle.Render(keys.helpLine()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderSession() string {
	var label string
	switch m.sessionState {
	case controller.StatusConnected:
		label = connectedStyle.Render(m.sessionText)
	case controller.StatusError:
		label = errorStyle.Render(m.sessionText)
	default:
		label = infoStyle.Render(m.sessionText)
	}
	line := "Session: " + label + "  " + m.button(controller.ControlInit)
	if m.sessionInfo {
		line += "\n" + infoStyle.Render("WhatsApp session is active. You can check numbers now.")
	}
	return line
}

func (m Model) button(c controller.Control) string {
	s := m.controls[c]
	if s.enabled {
		return buttonStyle.Render(s.caption)
	}
	if s.caption != idleCaptions[c] {
		return disabledButtonStyle.Render(m.spinner.View() + " " + s.caption)
	}
	return disabledButtonStyle.Render(s.caption)
}

func (m Model) renderNotifications() string {
	if len(m.notifications) == 0 {
		return ""
	}
	out := make([]string, 0, len(m.notifications))
	for _, n := range m.notifications {
		style := kindStyle(n.Kind)
		out = append(out, notificationStyle.Copy().
			BorderForeground(style.GetForeground()).
			Render(style.Render(n.Message)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func renderRow(r checker.Row) string {
	return kindStyle(r.Kind).Render(checker.Icon(r.Kind) + " " + r.Number + "  " + r.Message)
}

func renderRows(rows []checker.Row) string {
	if len(rows) == 0 {
		return infoStyle.Render(noResults)
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = renderRow(r)
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
