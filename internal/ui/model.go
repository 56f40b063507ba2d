package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"

	"github.com/ukaji/kintai/internal/attendance"
	"github.com/ukaji/kintai/internal/report"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	breakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	idleStyle    = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Model owns Bubble Tea state for the status dashboard. It is read-only:
// the log is only ever re-read, never written.
type Model struct {
	ctx  context.Context
	path string
	rate decimal.Decimal

	spinner spinner.Model
	watcher *fsnotify.Watcher

	report  *attendance.Report
	now     time.Time
	loading bool

	statusLine string
	errorLine  string
}

type reportLoadedMsg struct {
	report *attendance.Report
	err    error
}

type logChangedMsg struct{}

type watchStartedMsg struct {
	watcher *fsnotify.Watcher
	err     error
}

type tickMsg time.Time

// NewModel seeds a dashboard model for one attendance log.
func NewModel(ctx context.Context, path string, rate decimal.Decimal) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctx:        ctx,
		path:       path,
		rate:       rate,
		spinner:    s,
		now:        time.Now(),
		loading:    true,
		statusLine: "Reading attendance log...",
	}
}

// Init kicks off the initial read, the file watcher, and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadReportCmd(), m.startWatchCmd(), tickCmd())
}

// Update wires dashboard state transitions from key input and async results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case reportLoadedMsg:
		return m.handleReportLoaded(msg)
	case watchStartedMsg:
		return m.handleWatchStarted(msg)
	case logChangedMsg:
		m.loading = true
		m.statusLine = "Log changed, reloading..."
		return m, tea.Batch(m.loadReportCmd(), m.waitForChangeCmd())
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.watcher != nil {
			m.watcher.Close()
		}
		return m, tea.Quit
	case "r":
		m.loading = true
		m.statusLine = "Reloading..."
		m.errorLine = ""
		return m, m.loadReportCmd()
	}
	return m, nil
}

func (m Model) handleReportLoaded(msg reportLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to read %s: %v", m.path, msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.report = msg.report
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Loaded %s", m.path)
	return m, nil
}

func (m Model) handleWatchStarted(msg watchStartedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Watch failed (use r to reload): %v", msg.err)
		return m, nil
	}
	m.watcher = msg.watcher
	return m, m.waitForChangeCmd()
}

func (m Model) loadReportCmd() tea.Cmd {
	path := m.path
	rate := m.rate
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return reportLoadedMsg{err: err}
		}
		defer f.Close()

		rep, err := attendance.Summarize(f, rate)
		return reportLoadedMsg{report: rep, err: err}
	}
}

func (m Model) startWatchCmd() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return watchStartedMsg{err: err}
		}
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{watcher: watcher}
	}
}

// waitForChangeCmd blocks on the watcher until the log is written to,
// then wakes Update; it is re-armed after every reload it triggers.
func (m Model) waitForChangeCmd() tea.Cmd {
	ctx := m.ctx
	watcher := m.watcher
	return func() tea.Msg {
		if watcher == nil {
			return nil
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return logChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return watchStartedMsg{err: err}
			}
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("kintai " + m.now.Format("Monday, 02 January 2006")))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" reading log...\n")
		return b.String()
	}

	b.WriteString(m.stateLine())
	b.WriteString("\n\n")
	m.writeToday(&b)
	m.writeMonth(&b)
	m.writeWarnings(&b)

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r reload  q quit"))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) stateLine() string {
	if m.report == nil || m.report.Open == nil {
		return idleStyle.Render("idle")
	}

	open := m.report.Open
	if open.OnBreak() {
		since := open.BreakStart.Format("15:04")
		return breakStyle.Render(fmt.Sprintf("on break since %s (%s)", since, formatElapsed(m.now.Sub(*open.BreakStart))))
	}
	return workingStyle.Render(fmt.Sprintf("working since %s (%s net)", open.Start.Format("15:04"), formatElapsed(liveNet(open, m.now))))
}

func (m Model) writeToday(b *strings.Builder) {
	b.WriteString("today:\n")
	if m.report != nil {
		if day, ok := m.report.Day(attendance.DateOf(m.now)); ok {
			for _, s := range day.Sessions {
				net, err := s.NetMinutes()
				if err != nil {
					continue
				}
				fmt.Fprintf(b, "  %s  %s", report.TimeRange(s), attendance.FormatHours(net))
				if s.Note != "" {
					b.WriteString("  ")
					b.WriteString(s.Note)
				}
				b.WriteByte('\n')
			}
			return
		}
	}
	b.WriteString(idleStyle.Render("  no closed sessions yet"))
	b.WriteByte('\n')
}

func (m Model) writeMonth(b *strings.Builder) {
	if m.report == nil {
		return
	}
	month, ok := m.report.Month(m.now.Year(), m.now.Month())
	if !ok {
		return
	}
	fmt.Fprintf(b, "\n%s: %s  salary %s\n", month.Label(), month.Hours(), month.Salary)
}

func (m Model) writeWarnings(b *strings.Builder) {
	if m.report == nil {
		return
	}

	// The live open session is already shown in the state line; only the
	// remaining diagnostics are worth a warning.
	var warnings []error
	for _, w := range m.report.Warnings {
		if errors.Is(w, attendance.ErrUnterminatedSession) {
			continue
		}
		warnings = append(warnings, w)
	}
	if len(warnings) == 0 {
		return
	}

	line := fmt.Sprintf("%d warning(s), first: %v", len(warnings), warnings[0])
	b.WriteString("\n")
	b.WriteString(warnStyle.Render("! " + line))
	b.WriteByte('\n')
}

// liveNet is the elapsed working time of the open session with finished
// and in-progress breaks taken out.
func liveNet(open *attendance.OpenSession, now time.Time) time.Duration {
	elapsed := now.Sub(open.Start)
	for _, b := range open.Breaks {
		elapsed -= b.Duration()
	}
	if open.BreakStart != nil {
		elapsed -= now.Sub(*open.BreakStart)
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed
}

func formatElapsed(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
