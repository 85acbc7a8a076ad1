package reporter

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/funcbridge/internal/history"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const maxHistoryLines = 20

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tickMsg time.Time

// WatchModel is the Bubbletea model for the watch-mode live display. It
// polls recent invocations and renders them newest first.
type WatchModel struct {
	component string
	intakeDir string
	getRecent func() []*history.Record
	cancel    func() // called on 'q' to stop the watcher

	records []*history.Record
	frame   int
	width   int
	done    bool
}

// NewWatchModel creates a watch-mode display.
func NewWatchModel(component, intakeDir string, getRecent func() []*history.Record, cancel func()) WatchModel {
	return WatchModel{
		component: component,
		intakeDir: intakeDir,
		getRecent: getRecent,
		cancel:    cancel,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// StopMsg tells the display the watcher has shut down.
type StopMsg struct{}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case StopMsg:
		m.done = true
		return m, tea.Quit

	case tickMsg:
		m.frame++
		if m.getRecent != nil {
			m.records = m.getRecent()
		}
		return m, tickCmd()
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	spinner := spinnerFrames[m.frame%len(spinnerFrames)]
	b.WriteString(headerStyle.Render(fmt.Sprintf("funcbridge %s watching %s (%s)", spinner, m.intakeDir, m.component)))
	b.WriteString("\n\n")

	if len(m.records) == 0 {
		b.WriteString(dimStyle.Render("waiting for documents"))
		b.WriteString("\n")
	}

	shown := m.records
	if len(shown) > maxHistoryLines {
		shown = shown[:maxHistoryLines]
	}
	for _, rec := range shown {
		mark := doneStyle.Render("✓")
		detail := rec.Duration.Truncate(time.Millisecond).String()
		if rec.State != history.StateCompleted {
			mark = failStyle.Render("✗")
			detail = rec.Error
		}
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			mark,
			dimStyle.Render(rec.StartedAt.Format("15:04:05")),
			rec.Component,
			dimStyle.Render(detail),
		))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}
