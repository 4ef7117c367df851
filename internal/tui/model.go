// Package tui is the interactive report viewer: a section list on the
// left, the selected section's findings in a scrollable pane on the right.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkellner/wohnval/internal/calculation"
	"github.com/mkellner/wohnval/internal/domain"
	"github.com/mkellner/wohnval/internal/report"
)

// Model is the viewer state.
type Model struct {
	engine    *calculation.ValidationEngine
	subjectID string

	report   domain.Report
	selected int
	viewport viewport.Model
	ready    bool

	width  int
	height int

	loading bool
	err     error
}

// NewModel creates a viewer that runs the validation when started.
func NewModel(engine *calculation.ValidationEngine, subjectID string) Model {
	return Model{
		engine:    engine,
		subjectID: subjectID,
		loading:   true,
		width:     80,
		height:    24,
	}
}

// reportLoadedMsg delivers the validation result.
type reportLoadedMsg struct {
	report domain.Report
	err    error
}

// Init kicks off the validation run.
func (m Model) Init() tea.Cmd {
	return m.runValidation
}

func (m Model) runValidation() tea.Msg {
	res, err := m.engine.Run(context.Background(), m.subjectID)
	if err != nil {
		return reportLoadedMsg{err: err}
	}
	return reportLoadedMsg{report: report.Build(res)}
}

// Update handles messages (required by tea.Model interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case reportLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.report = msg.report
		m.selected = 0
		m.resize()
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshViewport()
			}
		case "down", "j":
			if m.selected < len(m.report.Sections)-1 {
				m.selected++
				m.refreshViewport()
			}
		case "r":
			m.loading = true
			return m, m.runValidation
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) resize() {
	detailWidth := m.width - listWidth - 8
	if detailWidth < 20 {
		detailWidth = 20
	}
	detailHeight := m.height - 7
	if detailHeight < 5 {
		detailHeight = 5
	}
	if !m.ready {
		m.viewport = viewport.New(detailWidth, detailHeight)
		m.ready = true
	} else {
		m.viewport.Width = detailWidth
		m.viewport.Height = detailHeight
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready || m.selected >= len(m.report.Sections) {
		return
	}
	m.viewport.SetContent(renderSection(m.report.Sections[m.selected]))
	m.viewport.GotoTop()
}

// Run starts the viewer in the alternate screen.
func Run(engine *calculation.ValidationEngine, subjectID string) error {
	p := tea.NewProgram(NewModel(engine, subjectID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
