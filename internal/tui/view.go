package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkellner/wohnval/internal/domain"
)

const listWidth = 28

// View renders the full screen (required by tea.Model interface).
func (m Model) View() string {
	if m.loading {
		return AppStyle.Render("Prüfung läuft…")
	}
	if m.err != nil {
		return AppStyle.Render(ErrorLineStyle.Render("Fehler: " + m.err.Error()))
	}

	header := TitleStyle.Render(fmt.Sprintf("Prüfbericht %s", m.report.SubjectID))

	list := m.renderSectionList()
	detail := DetailBorderStyle.Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)

	status := StatusBarStyle.Render(fmt.Sprintf(
		"%d Fehler, %d Hinweise   %s blättern  %s neu prüfen  %s beenden",
		m.report.ErrorCount(), m.report.WarningCount(),
		HelpKeyStyle.Render("↑/↓"), HelpKeyStyle.Render("r"), HelpKeyStyle.Render("q")))

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", status))
}

func (m Model) renderSectionList() string {
	var b strings.Builder
	for i, s := range m.report.Sections {
		marker := sectionMarker(s)
		line := fmt.Sprintf("%s %s", marker, s.Title)
		if i == m.selected {
			b.WriteString(SelectedItemStyle.Render("> " + line))
		} else {
			b.WriteString(UnselectedItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(listWidth).Render(b.String())
}

func sectionMarker(s domain.Section) string {
	switch {
	case len(s.Errors) > 0:
		return SectionFailStyle.Render("✗")
	case len(s.Warnings) > 0:
		return SectionWarnStyle.Render("!")
	default:
		return SectionOKStyle.Render("✓")
	}
}

// renderSection renders one section's findings for the detail pane.
func renderSection(s domain.Section) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(s.Title))
	b.WriteString("\n\n")

	for _, line := range s.Errors {
		b.WriteString(ErrorLineStyle.Render("✗ " + line))
		b.WriteString("\n")
	}
	for _, line := range s.Warnings {
		b.WriteString(WarningLineStyle.Render("! " + line))
		b.WriteString("\n")
	}
	for _, line := range s.Calculations {
		b.WriteString(CalcLineStyle.Render("· " + line))
		b.WriteString("\n")
	}
	for _, line := range s.Successes {
		b.WriteString(SuccessLineStyle.Render("✓ " + line))
		b.WriteString("\n")
	}
	for _, a := range s.Actions {
		b.WriteString(ActionLineStyle.Render("→ " + a.Label + " (" + a.Route + ")"))
		b.WriteString("\n")
	}
	return b.String()
}
