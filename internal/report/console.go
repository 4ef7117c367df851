package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/mkellner/wohnval/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	calcStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Write renders a report in the requested format.
func Write(w io.Writer, r domain.Report, format string) error {
	switch format {
	case "console", "":
		return WriteConsole(w, r)
	case "json":
		return WriteJSON(w, r)
	case "yaml":
		return WriteYAML(w, r)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteConsole renders the styled console report.
func WriteConsole(w io.Writer, r domain.Report) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Prüfbericht Wohnraumförderung"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Antrag %s, Lauf %s, %s",
		r.SubjectID, r.RunID, r.CreatedAt.Format("02.01.2006 15:04"))))
	b.WriteString("\n\n")

	for _, s := range r.Sections {
		b.WriteString(titleStyle.Render(s.Title))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", len([]rune(s.Title)))))
		b.WriteString("\n")

		for _, line := range s.Errors {
			b.WriteString(errorStyle.Render("  ✗ " + line))
			b.WriteString("\n")
		}
		for _, line := range s.Warnings {
			b.WriteString(warningStyle.Render("  ! " + line))
			b.WriteString("\n")
		}
		for _, line := range s.Calculations {
			b.WriteString(calcStyle.Render("  · " + line))
			b.WriteString("\n")
		}
		for _, line := range s.Successes {
			b.WriteString(successStyle.Render("  ✓ " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d Fehler, %d Hinweise", r.ErrorCount(), r.WarningCount())
	if r.OK() {
		b.WriteString(successStyle.Render("Ergebnis: keine Beanstandungen"))
	} else {
		b.WriteString(errorStyle.Render("Ergebnis: " + summary))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML renders the report as YAML.
func WriteYAML(w io.Writer, r domain.Report) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}
