package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkellner/wohnval/internal/domain"
)

func loadedModel() Model {
	m := NewModel(nil, "app-1")
	rep := domain.Report{
		SubjectID: "app-1",
		Sections: []domain.Section{
			{ID: "hauptantrag", Title: "Hauptantrag", Errors: []string{"Fehler A"}},
			{ID: "selbsthilfe", Title: "Selbsthilfeleistungen", Successes: []string{"Alle Prüfungen bestanden."}},
		},
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)
	updated, _ = m.Update(reportLoadedMsg{report: rep})
	return updated.(Model)
}

func TestModel_LoadsReport(t *testing.T) {
	m := loadedModel()

	assert.False(t, m.loading)
	require.Len(t, m.report.Sections, 2)
	assert.Equal(t, 0, m.selected)

	view := m.View()
	assert.Contains(t, view, "Hauptantrag")
	assert.Contains(t, view, "1 Fehler")
}

func TestModel_Navigation(t *testing.T) {
	m := loadedModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.selected)

	// Stays at the last section.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.selected)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	assert.Equal(t, 0, m.selected)
}

func TestModel_QuitKeys(t *testing.T) {
	m := loadedModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderSection(t *testing.T) {
	s := domain.Section{
		Title:    "Selbstauskunft",
		Warnings: []string{"Hinweis X"},
		Actions:  []domain.Action{{Label: "Zum Formular", Route: "/forms/selbstauskunft"}},
	}
	out := renderSection(s)
	assert.Contains(t, out, "Hinweis X")
	assert.Contains(t, out, "/forms/selbstauskunft")
	assert.True(t, strings.HasPrefix(stripANSI(out), "Selbstauskunft") || strings.Contains(out, "Selbstauskunft"))
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
