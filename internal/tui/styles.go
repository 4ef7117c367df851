package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("12")
	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorDanger  = lipgloss.Color("9")
	ColorMuted   = lipgloss.Color("241")
	ColorBorder  = lipgloss.Color("240")

	AppStyle   = lipgloss.NewStyle().Padding(1, 2)
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SectionOKStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	SectionWarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	SectionFailStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ErrorLineStyle   = lipgloss.NewStyle().Foreground(ColorDanger)
	WarningLineStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	CalcLineStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)
	SuccessLineStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ActionLineStyle  = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)

	DetailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	HelpKeyStyle   = lipgloss.NewStyle().Bold(true)
)
