package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	// Headers and titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	// Text styles
	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// Code and path styles
	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(SurfaceColor).
			Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// Source-kind styles
var (
	ArchiveStyle = lipgloss.NewStyle().
			Foreground(ArchiveColor).
			Bold(true)

	LooseStyle = lipgloss.NewStyle().
			Foreground(LooseColor).
			Bold(true)

	PatchStyle = lipgloss.NewStyle().
			Foreground(PatchColor).
			Bold(true)

	SubstituteStyle = lipgloss.NewStyle().
			Foreground(SubstituteColor).
			Bold(true)
)

// List indicators
var (
	EnabledIndicator  = SuccessStyle.Render("✓")
	DisabledIndicator = MutedStyle.Render("○")
	IgnoredIndicator  = WarningStyle.Render("!")
	ErrorIndicator    = ErrorStyle.Render("✗")
	InfoIndicator     = InfoStyle.Render("•")
)

// Helper functions
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

func Italic(s string) string {
	return lipgloss.NewStyle().Italic(true).Render(s)
}

func Underline(s string) string {
	return lipgloss.NewStyle().Underline(true).Render(s)
}
