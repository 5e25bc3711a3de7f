package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Prompt and conversation
	PromptStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	ReplyStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Parse output
	SectionStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	RawStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Interactive shell
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	TranscriptStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// Helper functions
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

func RenderError(err string) string {
	return ErrorMessageStyle.Render("Error: " + err)
}

func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

func RenderPrompt(prompt string) string {
	return PromptStyle.Render(prompt)
}

func RenderQuestion(question string) string {
	return QuestionStyle.Render(question)
}

func RenderReply(reply string) string {
	return ReplyStyle.Render(reply)
}
