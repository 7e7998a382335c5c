package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/ui/components"
	"github.com/saaquiz/saaquiz/internal/ui/theme"
)

// renderQuiz renders the question, inputs, controls and explanation.
func (s *QuizScreen) renderQuiz(width, height int, v session.View) string {
	var b strings.Builder

	// Info line: question number and position left, progress right.
	label := "  Jump to a question"
	if v.Positioned {
		label = fmt.Sprintf("  Q%d   %s", v.QNum, v.Position)
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(label)

	var pct float64
	if v.Total > 0 {
		pct = float64(v.Answered) / float64(v.Total)
	}
	infoRight := components.NewProgressBar(
		fmt.Sprintf("%d/%d", v.Answered, v.Total), pct, false, 28).View()

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	textWidth := min(width-8, 90)

	if v.Positioned {
		q := lipgloss.NewStyle().
			Width(textWidth).
			Foreground(theme.Text).
			Bold(true).
			Render(v.Question)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Type a question number and press Enter."))
	}
	b.WriteString("\n\n")

	// Inputs.
	inputs := "Jump: " + s.jump.View()
	if v.CanSubmit {
		inputs = "Answer: " + s.answer.View() + "      " + inputs
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(inputs))
	b.WriteString("\n")

	// Notice.
	if v.Notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(toneStyle(v.Tone).Render(v.Notice)))
	}
	b.WriteString("\n\n")

	// Controls.
	row := components.ButtonRow(
		components.NewButton("Prev", "←", v.CanPrev),
		components.NewButton("Next", "→", v.CanNext),
		components.NewButton("Explanation", "?", v.CanReveal && !v.ExplanationVisible),
		components.NewButton("Submit", "Enter", v.CanSubmit),
		components.NewButton("Next", "Space", v.CanNextAfterExplain),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))

	if v.ExplanationVisible {
		b.WriteString("\n\n")
		exp := theme.Card.
			Width(textWidth).
			Foreground(theme.Text).
			Render(v.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}

	return b.String()
}

func toneStyle(t session.Tone) lipgloss.Style {
	switch t {
	case session.ToneGood:
		return theme.Correct
	case session.ToneBad:
		return theme.Incorrect
	default:
		return theme.Neutral
	}
}

// renderError renders a fatal load error. Every control is unavailable.
func renderError(width int, notice string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press Ctrl+C to quit.", notice))
}
