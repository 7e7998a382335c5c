// Package summary shows overall progress: every saved answer regraded
// against the loaded questions, plus the counts for this run.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/router"
	"github.com/saaquiz/saaquiz/internal/screen"
	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/ui/components"
	"github.com/saaquiz/saaquiz/internal/ui/layout"
	"github.com/saaquiz/saaquiz/internal/ui/theme"
)

// fixedLines is the number of content lines above the answer list.
const fixedLines = 10

// SummaryScreen displays the progress summary.
type SummaryScreen struct {
	summary *session.Summary
	tally   session.Tally
	offset  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary, tally session.Tally) *SummaryScreen {
	return &SummaryScreen{summary: summary, tally: tally}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Progress"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.summary != nil && s.offset < len(s.summary.Rows)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Overall progress"))
	b.WriteString("\n\n")

	var pct float64
	if sum.TotalQuestions > 0 {
		pct = float64(sum.Answered) / float64(sum.TotalQuestions)
	}
	bar := components.NewProgressBar(
		fmt.Sprintf("Answered %d/%d", sum.Answered, sum.TotalQuestions), pct, true, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d      Incorrect: %d      Ungraded: %d      Accuracy: %.0f%%",
		sum.TotalCorrect, sum.TotalIncorrect, sum.Ungraded, sum.Accuracy*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")

	t := s.tally
	runLine := fmt.Sprintf("This run: %d submitted, %d correct, %d incorrect, %d ungraded, %d invalid",
		t.Submitted, t.Correct, t.Incorrect, t.Ungraded, t.Invalid)
	b.WriteString(center.Foreground(theme.TextDim).Render(runLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Answers")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	if len(sum.Rows) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No answers saved yet."))
		return b.String()
	}

	visible := max(height-fixedLines, 1)
	end := min(s.offset+visible, len(sum.Rows))
	for _, row := range sum.Rows[s.offset:end] {
		correct := row.Correct
		if correct == "" {
			correct = "?"
		}
		line := fmt.Sprintf("Q%-5d  %s  (%s)  %s", row.QNum, row.Choice, correct, row.Outcome)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(outcomeColor(row.Outcome)).Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

// outcomeColor returns the theme color for a graded outcome.
func outcomeColor(o grader.Outcome) color.Color {
	switch o {
	case grader.OutcomeCorrect:
		return theme.Success
	case grader.OutcomeIncorrect:
		return theme.Error
	default:
		return theme.TextDim
	}
}
