// Package history lists recorded attempts, newest first.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/router"
	"github.com/saaquiz/saaquiz/internal/screen"
	"github.com/saaquiz/saaquiz/internal/store"
	"github.com/saaquiz/saaquiz/internal/ui/components"
	"github.com/saaquiz/saaquiz/internal/ui/layout"
	"github.com/saaquiz/saaquiz/internal/ui/theme"
)

// pageSize caps how many attempts are loaded.
const pageSize = 200

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// HistoryScreen displays past attempts. Enter filters to the selected
// question number and toggles back.
type HistoryScreen struct {
	repo     store.AttemptRepo
	attempts []store.AttemptRecord
	filter   int
	selected int
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load(0)
}

func (s *HistoryScreen) load(qNum int) tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		attempts, err := repo.QueryAttempts(context.Background(), store.QueryOpts{Limit: pageSize, QNum: qNum})
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	if s.filter > 0 {
		return fmt.Sprintf("History: Q%d", s.filter)
	}
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	filter := "Only this question"
	if s.filter > 0 {
		filter = "All questions"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: filter},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.errMsg = ""
		}
		s.selected, s.offset = 0, 0
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.filter > 0 {
				s.filter = 0
			} else if len(s.attempts) > 0 {
				s.filter = s.attempts[s.selected].QNum
			} else {
				return s, nil
			}
			s.loaded = false
			return s, s.load(s.filter)
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		empty := components.ArcadeCard(
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("No answers submitted yet. Start a quiz!"), cw)
		return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, empty)
	}

	// Keep the selection on screen.
	visible := max(height-2, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+visible {
		s.offset = s.selected - visible + 1
	}
	end := min(s.offset+visible, len(s.attempts))

	var b strings.Builder
	b.WriteString("\n")
	for i := s.offset; i < end; i++ {
		a := s.attempts[i]
		correct := a.CorrectChoice
		if correct == "" {
			correct = "?"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  Q%-5d  %s  (%s)  %-9s",
			prefix, a.Timestamp.Local().Format("Jan 02 15:04"), a.QNum, a.Choice, correct, a.Outcome)

		style := lipgloss.NewStyle().Foreground(outcomeColor(a.Outcome))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func outcomeColor(outcome string) color.Color {
	switch outcome {
	case grader.OutcomeCorrect.String():
		return theme.Success
	case grader.OutcomeIncorrect.String():
		return theme.Error
	default:
		return theme.TextDim
	}
}
