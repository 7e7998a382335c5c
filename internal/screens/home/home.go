package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/saaquiz/saaquiz/internal/router"
	"github.com/saaquiz/saaquiz/internal/screen"
	"github.com/saaquiz/saaquiz/internal/screens/history"
	"github.com/saaquiz/saaquiz/internal/screens/quiz"
	"github.com/saaquiz/saaquiz/internal/screens/summary"
	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/store"
	"github.com/saaquiz/saaquiz/internal/ui/components"
	"github.com/saaquiz/saaquiz/internal/ui/layout"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	sess *session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. A nil attempts repo disables HISTORY.
func New(sess *session.Session, attempts store.AttemptRepo, quizOpts ...quiz.Option) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(sess, quizOpts...)}
			}
		}},
		{Label: "PROGRESS", Disabled: sess.Err() != nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: summary.New(session.BuildSummary(sess.Set(), sess.Progress()), sess.Tally()),
				}
			}
		}},
		{Label: "HISTORY", Disabled: attempts == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(attempts)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		sess: sess,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)
	sum := session.BuildSummary(h.sess.Set(), h.sess.Progress())

	var sections []string
	sections = append(sections, renderTitle(width, cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(MoodFor(sum), cw))
	}

	sections = append(sections, renderStatsBar(sum, cw, compact))

	if set := h.sess.Set(); set != nil && len(set.Warnings()) > 0 {
		sections = append(sections, renderWarnings(len(set.Warnings()), cw))
	}

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Items, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Items, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
