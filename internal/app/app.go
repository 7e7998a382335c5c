package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/saaquiz/saaquiz/internal/router"
	"github.com/saaquiz/saaquiz/internal/screen"
	"github.com/saaquiz/saaquiz/internal/screens/home"
	"github.com/saaquiz/saaquiz/internal/screens/quiz"
	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/store"
	"github.com/saaquiz/saaquiz/internal/ui/layout"
)

// Options holds the dependencies injected into the app.
type Options struct {
	Session  *session.Session
	Attempts store.AttemptRepo // nil disables the History screen

	// StartQNum is the deep-link question, applied when HasStart is set.
	StartQNum int
	HasStart  bool

	// Direct opens the quiz without the home screen below it.
	Direct bool

	Context context.Context
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen, and queues the
// quiz on top when a start question or direct mode is requested.
func newAppModel(opts Options) AppModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	quizOpts := []quiz.Option{quiz.WithContext(ctx)}
	if opts.HasStart {
		quizOpts = append(quizOpts, quiz.WithStart(opts.StartQNum))
	}

	m := AppModel{
		router: router.New(home.New(opts.Session, opts.Attempts, quiz.WithContext(ctx))),
		sess:   opts.Session,
	}

	var q screen.Screen
	if opts.HasStart || opts.Direct {
		q = quiz.New(opts.Session, quizOpts...)
	}
	switch {
	case opts.Direct:
		m.start = func() tea.Msg { return router.ReplaceScreenMsg{Screen: q} }
	case q != nil:
		m.start = func() tea.Msg { return router.PushScreenMsg{Screen: q} }
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer at the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	sv := m.sess.View()
	header := layout.RenderHeader(title, sv.Answered, sv.Total, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
