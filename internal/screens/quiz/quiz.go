// Package quiz is the question browsing screen: jump, step, answer and
// reveal the explanation.
package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/screen"
	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/ui/components"
	"github.com/saaquiz/saaquiz/internal/ui/layout"
)

type field int

const (
	fieldJump field = iota
	fieldAnswer
)

// QuizScreen implements screen.Screen over a session.Session.
type QuizScreen struct {
	sess     *session.Session
	ctx      context.Context
	jump     components.TextInput
	answer   components.TextInput
	focus    field
	revision int
	start    int
	hasStart bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// Option configures a QuizScreen.
type Option func(*QuizScreen)

// WithStart jumps to qNum when the screen opens.
func WithStart(qNum int) Option {
	return func(s *QuizScreen) {
		s.start = qNum
		s.hasStart = true
	}
}

// WithContext sets the context used for saving answers.
func WithContext(ctx context.Context) Option {
	return func(s *QuizScreen) { s.ctx = ctx }
}

// New creates a QuizScreen.
func New(sess *session.Session, opts ...Option) *QuizScreen {
	s := &QuizScreen{
		sess:   sess,
		ctx:    context.Background(),
		jump:   components.NewTextInput("#", components.InputQNum, 6),
		answer: components.NewTextInput("A-E", components.InputLetters, 4),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.jump.Focus()
	s.revision = sess.View().InputRevision
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input(s.focus).Focus()}
	if s.hasStart {
		qNum := s.start
		cmds = append(cmds, func() tea.Msg { return startJumpMsg{QNum: qNum} })
	}
	return tea.Batch(cmds...)
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	v := s.sess.View()
	if v.Err != nil {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{{Key: "0-9", Description: "Jump"}}
	if v.CanSubmit {
		hints = append(hints, layout.KeyHint{Key: "A-E", Description: "Answer"})
	}
	hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Go"})
	if v.CanPrev || v.CanNext {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Prev/Next"})
	}
	if v.CanReveal {
		hints = append(hints, layout.KeyHint{Key: "?", Description: "Explanation"})
	}
	if v.CanNextAfterExplain {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Next"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *QuizScreen) View(width, height int) string {
	v := s.sess.View()
	if v.Err != nil {
		return renderError(width, v.Notice)
	}
	return s.renderQuiz(width, height, v)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startJumpMsg:
		s.sess.JumpTo(msg.QNum)
		s.sync()
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.sess.Err() != nil {
		return s, nil
	}

	switch key := msg.String(); key {
	case "left":
		s.sess.Prev()
	case "right":
		s.sess.Next()
	case "?":
		s.sess.Reveal()
	case "space", " ":
		if s.sess.View().CanNextAfterExplain {
			s.sess.Next()
		}
	case "tab":
		return s, s.setFocus(1 - s.focus)
	case "enter":
		return s, s.handleEnter()
	case "backspace":
		return s, s.forward(msg)
	default:
		if len([]rune(key)) != 1 {
			break
		}
		switch {
		case s.jump.Accepts(key):
			return s, tea.Batch(s.setFocus(fieldJump), s.forward(msg))
		case s.answer.Accepts(key) && s.sess.View().CanSubmit:
			return s, tea.Batch(s.setFocus(fieldAnswer), s.forward(msg))
		}
	}
	s.sync()
	return s, nil
}

// handleEnter jumps when a number is typed, otherwise submits the answer.
func (s *QuizScreen) handleEnter() tea.Cmd {
	if s.jump.Value() != "" || !s.sess.View().Positioned {
		if err := s.sess.JumpInput(s.jump.Value()); err == nil {
			s.jump.Reset()
			s.sync()
			return s.setFocus(fieldAnswer)
		}
		return nil
	}

	res, err := s.sess.Submit(s.ctx, s.answer.Value())
	switch {
	case errors.Is(err, grader.ErrInvalidInput):
		s.answer.Reset()
	case err == nil:
		s.answer.Mark(res.Outcome != grader.OutcomeIncorrect)
	}
	return nil
}

// sync clears the answer after navigation so the previous entry does not
// carry over.
func (s *QuizScreen) sync() {
	if rev := s.sess.View().InputRevision; rev != s.revision {
		s.revision = rev
		s.answer.Reset()
	}
}

func (s *QuizScreen) setFocus(f field) tea.Cmd {
	if s.focus == f && s.input(f).Focused() {
		return nil
	}
	s.focus = f
	if f == fieldJump {
		s.answer.Blur()
		return s.jump.Focus()
	}
	s.jump.Blur()
	return s.answer.Focus()
}

func (s *QuizScreen) input(f field) *components.TextInput {
	if f == fieldJump {
		return &s.jump
	}
	return &s.answer
}

// forward passes msg to the focused input.
func (s *QuizScreen) forward(msg tea.Msg) tea.Cmd {
	in := s.input(s.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}
