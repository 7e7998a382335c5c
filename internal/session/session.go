// Package session holds the state of one quiz run: the loaded question set,
// the cursor, the grader and the saved progress. All mutation goes through
// the Session methods; renderers read a View.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/navigator"
	"github.com/saaquiz/saaquiz/internal/progress"
	"github.com/saaquiz/saaquiz/internal/question"
	"github.com/saaquiz/saaquiz/internal/store"
)

var (
	// ErrNotStarted is returned by operations that need a current question.
	ErrNotStarted = errors.New("no question selected")

	// ErrInvalidNumber is returned when jump input is not a question number.
	ErrInvalidNumber = errors.New("enter a question number")
)

// invalidChoiceNotice is shown for rejected submissions.
const invalidChoiceNotice = "Enter a letter A-E"

// Session is the quiz state machine. It starts unpositioned; the first
// successful JumpTo positions it. A session built from a failed load stays
// in the failed state and rejects every operation.
type Session struct {
	id       string
	set      *question.Set
	nav      *navigator.Navigator
	grader   *grader.Grader
	progress *progress.Store
	attempts AttemptRecorder
	log      *zap.Logger

	fatal    error
	revealed bool
	notice   string
	tone     Tone
	revision int
	tally    Tally
}

// Option configures a Session.
type Option func(*Session)

// WithAttempts appends every graded submission to rec.
func WithAttempts(rec AttemptRecorder) Option {
	return func(s *Session) { s.attempts = rec }
}

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New creates an unpositioned session over set. Submissions are saved to
// prog, or kept in memory when prog is nil. A nil set produces a failed
// session carrying ErrDataMissing.
func New(set *question.Set, prog *progress.Store, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		set:      set,
		progress: prog,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.progress == nil {
		s.progress = progress.Load(context.Background(), progress.NewMemoryBackend(), progress.WithLogger(s.log))
	}

	if set == nil {
		s.fatal = question.ErrDataMissing
		s.nav = navigator.New(nil)
	} else {
		s.nav = navigator.New(set.Numbers())
	}
	s.grader = grader.New(s.progress, s.log)
	return s
}

// Failed creates a session that only reports err.
func Failed(err error, opts ...Option) *Session {
	s := New(nil, nil, opts...)
	if err != nil {
		s.fatal = err
	}
	return s
}

// ID returns the session UUID stamped on recorded attempts.
func (s *Session) ID() string { return s.id }

// Err returns the fatal startup error, if any.
func (s *Session) Err() error { return s.fatal }

// Tally returns the submission counts for this session.
func (s *Session) Tally() Tally { return s.tally }

// Set returns the loaded question set (nil for a failed session).
func (s *Session) Set() *question.Set { return s.set }

// Progress returns the progress store.
func (s *Session) Progress() *progress.Store { return s.progress }

// JumpTo positions the session on qNum. Unknown numbers leave the current
// question in place and set an inline notice.
func (s *Session) JumpTo(qNum int) error {
	if s.fatal != nil {
		return s.fatal
	}
	if err := s.nav.JumpTo(qNum); err != nil {
		s.notice = err.Error()
		s.tone = ToneBad
		s.log.Debug("jump rejected", zap.Int("q_num", qNum), zap.Error(err))
		return err
	}
	s.render()
	return nil
}

// JumpInput parses a typed question number. A leading '#' is accepted.
func (s *Session) JumpInput(input string) error {
	if s.fatal != nil {
		return s.fatal
	}
	qNum, err := ParseQNum(input)
	if err != nil {
		s.notice = "Enter a question number"
		s.tone = ToneBad
		return err
	}
	return s.JumpTo(qNum)
}

// ParseQNum parses "170" or "#170". Only decimal digits are accepted.
func ParseQNum(input string) (int, error) {
	t := strings.TrimPrefix(strings.TrimSpace(input), "#")
	if t == "" || strings.TrimLeft(t, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, input)
	}
	return n, nil
}

// Next moves to the following question. It reports false at the end or
// before the first jump.
func (s *Session) Next() bool {
	if s.fatal != nil || !s.nav.Next() {
		return false
	}
	s.render()
	return true
}

// Prev moves to the preceding question. It reports false at the start or
// before the first jump.
func (s *Session) Prev() bool {
	if s.fatal != nil || !s.nav.Prev() {
		return false
	}
	s.render()
	return true
}

// Reveal shows the explanation of the current question.
func (s *Session) Reveal() bool {
	if s.fatal != nil || !s.nav.Started() {
		return false
	}
	s.revealed = true
	return true
}

// Submit grades input against the current question. Invalid input returns
// an error wrapping grader.ErrInvalidInput and changes nothing but the
// notice.
func (s *Session) Submit(ctx context.Context, input string) (grader.Result, error) {
	if s.fatal != nil {
		return grader.Result{}, s.fatal
	}
	qNum, ok := s.nav.Current()
	if !ok {
		return grader.Result{}, ErrNotStarted
	}

	rec, _ := s.set.Resolve(qNum)
	res, err := s.grader.Grade(ctx, qNum, rec, input)
	if err != nil {
		s.tone = ToneBad
		if errors.Is(err, grader.ErrInvalidInput) {
			s.tally.Invalid++
			s.notice = invalidChoiceNotice
		} else {
			s.notice = err.Error()
			s.log.Error("submit failed", zap.Int("q_num", qNum), zap.Error(err))
		}
		return grader.Result{}, err
	}

	s.tally.Submitted++
	s.notice = res.Message()
	switch res.Outcome {
	case grader.OutcomeCorrect:
		s.tally.Correct++
		s.tone = ToneGood
	case grader.OutcomeIncorrect:
		s.tally.Incorrect++
		s.tone = ToneBad
	default:
		s.tally.Ungraded++
		s.tone = ToneNeutral
	}

	s.recordAttempt(ctx, res)
	return res, nil
}

// recordAttempt appends to the attempt log. Failures are logged only: the
// choice is already saved in progress.
func (s *Session) recordAttempt(ctx context.Context, res grader.Result) {
	if s.attempts == nil {
		return
	}
	err := s.attempts.AppendAttempt(ctx, store.AttemptData{
		SessionID:     s.id,
		QNum:          res.QNum,
		Choice:        res.Choice,
		CorrectChoice: res.Correct,
		Outcome:       res.Outcome.String(),
	})
	if err != nil {
		s.log.Warn("record attempt", zap.Int("q_num", res.QNum), zap.Error(err))
	}
}

// render resets per-question view state after navigation.
func (s *Session) render() {
	s.revealed = false
	s.revision++
	s.tone = ToneNeutral
	s.notice = ""

	qNum, _ := s.nav.Current()
	if saved := s.saved(qNum); saved != "" {
		s.notice = "My answer: " + saved
	}
}

func (s *Session) saved(qNum int) string {
	return s.progress.Get(qNum)
}

// View returns the current render state.
func (s *Session) View() View {
	v := View{
		Err:           s.fatal,
		Notice:        s.notice,
		Tone:          s.tone,
		InputRevision: s.revision,
	}
	if s.fatal != nil {
		v.Notice = "Failed to load questions: " + s.fatal.Error()
		v.Tone = ToneBad
		return v
	}

	v.Total = s.nav.Len()
	v.Answered = s.progress.Len()

	qNum, ok := s.nav.Current()
	if !ok {
		return v
	}

	rec, found := s.set.Resolve(qNum)
	v.Positioned = true
	v.QNum = qNum
	v.Position = s.nav.Position()
	v.Question = NoQuestionText
	if found && rec.Question != "" {
		v.Question = rec.Question
	}
	v.SavedChoice = s.saved(qNum)

	v.CanPrev = s.nav.HasPrev()
	v.CanNext = s.nav.HasNext()
	v.CanReveal = true
	v.CanSubmit = true

	if s.revealed {
		v.ExplanationVisible = true
		v.Explanation = NoExplanationText
		if found && rec.AnswerBlock != "" {
			v.Explanation = rec.AnswerBlock
		}
		v.CanNextAfterExplain = v.CanNext
	}
	return v
}
