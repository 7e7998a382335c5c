package session

import (
	"context"

	"github.com/saaquiz/saaquiz/internal/store"
)

// Placeholder texts shown when a record has no content.
const (
	NoQuestionText    = "(no question)"
	NoExplanationText = "(no explanation)"
)

// Tone classifies the notice line for styling.
type Tone int

const (
	ToneNeutral Tone = iota // saved answer, ungraded submission
	ToneGood                // correct answer
	ToneBad                 // incorrect answer, invalid input, unknown number
)

// AttemptRecorder receives every graded submission. The SQLite attempt log
// implements it; a nil recorder disables the log.
type AttemptRecorder interface {
	AppendAttempt(ctx context.Context, data store.AttemptData) error
}

// View is a snapshot of everything a renderer needs to draw the quiz.
type View struct {
	// Err is the fatal startup error. When set, nothing else is meaningful
	// and every control is disabled.
	Err error

	// Positioned is false until the first successful jump.
	Positioned bool

	// QNum is the current question number.
	QNum int

	// Position is the 1-based "index / total" label.
	Position string

	// Question is the question text, or NoQuestionText.
	Question string

	// SavedChoice is the previously saved answer for QNum, or "".
	SavedChoice string

	// Notice is the result line: the saved answer after navigation, the
	// grading message after a submission, or an inline error.
	Notice string

	// Tone classifies Notice.
	Tone Tone

	// ExplanationVisible is true after Reveal until the next navigation.
	ExplanationVisible bool

	// Explanation is the answer block, or NoExplanationText. Empty while
	// hidden.
	Explanation string

	CanPrev             bool
	CanNext             bool
	CanReveal           bool
	CanSubmit           bool
	CanNextAfterExplain bool

	// InputRevision increments on every navigation. Renderers clear the
	// answer input when it changes.
	InputRevision int

	// Total is the number of navigable questions.
	Total int

	// Answered is the number of questions with a saved choice.
	Answered int
}

// Tally counts submissions made during one session.
type Tally struct {
	Submitted int
	Correct   int
	Incorrect int
	Ungraded  int
	Invalid   int
}
