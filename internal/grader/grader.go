package grader

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/saaquiz/saaquiz/internal/question"
)

// ErrInvalidInput is returned when the submitted answer is not one of A-E.
var ErrInvalidInput = errors.New("answer must be a letter A-E")

// Outcome is the result class of a graded submission.
type Outcome int

const (
	OutcomeCorrect   Outcome = iota // choice matches the extracted answer
	OutcomeIncorrect                // choice differs from the extracted answer
	OutcomeUngraded                 // choice saved, correct answer unknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeUngraded:
		return "ungraded"
	default:
		return "unknown"
	}
}

// Result describes a graded submission.
type Result struct {
	QNum    int
	Choice  string // the normalized, saved choice
	Correct string // the extracted correct choice; empty when ungraded
	Outcome Outcome
}

// Message renders the result as a single user-facing line.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeCorrect:
		return fmt.Sprintf("Correct! (%s)", r.Choice)
	case OutcomeIncorrect:
		return fmt.Sprintf("Incorrect. Your answer: %s / Correct: %s", r.Choice, r.Correct)
	default:
		return fmt.Sprintf("Saved (correct answer unknown). Your answer: %s", r.Choice)
	}
}

// Recorder persists a submitted choice for a question number.
type Recorder interface {
	Save(ctx context.Context, qNum int, choice string) error
}

// answerPattern finds "Answer", an optional colon (ASCII or full-width) and
// a single letter A-E as a whole word. First match wins.
var answerPattern = regexp.MustCompile(`(?i)\bAnswer\b\s*[:：]?\s*([A-E])\b`)

const validChoices = "ABCDE"

// NormalizeChoice trims and uppercases input and keeps its first character.
func NormalizeChoice(input string) string {
	t := strings.ToUpper(strings.TrimSpace(input))
	if t == "" {
		return ""
	}
	for _, r := range t {
		return string(r)
	}
	return ""
}

// IsValidChoice reports whether c is a single letter A-E.
func IsValidChoice(c string) bool {
	return len(c) == 1 && strings.Contains(validChoices, c)
}

// ExtractCorrectChoice returns the correct letter for rec, preferring the
// explicit answer_choice field over scanning the answer block. Returns ""
// if neither yields a letter.
func ExtractCorrectChoice(rec question.Record) string {
	if rec.AnswerChoice != "" {
		return NormalizeChoice(rec.AnswerChoice)
	}
	m := answerPattern.FindStringSubmatch(rec.AnswerBlock)
	if m == nil {
		return ""
	}
	return NormalizeChoice(m[1])
}

// Grader validates and records submissions.
type Grader struct {
	rec Recorder
	log *zap.Logger
}

// New creates a Grader that saves every valid submission through rec.
func New(rec Recorder, log *zap.Logger) *Grader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Grader{rec: rec, log: log}
}

// Grade normalizes input, saves it under the record's question number and
// compares it with the extracted correct choice. Invalid input returns
// ErrInvalidInput and saves nothing. The choice is saved even when the
// correct answer cannot be determined.
func (g *Grader) Grade(ctx context.Context, qNum int, rec question.Record, input string) (Result, error) {
	choice := NormalizeChoice(input)
	if !IsValidChoice(choice) {
		return Result{}, fmt.Errorf("%w: got %q", ErrInvalidInput, strings.TrimSpace(input))
	}

	if err := g.rec.Save(ctx, qNum, choice); err != nil {
		return Result{}, fmt.Errorf("save choice: %w", err)
	}

	res := Result{QNum: qNum, Choice: choice, Correct: ExtractCorrectChoice(rec)}
	switch {
	case res.Correct == "":
		res.Outcome = OutcomeUngraded
	case res.Correct == choice:
		res.Outcome = OutcomeCorrect
	default:
		res.Outcome = OutcomeIncorrect
	}

	g.log.Debug("graded",
		zap.Int("q_num", qNum),
		zap.String("choice", choice),
		zap.String("correct", res.Correct),
		zap.Stringer("outcome", res.Outcome),
	)
	return res, nil
}
