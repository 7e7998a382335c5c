package grader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaquiz/saaquiz/internal/question"
)

type mapRecorder struct {
	saved map[int]string
	err   error
}

func newMapRecorder() *mapRecorder {
	return &mapRecorder{saved: make(map[int]string)}
}

func (m *mapRecorder) Save(_ context.Context, qNum int, choice string) error {
	if m.err != nil {
		return m.err
	}
	m.saved[qNum] = choice
	return nil
}

func TestNormalizeChoice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"b", "B"},
		{"  c  ", "C"},
		{"abc", "A"},
		{"", ""},
		{"   ", ""},
		{"z", "Z"},
		{"é", "É"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeChoice(tt.in), "NormalizeChoice(%q)", tt.in)
	}
}

func TestNormalizeChoice_Idempotent(t *testing.T) {
	for _, in := range []string{"", "a", " b ", "xyz", "E", "1", "ß", "\tD\n"} {
		once := NormalizeChoice(in)
		assert.Equal(t, once, NormalizeChoice(once), "input %q", in)
	}
}

func TestExtractCorrectChoice(t *testing.T) {
	tests := []struct {
		name string
		rec  question.Record
		want string
	}{
		{"explicit field", question.Record{AnswerChoice: "b"}, "B"},
		{"field wins over block", question.Record{AnswerChoice: "D", AnswerBlock: "Answer: A"}, "D"},
		{"block with colon", question.Record{AnswerBlock: "Explanation... Answer: C"}, "C"},
		{"block full-width colon", question.Record{AnswerBlock: "Answer：E"}, "E"},
		{"block no separator", question.Record{AnswerBlock: "answer b"}, "B"},
		{"first match wins", question.Record{AnswerBlock: "Answer: A\nlater Answer: D"}, "A"},
		{"not a whole word", question.Record{AnswerBlock: "Answer: AB"}, ""},
		{"letter out of range", question.Record{AnswerBlock: "Answer: F"}, ""},
		{"prefixed word", question.Record{AnswerBlock: "CorrectAnswer: B"}, ""},
		{"nothing", question.Record{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCorrectChoice(tt.rec))
		})
	}
}

func TestGrade_Correct(t *testing.T) {
	rec := newMapRecorder()
	g := New(rec, nil)

	res, err := g.Grade(context.Background(), 5, question.Record{QNum: 5, HasQNum: true, AnswerChoice: "B"}, "b")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCorrect, res.Outcome)
	assert.Equal(t, "B", res.Choice)
	assert.Equal(t, "B", rec.saved[5])
	assert.Equal(t, "Correct! (B)", res.Message())
}

func TestGrade_Incorrect(t *testing.T) {
	rec := newMapRecorder()
	g := New(rec, nil)

	res, err := g.Grade(context.Background(), 3, question.Record{AnswerBlock: "Answer: C"}, "a")
	require.NoError(t, err)
	assert.Equal(t, OutcomeIncorrect, res.Outcome)
	assert.Equal(t, "C", res.Correct)
	assert.Equal(t, "A", rec.saved[3])
	assert.Contains(t, res.Message(), "Your answer: A")
	assert.Contains(t, res.Message(), "Correct: C")
}

func TestGrade_UngradedStillSaves(t *testing.T) {
	rec := newMapRecorder()
	g := New(rec, nil)

	res, err := g.Grade(context.Background(), 8, question.Record{AnswerBlock: "no letter here"}, "d")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUngraded, res.Outcome)
	assert.Empty(t, res.Correct)
	assert.Equal(t, "D", rec.saved[8])
	assert.Contains(t, res.Message(), "D")
}

func TestGrade_InvalidInputSavesNothing(t *testing.T) {
	for _, in := range []string{"z", "", "   ", "1", "?"} {
		rec := newMapRecorder()
		g := New(rec, nil)

		_, err := g.Grade(context.Background(), 5, question.Record{AnswerChoice: "B"}, in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		assert.Empty(t, rec.saved, "input %q must not be saved", in)
	}
}

func TestGrade_RecorderFailure(t *testing.T) {
	rec := newMapRecorder()
	rec.err = errors.New("disk full")
	g := New(rec, nil)

	_, err := g.Grade(context.Background(), 1, question.Record{AnswerChoice: "A"}, "a")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}
