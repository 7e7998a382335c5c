package session

import (
	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/progress"
	"github.com/saaquiz/saaquiz/internal/question"
)

// AnswerRow is one saved answer regraded against the current question set.
type AnswerRow struct {
	QNum    int
	Choice  string
	Correct string // empty when the answer cannot be extracted
	Outcome grader.Outcome
}

// Summary holds the data displayed by stats, the report and the home screen.
type Summary struct {
	TotalQuestions int
	Answered       int
	TotalCorrect   int
	TotalIncorrect int
	Ungraded       int
	Accuracy       float64 // correct / graded, 0 when nothing is graded
	Rows           []AnswerRow
}

// BuildSummary regrades every saved choice in prog against set. Saved
// choices for numbers no longer in set are counted as ungraded.
func BuildSummary(set *question.Set, prog *progress.Store) *Summary {
	sum := &Summary{}
	if set != nil {
		sum.TotalQuestions = set.Len()
	}
	if prog == nil {
		return sum
	}

	for _, qNum := range prog.Numbers() {
		row := AnswerRow{QNum: qNum, Choice: prog.Get(qNum), Outcome: grader.OutcomeUngraded}
		if set != nil {
			if rec, ok := set.Resolve(qNum); ok {
				row.Correct = grader.ExtractCorrectChoice(rec)
			}
		}
		switch {
		case row.Correct == "":
			sum.Ungraded++
		case row.Correct == row.Choice:
			row.Outcome = grader.OutcomeCorrect
			sum.TotalCorrect++
		default:
			row.Outcome = grader.OutcomeIncorrect
			sum.TotalIncorrect++
		}
		sum.Rows = append(sum.Rows, row)
	}

	sum.Answered = len(sum.Rows)
	if graded := sum.TotalCorrect + sum.TotalIncorrect; graded > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(graded)
	}
	return sum
}
