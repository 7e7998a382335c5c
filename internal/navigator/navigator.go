// Package navigator tracks the cursor over the sorted question numbers.
package navigator

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is wrapped by RangeError when a jump target is unknown.
var ErrNotFound = errors.New("question number not found")

// RangeError reports a jump to a question number outside the known set.
type RangeError struct {
	QNum  int
	Min   int
	Max   int
	Empty bool
}

func (e *RangeError) Error() string {
	if e.Empty {
		return fmt.Sprintf("Q%d not found (no questions loaded)", e.QNum)
	}
	return fmt.Sprintf("Q%d not found (range: %d ~ %d)", e.QNum, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrNotFound }

// Navigator holds a cursor into an ascending list of question numbers.
// The cursor is -1 until the first successful jump.
type Navigator struct {
	numbers []int
	cursor  int
}

// New creates an unstarted Navigator over numbers, which must be sorted
// ascending.
func New(numbers []int) *Navigator {
	ns := make([]int, len(numbers))
	copy(ns, numbers)
	return &Navigator{numbers: ns, cursor: -1}
}

// JumpTo positions the cursor on qNum. An unknown number leaves the cursor
// unchanged and returns a *RangeError.
func (n *Navigator) JumpTo(qNum int) error {
	i := sort.SearchInts(n.numbers, qNum)
	if i >= len(n.numbers) || n.numbers[i] != qNum {
		re := &RangeError{QNum: qNum, Empty: len(n.numbers) == 0}
		if !re.Empty {
			re.Min = n.numbers[0]
			re.Max = n.numbers[len(n.numbers)-1]
		}
		return re
	}
	n.cursor = i
	return nil
}

// Next advances one question. It reports false (and does nothing) when
// unstarted or already at the last question.
func (n *Navigator) Next() bool {
	if !n.HasNext() {
		return false
	}
	n.cursor++
	return true
}

// Prev moves back one question. It reports false (and does nothing) when
// unstarted or already at the first question.
func (n *Navigator) Prev() bool {
	if !n.HasPrev() {
		return false
	}
	n.cursor--
	return true
}

// HasNext reports whether Next would move.
func (n *Navigator) HasNext() bool {
	return n.Started() && n.cursor < len(n.numbers)-1
}

// HasPrev reports whether Prev would move.
func (n *Navigator) HasPrev() bool {
	return n.Started() && n.cursor > 0
}

// Started reports whether the cursor has been positioned.
func (n *Navigator) Started() bool { return n.cursor >= 0 }

// Index returns the cursor, -1 when unstarted.
func (n *Navigator) Index() int { return n.cursor }

// Len returns the number of navigable questions.
func (n *Navigator) Len() int { return len(n.numbers) }

// Current returns the question number under the cursor.
func (n *Navigator) Current() (int, bool) {
	if !n.Started() {
		return 0, false
	}
	return n.numbers[n.cursor], true
}

// Neighbors returns the question numbers before and after the cursor.
func (n *Navigator) Neighbors() (prev, next int, hasPrev, hasNext bool) {
	if n.HasPrev() {
		prev, hasPrev = n.numbers[n.cursor-1], true
	}
	if n.HasNext() {
		next, hasNext = n.numbers[n.cursor+1], true
	}
	return prev, next, hasPrev, hasNext
}

// Position renders the 1-based progress, e.g. "3 / 120".
func (n *Navigator) Position() string {
	return fmt.Sprintf("%d / %d", n.cursor+1, len(n.numbers))
}
