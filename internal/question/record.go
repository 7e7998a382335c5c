package question

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a single question as supplied by the question data file.
type Record struct {
	// Key is the storage key the record was found under. It usually equals
	// the stringified QNum but is not required to.
	Key string

	// QNum is the canonical question number. Only meaningful when HasQNum.
	QNum    int
	HasQNum bool

	Question     string
	AnswerBlock  string
	AnswerChoice string // optional single letter, may be empty
}

// navNumber returns the number used for navigation order: the record's
// q_num field when present, otherwise its storage key.
func navNumber(key string, fields map[string]any) (int, bool) {
	if v, ok := fields["q_num"]; ok && v != nil {
		return coerceNumber(v)
	}
	return coerceNumber(key)
}

// newRecord builds a Record from a decoded JSON value. Non-object values
// yield a record with no fields set.
func newRecord(key string, raw any) (Record, map[string]any) {
	rec := Record{Key: key}
	fields, ok := raw.(map[string]any)
	if !ok {
		return rec, nil
	}
	if v, ok := fields["q_num"]; ok && v != nil {
		rec.QNum, rec.HasQNum = coerceNumber(v)
	}
	rec.Question = fieldString(fields["question"])
	rec.AnswerBlock = fieldString(fields["answer_block"])
	rec.AnswerChoice = fieldString(fields["answer_choice"])
	return rec, fields
}

// coerceNumber converts a JSON scalar to an integral question number.
// Blank strings coerce to 0. Non-finite or fractional values are rejected.
func coerceNumber(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case int:
		return n, true
	case int64:
		f = float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func fieldString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case float64, int, int64, bool:
		return fmt.Sprint(s)
	default:
		return ""
	}
}
