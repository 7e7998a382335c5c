package question

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RejectsMissingOrWrongShape(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"string", "not a mapping"},
		{"slice", []any{1, 2, 3}},
		{"number", 42.0},
		{"nil map", map[string]any(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDataMissing), "got %v", err)
		})
	}
}

func TestLoad_SortsDistinctNumbers(t *testing.T) {
	raw := map[string]any{
		"3":  map[string]any{"q_num": 3.0, "question": "three"},
		"1":  map[string]any{"q_num": 1.0, "question": "one"},
		"x":  map[string]any{"q_num": "2", "question": "two"},
		"10": map[string]any{"question": "key fallback"},
		"dup": map[string]any{"q_num": 1.0},
		"bad": map[string]any{"q_num": "abc"},
		"7":  map[string]any{"q_num": nil},
		"frac": map[string]any{"q_num": 2.5},
	}

	s, err := Load(raw)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 7, 10}, s.Numbers())
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, 1, s.Min())
	assert.Equal(t, 10, s.Max())
}

func TestLoad_NonObjectRecordUsesKey(t *testing.T) {
	s, err := Load(map[string]any{"4": "garbage"})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, s.Numbers())

	// Navigable, but the record has no q_num so it does not resolve.
	_, ok := s.Resolve(4)
	assert.False(t, ok)
}

func TestResolve_ToleratesKeyMismatch(t *testing.T) {
	raw := map[string]any{
		"1":  map[string]any{"q_num": 2.0, "question": "stored under 1"},
		"2":  map[string]any{"q_num": 5.0, "question": "stored under 2"},
		"q1": map[string]any{"q_num": 1.0, "question": "stored under q1"},
	}
	s, err := Load(raw)
	require.NoError(t, err)

	for _, n := range s.Numbers() {
		rec, ok := s.Resolve(n)
		require.True(t, ok, "q_num %d should resolve", n)
		assert.Equal(t, n, rec.QNum)
	}

	rec, ok := s.Resolve(1)
	require.True(t, ok)
	assert.Equal(t, "q1", rec.Key)
	assert.Equal(t, "stored under q1", rec.Question)
}

func TestResolve_PrefersDirectKey(t *testing.T) {
	raw := map[string]any{
		"5": map[string]any{"q_num": 5.0, "question": "direct"},
		"a": map[string]any{"q_num": 5.0, "question": "scan"},
	}
	s, err := Load(raw)
	require.NoError(t, err)

	rec, ok := s.Resolve(5)
	require.True(t, ok)
	assert.Equal(t, "direct", rec.Question)
}

func TestResolve_MissIsNotAnError(t *testing.T) {
	s, err := Load(map[string]any{"1": map[string]any{"q_num": 1.0}})
	require.NoError(t, err)

	_, ok := s.Resolve(99)
	assert.False(t, ok)

	var nilSet *Set
	_, ok = nilSet.Resolve(1)
	assert.False(t, ok)
}

func TestDecode_KeepsSourceOrderForScan(t *testing.T) {
	// Both non-index keys carry q_num 9; the first one in the file wins.
	data := `{"zeta": {"q_num": 9, "question": "first"}, "alpha": {"q_num": 9, "question": "second"}}`
	s, err := Decode(strings.NewReader(data))
	require.NoError(t, err)

	rec, ok := s.Resolve(9)
	require.True(t, ok)
	assert.Equal(t, "first", rec.Question)
}

func TestDecode_RejectsNonObject(t *testing.T) {
	for _, input := range []string{"", "null", "[1,2]", `"text"`, "{"} {
		_, err := Decode(strings.NewReader(input))
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, ErrDataMissing)
	}
}

func TestDecode_ReadsFields(t *testing.T) {
	data := `{"12": {"q_num": 12, "question": "Which service?", "answer_block": "Answer: B\nbecause", "answer_choice": "B"}}`
	s, err := Decode(strings.NewReader(data))
	require.NoError(t, err)

	rec, ok := s.Resolve(12)
	require.True(t, ok)
	assert.Equal(t, "12", rec.Key)
	assert.Equal(t, "Which service?", rec.Question)
	assert.Equal(t, "Answer: B\nbecause", rec.AnswerBlock)
	assert.Equal(t, "B", rec.AnswerChoice)
	assert.Empty(t, s.Warnings())
}

func TestDecode_WarnsOnOddFieldTypes(t *testing.T) {
	data := `{"1": {"q_num": 1, "question": ["not", "text"]}}`
	s, err := Decode(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, s.Warnings(), 1)
	assert.Equal(t, []int{1}, s.Numbers())
}

func TestParse_AcceptsJSWrapper(t *testing.T) {
	data := "/* auto-generated */\nwindow.__QA__ = {\"1\": {\"q_num\": 1, \"question\": \"Q?\"}};\n"
	s, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, s.Numbers())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrDataMissing)

	p := filepath.Join(dir, "qa.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"2": {"q_num": 2}}`), 0o644))
	s, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, s.Numbers())
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"", 0, true},
		{"abc", 0, false},
		{3.0, 3, true},
		{3.5, 0, false},
		{true, 1, true},
		{[]any{}, 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := coerceNumber(tt.in)
		assert.Equal(t, tt.wantOK, ok, "coerceNumber(%#v)", tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "coerceNumber(%#v)", tt.in)
		}
	}
}
