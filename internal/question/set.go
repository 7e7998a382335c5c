package question

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrDataMissing is returned when the question data is absent or is not a
// key → record mapping.
var ErrDataMissing = errors.New("question data missing")

// Set is the read-only question set for one session.
type Set struct {
	keys    []string // lookup scan order
	records map[string]Record
	numbers []int // sorted, distinct
	warns   []string
}

// Load builds a Set from an already-decoded JSON value. Keys are scanned
// integer-like first (ascending), then the rest in lexical order.
func Load(raw any) (*Set, error) {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		if raw == nil {
			return nil, fmt.Errorf("%w: no data supplied", ErrDataMissing)
		}
		return nil, fmt.Errorf("%w: expected an object of records, got %T", ErrDataMissing, raw)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return build(orderKeys(keys), m)
}

// build assembles the Set. keys must already be in scan order.
func build(keys []string, values map[string]any) (*Set, error) {
	if err := validateSet(values); err != nil {
		return nil, err
	}

	s := &Set{
		keys:    keys,
		records: make(map[string]Record, len(keys)),
	}

	seen := make(map[int]bool, len(keys))
	for _, k := range keys {
		rec, fields := newRecord(k, values[k])
		s.records[k] = rec

		if fields != nil {
			if err := validateRecord(fields); err != nil {
				s.warns = append(s.warns, fmt.Sprintf("record %q: %v", k, err))
			}
		}

		n, ok := navNumber(k, fields)
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		s.numbers = append(s.numbers, n)
	}
	sort.Ints(s.numbers)
	return s, nil
}

// orderKeys applies object key ordering: canonical non-negative integer
// keys ascending, then all other keys in their given order.
func orderKeys(keys []string) []string {
	var ints, rest []string
	for _, k := range keys {
		if isIndexKey(k) {
			ints = append(ints, k)
		} else {
			rest = append(rest, k)
		}
	}
	sort.SliceStable(ints, func(i, j int) bool {
		a, _ := strconv.ParseUint(ints[i], 10, 32)
		b, _ := strconv.ParseUint(ints[j], 10, 32)
		return a < b
	})
	return append(ints, rest...)
}

func isIndexKey(k string) bool {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	return err == nil && n < 1<<32-1
}

// Resolve returns the record whose q_num equals qNum. The record stored under
// the stringified number wins when its q_num matches; otherwise every record
// is scanned. A miss is reported through ok, it is not an error.
func (s *Set) Resolve(qNum int) (rec Record, ok bool) {
	if s == nil {
		return Record{}, false
	}
	if r, found := s.records[strconv.Itoa(qNum)]; found && r.HasQNum && r.QNum == qNum {
		return r, true
	}
	for _, k := range s.keys {
		r := s.records[k]
		if r.HasQNum && r.QNum == qNum {
			return r, true
		}
	}
	return Record{}, false
}

// Numbers returns the sorted question numbers used for navigation.
func (s *Set) Numbers() []int {
	out := make([]int, len(s.numbers))
	copy(out, s.numbers)
	return out
}

// Len returns the number of navigable question numbers.
func (s *Set) Len() int { return len(s.numbers) }

// Min returns the smallest question number, or 0 for an empty set.
func (s *Set) Min() int {
	if len(s.numbers) == 0 {
		return 0
	}
	return s.numbers[0]
}

// Max returns the largest question number, or 0 for an empty set.
func (s *Set) Max() int {
	if len(s.numbers) == 0 {
		return 0
	}
	return s.numbers[len(s.numbers)-1]
}

// Warnings lists records whose fields did not match the expected shape.
// Such records are still loaded.
func (s *Set) Warnings() []string { return s.warns }
