package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
)

// jsWrapper matches the browser data file form: window.__QA__ = {...};
var jsWrapper = regexp.MustCompile(`(?s)^\s*(?:/\*.*?\*/\s*)?window\.__QA__\s*=\s*(.*?)\s*;?\s*$`)

// LoadFile reads a question set from a JSON file or a JS data file that
// assigns the object to window.__QA__.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrDataMissing, path)
		}
		return nil, fmt.Errorf("read question data: %w", err)
	}
	return Parse(data)
}

// Parse decodes question data, accepting the JS wrapper form.
func Parse(data []byte) (*Set, error) {
	if m := jsWrapper.FindSubmatch(data); m != nil {
		data = m[1]
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a JSON object of records, keeping the key order of the
// source for lookup scans.
func Decode(r io.Reader) (*Set, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrDataMissing)
		}
		return nil, fmt.Errorf("%w: %v", ErrDataMissing, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected an object of records", ErrDataMissing)
	}

	values := make(map[string]any)
	var keys []string
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataMissing, err)
		}
		key, _ := kt.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", ErrDataMissing, key, err)
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataMissing, err)
	}

	return build(orderKeys(keys), values)
}
