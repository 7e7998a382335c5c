// Package importer converts an exam dump into the question data file read
// by the quiz. Input is plain text extracted from the dump or an HTML
// export of it.
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/question"
)

// ErrNoQuestions is returned when the input contains no question headers.
var ErrNoQuestions = errors.New("no question headers found")

var (
	// headerPattern matches "Q123" at the start of a line.
	headerPattern = regexp.MustCompile(`(?im)^\s*Q(\d{1,4})\b`)

	// answerStartPattern matches the line that opens the answer block.
	answerStartPattern = regexp.MustCompile(`(?im)^\s*(?:Answer\b|답안|정답)\s*[:：]?\s*`)
)

// Entry is one parsed question. AnswerChoice is nil when the answer block
// has no recognizable letter.
type Entry struct {
	QNum         int     `json:"q_num"`
	Question     string  `json:"question"`
	AnswerBlock  string  `json:"answer_block"`
	AnswerChoice *string `json:"answer_choice"`
}

// Format selects the output file shape.
type Format int

const (
	FormatJSON Format = iota // plain JSON object
	FormatJS                 // window.__QA__ = {...};
)

// ParseText splits text on question headers and parses each span. A span
// runs from its header to the next one. When a number repeats, the later
// span wins but keeps the position of the first.
func ParseText(text string) []Entry {
	matches := headerPattern.FindAllStringSubmatchIndex(text, -1)

	var (
		order []int
		byNum = make(map[int]Entry)
	)
	for i, m := range matches {
		qNum, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if _, seen := byNum[qNum]; !seen {
			order = append(order, qNum)
		}
		byNum[qNum] = parseSection(qNum, strings.TrimSpace(text[m[0]:end]))
	}

	out := make([]Entry, 0, len(order))
	for _, n := range order {
		out = append(out, byNum[n])
	}
	return out
}

func parseSection(qNum int, section string) Entry {
	questionPart, answerPart := section, ""
	if loc := answerStartPattern.FindStringIndex(section); loc != nil {
		questionPart = section[:loc[0]]
		answerPart = strings.TrimSpace(section[loc[0]:])
	}

	// Drop the leading "Qn" header.
	questionPart = strings.TrimSpace(questionPart)
	if loc := headerPattern.FindStringIndex(questionPart); loc != nil && loc[0] == 0 {
		questionPart = questionPart[loc[1]:]
	}
	questionPart = strings.TrimSpace(questionPart)

	e := Entry{QNum: qNum, Question: questionPart, AnswerBlock: answerPart}
	if c := grader.ExtractCorrectChoice(question.Record{AnswerBlock: answerPart}); c != "" {
		e.AnswerChoice = &c
	}
	return e
}

// Encode writes entries as a JSON object keyed by the stringified q_num,
// in input order, indented two spaces. Non-ASCII text is kept as is.
func Encode(w io.Writer, entries []Entry, format Format) error {
	var buf bytes.Buffer
	if format == FormatJS {
		buf.WriteString("/* auto-generated */\nwindow.__QA__ = ")
	}

	buf.WriteString("{")
	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",")
		}
		body, err := marshalIndent(e)
		if err != nil {
			return fmt.Errorf("encode Q%d: %w", e.QNum, err)
		}
		fmt.Fprintf(&buf, "\n  %q: %s", strconv.Itoa(e.QNum), body)
	}
	if len(entries) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")

	if format == FormatJS {
		buf.WriteString(";")
	}
	buf.WriteString("\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func marshalIndent(e Entry) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("  ", "  ")
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

// FormatFor picks the output format from a file name.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".js") {
		return FormatJS
	}
	return FormatJSON
}

// Read extracts plain text from path. Files ending in .html or .htm are
// read through the HTML extractor.
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return TextFromHTML(f)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
}

// Convert parses in and writes the data file to out. It returns the
// parsed entries.
func Convert(in, out string, format Format) ([]Entry, error) {
	text, err := Read(in)
	if err != nil {
		return nil, err
	}
	entries := ParseText(text)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", in, ErrNoQuestions)
	}

	f, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	if err := Encode(f, entries, format); err != nil {
		f.Close()
		return nil, fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close output: %w", err)
	}
	return entries, nil
}
