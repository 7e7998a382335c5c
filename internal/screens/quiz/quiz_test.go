package quiz

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/saaquiz/saaquiz/internal/progress"
	"github.com/saaquiz/saaquiz/internal/question"
	"github.com/saaquiz/saaquiz/internal/screen"
	"github.com/saaquiz/saaquiz/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuizScreen(t *testing.T, opts ...Option) (*QuizScreen, *progress.Store) {
	t.Helper()
	set, err := question.Parse([]byte(`{
		"1": {"q_num": 1, "question": "Which service stores objects?", "answer_block": "Answer: A\nS3 stores objects."},
		"2": {"q_num": 2, "question": "Which service is a queue?", "answer_block": "Answer: C"},
		"5": {"q_num": 5, "question": "Which service is DNS?", "answer_block": ""}
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog := progress.Load(context.Background(), progress.NewMemoryBackend())
	return New(session.New(set, prog), opts...), prog
}

func send(t *testing.T, scr screen.Screen, msgs ...tea.Msg) *QuizScreen {
	t.Helper()
	for _, msg := range msgs {
		scr, _ = scr.Update(msg)
	}
	return scr.(*QuizScreen)
}

func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, keyPress(r))
	}
	return msgs
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := testQuizScreen(t)
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestQuizScreen_UnstartedView(t *testing.T) {
	s, _ := testQuizScreen(t)
	view := s.View(100, 30)
	if !strings.Contains(view, "Type a question number") {
		t.Error("expected jump prompt before the first jump")
	}
	if s.sess.View().Positioned {
		t.Error("expected no current question")
	}
}

func TestQuizScreen_JumpWithEnter(t *testing.T) {
	s, _ := testQuizScreen(t)

	msgs := append(typeText("#2"), specialKey(tea.KeyEnter))
	s = send(t, s, msgs...)

	v := s.sess.View()
	if !v.Positioned || v.QNum != 2 {
		t.Fatalf("QNum = %d (positioned %v), want 2", v.QNum, v.Positioned)
	}
	if s.jump.Value() != "" {
		t.Errorf("jump input = %q, want cleared", s.jump.Value())
	}
	if s.focus != fieldAnswer {
		t.Error("expected focus to move to the answer input after a jump")
	}
	if !strings.Contains(s.View(100, 30), "Which service is a queue?") {
		t.Error("expected question text in view")
	}
}

func TestQuizScreen_JumpNotFound(t *testing.T) {
	s, _ := testQuizScreen(t)

	msgs := append(typeText("999"), specialKey(tea.KeyEnter))
	s = send(t, s, msgs...)

	v := s.sess.View()
	if v.Positioned {
		t.Error("expected cursor to stay unset")
	}
	if v.Notice != "Q999 not found (range: 1 ~ 5)" {
		t.Errorf("Notice = %q", v.Notice)
	}
}

func TestQuizScreen_StartJump(t *testing.T) {
	s, _ := testQuizScreen(t, WithStart(5))

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected Init to schedule the start jump")
	}
	s = send(t, s, startJumpMsg{QNum: 5})
	if v := s.sess.View(); v.QNum != 5 {
		t.Errorf("QNum = %d, want 5", v.QNum)
	}
}

func TestQuizScreen_PrevNext(t *testing.T) {
	s, _ := testQuizScreen(t, WithStart(1))
	s = send(t, s, startJumpMsg{QNum: 1})

	s = send(t, s, specialKey(tea.KeyLeft))
	if v := s.sess.View(); v.QNum != 1 {
		t.Errorf("prev at start moved to Q%d", v.QNum)
	}

	s = send(t, s, specialKey(tea.KeyRight), specialKey(tea.KeyRight))
	if v := s.sess.View(); v.QNum != 5 || v.Position != "3 / 3" {
		t.Errorf("after two nexts: Q%d %s, want Q5 3 / 3", v.QNum, v.Position)
	}

	s = send(t, s, specialKey(tea.KeyRight))
	if v := s.sess.View(); v.QNum != 5 {
		t.Errorf("next at end moved to Q%d", v.QNum)
	}
}

func TestQuizScreen_SubmitCorrect(t *testing.T) {
	s, prog := testQuizScreen(t)
	s = send(t, s, startJumpMsg{QNum: 1})

	msgs := append(typeText("a"), specialKey(tea.KeyEnter))
	s = send(t, s, msgs...)

	v := s.sess.View()
	if v.Notice != "Correct! (A)" || v.Tone != session.ToneGood {
		t.Errorf("Notice = %q tone %v", v.Notice, v.Tone)
	}
	if prog.Get(1) != "A" {
		t.Errorf("saved = %q, want A", prog.Get(1))
	}
}

func TestQuizScreen_SubmitIncorrect(t *testing.T) {
	s, _ := testQuizScreen(t)
	s = send(t, s, startJumpMsg{QNum: 2})

	msgs := append(typeText("b"), specialKey(tea.KeyEnter))
	s = send(t, s, msgs...)

	if v := s.sess.View(); v.Notice != "Incorrect. Your answer: B / Correct: C" {
		t.Errorf("Notice = %q", v.Notice)
	}
}

func TestQuizScreen_SubmitInvalid(t *testing.T) {
	s, prog := testQuizScreen(t)
	s = send(t, s, startJumpMsg{QNum: 1})

	msgs := append(typeText("z"), specialKey(tea.KeyEnter))
	s = send(t, s, msgs...)

	if v := s.sess.View(); v.Notice != "Enter a letter A-E" {
		t.Errorf("Notice = %q", v.Notice)
	}
	if prog.Len() != 0 {
		t.Error("invalid input must not be saved")
	}
	if s.answer.Value() != "" {
		t.Error("expected answer input to be cleared")
	}
}

func TestQuizScreen_LettersIgnoredBeforeJump(t *testing.T) {
	s, _ := testQuizScreen(t)
	s = send(t, s, typeText("ab")...)
	if s.answer.Value() != "" {
		t.Errorf("answer = %q, want empty before the first jump", s.answer.Value())
	}
}

func TestQuizScreen_NavigationClearsAnswer(t *testing.T) {
	s, _ := testQuizScreen(t)
	s = send(t, s, startJumpMsg{QNum: 1})
	s = send(t, s, typeText("c")...)
	if s.answer.Value() != "c" {
		t.Fatalf("answer = %q, want c", s.answer.Value())
	}

	s = send(t, s, specialKey(tea.KeyRight))
	if s.answer.Value() != "" {
		t.Errorf("answer = %q, want cleared after navigation", s.answer.Value())
	}
}

func TestQuizScreen_SavedAnswerShownAfterJump(t *testing.T) {
	s, prog := testQuizScreen(t)
	if err := prog.Save(context.Background(), 2, "D"); err != nil {
		t.Fatal(err)
	}
	s = send(t, s, startJumpMsg{QNum: 2})
	if v := s.sess.View(); v.Notice != "My answer: D" {
		t.Errorf("Notice = %q, want %q", v.Notice, "My answer: D")
	}
}

func TestQuizScreen_RevealAndNextAfterExplain(t *testing.T) {
	s, _ := testQuizScreen(t)
	s = send(t, s, startJumpMsg{QNum: 1})

	// Space does nothing until the explanation is shown.
	s = send(t, s, keyPress(' '))
	if v := s.sess.View(); v.QNum != 1 {
		t.Fatalf("space before reveal moved to Q%d", v.QNum)
	}

	s = send(t, s, keyPress('?'))
	v := s.sess.View()
	if !v.ExplanationVisible || !v.CanNextAfterExplain {
		t.Fatal("expected explanation and next-after-explain")
	}
	if !strings.Contains(s.View(100, 30), "S3 stores objects.") {
		t.Error("expected explanation in view")
	}

	s = send(t, s, keyPress(' '))
	v = s.sess.View()
	if v.QNum != 2 || v.ExplanationVisible {
		t.Errorf("after next: Q%d explanation %v, want Q2 hidden", v.QNum, v.ExplanationVisible)
	}
}

func TestQuizScreen_EmptyExplanation(t *testing.T) {
	s, _ := testQuizScreen(t)
	s = send(t, s, startJumpMsg{QNum: 5}, keyPress('?'))

	v := s.sess.View()
	if v.Explanation != session.NoExplanationText {
		t.Errorf("Explanation = %q", v.Explanation)
	}
	if v.CanNextAfterExplain {
		t.Error("next-after-explain must stay disabled on the last question")
	}
}

func TestQuizScreen_FailedSession(t *testing.T) {
	s := New(session.Failed(question.ErrDataMissing))
	s = send(t, s, typeText("12")...)
	s = send(t, s, specialKey(tea.KeyEnter))

	if !strings.Contains(s.View(100, 30), "Failed to load questions") {
		t.Error("expected load failure in view")
	}
	if s.sess.View().Positioned {
		t.Error("failed session must not navigate")
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints = %v, want quit only", s.KeyHints())
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _ := testQuizScreen(t)
	before := len(s.KeyHints())
	s = send(t, s, startJumpMsg{QNum: 1})
	if after := len(s.KeyHints()); after <= before {
		t.Errorf("expected more hints once positioned: %d <= %d", after, before)
	}
}
