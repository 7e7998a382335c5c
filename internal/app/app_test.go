package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/saaquiz/saaquiz/internal/progress"
	"github.com/saaquiz/saaquiz/internal/question"
	"github.com/saaquiz/saaquiz/internal/screens/quiz"
	"github.com/saaquiz/saaquiz/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	set, err := question.Parse([]byte(`{
		"1": {"q_num": 1, "question": "First?", "answer_block": "Answer: A"},
		"2": {"q_num": 2, "question": "Second?", "answer_block": "Answer: B"}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	return session.New(set, progress.Load(context.Background(), progress.NewMemoryBackend()))
}

// drain runs cmd and feeds every resulting message back into m.
func drain(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				m = drain(t, m, c)
			}
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(AppModel)
	}
	return m
}

func TestApp_StartsOnHome(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	if m.Init() != nil {
		t.Error("expected no start command without a deep link")
	}
	if m.router.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", m.router.Active().Title())
	}
}

func TestApp_DeepLinkPushesQuiz(t *testing.T) {
	sess := testSession(t)
	m := newAppModel(Options{Session: sess, StartQNum: 2, HasStart: true})
	m = drain(t, m, m.Init())

	if _, ok := m.router.Active().(*quiz.QuizScreen); !ok {
		t.Fatalf("active = %T, want quiz", m.router.Active())
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want home below quiz", m.router.Depth())
	}
	if v := sess.View(); v.QNum != 2 {
		t.Errorf("QNum = %d, want 2", v.QNum)
	}
}

func TestApp_DirectReplacesHome(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t), Direct: true})
	m = drain(t, m, m.Init())

	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
	if m.router.Active().Title() != "Quiz" {
		t.Errorf("active = %q, want Quiz", m.router.Active().Title())
	}
}

func TestApp_ViewHeader(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(AppModel)

	if !strings.Contains(m.frame(), "0/2 answered") {
		t.Error("expected answered count in header")
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := newAppModel(Options{Session: testSession(t)})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	m = next.(AppModel)
	if !strings.Contains(m.frame(), "Terminal too small") {
		t.Error("expected min size message")
	}
}
