package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saaquiz/saaquiz/internal/progress"
	"github.com/saaquiz/saaquiz/internal/question"
	"github.com/saaquiz/saaquiz/internal/store"
)

type memAttempts struct {
	mu  sync.Mutex
	got []store.AttemptData
}

func (m *memAttempts) AppendAttempt(_ context.Context, d store.AttemptData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, d)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *progress.Store, *memAttempts) {
	t.Helper()
	set, err := question.Parse([]byte(`{
		"1": {"q_num": 1, "question": "First?", "answer_block": "Answer: A"},
		"5": {"q_num": 5, "question": "Fifth?", "answer_block": "Explanation... Answer: C", "answer_choice": "B"},
		"10": {"q_num": 10, "question": "", "answer_block": ""}
	}`))
	require.NoError(t, err)

	prog := progress.Load(context.Background(), progress.NewMemoryBackend())
	rec := &memAttempts{}
	srv := New(set, prog, WithAttempts(rec), WithAllowedOrigins([]string{"http://localhost:5173"}))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, prog, rec
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postAnswer(t *testing.T, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "browser-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts, _, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListQuestions(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var got questionsResp
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/questions", &got))
	assert.Equal(t, []int{1, 5, 10}, got.Numbers)
	assert.Equal(t, 1, got.Min)
	assert.Equal(t, 10, got.Max)
	assert.Equal(t, 3, got.Total)
}

func TestGetQuestion(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var got questionResp
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/questions/5", &got))
	assert.Equal(t, 5, got.QNum)
	assert.Equal(t, "Fifth?", got.Question)
	assert.Equal(t, "2 / 3", got.Position)
	require.NotNil(t, got.Prev)
	require.NotNil(t, got.Next)
	assert.Equal(t, 1, *got.Prev)
	assert.Equal(t, 10, *got.Next)

	var last questionResp
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/questions/10", &last))
	assert.Equal(t, "(no question)", last.Question)
	assert.Nil(t, last.Next)
}

func TestGetQuestion_NotFound(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var got errorResp
	require.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/api/questions/999", &got))
	assert.Equal(t, "Q999 not found (range: 1 ~ 10)", got.Error)
	require.NotNil(t, got.Min)
	assert.Equal(t, 1, *got.Min)
	assert.Equal(t, 10, *got.Max)

	require.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/questions/abc", &got))
}

func TestExplanation(t *testing.T) {
	ts, _, _ := newTestServer(t)

	var got explanationResp
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/questions/5/explanation", &got))
	assert.Equal(t, "Explanation... Answer: C", got.AnswerBlock)

	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/questions/10/explanation", &got))
	assert.Equal(t, "(no explanation)", got.AnswerBlock)
}

func TestAnswer(t *testing.T) {
	ts, prog, rec := newTestServer(t)

	// answer_choice wins over the block.
	var got answerResp
	require.Equal(t, http.StatusOK, postAnswer(t, ts.URL+"/api/questions/5/answer", `{"choice":"b"}`, &got))
	assert.Equal(t, "correct", got.Outcome)
	assert.Equal(t, "B", got.Choice)
	assert.Equal(t, "Correct! (B)", got.Message)
	assert.Equal(t, "B", prog.Get(5))

	require.Equal(t, http.StatusOK, postAnswer(t, ts.URL+"/api/questions/1/answer", `{"choice":"d"}`, &got))
	assert.Equal(t, "incorrect", got.Outcome)
	assert.Equal(t, "A", got.CorrectChoice)

	require.Equal(t, http.StatusOK, postAnswer(t, ts.URL+"/api/questions/10/answer", `{"choice":"e"}`, &got))
	assert.Equal(t, "ungraded", got.Outcome)

	require.Len(t, rec.got, 3)
	assert.Equal(t, "browser-1", rec.got[0].SessionID)
}

func TestAnswer_Invalid(t *testing.T) {
	ts, prog, rec := newTestServer(t)

	var got errorResp
	require.Equal(t, http.StatusBadRequest, postAnswer(t, ts.URL+"/api/questions/5/answer", `{"choice":"z"}`, &got))
	assert.Equal(t, "Enter a letter A-E", got.Error)
	require.Equal(t, http.StatusBadRequest, postAnswer(t, ts.URL+"/api/questions/5/answer", `not json`, &got))

	assert.Equal(t, 0, prog.Len())
	assert.Empty(t, rec.got)
}

func TestProgress(t *testing.T) {
	ts, _, _ := newTestServer(t)
	postAnswer(t, ts.URL+"/api/questions/1/answer", `{"choice":"a"}`, nil)

	var got map[string]string
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/progress", &got))
	assert.Equal(t, map[string]string{"1": "A"}, got)
}

func TestReport(t *testing.T) {
	ts, _, _ := newTestServer(t)
	postAnswer(t, ts.URL+"/api/questions/1/answer", `{"choice":"a"}`, nil)

	resp, err := http.Get(ts.URL + "/api/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestConcurrentAnswersAreSerialized(t *testing.T) {
	ts, prog, rec := newTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			choice := string(rune('A' + i%5))
			resp, err := http.Post(ts.URL+"/api/questions/5/answer", "application/json",
				strings.NewReader(`{"choice":"`+choice+`"}`))
			if err == nil {
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, rec.got, 20)
	assert.NotEmpty(t, prog.Get(5))
}

func TestCORSPreflight(t *testing.T) {
	ts, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/questions/5/answer", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
