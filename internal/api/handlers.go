package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/navigator"
	"github.com/saaquiz/saaquiz/internal/report"
	"github.com/saaquiz/saaquiz/internal/session"
	"github.com/saaquiz/saaquiz/internal/store"
)

type questionsResp struct {
	Numbers []int `json:"numbers"`
	Min     int   `json:"min"`
	Max     int   `json:"max"`
	Total   int   `json:"total"`
}

type questionResp struct {
	QNum        int    `json:"q_num"`
	Question    string `json:"question"`
	Position    string `json:"position"`
	Prev        *int   `json:"prev"`
	Next        *int   `json:"next"`
	SavedChoice string `json:"saved_choice,omitempty"`
}

type explanationResp struct {
	QNum        int    `json:"q_num"`
	AnswerBlock string `json:"answer_block"`
}

type answerReq struct {
	Choice string `json:"choice"`
}

type answerResp struct {
	QNum          int    `json:"q_num"`
	Outcome       string `json:"outcome"`
	Choice        string `json:"choice"`
	CorrectChoice string `json:"correct_choice,omitempty"`
	Message       string `json:"message"`
}

type errorResp struct {
	Error string `json:"error"`
	Min   *int   `json:"min,omitempty"`
	Max   *int   `json:"max,omitempty"`
}

// GET /api/questions
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, questionsResp{
		Numbers: s.set.Numbers(),
		Min:     s.set.Min(),
		Max:     s.set.Max(),
		Total:   s.set.Len(),
	})
}

// GET /api/questions/{qnum}
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	nav, qNum, ok := s.locate(w, r)
	if !ok {
		return
	}

	resp := questionResp{
		QNum:        qNum,
		Question:    session.NoQuestionText,
		Position:    nav.Position(),
		SavedChoice: s.progress.Get(qNum),
	}
	if rec, found := s.set.Resolve(qNum); found && rec.Question != "" {
		resp.Question = rec.Question
	}
	prev, next, hasPrev, hasNext := nav.Neighbors()
	if hasPrev {
		resp.Prev = &prev
	}
	if hasNext {
		resp.Next = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/questions/{qnum}/explanation
func (s *Server) handleExplanation(w http.ResponseWriter, r *http.Request) {
	_, qNum, ok := s.locate(w, r)
	if !ok {
		return
	}
	resp := explanationResp{QNum: qNum, AnswerBlock: session.NoExplanationText}
	if rec, found := s.set.Resolve(qNum); found && rec.AnswerBlock != "" {
		resp.AnswerBlock = rec.AnswerBlock
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /api/questions/{qnum}/answer  {"choice":"b"}
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	_, qNum, ok := s.locate(w, r)
	if !ok {
		return
	}

	var req answerReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON body"})
		return
	}

	rec, _ := s.set.Resolve(qNum)
	res, err := s.grader.Grade(r.Context(), qNum, rec, req.Choice)
	if err != nil {
		if errors.Is(err, grader.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, errorResp{Error: "Enter a letter A-E"})
			return
		}
		s.log.Error("grade", zap.Int("q_num", qNum), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "failed to save answer"})
		return
	}

	if s.attempts != nil {
		sid := strings.TrimSpace(r.Header.Get(SessionHeader))
		if sid == "" {
			sid = s.id
		}
		if err := s.attempts.AppendAttempt(r.Context(), store.AttemptData{
			SessionID:     sid,
			QNum:          res.QNum,
			Choice:        res.Choice,
			CorrectChoice: res.Correct,
			Outcome:       res.Outcome.String(),
		}); err != nil {
			s.log.Warn("record attempt", zap.Int("q_num", qNum), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, answerResp{
		QNum:          res.QNum,
		Outcome:       res.Outcome.String(),
		Choice:        res.Choice,
		CorrectChoice: res.Correct,
		Message:       res.Message(),
	})
}

// GET /api/progress
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]string, s.progress.Len())
	for n, c := range s.progress.All() {
		out[strconv.Itoa(n)] = c
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	pdf, err := report.Generate(session.BuildSummary(s.set, s.progress), report.Meta{Source: s.source})
	if err != nil {
		s.log.Error("report", zap.Error(err))
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=saaquiz-progress.pdf")
	w.Write(pdf)
}

// locate parses {qnum} and positions a navigator on it. On failure it
// writes the error response and returns ok=false.
func (s *Server) locate(w http.ResponseWriter, r *http.Request) (*navigator.Navigator, int, bool) {
	qNum, err := session.ParseQNum(chi.URLParam(r, "qnum"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid question number"})
		return nil, 0, false
	}

	nav := navigator.New(s.set.Numbers())
	if err := nav.JumpTo(qNum); err != nil {
		resp := errorResp{Error: err.Error()}
		var re *navigator.RangeError
		if errors.As(err, &re) && !re.Empty {
			resp.Min, resp.Max = &re.Min, &re.Max
		}
		writeJSON(w, http.StatusNotFound, resp)
		return nil, 0, false
	}
	return nav, qNum, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
