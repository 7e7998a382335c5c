// Package api exposes the quiz over JSON for a browser front end.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saaquiz/saaquiz/internal/grader"
	"github.com/saaquiz/saaquiz/internal/progress"
	"github.com/saaquiz/saaquiz/internal/question"
	"github.com/saaquiz/saaquiz/internal/session"
)

// SessionHeader lets a client group its attempts. When absent the server's
// own session ID is used.
const SessionHeader = "X-Session-ID"

// Server holds the shared quiz state. Every handler runs under mu, so
// requests are applied one at a time.
type Server struct {
	mu       sync.Mutex
	set      *question.Set
	progress *progress.Store
	grader   *grader.Grader
	attempts session.AttemptRecorder
	source   string
	id       string
	log      *zap.Logger

	allowedOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithAttempts appends graded submissions to rec.
func WithAttempts(rec session.AttemptRecorder) Option {
	return func(s *Server) { s.attempts = rec }
}

// WithLogger sets the request and error logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAllowedOrigins sets the CORS allow list.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.allowedOrigins = origins }
}

// WithSource names the question data file in reports.
func WithSource(src string) Option {
	return func(s *Server) { s.source = src }
}

// New creates a Server over set that saves answers to prog.
func New(set *question.Set, prog *progress.Store, opts ...Option) *Server {
	s := &Server{
		set:            set,
		progress:       prog,
		id:             uuid.NewString(),
		log:            zap.NewNop(),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.grader = grader.New(prog, s.log)
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(s.serialize)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Get("/questions/{qnum}", s.handleQuestion)
		r.Get("/questions/{qnum}/explanation", s.handleExplanation)
		r.Post("/questions/{qnum}/answer", s.handleAnswer)
		r.Get("/progress", s.handleProgress)
		r.Get("/report", s.handleReport)
	})
	return r
}

// serialize applies requests one at a time.
func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
