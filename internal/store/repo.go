package store

import (
	"context"
	"time"
)

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	QNum  int       // only this question number (0 = all)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// AttemptData captures a single graded submission.
type AttemptData struct {
	SessionID     string
	QNum          int
	Choice        string
	CorrectChoice string
	Outcome       string
}

// AttemptRecord is an attempt read back from the store.
type AttemptRecord struct {
	ID            int64
	Sequence      int64
	Timestamp     time.Time
	SessionID     string
	QNum          int
	Choice        string
	CorrectChoice string
	Outcome       string
}

// AttemptRepo provides append and query access to the attempt log.
type AttemptRepo interface {
	// AppendAttempt records a graded submission.
	AppendAttempt(ctx context.Context, data AttemptData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)
}
