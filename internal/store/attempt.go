package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempts (sequence, session_id, q_num, choice, correct_choice, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.QNum, data.Choice, data.CorrectChoice, data.Outcome,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.QNum != 0 {
		where = append(where, "q_num = ?")
		args = append(args, opts.QNum)
	}
	if !opts.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	q := `SELECT id, sequence, session_id, q_num, choice, correct_choice, outcome, created_at FROM attempts`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			a  AttemptRecord
			ts int64
		)
		if err := rows.Scan(&a.ID, &a.Sequence, &a.SessionID, &a.QNum, &a.Choice, &a.CorrectChoice, &a.Outcome, &ts); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Timestamp = time.UnixMilli(ts)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}
