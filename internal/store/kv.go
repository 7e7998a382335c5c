package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVRepo is a namespace → value table. It satisfies progress.Backend.
type KVRepo struct {
	db *sql.DB
}

// Get returns the value stored under namespace.
func (r *KVRepo) Get(ctx context.Context, namespace string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE namespace = ?`, namespace,
	).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", namespace, err)
	}
	return v, true, nil
}

// Put replaces the value stored under namespace.
func (r *KVRepo) Put(ctx context.Context, namespace, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (namespace, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (namespace) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", namespace, err)
	}
	return nil
}
