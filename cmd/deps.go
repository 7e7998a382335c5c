package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/saaquiz/saaquiz/internal/config"
	"github.com/saaquiz/saaquiz/internal/logger"
	"github.com/saaquiz/saaquiz/internal/progress"
	"github.com/saaquiz/saaquiz/internal/question"
	"github.com/saaquiz/saaquiz/internal/store"
)

// deps are the shared dependencies of every command that touches the
// question set or saved progress.
type deps struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	set      *question.Set
	setErr   error
	progress *progress.Store
	closers  []func() error
}

// depsOptions selects what openDeps builds.
type depsOptions struct {
	// logToFile sends logs to <data dir>/saaquiz.log when log.file is
	// unset. The TUI owns the terminal, so it cannot log to stderr.
	logToFile bool

	// requireSet fails when the question set cannot be loaded. The TUI
	// sets it false and shows the error inline instead.
	requireSet bool
}

// openDeps loads config, logger, the SQLite store, the question set and the
// configured progress backend.
func openDeps(ctx context.Context, cfg *config.Config, opts depsOptions) (*deps, error) {
	d := &deps{cfg: cfg}

	if opts.logToFile && cfg.Log.File == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.Log.File = filepath.Join(dir, "saaquiz.log")
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	d.log = log
	d.closers = append(d.closers, func() error {
		_ = log.Sync()
		return nil
	})

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st.Close)

	d.set, d.setErr = question.LoadFile(cfg.Data.Path)
	if d.setErr != nil {
		log.Error("load questions", zap.String("path", cfg.Data.Path), zap.Error(d.setErr))
		if opts.requireSet {
			d.Close()
			return nil, d.setErr
		}
	} else {
		for _, w := range d.set.Warnings() {
			log.Warn("question record", zap.String("path", cfg.Data.Path), zap.String("warning", w))
		}
		log.Info("questions loaded", zap.String("path", cfg.Data.Path), zap.Int("count", d.set.Len()))
	}

	backend, err := d.openBackend(ctx)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.progress = progress.Load(ctx, backend,
		progress.WithNamespace(cfg.Progress.Namespace),
		progress.WithLogger(log))

	return d, nil
}

func (d *deps) openBackend(ctx context.Context) (progress.Backend, error) {
	switch d.cfg.Progress.Backend {
	case config.BackendRedis:
		rb, err := progress.NewRedisBackend(ctx, progress.RedisOptions{
			Addr:     d.cfg.Redis.Addr,
			Password: d.cfg.Redis.Password,
			DB:       d.cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis progress backend: %w", err)
		}
		d.closers = append(d.closers, rb.Close)
		return rb, nil
	case config.BackendMemory:
		return progress.NewMemoryBackend(), nil
	default:
		return d.store.KVRepo(), nil
	}
}

// Close releases everything in reverse order of opening.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
