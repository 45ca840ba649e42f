package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// retryPolicy bounds how often a write is repeated while another process
// (the sidebar and a CLI command share one file) holds the SQLite lock.
type retryPolicy struct {
	attempts int
	backoff  time.Duration
}

var defaultRetry = retryPolicy{attempts: 3, backoff: 50 * time.Millisecond}

// run calls fn until it succeeds, fails with a non-busy error, or the
// attempts are used up. The backoff doubles after each busy failure.
func (p retryPolicy) run(ctx context.Context, logger zerolog.Logger, op string, fn func() error) error {
	if p.attempts <= 0 {
		p.attempts = defaultRetry.attempts
	}
	if p.backoff <= 0 {
		p.backoff = defaultRetry.backoff
	}

	wait := p.backoff
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !isBusyError(err) {
			return err
		}
		if attempt >= p.attempts {
			logger.Warn().Str("op", op).Int("attempts", attempt).Err(err).Msg("database still busy, giving up")
			return err
		}

		logger.Debug().Str("op", op).Int("attempt", attempt).Dur("backoff", wait).Msg("database busy, retrying")
		if err := sleepWithContext(ctx, wait); err != nil {
			return err
		}
		wait *= 2
	}
}

// WriteTx runs fn in a transaction, retrying the whole transaction while the
// database is busy. op names the write in logs.
func (db *DB) WriteTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	return defaultRetry.run(ctx, db.logger, op, func() error {
		return db.Transaction(ctx, fn)
	})
}

func isBusyError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	message := strings.ToLower(err.Error())
	for _, marker := range []string{"database is locked", "database is busy", "sqlite_busy", "sqlite_locked"} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
