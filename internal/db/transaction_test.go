package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var fastRetry = retryPolicy{attempts: 3, backoff: time.Millisecond}

func TestRetryPolicy_RetriesOnBusy(t *testing.T) {
	attempts := 0

	err := fastRetry.run(context.Background(), zerolog.Nop(), "test", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryPolicy_StopsOnNonBusy(t *testing.T) {
	attempts := 0

	err := fastRetry.run(context.Background(), zerolog.Nop(), "test", func() error {
		attempts++
		return ErrStreamNotFound
	})

	if !errors.Is(err, ErrStreamNotFound) {
		t.Fatalf("expected ErrStreamNotFound, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryPolicy_GivesUpAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	attempts := 0

	policy := retryPolicy{attempts: 2, backoff: time.Millisecond}
	err := policy.run(context.Background(), logger, "mark_topic_read", func() error {
		attempts++
		return errors.New("database is busy")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
	out := buf.String()
	if !strings.Contains(out, `"op":"mark_topic_read"`) || !strings.Contains(out, "giving up") {
		t.Fatalf("expected give-up log for the op, got %q", out)
	}
}

func TestRetryPolicy_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := fastRetry.run(ctx, zerolog.Nop(), "test", func() error {
		called = true
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Fatal("fn should not run after cancel")
	}
}

func TestWriteTxRetriesWholeTransaction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	attempts := 0
	err := db.WriteTx(context.Background(), "test", func(tx *sql.Tx) error {
		attempts++
		if attempts < 2 {
			return errors.New("database is locked")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestIsBusyError(t *testing.T) {
	cases := map[string]bool{
		"database is locked":     true,
		"SQLITE_LOCKED: table":   true,
		"constraint failed":      false,
		context.Canceled.Error(): false,
	}
	for msg, want := range cases {
		if got := isBusyError(errors.New(msg)); got != want {
			t.Errorf("isBusyError(%q) = %v, want %v", msg, got, want)
		}
	}
	if isBusyError(context.DeadlineExceeded) {
		t.Error("deadline exceeded must not be retried")
	}
}
