package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tOgg1/streambar/internal/topiclist"
)

// ReadRepository tracks which messages the user has read.
type ReadRepository struct {
	db *DB
}

// NewReadRepository creates a new ReadRepository.
func NewReadRepository(db *DB) *ReadRepository {
	return &ReadRepository{db: db}
}

// MarkRead marks individual messages as read. Already read messages keep
// their original read time.
func (r *ReadRepository) MarkRead(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	readAt := time.Now().UTC().Format(time.RFC3339Nano)

	return r.db.WriteTx(ctx, "mark_read", func(tx *sql.Tx) error {
		for _, id := range ids {
			if err := markRead(ctx, tx, id, readAt); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkTopicRead marks every message of a topic as read and returns how many
// messages changed state.
func (r *ReadRepository) MarkTopicRead(ctx context.Context, streamID int64, topic string) (int64, error) {
	var affected int64
	err := r.db.WriteTx(ctx, "mark_topic_read", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO read_messages (message_id, read_at)
			SELECT id, ? FROM messages WHERE stream_id = ? AND topic_key = ?
		`, time.Now().UTC().Format(time.RFC3339Nano), streamID, string(topiclist.FoldTopic(topic)))
		if err != nil {
			return fmt.Errorf("failed to mark topic read: %w", err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// MarkStreamRead marks every message of a stream as read.
func (r *ReadRepository) MarkStreamRead(ctx context.Context, streamID int64) (int64, error) {
	var affected int64
	err := r.db.WriteTx(ctx, "mark_stream_read", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO read_messages (message_id, read_at)
			SELECT id, ? FROM messages WHERE stream_id = ?
		`, time.Now().UTC().Format(time.RFC3339Nano), streamID)
		if err != nil {
			return fmt.Errorf("failed to mark stream read: %w", err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	return affected, err
}

// UnreadCounts returns the unread message count of every topic in a stream
// that has unread messages, keyed by folded topic name.
func (r *ReadRepository) UnreadCounts(ctx context.Context, streamID int64) (map[topiclist.TopicKey]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.topic_key, COUNT(1)
		FROM messages m
		LEFT JOIN read_messages rm ON rm.message_id = m.id
		WHERE m.stream_id = ? AND rm.message_id IS NULL
		GROUP BY m.topic_key
	`, streamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unread counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[topiclist.TopicKey]int)
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan unread count: %w", err)
		}
		counts[topiclist.TopicKey(key)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unread counts: %w", err)
	}
	return counts, nil
}

func markRead(ctx context.Context, ex execer, id int64, readAt string) error {
	if _, err := ex.ExecContext(ctx, `
		INSERT OR IGNORE INTO read_messages (message_id, read_at) VALUES (?, ?)
	`, id, readAt); err != nil {
		return fmt.Errorf("failed to mark message %d read: %w", id, err)
	}
	return nil
}
