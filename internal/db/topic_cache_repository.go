package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// TopicCacheRepository holds the topics the client knows about per stream.
// It is a subset of the topics in messages until the stream's history is
// marked complete.
type TopicCacheRepository struct {
	db *DB
}

// NewTopicCacheRepository creates a new TopicCacheRepository.
func NewTopicCacheRepository(db *DB) *TopicCacheRepository {
	return &TopicCacheRepository{db: db}
}

// Replace resets the cached topics of a stream.
func (r *TopicCacheRepository) Replace(ctx context.Context, streamID int64, topics []models.TopicSummary, complete bool) error {
	return r.db.WriteTx(ctx, "topic_cache_replace", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM topic_cache WHERE stream_id = ?`, streamID); err != nil {
			return fmt.Errorf("failed to clear topic cache: %w", err)
		}
		for _, topic := range topics {
			if err := upsertTopic(ctx, tx, streamID, topic.Name, topic.MaxID); err != nil {
				return err
			}
		}
		return setHistoryComplete(ctx, tx, streamID, complete)
	})
}

// Merge adds topics to the cache without removing any.
func (r *TopicCacheRepository) Merge(ctx context.Context, streamID int64, topics []models.TopicSummary, complete bool) error {
	return r.db.WriteTx(ctx, "topic_cache_merge", func(tx *sql.Tx) error {
		for _, topic := range topics {
			if err := upsertTopic(ctx, tx, streamID, topic.Name, topic.MaxID); err != nil {
				return err
			}
		}
		if complete {
			return setHistoryComplete(ctx, tx, streamID, true)
		}
		return nil
	})
}

// Observe records a new message in the cache.
func (r *TopicCacheRepository) Observe(ctx context.Context, msg *models.Message) error {
	return upsertTopic(ctx, r.db, msg.StreamID, msg.Topic, msg.ID)
}

// Forget removes every cached topic of a stream and clears its complete flag.
func (r *TopicCacheRepository) Forget(ctx context.Context, streamID int64) error {
	return r.Replace(ctx, streamID, nil, false)
}

// Names returns the cached topic names of a stream, most recent first.
func (r *TopicCacheRepository) Names(ctx context.Context, streamID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT topic FROM topic_cache
		WHERE stream_id = ?
		ORDER BY max_message_id DESC
	`, streamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached topics: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan cached topic: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cached topics: %w", err)
	}
	return names, nil
}

// HistoryComplete reports whether every topic of the stream is cached.
func (r *TopicCacheRepository) HistoryComplete(ctx context.Context, streamID int64) (bool, error) {
	var complete int
	err := r.db.QueryRowContext(ctx, `SELECT history_complete FROM streams WHERE id = ?`, streamID).Scan(&complete)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrStreamNotFound
		}
		return false, fmt.Errorf("failed to query history state: %w", err)
	}
	return complete != 0, nil
}

func upsertTopic(ctx context.Context, ex execer, streamID int64, topic string, maxID int64) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO topic_cache (stream_id, topic_key, topic, max_message_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (stream_id, topic_key) DO UPDATE SET
			topic = CASE WHEN excluded.max_message_id >= topic_cache.max_message_id THEN excluded.topic ELSE topic_cache.topic END,
			max_message_id = MAX(topic_cache.max_message_id, excluded.max_message_id)
	`, streamID, string(topiclist.FoldTopic(topic)), topic, maxID)
	if err != nil {
		return fmt.Errorf("failed to cache topic: %w", err)
	}
	return nil
}

func setHistoryComplete(ctx context.Context, ex execer, streamID int64, complete bool) error {
	value := 0
	if complete {
		value = 1
	}
	if _, err := ex.ExecContext(ctx, `UPDATE streams SET history_complete = ? WHERE id = ?`, value, streamID); err != nil {
		return fmt.Errorf("failed to update history state: %w", err)
	}
	return nil
}
