package db

import (
	"context"
	"fmt"
	"time"

	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// MuteRepository stores muted topics.
type MuteRepository struct {
	db *DB
}

// NewMuteRepository creates a new MuteRepository.
func NewMuteRepository(db *DB) *MuteRepository {
	return &MuteRepository{db: db}
}

// Mute mutes a topic. Muting an already muted topic is a no-op.
func (r *MuteRepository) Mute(ctx context.Context, streamID int64, topic string) error {
	if err := models.ValidateTopicName(topic); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO muted_topics (stream_id, topic_key, topic, muted_at)
		VALUES (?, ?, ?, ?)
	`, streamID, string(topiclist.FoldTopic(topic)), topic, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to mute topic: %w", err)
	}
	return nil
}

// Unmute removes a topic from the muted set.
func (r *MuteRepository) Unmute(ctx context.Context, streamID int64, topic string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM muted_topics WHERE stream_id = ? AND topic_key = ?
	`, streamID, string(topiclist.FoldTopic(topic)))
	if err != nil {
		return fmt.Errorf("failed to unmute topic: %w", err)
	}
	return nil
}

// List returns the muted topics of a stream. A streamID of 0 lists all streams.
func (r *MuteRepository) List(ctx context.Context, streamID int64) ([]models.MutedTopic, error) {
	query := `SELECT stream_id, topic, muted_at FROM muted_topics`
	args := []any{}
	if streamID != 0 {
		query += ` WHERE stream_id = ?`
		args = append(args, streamID)
	}
	query += ` ORDER BY stream_id, topic_key`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query muted topics: %w", err)
	}
	defer rows.Close()

	var muted []models.MutedTopic
	for rows.Next() {
		var (
			entry   models.MutedTopic
			mutedAt string
		)
		if err := rows.Scan(&entry.StreamID, &entry.Topic, &mutedAt); err != nil {
			return nil, fmt.Errorf("failed to scan muted topic: %w", err)
		}
		entry.MutedAt = parseTime(mutedAt)
		muted = append(muted, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating muted topics: %w", err)
	}
	return muted, nil
}
