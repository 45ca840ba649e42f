package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// MessageRepository handles message persistence.
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create stores a message. The stream must exist.
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	return r.db.WriteTx(ctx, "send_message", func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM streams WHERE id = ?`, msg.StreamID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to look up stream: %w", err)
		}
		if exists == 0 {
			return ErrStreamNotFound
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO messages (stream_id, topic, topic_key, sender, content, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			msg.StreamID,
			msg.Topic,
			string(topiclist.FoldTopic(msg.Topic)),
			msg.Sender,
			msg.Content,
			msg.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read message id: %w", err)
		}
		msg.ID = id
		return nil
	})
}

// ListTopic returns the newest limit messages of a topic, oldest first.
// A limit <= 0 returns the whole topic.
func (r *MessageRepository) ListTopic(ctx context.Context, streamID int64, topic string, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, stream_id, topic, sender, content, created_at FROM (
			SELECT id, stream_id, topic, sender, content, created_at
			FROM messages
			WHERE stream_id = ? AND topic_key = ?
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC
	`, streamID, string(topiclist.FoldTopic(topic)), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query topic messages: %w", err)
	}
	return scanMessages(rows)
}

// ListStream returns the newest limit messages of a stream, oldest first.
// A limit <= 0 returns the whole stream.
func (r *MessageRepository) ListStream(ctx context.Context, streamID int64, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, stream_id, topic, sender, content, created_at FROM (
			SELECT id, stream_id, topic, sender, content, created_at
			FROM messages
			WHERE stream_id = ?
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC
	`, streamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stream messages: %w", err)
	}
	return scanMessages(rows)
}

// After returns messages with an id greater than afterID, oldest first.
func (r *MessageRepository) After(ctx context.Context, afterID int64, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, stream_id, topic, sender, content, created_at
		FROM messages
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?
	`, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query new messages: %w", err)
	}
	return scanMessages(rows)
}

// LatestID returns the id of the newest message, or 0 if there is none.
func (r *MessageRepository) LatestID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM messages`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to query latest message: %w", err)
	}
	return id, nil
}

// RecentTopics returns the topics of a stream ordered by newest activity.
// The name of each topic is the spelling used by its newest message.
// A limit <= 0 returns every topic.
func (r *MessageRepository) RecentTopics(ctx context.Context, streamID int64, limit int) ([]models.TopicSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.topic, t.max_id, t.messages
		FROM (
			SELECT topic_key, MAX(id) AS max_id, COUNT(1) AS messages
			FROM messages
			WHERE stream_id = ?
			GROUP BY topic_key
		) t
		JOIN messages m ON m.id = t.max_id
		ORDER BY t.max_id DESC
		LIMIT ?
	`, streamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var topics []models.TopicSummary
	for rows.Next() {
		summary := models.TopicSummary{StreamID: streamID}
		if err := rows.Scan(&summary.Name, &summary.MaxID, &summary.Messages); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topics: %w", err)
	}
	return topics, nil
}

// TopicCount returns how many distinct topics a stream has.
func (r *MessageRepository) TopicCount(ctx context.Context, streamID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT topic_key) FROM messages WHERE stream_id = ?
	`, streamID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count topics: %w", err)
	}
	return count, nil
}

type messageRows interface {
	rowScanner
	Next() bool
	Err() error
	Close() error
}

func scanMessages(rows messageRows) ([]*models.Message, error) {
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var (
			msg       models.Message
			createdAt string
		)
		if err := rows.Scan(&msg.ID, &msg.StreamID, &msg.Topic, &msg.Sender, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.CreatedAt = parseTime(createdAt)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}
