package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// Stream repository errors.
var (
	ErrStreamNotFound      = errors.New("stream not found")
	ErrStreamAlreadyExists = errors.New("stream with this name already exists")
)

// StreamRepository handles stream persistence.
type StreamRepository struct {
	db *DB
}

// NewStreamRepository creates a new StreamRepository.
func NewStreamRepository(db *DB) *StreamRepository {
	return &StreamRepository{db: db}
}

// Create adds a new stream. The stream ID and CreatedAt are filled in.
func (r *StreamRepository) Create(ctx context.Context, stream *models.Stream) error {
	if err := stream.Validate(); err != nil {
		return fmt.Errorf("invalid stream: %w", err)
	}

	stream.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO streams (name, name_key, description, created_at)
		VALUES (?, ?, ?, ?)
	`,
		stream.Name,
		string(topiclist.FoldTopic(stream.Name)),
		stream.Description,
		stream.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrStreamAlreadyExists
		}
		return fmt.Errorf("failed to insert stream: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read stream id: %w", err)
	}
	stream.ID = id
	return nil
}

// Get retrieves a stream by ID.
func (r *StreamRepository) Get(ctx context.Context, id int64) (*models.Stream, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at
		FROM streams
		WHERE id = ?
	`, id)
	return scanStream(row)
}

// GetByName retrieves a stream by name, ignoring case.
func (r *StreamRepository) GetByName(ctx context.Context, name string) (*models.Stream, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at
		FROM streams
		WHERE name_key = ?
	`, string(topiclist.FoldTopic(name)))
	return scanStream(row)
}

// List returns all streams ordered by name.
func (r *StreamRepository) List(ctx context.Context) ([]*models.Stream, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, created_at
		FROM streams
		ORDER BY name_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query streams: %w", err)
	}
	defer rows.Close()

	var streams []*models.Stream
	for rows.Next() {
		stream, err := scanStream(rows)
		if err != nil {
			return nil, err
		}
		streams = append(streams, stream)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating streams: %w", err)
	}
	return streams, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStream(row rowScanner) (*models.Stream, error) {
	var (
		stream    models.Stream
		createdAt string
	)
	if err := row.Scan(&stream.ID, &stream.Name, &stream.Description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStreamNotFound
		}
		return nil, fmt.Errorf("failed to scan stream: %w", err)
	}
	stream.CreatedAt = parseTime(createdAt)
	return &stream, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
