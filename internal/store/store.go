// Package store is the chat store behind the sidebar: the server-side
// streams, messages, read state and mutes, plus the client's cache of known
// topics per stream.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tOgg1/streambar/internal/db"
	"github.com/tOgg1/streambar/internal/logging"
	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// ErrStreamNotFound is returned for unknown stream ids and names.
var ErrStreamNotFound = db.ErrStreamNotFound

// Store groups the repositories used by the sidebar and the CLI.
type Store struct {
	db       *db.DB
	streams  *db.StreamRepository
	messages *db.MessageRepository
	reads    *db.ReadRepository
	mutes    *db.MuteRepository
	cache    *db.TopicCacheRepository
	logger   zerolog.Logger
}

// Open opens the database at cfg.Path.
func Open(ctx context.Context, cfg db.Config) (*Store, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(database), nil
}

// New wraps an open database.
func New(database *db.DB) *Store {
	return &Store{
		db:       database,
		streams:  db.NewStreamRepository(database),
		messages: db.NewMessageRepository(database),
		reads:    db.NewReadRepository(database),
		mutes:    db.NewMuteRepository(database),
		cache:    db.NewTopicCacheRepository(database),
		logger:   logging.Component("store"),
	}
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.db.Path()
}

// CreateStream creates a stream.
func (s *Store) CreateStream(ctx context.Context, name, description string) (*models.Stream, error) {
	stream := &models.Stream{Name: name, Description: description}
	if err := s.streams.Create(ctx, stream); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("stream_id", stream.ID).Str("stream", name).Msg("stream created")
	return stream, nil
}

// Stream looks up a stream by id.
func (s *Store) Stream(ctx context.Context, id int64) (*models.Stream, error) {
	return s.streams.Get(ctx, id)
}

// StreamByName looks up a stream by name, ignoring case.
func (s *Store) StreamByName(ctx context.Context, name string) (*models.Stream, error) {
	return s.streams.GetByName(ctx, name)
}

// Streams lists every stream.
func (s *Store) Streams(ctx context.Context) ([]*models.Stream, error) {
	return s.streams.List(ctx)
}

// Send posts a message to a stream topic.
func (s *Store) Send(ctx context.Context, streamName, topic, sender, content string) (*models.Message, error) {
	stream, err := s.streams.GetByName(ctx, streamName)
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", streamName, err)
	}
	msg := &models.Message{
		StreamID: stream.ID,
		Topic:    topic,
		Sender:   sender,
		Content:  content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int64("message_id", msg.ID).
		Str("stream", stream.Name).
		Str("topic", topic).
		Str("preview", logging.Preview(content, 60)).
		Msg("message sent")
	return msg, nil
}

// Messages returns the newest limit messages of a topic, oldest first.
func (s *Store) Messages(ctx context.Context, streamID int64, topic string, limit int) ([]*models.Message, error) {
	return s.messages.ListTopic(ctx, streamID, topic, limit)
}

// StreamMessages returns the newest limit messages of a stream, oldest first.
func (s *Store) StreamMessages(ctx context.Context, streamID int64, limit int) ([]*models.Message, error) {
	return s.messages.ListStream(ctx, streamID, limit)
}

// Topics returns every topic of a stream from the message history.
func (s *Store) Topics(ctx context.Context, streamID int64) ([]models.TopicSummary, error) {
	return s.messages.RecentTopics(ctx, streamID, 0)
}

// SyncResult is the outcome of SyncRecent.
type SyncResult struct {
	// Seeded is true when the topic cache was rebuilt from scratch.
	Seeded bool
	// Messages are the messages ingested since the previous watermark.
	Messages []*models.Message
	// Watermark is the id to pass to the next SyncRecent call.
	Watermark int64
}

// SyncRecent brings the topic cache up to date.
//
// With afterID <= 0 the cache is seeded: each stream caches its initialTopics
// most recent topics and is marked complete only when nothing was left out.
// Otherwise the messages after afterID are ingested into the cache.
func (s *Store) SyncRecent(ctx context.Context, afterID int64, initialTopics int) (SyncResult, error) {
	if afterID <= 0 {
		return s.seed(ctx, initialTopics)
	}

	msgs, err := s.messages.After(ctx, afterID, 0)
	if err != nil {
		return SyncResult{}, err
	}
	result := SyncResult{Messages: msgs, Watermark: afterID}
	for _, msg := range msgs {
		if err := s.cache.Observe(ctx, msg); err != nil {
			return SyncResult{}, err
		}
		result.Watermark = msg.ID
	}
	return result, nil
}

func (s *Store) seed(ctx context.Context, initialTopics int) (SyncResult, error) {
	if initialTopics <= 0 {
		initialTopics = 1
	}

	watermark, err := s.messages.LatestID(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	streams, err := s.streams.List(ctx)
	if err != nil {
		return SyncResult{}, err
	}
	for _, stream := range streams {
		topics, err := s.messages.RecentTopics(ctx, stream.ID, initialTopics+1)
		if err != nil {
			return SyncResult{}, err
		}
		complete := len(topics) <= initialTopics
		if !complete {
			topics = topics[:initialTopics]
		}
		if err := s.cache.Replace(ctx, stream.ID, topics, complete); err != nil {
			return SyncResult{}, err
		}
	}

	s.logger.Debug().Int("streams", len(streams)).Int64("watermark", watermark).Msg("topic cache seeded")
	return SyncResult{Seeded: true, Watermark: watermark}, nil
}

// FetchFullerHistory caches every topic of a stream and marks its history
// complete. It returns the number of topics now cached.
func (s *Store) FetchFullerHistory(ctx context.Context, streamID int64) (int, error) {
	if _, err := s.streams.Get(ctx, streamID); err != nil {
		return 0, err
	}
	topics, err := s.messages.RecentTopics(ctx, streamID, 0)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Merge(ctx, streamID, topics, true); err != nil {
		return 0, err
	}
	return len(topics), nil
}

// RecentTopicNames returns the cached topics of a stream, most recent first.
func (s *Store) RecentTopicNames(ctx context.Context, streamID int64) ([]string, error) {
	return s.cache.Names(ctx, streamID)
}

// UnreadCounts returns the unread count per topic of a stream.
func (s *Store) UnreadCounts(ctx context.Context, streamID int64) (map[topiclist.TopicKey]int, error) {
	return s.reads.UnreadCounts(ctx, streamID)
}

// MarkTopicRead marks a topic read and returns how many messages changed.
func (s *Store) MarkTopicRead(ctx context.Context, streamID int64, topic string) (int64, error) {
	return s.reads.MarkTopicRead(ctx, streamID, topic)
}

// MarkStreamRead marks a whole stream read.
func (s *Store) MarkStreamRead(ctx context.Context, streamID int64) (int64, error) {
	return s.reads.MarkStreamRead(ctx, streamID)
}

// MuteTopic mutes a topic.
func (s *Store) MuteTopic(ctx context.Context, streamID int64, topic string) error {
	return s.mutes.Mute(ctx, streamID, topic)
}

// UnmuteTopic unmutes a topic.
func (s *Store) UnmuteTopic(ctx context.Context, streamID int64, topic string) error {
	return s.mutes.Unmute(ctx, streamID, topic)
}

// MutedTopics lists muted topics. A streamID of 0 lists every stream.
func (s *Store) MutedTopics(ctx context.Context, streamID int64) ([]models.MutedTopic, error) {
	return s.mutes.List(ctx, streamID)
}

// Subscription returns the topic list's view of a stream.
func (s *Store) Subscription(ctx context.Context, streamID int64) (topiclist.Subscription, error) {
	stream, err := s.streams.Get(ctx, streamID)
	if err != nil {
		return topiclist.Subscription{}, err
	}
	complete, err := s.cache.HistoryComplete(ctx, streamID)
	if err != nil {
		return topiclist.Subscription{}, err
	}
	return topiclist.Subscription{
		StreamID:           topiclist.StreamID(stream.ID),
		Name:               stream.Name,
		HasCompleteHistory: complete,
	}, nil
}

// StreamSnapshot is everything the sidebar shows about one stream.
type StreamSnapshot struct {
	Subscription topiclist.Subscription
	Topics       []string
	Unread       map[topiclist.TopicKey]int
	Muted        map[topiclist.TopicKey]bool
}

// UnreadTotal sums the unread counts of the stream's topics.
func (s StreamSnapshot) UnreadTotal() int {
	total := 0
	for _, count := range s.Unread {
		total += count
	}
	return total
}

// LoadStream reads the snapshot of one stream.
func (s *Store) LoadStream(ctx context.Context, streamID int64) (StreamSnapshot, error) {
	sub, err := s.Subscription(ctx, streamID)
	if err != nil {
		return StreamSnapshot{}, err
	}
	topics, err := s.cache.Names(ctx, streamID)
	if err != nil {
		return StreamSnapshot{}, err
	}
	return s.withCounts(ctx, sub, topics)
}

// PreviewStream builds the snapshot a freshly started sidebar would see for
// a stream, straight from the message history. With full set it is the
// snapshot after a complete history fetch. Nothing is written: the topic
// cache a running sidebar depends on is left alone.
func (s *Store) PreviewStream(ctx context.Context, streamID int64, initialTopics int, full bool) (StreamSnapshot, error) {
	stream, err := s.streams.Get(ctx, streamID)
	if err != nil {
		return StreamSnapshot{}, err
	}
	if initialTopics <= 0 {
		initialTopics = 1
	}

	limit := initialTopics + 1
	if full {
		limit = 0
	}
	summaries, err := s.messages.RecentTopics(ctx, streamID, limit)
	if err != nil {
		return StreamSnapshot{}, err
	}
	complete := full || len(summaries) <= initialTopics
	if !complete {
		summaries = summaries[:initialTopics]
	}

	topics := make([]string, len(summaries))
	for i, summary := range summaries {
		topics[i] = summary.Name
	}
	sub := topiclist.Subscription{
		StreamID:           topiclist.StreamID(stream.ID),
		Name:               stream.Name,
		HasCompleteHistory: complete,
	}
	return s.withCounts(ctx, sub, topics)
}

// withCounts adds the unread and muted sets to a stream's topics.
func (s *Store) withCounts(ctx context.Context, sub topiclist.Subscription, topics []string) (StreamSnapshot, error) {
	streamID := int64(sub.StreamID)
	unread, err := s.reads.UnreadCounts(ctx, streamID)
	if err != nil {
		return StreamSnapshot{}, err
	}
	mutedTopics, err := s.mutes.List(ctx, streamID)
	if err != nil {
		return StreamSnapshot{}, err
	}
	muted := make(map[topiclist.TopicKey]bool, len(mutedTopics))
	for _, m := range mutedTopics {
		muted[topiclist.FoldTopic(m.Topic)] = true
	}
	return StreamSnapshot{
		Subscription: sub,
		Topics:       topics,
		Unread:       unread,
		Muted:        muted,
	}, nil
}

// Snapshot reads the snapshots of every stream, ordered by name.
func (s *Store) Snapshot(ctx context.Context) ([]StreamSnapshot, error) {
	streams, err := s.streams.List(ctx)
	if err != nil {
		return nil, err
	}
	snapshots := make([]StreamSnapshot, 0, len(streams))
	for _, stream := range streams {
		snap, err := s.LoadStream(ctx, stream.ID)
		if err != nil {
			if errors.Is(err, ErrStreamNotFound) {
				continue
			}
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}
