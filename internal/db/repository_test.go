package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tOgg1/streambar/internal/models"
	"github.com/tOgg1/streambar/internal/topiclist"
)

func createStream(t *testing.T, db *DB, name string) *models.Stream {
	t.Helper()
	stream := &models.Stream{Name: name}
	require.NoError(t, NewStreamRepository(db).Create(context.Background(), stream))
	return stream
}

func post(t *testing.T, db *DB, streamID int64, topic string) *models.Message {
	t.Helper()
	msg := &models.Message{StreamID: streamID, Topic: topic, Sender: "iago", Content: "hi"}
	require.NoError(t, NewMessageRepository(db).Create(context.Background(), msg))
	return msg
}

func TestStreamRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewStreamRepository(db)

	design := createStream(t, db, "Design")
	createStream(t, db, "backend")
	require.NotZero(t, design.ID)

	err := repo.Create(ctx, &models.Stream{Name: "DESIGN"})
	require.ErrorIs(t, err, ErrStreamAlreadyExists)

	byName, err := repo.GetByName(ctx, "design")
	require.NoError(t, err)
	require.Equal(t, design.ID, byName.ID)
	require.Equal(t, "Design", byName.Name)

	_, err = repo.Get(ctx, 999)
	require.ErrorIs(t, err, ErrStreamNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "backend", all[0].Name)

	require.ErrorIs(t, repo.Create(ctx, &models.Stream{Name: ""}), models.ErrInvalidStreamName)
}

func TestMessageRepositoryRecentTopics(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMessageRepository(db)
	stream := createStream(t, db, "design")

	post(t, db, stream.ID, "logo")
	post(t, db, stream.ID, "colors")
	post(t, db, stream.ID, "Logo")
	post(t, db, stream.ID, "fonts")

	topics, err := repo.RecentTopics(ctx, stream.ID, 0)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	require.Equal(t, "fonts", topics[0].Name)
	// newest spelling wins
	require.Equal(t, "Logo", topics[1].Name)
	require.Equal(t, 2, topics[1].Messages)
	require.Equal(t, "colors", topics[2].Name)

	limited, err := repo.RecentTopics(ctx, stream.ID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)

	count, err := repo.TopicCount(ctx, stream.ID)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestMessageRepositoryListingAndValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	repo := NewMessageRepository(db)
	stream := createStream(t, db, "design")

	first := post(t, db, stream.ID, "logo")
	post(t, db, stream.ID, "logo")
	third := post(t, db, stream.ID, "LOGO")

	msgs, err := repo.ListTopic(ctx, stream.ID, "logo", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, third.ID, msgs[1].ID)

	after, err := repo.After(ctx, first.ID, 0)
	require.NoError(t, err)
	require.Len(t, after, 2)

	latest, err := repo.LatestID(ctx)
	require.NoError(t, err)
	require.Equal(t, third.ID, latest)

	err = repo.Create(ctx, &models.Message{StreamID: 999, Topic: "x", Sender: "a", Content: "b"})
	require.ErrorIs(t, err, ErrStreamNotFound)

	err = repo.Create(ctx, &models.Message{StreamID: stream.ID, Topic: "", Sender: "a", Content: "b"})
	require.ErrorIs(t, err, models.ErrInvalidTopicName)
}

func TestReadRepositoryUnreadCounts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	reads := NewReadRepository(db)
	stream := createStream(t, db, "design")

	m1 := post(t, db, stream.ID, "logo")
	post(t, db, stream.ID, "Logo")
	post(t, db, stream.ID, "fonts")

	counts, err := reads.UnreadCounts(ctx, stream.ID)
	require.NoError(t, err)
	require.Equal(t, 2, counts[topiclist.FoldTopic("logo")])
	require.Equal(t, 1, counts[topiclist.FoldTopic("fonts")])

	require.NoError(t, reads.MarkRead(ctx, m1.ID, m1.ID))
	counts, err = reads.UnreadCounts(ctx, stream.ID)
	require.NoError(t, err)
	require.Equal(t, 1, counts[topiclist.FoldTopic("logo")])

	changed, err := reads.MarkTopicRead(ctx, stream.ID, "LOGO")
	require.NoError(t, err)
	require.EqualValues(t, 1, changed)

	counts, err = reads.UnreadCounts(ctx, stream.ID)
	require.NoError(t, err)
	_, ok := counts[topiclist.FoldTopic("logo")]
	require.False(t, ok)

	changed, err = reads.MarkStreamRead(ctx, stream.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, changed)
}

func TestMuteRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	mutes := NewMuteRepository(db)
	design := createStream(t, db, "design")
	backend := createStream(t, db, "backend")

	require.NoError(t, mutes.Mute(ctx, design.ID, "Logo"))
	require.NoError(t, mutes.Mute(ctx, design.ID, "logo"))
	require.NoError(t, mutes.Mute(ctx, backend.ID, "deploys"))
	require.ErrorIs(t, mutes.Mute(ctx, design.ID, " "), models.ErrInvalidTopicName)

	muted, err := mutes.List(ctx, design.ID)
	require.NoError(t, err)
	require.Len(t, muted, 1)
	require.Equal(t, "Logo", muted[0].Topic)

	all, err := mutes.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, mutes.Unmute(ctx, design.ID, "LOGO"))
	muted, err = mutes.List(ctx, design.ID)
	require.NoError(t, err)
	require.Empty(t, muted)
}

func TestTopicCacheRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	cache := NewTopicCacheRepository(db)
	stream := createStream(t, db, "design")

	complete, err := cache.HistoryComplete(ctx, stream.ID)
	require.NoError(t, err)
	require.False(t, complete)

	require.NoError(t, cache.Replace(ctx, stream.ID, []models.TopicSummary{
		{Name: "logo", MaxID: 5},
		{Name: "fonts", MaxID: 9},
	}, false))

	names, err := cache.Names(ctx, stream.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"fonts", "logo"}, names)

	require.NoError(t, cache.Observe(ctx, &models.Message{ID: 12, StreamID: stream.ID, Topic: "LOGO"}))
	// an older spelling never replaces a newer one
	require.NoError(t, cache.Merge(ctx, stream.ID, []models.TopicSummary{{Name: "logo", MaxID: 3}, {Name: "colors", MaxID: 1}}, true))

	names, err = cache.Names(ctx, stream.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"LOGO", "fonts", "colors"}, names)

	complete, err = cache.HistoryComplete(ctx, stream.ID)
	require.NoError(t, err)
	require.True(t, complete)

	require.NoError(t, cache.Forget(ctx, stream.ID))
	names, err = cache.Names(ctx, stream.ID)
	require.NoError(t, err)
	require.Empty(t, names)

	_, err = cache.HistoryComplete(ctx, 404)
	require.ErrorIs(t, err, ErrStreamNotFound)
}

func TestMessageRepositoryListStream(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	design := createStream(t, db, "design")
	other := createStream(t, db, "other")

	post(t, db, design.ID, "logo")
	post(t, db, other.ID, "noise")
	last := post(t, db, design.ID, "fonts")

	msgs, err := NewMessageRepository(db).ListStream(ctx, design.ID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, last.ID, msgs[1].ID)
}
