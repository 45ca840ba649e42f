package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tOgg1/streambar/internal/db"
	"github.com/tOgg1/streambar/internal/topiclist"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), db.DefaultConfig(filepath.Join(t.TempDir(), "streambar.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedTopics(t *testing.T, s *Store, stream string, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := s.Send(ctx, stream, fmt.Sprintf("topic-%02d", i), "iago", "hello")
		require.NoError(t, err)
	}
}

func TestSyncRecentSeedsInitialTopics(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	big, err := s.CreateStream(ctx, "big", "")
	require.NoError(t, err)
	small, err := s.CreateStream(ctx, "small", "")
	require.NoError(t, err)
	seedTopics(t, s, "big", 12)
	seedTopics(t, s, "small", 3)

	result, err := s.SyncRecent(ctx, 0, 10)
	require.NoError(t, err)
	require.True(t, result.Seeded)
	require.EqualValues(t, 15, result.Watermark)

	names, err := s.RecentTopicNames(ctx, big.ID)
	require.NoError(t, err)
	require.Len(t, names, 10)
	require.Equal(t, "topic-11", names[0])

	sub, err := s.Subscription(ctx, big.ID)
	require.NoError(t, err)
	require.False(t, sub.HasCompleteHistory)

	sub, err = s.Subscription(ctx, small.ID)
	require.NoError(t, err)
	require.True(t, sub.HasCompleteHistory)
	require.Equal(t, "small", sub.Name)
}

func TestSyncRecentIngestsNewMessages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stream, err := s.CreateStream(ctx, "design", "")
	require.NoError(t, err)
	seedTopics(t, s, "design", 2)

	seeded, err := s.SyncRecent(ctx, 0, 10)
	require.NoError(t, err)

	_, err = s.Send(ctx, "DESIGN", "brand new", "othello", "hi")
	require.NoError(t, err)

	result, err := s.SyncRecent(ctx, seeded.Watermark, 10)
	require.NoError(t, err)
	require.False(t, result.Seeded)
	require.Len(t, result.Messages, 1)
	require.Equal(t, seeded.Watermark+1, result.Watermark)

	names, err := s.RecentTopicNames(ctx, stream.ID)
	require.NoError(t, err)
	require.Equal(t, "brand new", names[0])

	again, err := s.SyncRecent(ctx, result.Watermark, 10)
	require.NoError(t, err)
	require.Empty(t, again.Messages)
	require.Equal(t, result.Watermark, again.Watermark)
}

func TestFetchFullerHistoryCompletesCache(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stream, err := s.CreateStream(ctx, "big", "")
	require.NoError(t, err)
	seedTopics(t, s, "big", 14)

	_, err = s.SyncRecent(ctx, 0, 10)
	require.NoError(t, err)

	count, err := s.FetchFullerHistory(ctx, stream.ID)
	require.NoError(t, err)
	require.Equal(t, 14, count)

	snap, err := s.LoadStream(ctx, stream.ID)
	require.NoError(t, err)
	require.Len(t, snap.Topics, 14)
	require.True(t, snap.Subscription.HasCompleteHistory)

	_, err = s.FetchFullerHistory(ctx, 999)
	require.ErrorIs(t, err, ErrStreamNotFound)
}

func TestSnapshotCarriesUnreadAndMutes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stream, err := s.CreateStream(ctx, "design", "")
	require.NoError(t, err)
	seedTopics(t, s, "design", 3)
	_, err = s.SyncRecent(ctx, 0, 10)
	require.NoError(t, err)

	require.NoError(t, s.MuteTopic(ctx, stream.ID, "Topic-01"))
	_, err = s.MarkTopicRead(ctx, stream.ID, "topic-02")
	require.NoError(t, err)

	snaps, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	snap := snaps[0]
	require.True(t, snap.Muted[topiclist.FoldTopic("topic-01")])
	require.Equal(t, 1, snap.Unread[topiclist.FoldTopic("topic-00")])
	require.Zero(t, snap.Unread[topiclist.FoldTopic("topic-02")])
	require.Equal(t, 2, snap.UnreadTotal())

	require.NoError(t, s.UnmuteTopic(ctx, stream.ID, "topic-01"))
	muted, err := s.MutedTopics(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, muted)
}

func TestSendToUnknownStream(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Send(context.Background(), "nowhere", "x", "iago", "hi")
	require.ErrorIs(t, err, ErrStreamNotFound)
}

func TestPreviewStreamReadsHistoryWithoutTouchingCache(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stream, err := s.CreateStream(ctx, "big", "")
	require.NoError(t, err)
	seedTopics(t, s, "big", 12)
	_, err = s.SyncRecent(ctx, 0, 10)
	require.NoError(t, err)
	_, err = s.FetchFullerHistory(ctx, stream.ID)
	require.NoError(t, err)
	require.NoError(t, s.MuteTopic(ctx, stream.ID, "TOPIC-11"))

	preview, err := s.PreviewStream(ctx, stream.ID, 10, false)
	require.NoError(t, err)
	require.Len(t, preview.Topics, 10)
	require.Equal(t, "topic-11", preview.Topics[0])
	require.False(t, preview.Subscription.HasCompleteHistory)
	require.True(t, preview.Muted[topiclist.FoldTopic("topic-11")])
	require.Equal(t, 12, preview.UnreadTotal())

	full, err := s.PreviewStream(ctx, stream.ID, 10, true)
	require.NoError(t, err)
	require.Len(t, full.Topics, 12)
	require.True(t, full.Subscription.HasCompleteHistory)

	cached, err := s.LoadStream(ctx, stream.ID)
	require.NoError(t, err)
	require.Len(t, cached.Topics, 12)
	require.True(t, cached.Subscription.HasCompleteHistory)

	_, err = s.PreviewStream(ctx, 999, 10, false)
	require.ErrorIs(t, err, ErrStreamNotFound)
}
