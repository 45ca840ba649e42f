package topiclist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCount(t *testing.T) {
	require.Equal(t, CountUpdate{Target: MoreTopics, Zero: true}, FormatCount(MoreTopics, 0))
	require.Equal(t, CountUpdate{Target: TopicCount("x"), Zero: true}, FormatCount(TopicCount("x"), -2))
	require.Equal(t, CountUpdate{Target: TopicCount("x"), Count: 12, Value: "12"}, FormatCount(TopicCount("x"), 12))

	var badge CountBadge
	badge.Apply(FormatCount(MoreTopics, 3))
	require.Equal(t, CountBadge{Count: 3, Value: "3"}, badge)
	badge.Apply(FormatCount(MoreTopics, 0))
	require.Equal(t, CountBadge{Zero: true}, badge)
}

func TestWidgetBuildAttachesRowsToParent(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", topicNames("t", 7)...)
	f.data.setUnread(1, "t1", 2)
	f.data.muted[1] = map[TopicKey]bool{FoldTopic("t2"): true}
	parent := &fakeContainer{name: "general"}

	w := f.registry.Rebuild(parent, 1)

	require.Equal(t, []*Widget{w}, parent.attached)
	require.True(t, w.Attached())
	require.Equal(t, 5, w.NumItems())

	rows := w.Rows()
	require.Len(t, rows, 7)
	require.Equal(t, RowMoreTopics, rows[5].Kind)
	require.Equal(t, RowNewTopic, rows[6].Kind)
	require.Equal(t, CountBadge{Count: 2, Value: "2"}, rows[1].Count)
	require.True(t, rows[0].Count.Zero)
	require.True(t, rows[2].Muted)
	require.Equal(t, "#narrow/stream/1-general/topic/t3", rows[3].URL)
	require.True(t, rows[5].Count.Zero)
}

func TestWidgetOmitsMoreRowWhenEverythingIsShown(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", "a", "b", "c")
	f.data.complete[1] = true

	w := f.registry.Rebuild(&fakeContainer{}, 1)

	require.False(t, w.HasMoreTopicsRow())
	rows := w.Rows()
	require.Len(t, rows, 4)
	require.Equal(t, RowNewTopic, rows[3].Kind)
}

func TestWidgetKeepsMoreRowWhenHistoryIncomplete(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", "a", "b")

	w := f.registry.Rebuild(&fakeContainer{}, 1)

	require.True(t, w.HasMoreTopicsRow())
}

func TestWidgetMarksActiveTopicCaseInsensitively(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", "Deploys", "lunch")
	f.active = "DEPLOYS"

	w := f.registry.Rebuild(&fakeContainer{}, 1)

	row, ok := w.TopicRow("deploys")
	require.True(t, ok)
	require.True(t, row.Active)
	require.Equal(t, "Deploys", row.Topic)
	other, _ := w.TopicRow("lunch")
	require.False(t, other.Active)
}

func TestWidgetSetCountUpdatesShownTopicOnly(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", topicNames("t", 12)...)
	for _, name := range topicNames("t", 12) {
		f.data.setUnread(1, name, 1)
	}
	w := f.registry.Rebuild(&fakeContainer{}, 1)
	require.Equal(t, 4, w.MoreUnread())

	handled := f.registry.SetCount(1, TopicCount("T3"), 9)

	require.False(t, handled)
	row, _ := w.TopicRow("t3")
	require.Equal(t, CountBadge{Count: 9, Value: "9"}, row.Count)
	require.Equal(t, 4, w.MoreUnread())
	other, _ := w.TopicRow("t4")
	require.Equal(t, 1, other.Count.Count)
}

func TestWidgetSetCountFoldedTopicAsksForRollup(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", topicNames("t", 12)...)
	for _, name := range topicNames("t", 12) {
		f.data.setUnread(1, name, 1)
	}
	w := f.registry.Rebuild(&fakeContainer{}, 1)
	before := w.Rows()

	require.True(t, f.registry.SetCount(1, TopicCount("t10"), 5))
	require.Equal(t, before, w.Rows())
}

func TestWidgetSetCountAggregate(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", topicNames("t", 7)...)
	w := f.registry.Rebuild(&fakeContainer{}, 1)

	require.False(t, f.registry.SetCount(1, MoreTopics, 6))
	require.Equal(t, 6, w.MoreUnread())

	require.False(t, f.registry.SetCount(1, MoreTopics, 0))
	rows := w.Rows()
	require.True(t, rows[5].Count.Zero)
	require.Empty(t, rows[5].Count.Value)
}

func TestWidgetSetCountAggregateWithoutRowIsNoop(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", "a", "b")
	f.data.complete[1] = true
	w := f.registry.Rebuild(&fakeContainer{}, 1)
	before := w.Rows()

	require.False(t, f.registry.SetCount(1, MoreTopics, 0))
	require.False(t, f.registry.SetCount(1, MoreTopics, 4))
	require.False(t, w.HasMoreTopicsRow())
	require.Equal(t, before, w.Rows())
	require.Empty(t, f.diag.errors)
	require.Empty(t, f.diag.warnings)
}

func TestWidgetSetCountAggregateIgnoredWhileZoomed(t *testing.T) {
	f := newFixture()
	f.data.addStream(1, "general", topicNames("t", 7)...)
	f.registry.Rebuild(&fakeContainer{}, 1)
	f.registry.ZoomIn()

	w, _ := f.registry.Widget(1)
	require.False(t, f.registry.SetCount(1, MoreTopics, 5))
	require.Zero(t, w.MoreUnread())
}

func TestRegistrySetCountUntrackedStream(t *testing.T) {
	f := newFixture()
	require.False(t, f.registry.SetCount(42, TopicCount("x"), 1))
	require.False(t, f.registry.SetCount(42, MoreTopics, 1))
}
