package topiclist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func unreadFrom(counts map[string]int) func(string) int {
	return func(topic string) int { return counts[topic] }
}

func selectedNames(sel Selection) []string {
	out := make([]string, 0, len(sel.Shown))
	for _, view := range sel.Shown {
		out = append(out, view.Name)
	}
	return out
}

func TestSelectShowsEveryTopicOfShortLists(t *testing.T) {
	for n := 0; n <= DefaultMaxTopics; n++ {
		names := topicNames("t", n)
		sel := Select(SelectionInput{TopicNames: names, Limits: DefaultLimits()})
		require.Len(t, sel.Shown, n)
		require.Zero(t, sel.MoreUnread)
	}
}

func TestSelectTruncatesReadTopicsToMaxTopics(t *testing.T) {
	for n := DefaultMaxTopics + 1; n <= 20; n++ {
		names := topicNames("t", n)
		sel := Select(SelectionInput{TopicNames: names, Limits: DefaultLimits()})
		require.Equal(t, names[:DefaultMaxTopics], selectedNames(sel))
		require.Zero(t, sel.MoreUnread)
	}
}

func TestSelectShowsUnreadTopicBeyondMaxTopics(t *testing.T) {
	sel := Select(SelectionInput{
		TopicNames:  []string{"a", "b", "c", "d", "e", "f"},
		UnreadCount: unreadFrom(map[string]int{"f": 3}),
		Limits:      DefaultLimits(),
	})

	require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, selectedNames(sel))
	require.Zero(t, sel.MoreUnread)
	require.Equal(t, 3, sel.Shown[5].Unread)
	require.False(t, sel.Shown[5].IsZero)
}

func TestSelectFoldsUnreadTopicsPastHardCap(t *testing.T) {
	names := topicNames("t", 12)
	counts := make(map[string]int)
	for i, name := range names {
		counts[name] = i + 1
	}

	sel := Select(SelectionInput{
		TopicNames:  names,
		UnreadCount: unreadFrom(counts),
		Limits:      DefaultLimits(),
	})

	require.Equal(t, names[:DefaultMaxTopicsWithUnread], selectedNames(sel))
	// t8..t11 carry 9+10+11+12 unreads.
	require.Equal(t, 42, sel.MoreUnread)
}

func TestSelectActiveTopicBypassesHardCap(t *testing.T) {
	names := topicNames("t", 12)
	counts := make(map[string]int)
	for _, name := range names {
		counts[name] = 1
	}

	sel := Select(SelectionInput{
		TopicNames:  names,
		UnreadCount: unreadFrom(counts),
		ActiveTopic: FoldTopic("T10"),
		Limits:      DefaultLimits(),
	})

	shown := selectedNames(sel)
	require.Len(t, shown, DefaultMaxTopicsWithUnread+1)
	require.Equal(t, "t10", shown[len(shown)-1])
	require.True(t, sel.Shown[len(shown)-1].Active)
	require.Equal(t, 3, sel.MoreUnread)
}

func TestSelectActiveReadTopicBeyondMaxTopicsIsShown(t *testing.T) {
	names := topicNames("t", 9)
	sel := Select(SelectionInput{
		TopicNames:  names,
		ActiveTopic: FoldTopic("t7"),
		Limits:      DefaultLimits(),
	})

	require.Equal(t, []string{"t0", "t1", "t2", "t3", "t4", "t7"}, selectedNames(sel))
	require.Zero(t, sel.MoreUnread)
}

func TestSelectZoomedShowsEverything(t *testing.T) {
	names := topicNames("t", 15)
	counts := make(map[string]int)
	for _, name := range names {
		counts[name] = 2
	}

	sel := Select(SelectionInput{
		TopicNames:  names,
		UnreadCount: unreadFrom(counts),
		Zoomed:      true,
		Limits:      DefaultLimits(),
	})

	require.Equal(t, names, selectedNames(sel))
	require.Zero(t, sel.MoreUnread)
}

func TestSelectFillsTopicViewFields(t *testing.T) {
	sel := Select(SelectionInput{
		TopicNames:  []string{"Deploys", "lunch"},
		UnreadCount: unreadFrom(map[string]int{"Deploys": 4}),
		IsMuted:     func(topic string) bool { return topic == "lunch" },
		Permalink:   func(topic string) string { return "#" + topic },
		ActiveTopic: FoldTopic("deploys"),
	})

	require.Equal(t, []TopicView{
		{Name: "Deploys", Key: FoldTopic("Deploys"), Unread: 4, Active: true, URL: "#Deploys"},
		{Name: "lunch", Key: FoldTopic("lunch"), IsZero: true, Muted: true, URL: "#lunch"},
	}, sel.Shown)
}

func TestSelectHonorsCustomLimits(t *testing.T) {
	names := topicNames("t", 6)
	sel := Select(SelectionInput{
		TopicNames:  names,
		UnreadCount: unreadFrom(map[string]int{"t4": 1, "t5": 2}),
		Limits:      Limits{MaxTopics: 2, MaxTopicsWithUnread: 3},
	})

	require.Equal(t, []string{"t0", "t1", "t4"}, selectedNames(sel))
	require.Equal(t, 2, sel.MoreUnread)
}

func TestLimitsNormalize(t *testing.T) {
	require.Equal(t, DefaultLimits(), Limits{}.normalize())
	require.Equal(t, Limits{MaxTopics: 6, MaxTopicsWithUnread: 6}, Limits{MaxTopics: 6, MaxTopicsWithUnread: 2}.normalize())
}

func TestFoldTopicIsCaseInsensitive(t *testing.T) {
	require.Equal(t, FoldTopic("Deploys"), FoldTopic("DEPLOYS"))
	require.True(t, SameTopic("Ärger", "ärger"))
	require.False(t, SameTopic("deploy", "deploys"))
}
