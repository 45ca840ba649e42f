package narrow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type mapResolver map[string]int64

func (m mapResolver) ResolveStream(name string) (int64, string, bool) {
	for stream, id := range m {
		if strings.EqualFold(stream, name) {
			return id, stream, true
		}
	}
	return 0, "", false
}

func TestTopicPermalinkEncodesHashComponents(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		stream string
		topic  string
		want   string
	}{
		{
			name:   "plain",
			id:     7,
			stream: "general",
			topic:  "deploys",
			want:   "#narrow/stream/7-general/topic/deploys",
		},
		{
			name:   "spaces and dots",
			id:     12,
			stream: "core team",
			topic:  "v1.2 release",
			want:   "#narrow/stream/12-core-team/topic/v1.2E2.20release",
		},
		{
			name:   "stream only",
			id:     3,
			stream: "ops",
			want:   "#narrow/stream/3-ops",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TopicPermalink(tt.id, tt.stream, tt.topic))
		})
	}
}

func TestNavigatorActivateNarrowResolvesStream(t *testing.T) {
	var changes []State
	nav := NewNavigator(mapResolver{"General": 4}, func(_, next State) {
		changes = append(changes, next)
	})

	nav.ActivateNarrow([]Term{
		{Operator: OperatorStream, Operand: "general"},
		{Operator: OperatorTopic, Operand: "Lunch"},
	}, Options{Trigger: "sidebar"})

	require.Len(t, changes, 1)
	cur := nav.Current()
	require.Equal(t, int64(4), cur.StreamID)
	require.Equal(t, "General", cur.StreamName)
	require.Equal(t, "Lunch", nav.Topic())
	require.Equal(t, "sidebar", cur.Trigger)
	require.Equal(t, []Term{
		{Operator: OperatorStream, Operand: "General"},
		{Operator: OperatorTopic, Operand: "Lunch"},
	}, cur.Terms())
}

func TestNavigatorIgnoresUnknownStream(t *testing.T) {
	calls := 0
	nav := NewNavigator(mapResolver{"general": 1}, func(State, State) { calls++ })

	nav.ActivateNarrow([]Term{{Operator: OperatorStream, Operand: "general"}}, Options{})
	nav.ActivateNarrow([]Term{{Operator: OperatorStream, Operand: "nope"}}, Options{})

	require.Equal(t, 1, calls)
	require.Equal(t, int64(1), nav.Current().StreamID)

	nav.Reset()
	require.True(t, nav.Current().IsEmpty())
	require.Equal(t, 2, calls)
}
