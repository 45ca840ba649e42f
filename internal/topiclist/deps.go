// Package topiclist maintains the bounded list of topics shown under a stream
// in the sidebar, and routes unread-count changes to topic rows or to the
// aggregate "more topics" row.
package topiclist

import (
	"context"

	"github.com/tOgg1/streambar/internal/narrow"
)

// StreamID identifies a stream.
type StreamID int64

// Subscription is the stream metadata the topic list needs.
type Subscription struct {
	StreamID           StreamID
	Name               string
	HasCompleteHistory bool
}

// TopicSource lists the topics known locally for a stream, most recent first.
type TopicSource interface {
	RecentTopicNames(streamID StreamID) []string
}

// HistoryFetcher loads the full topic history of a stream. It runs off the UI
// goroutine; the returned commit func is called on the UI goroutine to merge
// the result into the local TopicSource.
type HistoryFetcher interface {
	FetchFullerHistory(ctx context.Context, streamID StreamID) (commit func(), err error)
}

type UnreadCounter interface {
	UnreadCount(streamID StreamID, topic string) int
}

type MuteChecker interface {
	IsTopicMuted(streamID StreamID, topic string) bool
}

type Subscriptions interface {
	Subscription(streamID StreamID) (Subscription, bool)
}

type Linker interface {
	TopicPermalink(streamID StreamID, topic string) string
}

type Narrower interface {
	ActivateNarrow(terms []narrow.Term, opts narrow.Options)
}

// Diagnostics receives internal inconsistencies and races. Implementations
// must not panic.
type Diagnostics interface {
	ReportError(message string)
	ReportWarning(message string)
}

// PopoverHider closes any contextual menu anchored to a topic row.
type PopoverHider interface {
	HideTopicPopover()
}

// Container is the sidebar element a topic list hangs under. The widget
// borrows it; it never owns it.
type Container interface {
	AttachTopicList(w *Widget)
	DetachTopicList(w *Widget)
}

// Deps bundles the collaborators of a Registry. Topics is required; the
// rest fall back to inert defaults when nil.
type Deps struct {
	Topics      TopicSource
	History     HistoryFetcher
	Unread      UnreadCounter
	Muting      MuteChecker
	Subs        Subscriptions
	Links       Linker
	Narrow      Narrower
	Popovers    PopoverHider
	Diagnostics Diagnostics
	// ActiveTopic returns the topic of the current narrow, or "".
	ActiveTopic func() string
}

type nopDiagnostics struct{}

func (nopDiagnostics) ReportError(string)   {}
func (nopDiagnostics) ReportWarning(string) {}

func (d Deps) withDefaults() Deps {
	if d.Diagnostics == nil {
		d.Diagnostics = nopDiagnostics{}
	}
	return d
}

func (d *Deps) recentTopicNames(id StreamID) []string {
	if d.Topics == nil {
		return nil
	}
	return d.Topics.RecentTopicNames(id)
}

func (d *Deps) unreadCount(id StreamID, topic string) int {
	if d.Unread == nil {
		return 0
	}
	return d.Unread.UnreadCount(id, topic)
}

func (d *Deps) isMuted(id StreamID, topic string) bool {
	if d.Muting == nil {
		return false
	}
	return d.Muting.IsTopicMuted(id, topic)
}

func (d *Deps) permalink(id StreamID, topic string) string {
	if d.Links == nil {
		return ""
	}
	return d.Links.TopicPermalink(id, topic)
}

func (d *Deps) subscription(id StreamID) (Subscription, bool) {
	if d.Subs == nil {
		return Subscription{}, false
	}
	return d.Subs.Subscription(id)
}

func (d *Deps) activeTopic() string {
	if d.ActiveTopic == nil {
		return ""
	}
	return d.ActiveTopic()
}

func (d *Deps) hidePopover() {
	if d.Popovers != nil {
		d.Popovers.HideTopicPopover()
	}
}
