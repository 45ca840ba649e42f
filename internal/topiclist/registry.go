package topiclist

import (
	"sort"
	"time"
)

const defaultHistoryTimeout = 5 * time.Second

// RegistryConfig tunes a Registry.
type RegistryConfig struct {
	Limits Limits
	// HistoryTimeout bounds one FetchFullerHistory call.
	HistoryTimeout time.Duration
}

// Registry tracks the live topic list widgets of a sidebar. Only one stream
// is expanded at a time, so it holds at most one widget. It is not safe for
// concurrent use; every method runs on the UI goroutine.
type Registry struct {
	deps           Deps
	limits         Limits
	historyTimeout time.Duration

	zoom    Zoom
	widgets map[StreamID]*Widget
}

func NewRegistry(deps Deps, cfg RegistryConfig) *Registry {
	if cfg.HistoryTimeout <= 0 {
		cfg.HistoryTimeout = defaultHistoryTimeout
	}
	return &Registry{
		deps:           deps.withDefaults(),
		limits:         cfg.Limits.normalize(),
		historyTimeout: cfg.HistoryTimeout,
		widgets:        make(map[StreamID]*Widget),
	}
}

// Limits returns the truncation caps in use.
func (r *Registry) Limits() Limits { return r.limits }

// Zoomed reports whether the full-history view is on.
func (r *Registry) Zoomed() bool { return r.zoom.Expanded() }

// ZoomMode returns the current zoom mode.
func (r *Registry) ZoomMode() ZoomMode { return r.zoom.Mode() }

// RemoveExpandedTopics tears down every tracked widget.
func (r *Registry) RemoveExpandedTopics() {
	r.deps.hidePopover()
	for _, w := range r.widgets {
		w.Remove()
	}
	clear(r.widgets)
}

// Close leaves zoom and removes every topic list.
func (r *Registry) Close() {
	r.zoom.Truncate()
	r.RemoveExpandedTopics()
}

// ZoomOut returns to the truncated view of the single expanded stream.
func (r *Registry) ZoomOut() {
	r.zoom.Truncate()

	w, ok := r.ActiveWidget()
	if !ok {
		r.deps.Diagnostics.ReportError("Unexpected number of topic lists to zoom out.")
		return
	}
	r.Rebuild(w.Parent(), w.StreamID())
}

// Rebuild replaces whatever is expanded with a fresh widget for streamID
// under parent, and returns it.
func (r *Registry) Rebuild(parent Container, streamID StreamID) *Widget {
	if parent == nil {
		r.deps.Diagnostics.ReportError("Cannot build topic list without a parent.")
		return nil
	}
	activeTopic := r.deps.activeTopic()
	noMoreTopics := r.NeedToShowNoMoreTopics(streamID)

	r.RemoveExpandedTopics()
	w := newWidget(parent, streamID, &r.deps, &r.zoom, r.limits)
	w.Build(activeTopic, noMoreTopics)

	r.widgets[streamID] = w
	return w
}

// NeedToShowNoMoreTopics reports whether a rebuild of streamID has to keep
// the "no more topics" notice from an earlier zoom.
func (r *Registry) NeedToShowNoMoreTopics(streamID StreamID) bool {
	if !r.zoom.Expanded() {
		return false
	}
	w, ok := r.widgets[streamID]
	if !ok {
		return false
	}
	return w.NoMoreTopics()
}

// SetCount routes an unread count to the widget of streamID. See
// Widget.SetCount for the meaning of the result.
func (r *Registry) SetCount(streamID StreamID, target CountTarget, count int) bool {
	w, ok := r.widgets[streamID]
	if !ok {
		return false
	}
	return w.SetCount(target, count)
}

// Widget returns the tracked widget of a stream.
func (r *Registry) Widget(streamID StreamID) (*Widget, bool) {
	w, ok := r.widgets[streamID]
	return w, ok
}

// ActiveWidget returns the sole tracked widget.
func (r *Registry) ActiveWidget() (*Widget, bool) {
	if len(r.widgets) != 1 {
		return nil, false
	}
	for _, w := range r.widgets {
		return w, true
	}
	return nil, false
}

// ActiveStreamID returns the stream of the sole tracked widget.
func (r *Registry) ActiveStreamID() (StreamID, bool) {
	w, ok := r.ActiveWidget()
	if !ok {
		return 0, false
	}
	return w.StreamID(), true
}

// ActiveParent returns the container of the sole tracked widget.
func (r *Registry) ActiveParent() (Container, bool) {
	w, ok := r.ActiveWidget()
	if !ok {
		return nil, false
	}
	return w.Parent(), true
}

// StreamIDs lists tracked streams in ascending order.
func (r *Registry) StreamIDs() []StreamID {
	ids := make([]StreamID, 0, len(r.widgets))
	for id := range r.widgets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
