package topiclist

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// HistoryLoadedMsg carries the result of the fetch started by ZoomIn back to
// the UI goroutine. Feed it to Registry.HandleHistoryLoaded.
type HistoryLoadedMsg struct {
	RequestID   string
	StreamID    StreamID
	BeforeCount int
	Commit      func()
	Err         error
}

// ZoomIn switches to the full-history view of the expanded stream and
// returns the command that fetches older topics. It returns nil when no
// single stream is expanded.
func (r *Registry) ZoomIn() tea.Cmd {
	w, ok := r.ActiveWidget()
	if !ok {
		r.deps.Diagnostics.ReportError("Cannot find widget for topic history zooming.")
		return nil
	}
	r.zoom.Expand()

	streamID := w.StreamID()
	msg := HistoryLoadedMsg{
		RequestID:   uuid.NewString(),
		StreamID:    streamID,
		BeforeCount: w.NumItems(),
	}
	w.ShowSpinner()

	fetcher := r.deps.History
	timeout := r.historyTimeout
	return func() tea.Msg {
		if fetcher == nil {
			msg.Err = fmt.Errorf("no history source configured")
			return msg
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		msg.Commit, msg.Err = fetcher.FetchFullerHistory(ctx, streamID)
		return msg
	}
}

// HandleHistoryLoaded finishes a ZoomIn. Fetched data is always committed;
// the view is only rebuilt if the user is still zoomed into the same stream.
func (r *Registry) HandleHistoryLoaded(msg HistoryLoadedMsg) {
	if msg.Commit != nil {
		msg.Commit()
	}

	if reason := r.staleReason(msg.StreamID); reason != "" {
		r.deps.Diagnostics.ReportWarning(fmt.Sprintf("%s (request %s)", reason, msg.RequestID))
		return
	}

	w := r.widgets[msg.StreamID]
	if msg.Err != nil {
		r.deps.Diagnostics.ReportError(fmt.Sprintf("Topic history fetch failed: %v (request %s)", msg.Err, msg.RequestID))
		r.Rebuild(w.Parent(), msg.StreamID)
		return
	}

	fresh := r.Rebuild(w.Parent(), msg.StreamID)
	if fresh != nil && fresh.NumItems() == msg.BeforeCount {
		fresh.ShowNoMoreTopics()
	}
}

// staleReason is the guard every async continuation runs before touching
// widgets. It returns "" when streamID is still expanded and zoomed.
func (r *Registry) staleReason(streamID StreamID) string {
	if _, ok := r.widgets[streamID]; !ok {
		return "User re-narrowed before topic history was returned."
	}
	if !r.zoom.Expanded() {
		return "User zoomed out before topic history was returned."
	}
	return ""
}
