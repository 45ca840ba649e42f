package sidebar

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/streambar/internal/narrow"
	"github.com/tOgg1/streambar/internal/topiclist"
)

func (m *Model) syncCmd(afterID int64) tea.Cmd {
	st := m.store
	initial := m.cfg.InitialTopics
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		result, err := st.SyncRecent(ctx, afterID, initial)
		if err != nil {
			return syncedMsg{err: err}
		}
		snaps, err := st.Snapshot(ctx)
		if err != nil {
			return syncedMsg{err: err}
		}
		return syncedMsg{result: result, snaps: snaps}
	}
}

func (m *Model) pollCmd() tea.Cmd {
	return tea.Tick(m.cfg.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (m *Model) markReadCmd(id topiclist.StreamID, topic string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		if _, err := st.MarkTopicRead(ctx, int64(id), topic); err != nil {
			return streamReloadedMsg{err: fmt.Errorf("mark %q read: %w", topic, err)}
		}
		snap, err := st.LoadStream(ctx, int64(id))
		return streamReloadedMsg{snap: snap, err: err}
	}
}

func (m *Model) muteCmd(id topiclist.StreamID, topic string, mute bool) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		var (
			err    error
			status string
		)
		if mute {
			err = st.MuteTopic(ctx, int64(id), topic)
			status = fmt.Sprintf("muted %s", topic)
		} else {
			err = st.UnmuteTopic(ctx, int64(id), topic)
			status = fmt.Sprintf("unmuted %s", topic)
		}
		if err != nil {
			return streamReloadedMsg{err: err}
		}
		snap, err := st.LoadStream(ctx, int64(id))
		return streamReloadedMsg{snap: snap, rebuild: true, status: status, err: err}
	}
}

func (m *Model) loadMessagesCmd(state narrow.State) tea.Cmd {
	st := m.store
	limit := m.cfg.MessageLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		msg := messagesLoadedMsg{state: state}
		if state.TopicName != "" {
			msg.messages, msg.err = st.Messages(ctx, state.StreamID, state.TopicName, limit)
		} else {
			msg.messages, msg.err = st.StreamMessages(ctx, state.StreamID, limit)
		}
		return msg
	}
}

func (m *Model) sendCmd(streamName, topic, content string) tea.Cmd {
	st := m.store
	sender := m.cfg.Sender
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		message, err := st.Send(ctx, streamName, topic, sender, content)
		return sentMsg{message: message, err: err}
	}
}

// copyLinkCmd puts a permalink on the system clipboard. Without a clipboard
// the link is shown in the footer instead.
func copyLinkCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return linkCopiedMsg{url: url, err: clipboard.WriteAll(url)}
	}
}
