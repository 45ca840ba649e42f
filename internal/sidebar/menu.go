package sidebar

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/streambar/internal/topiclist"
)

type menuAction int

const (
	menuToggleMute menuAction = iota
	menuMarkRead
	menuCopyLink
)

// topicMenu is the popover of actions for one topic row.
type topicMenu struct {
	streamID topiclist.StreamID
	topic    string
	muted    bool
	url      string
	selected int
	actions  []menuAction
}

func (m *Model) openMenu() {
	it, ok := m.selected()
	if !ok || !it.isTopicRow() {
		return
	}
	m.menu = &topicMenu{
		streamID: it.streamID,
		topic:    it.row.Topic,
		muted:    it.row.Muted,
		url:      it.row.URL,
		actions:  []menuAction{menuToggleMute, menuMarkRead, menuCopyLink},
	}
}

func (t *topicMenu) label(action menuAction) string {
	switch action {
	case menuToggleMute:
		if t.muted {
			return "Unmute topic"
		}
		return "Mute topic"
	case menuMarkRead:
		return "Mark as read"
	default:
		return "Copy link"
	}
}

func (t *topicMenu) update(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "m", "q":
		m.HideTopicPopover()
	case "up", "k":
		if t.selected > 0 {
			t.selected--
		}
	case "down", "j":
		if t.selected < len(t.actions)-1 {
			t.selected++
		}
	case "enter":
		m.HideTopicPopover()
		switch t.actions[t.selected] {
		case menuToggleMute:
			return m.muteCmd(t.streamID, t.topic, !t.muted)
		case menuMarkRead:
			return m.markReadCmd(t.streamID, t.topic)
		case menuCopyLink:
			return copyLinkCmd(t.url)
		}
	}
	return nil
}
