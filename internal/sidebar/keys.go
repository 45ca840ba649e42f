package sidebar

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tOgg1/streambar/internal/narrow"
	"github.com/tOgg1/streambar/internal/topiclist"
)

// listTop is the screen row of the first sidebar item: one header line and
// the panel's top border.
const listTop = 2

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.compose != nil {
		return m.compose.update(m, msg)
	}
	if m.menu != nil {
		return m.menu.update(m, msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.items) - 1
		m.clampCursor()
	case "enter", "alt+enter":
		var mods topiclist.Modifiers
		if msg.Alt {
			// terminals report the meta key as alt
			mods |= topiclist.ModMeta
		}
		return m.activate(mods)
	case "esc":
		m.back()
	case "m":
		m.openMenu()
	case "r":
		return m.syncCmd(m.watermark)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.compose != nil || m.menu != nil {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	index, ok := m.itemAt(msg.X, msg.Y)
	if !ok {
		return nil
	}
	m.cursor = index

	var mods topiclist.Modifiers
	if msg.Ctrl {
		mods |= topiclist.ModCtrl
	}
	if msg.Alt {
		mods |= topiclist.ModMeta
	}
	if msg.Shift {
		mods |= topiclist.ModShift
	}
	return m.activate(mods)
}

// itemAt maps a screen cell to a sidebar item.
func (m *Model) itemAt(x, y int) (int, bool) {
	width := m.columns().Sidebar
	if width > 0 && x >= width {
		return 0, false
	}
	index := y - listTop + m.listOffset()
	if y < listTop || index < 0 || index >= len(m.items) {
		return 0, false
	}
	return index, true
}

// activate runs the action of the item under the cursor.
func (m *Model) activate(mods topiclist.Modifiers) tea.Cmd {
	it, ok := m.selected()
	if !ok {
		return nil
	}

	if it.kind == itemStream {
		snap, ok := m.data.snapshot(it.streamID)
		if !ok {
			return nil
		}
		m.nav.ActivateNarrow([]narrow.Term{
			{Operator: narrow.OperatorStream, Operand: snap.Subscription.Name},
		}, narrow.Options{Trigger: "sidebar"})
		return nil
	}

	switch it.row.Kind {
	case topiclist.RowTopic:
		handled := m.registry.HandleClick(topiclist.ClickEvent{
			StreamID:  it.streamID,
			TopicName: it.row.Topic,
			Modifiers: mods,
		})
		if !handled {
			// default behaviour of a modifier click: hand out the link
			m.setStatus("link: " + it.row.URL)
		}
		return nil
	case topiclist.RowMoreTopics:
		if m.registry.HandleClick(topiclist.ClickEvent{StreamID: it.streamID, IsAggregateRow: true, Modifiers: mods}) {
			return nil
		}
		if m.registry.Zoomed() {
			m.registry.ZoomOut()
			m.refreshItems()
			return nil
		}
		cmd := m.registry.ZoomIn()
		m.refreshItems()
		return cmd
	case topiclist.RowNewTopic:
		snap, ok := m.data.snapshot(it.streamID)
		if !ok {
			return nil
		}
		m.compose = newComposer(it.streamID, snap.Subscription.Name)
		return m.compose.init()
	}
	return nil
}

// back leaves zoom, then the narrow.
func (m *Model) back() {
	if m.registry.Zoomed() {
		m.registry.ZoomOut()
		m.refreshItems()
		return
	}
	if !m.nav.Current().IsEmpty() {
		m.nav.Reset()
	}
}

func (m *Model) selected() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

type itemID struct {
	kind     itemKind
	streamID topiclist.StreamID
	rowKind  topiclist.RowKind
	key      topiclist.TopicKey
}

func idOf(it item) itemID {
	id := itemID{kind: it.kind, streamID: it.streamID}
	if it.kind == itemTopic {
		id.rowKind = it.row.Kind
		id.key = it.row.Key
	}
	return id
}

// refreshItems recomputes the visible items and keeps the cursor on the
// same item when it survives.
func (m *Model) refreshItems() {
	var keep itemID
	hadSelection := false
	if it, ok := m.selected(); ok {
		keep = idOf(it)
		hadSelection = true
	}

	m.items = m.buildItems()

	if hadSelection {
		for i, it := range m.items {
			if idOf(it) == keep {
				m.cursor = i
				return
			}
		}
		// the row vanished: fall back to its stream
		for i, it := range m.items {
			if it.kind == itemStream && it.streamID == keep.streamID {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

func (m *Model) buildItems() []item {
	expanded, hasExpanded := m.registry.ActiveStreamID()
	zoomed := m.registry.Zoomed() && hasExpanded

	var items []item
	for _, id := range m.data.streamIDs() {
		if zoomed && id != expanded {
			continue
		}
		items = append(items, item{kind: itemStream, streamID: id})

		row := m.rows[id]
		if row == nil || row.list == nil {
			continue
		}
		for _, r := range row.list.Rows() {
			items = append(items, item{kind: itemTopic, streamID: id, row: r})
		}
	}
	return items
}

// listOffset is the index of the first item drawn, keeping the cursor on
// screen.
func (m *Model) listOffset() int {
	visible := m.listHeight()
	if visible <= 0 || m.cursor < visible {
		return 0
	}
	return m.cursor - visible + 1
}

func (m *Model) listHeight() int {
	// header, footer and the two panel borders
	return m.height - 4
}
