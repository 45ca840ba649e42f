package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tOgg1/streambar/internal/sidebar/styles"
	"github.com/tOgg1/streambar/internal/topiclist"
)

const footerHints = "j/k move · enter open · esc back · m menu · r refresh · q quit"

func (m *Model) View() string {
	header := m.renderHeader()
	footer := m.renderFooter()

	cols := m.columns()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	sidebar := m.renderSidebar(cols.Sidebar, bodyHeight)
	if cols.Messages <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, sidebar, footer)
	}
	messages := m.renderMessages(cols.Messages, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, strings.Repeat(" ", styles.LayoutGap), messages)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) columns() styles.ColumnWidths {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return styles.ComputeColumnWidths(width)
}

func (m *Model) renderHeader() string {
	title := "streambar"
	if current := m.nav.Current(); !current.IsEmpty() {
		title += "  #" + current.StreamName
		if current.TopicName != "" {
			title += " > " + current.TopicName
		}
	}
	if m.registry.Zoomed() {
		title += "  (all topics)"
		if w, ok := m.registry.ActiveWidget(); ok && w.NoMoreTopics() {
			title += " · no more topics"
		}
	}
	return m.theme.HeaderStyle().Render(title)
}

func (m *Model) renderFooter() string {
	if m.status == "" {
		return m.theme.FooterStyle().Render(footerHints)
	}
	if m.statusErr {
		return m.theme.ErrorStyle().Render(m.status)
	}
	return m.theme.FooterStyle().Render(m.status)
}

func (m *Model) renderSidebar(width, height int) string {
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	var lines []string
	if !m.synced {
		lines = append(lines, m.theme.NoticeStyle().Render("loading…"))
	} else if len(m.items) == 0 {
		lines = append(lines, m.theme.NoticeStyle().Render("no streams yet: streambar streams create <name>"))
	}

	offset := m.listOffset()
	visible := height - 2
	for i := offset; i < len(m.items) && len(lines) < visible; i++ {
		line := m.renderItem(m.items[i], inner)
		if i == m.cursor {
			line = m.theme.SelectedStyle().Render(m.plainItem(m.items[i], inner))
		}
		lines = append(lines, line)
	}

	if m.menu != nil {
		lines = append(lines, "", m.renderMenu())
	}
	if m.compose != nil {
		lines = append(lines, "", m.compose.view())
	}

	return styles.PanelStyle(m.theme, m.menu == nil && m.compose == nil).
		Width(inner).
		Height(height - 2).
		Render(strings.Join(lines, "\n"))
}

// plainItem renders an item without colors, for the selection bar.
func (m *Model) plainItem(it item, width int) string {
	label, badge := m.itemText(it)
	return layoutRow(label, badge, width)
}

func (m *Model) renderItem(it item, width int) string {
	label, badge := m.itemText(it)
	line := layoutRow(label, badge, width)

	var style lipgloss.Style
	switch {
	case it.kind == itemStream:
		style = m.theme.StreamStyle()
	case it.row.Kind == topiclist.RowMoreTopics:
		style = m.theme.MoreTopicsStyle()
		if m.registry.Zoomed() {
			style = m.theme.NoticeStyle()
		}
	case it.row.Kind == topiclist.RowNewTopic:
		style = m.theme.NewTopicStyle()
	case it.row.Muted:
		style = m.theme.MutedTopicStyle()
	case it.row.Active:
		style = m.theme.ActiveTopicStyle()
	default:
		style = m.theme.TopicStyle()
	}
	if badge != "" && it.kind == itemTopic && it.row.Kind == topiclist.RowTopic && !it.row.Muted {
		// colour the badge separately so it stands out
		labelPart := layoutRow(label, "", width-runewidth.StringWidth(badge)-1)
		return style.Render(labelPart+" ") + m.theme.UnreadStyle().Render(badge)
	}
	return style.Render(line)
}

// itemText returns the label and the unread badge of an item.
func (m *Model) itemText(it item) (string, string) {
	if it.kind == itemStream {
		snap, _ := m.data.snapshot(it.streamID)
		marker := "▸ "
		if row := m.rows[it.streamID]; row != nil && row.list != nil {
			marker = "▾ "
		}
		return marker + "#" + snap.Subscription.Name, badgeText(m.data.unreadTotal(it.streamID))
	}

	row := it.row
	switch row.Kind {
	case topiclist.RowMoreTopics:
		if !m.registry.Zoomed() {
			return "    more topics", row.Count.Value
		}
		w, ok := m.registry.Widget(it.streamID)
		switch {
		case ok && w.Searching():
			return "  " + m.spinner.View() + "searching for more topics", ""
		case ok && w.NoMoreTopics():
			return "    no more topics", ""
		default:
			return "    fewer topics", ""
		}
	case topiclist.RowNewTopic:
		return "    + new topic", ""
	default:
		return "    " + row.Topic, row.Count.Value
	}
}

func badgeText(count int) string {
	if count <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", count)
}

// layoutRow truncates label and right-aligns badge within width cells.
func layoutRow(label, badge string, width int) string {
	if width <= 0 {
		return ""
	}
	badgeWidth := runewidth.StringWidth(badge)
	room := width - badgeWidth
	if badge != "" {
		room--
	}
	if room < 1 {
		return runewidth.Truncate(label, width, "…")
	}
	label = runewidth.Truncate(label, room, "…")
	if badge == "" {
		return runewidth.FillRight(label, width)
	}
	return runewidth.FillRight(label, room) + " " + badge
}

func (m *Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(m.theme.HeaderStyle().Render(m.menu.topic))
	for i, action := range m.menu.actions {
		b.WriteString("\n")
		label := "  " + m.menu.label(action)
		if i == m.menu.selected {
			label = m.theme.SelectedStyle().Render("> " + m.menu.label(action))
		}
		b.WriteString(label)
	}
	return b.String()
}

func (m *Model) renderMessages(width, height int) string {
	inner := width - 2
	if inner < 1 {
		inner = 1
	}
	current := m.nav.Current()

	var lines []string
	switch {
	case current.IsEmpty():
		lines = append(lines, m.theme.MutedStyle().Render("select a stream or topic"))
	case len(m.messages) == 0:
		lines = append(lines, m.theme.MutedStyle().Render("no messages"))
	default:
		for _, msg := range m.messages {
			prefix := msg.Sender + ": "
			if current.TopicName == "" {
				prefix = "[" + msg.Topic + "] " + prefix
			}
			lines = append(lines, runewidth.Truncate(prefix+msg.Content, inner, "…"))
		}
	}

	visible := height - 2
	if visible > 0 && len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	return styles.PanelStyle(m.theme, false).
		Width(inner).
		Height(height - 2).
		Render(strings.Join(lines, "\n"))
}
