package styles

import "github.com/charmbracelet/lipgloss"

const (
	// LayoutGap is the default space between columns.
	LayoutGap = 1

	// LayoutInnerPadding is the default panel content padding.
	LayoutInnerPadding = 0
)

const (
	minSidebarWidth  = 22
	maxSidebarWidth  = 40
	minMessagesWidth = 30
)

// ColumnWidths are the widths of the sidebar and messages panes.
type ColumnWidths struct {
	Sidebar  int
	Messages int
}

// ComputeColumnWidths splits the terminal between the sidebar and the
// messages pane. Narrow terminals drop the messages pane.
func ComputeColumnWidths(totalWidth int) ColumnWidths {
	if totalWidth <= 0 {
		return ColumnWidths{}
	}

	sidebar := clampInt(totalWidth/3, minSidebarWidth, maxSidebarWidth)
	messages := totalWidth - sidebar - LayoutGap
	if messages < minMessagesWidth {
		return ColumnWidths{Sidebar: totalWidth}
	}
	return ColumnWidths{Sidebar: sidebar, Messages: messages}
}

// PanelStyle returns a focused/unfocused border style for panes.
func PanelStyle(theme Theme, focused bool) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(panelBorderStyle(theme)).
		BorderForeground(lipgloss.Color(panelBorderColor(theme, focused))).
		Padding(LayoutInnerPadding)
}

// DividerStyle returns the divider style between sections.
func DividerStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Borders.Divider))
}

func panelBorderColor(theme Theme, focused bool) string {
	if focused {
		return theme.Borders.ActivePane
	}
	return theme.Borders.InactivePane
}

func panelBorderStyle(theme Theme) lipgloss.Border {
	switch theme.BorderStyle {
	case "double":
		return lipgloss.DoubleBorder()
	case "sharp":
		return lipgloss.NormalBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
