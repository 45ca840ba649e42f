// Package styles holds the sidebar's color themes and layout helpers.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// BaseColors defines global UI colors.
type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Border     string
}

// SidebarColors defines colors for stream and topic rows.
type SidebarColors struct {
	Stream      string
	Topic       string
	ActiveTopic string
	MutedTopic  string
	Unread      string
	MoreTopics  string
	NewTopic    string
	Notice      string
}

// ChromeColors defines non-content UI colors.
type ChromeColors struct {
	Header       string
	Footer       string
	SelectedItem string
	Error        string
}

// BorderColors defines border colors for pane state.
type BorderColors struct {
	ActivePane   string
	InactivePane string
	Divider      string
}

// Theme defines the sidebar style tokens.
type Theme struct {
	Name        string
	BorderStyle string // "rounded", "sharp", "double", "hidden"

	Base    BaseColors
	Sidebar SidebarColors
	Chrome  ChromeColors
	Borders BorderColors
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// Lookup returns the named theme, falling back to DefaultTheme.
func Lookup(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}

// Names lists the theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (t Theme) StreamStyle() lipgloss.Style { return fg(t.Sidebar.Stream).Bold(true) }

func (t Theme) TopicStyle() lipgloss.Style { return fg(t.Sidebar.Topic) }

func (t Theme) ActiveTopicStyle() lipgloss.Style { return fg(t.Sidebar.ActiveTopic).Bold(true) }

func (t Theme) MutedTopicStyle() lipgloss.Style { return fg(t.Sidebar.MutedTopic).Faint(true) }

func (t Theme) UnreadStyle() lipgloss.Style { return fg(t.Sidebar.Unread).Bold(true) }

func (t Theme) MoreTopicsStyle() lipgloss.Style { return fg(t.Sidebar.MoreTopics).Italic(true) }

func (t Theme) NewTopicStyle() lipgloss.Style { return fg(t.Sidebar.NewTopic) }

func (t Theme) NoticeStyle() lipgloss.Style { return fg(t.Sidebar.Notice).Italic(true) }

func (t Theme) MutedStyle() lipgloss.Style { return fg(t.Base.Muted) }

func (t Theme) HeaderStyle() lipgloss.Style { return fg(t.Chrome.Header).Bold(true) }

func (t Theme) FooterStyle() lipgloss.Style { return fg(t.Chrome.Footer) }

func (t Theme) ErrorStyle() lipgloss.Style { return fg(t.Chrome.Error).Bold(true) }

// SelectedStyle highlights the row under the cursor.
func (t Theme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Base.Background)).
		Background(lipgloss.Color(t.Chrome.SelectedItem))
}
