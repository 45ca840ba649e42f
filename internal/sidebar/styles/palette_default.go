package styles

// DefaultTheme is the baseline dark palette.
var DefaultTheme = Theme{
	Name:        "default",
	BorderStyle: "rounded",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "75",
		Border:     "240",
	},
	Sidebar: SidebarColors{
		Stream:      "111",
		Topic:       "252",
		ActiveTopic: "81",
		MutedTopic:  "243",
		Unread:      "214",
		MoreTopics:  "147",
		NewTopic:    "109",
		Notice:      "245",
	},
	Chrome: ChromeColors{
		Header:       "111",
		Footer:       "110",
		SelectedItem: "75",
		Error:        "203",
	},
	Borders: BorderColors{
		ActivePane:   "75",
		InactivePane: "240",
		Divider:      "238",
	},
}
