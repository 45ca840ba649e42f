package styles

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name:        "high-contrast",
	BorderStyle: "sharp",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
	},
	Sidebar: SidebarColors{
		Stream:      "117",
		Topic:       "231",
		ActiveTopic: "51",
		MutedTopic:  "248",
		Unread:      "226",
		MoreTopics:  "225",
		NewTopic:    "159",
		Notice:      "250",
	},
	Chrome: ChromeColors{
		Header:       "117",
		Footer:       "159",
		SelectedItem: "51",
		Error:        "196",
	},
	Borders: BorderColors{
		ActivePane:   "231",
		InactivePane: "250",
		Divider:      "248",
	},
}
