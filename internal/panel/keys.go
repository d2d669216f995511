package panel

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	StartStop key.Binding
	Skip      key.Binding
	Reset     key.Binding
	TagLeft   key.Binding
	TagRight  key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	Today     key.Binding
	Edit      key.Binding
	Save      key.Binding
	Cancel    key.Binding
	DayView   key.Binding
	WeekView  key.Binding
	YearView  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	StartStop: key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start/pause")),
	Skip:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	TagLeft:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tag")),
	TagRight:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tag")),
	PrevDay:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "earlier")),
	NextDay:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "later")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit notes")),
	Save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	DayView:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
	WeekView:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
	YearView:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpKeys narrows the bindings shown in the footer to the active tab.
type helpKeys struct {
	tab     tab
	editing bool
}

func (h helpKeys) ShortHelp() []key.Binding {
	if h.editing {
		return []key.Binding{keys.Save, keys.Cancel}
	}
	switch h.tab {
	case tabLogs:
		return []key.Binding{keys.Edit, keys.PrevDay, keys.NextDay, keys.NextTab, keys.Help, keys.Quit}
	case tabStats:
		return []key.Binding{keys.DayView, keys.WeekView, keys.YearView, keys.NextTab, keys.Help, keys.Quit}
	default:
		return []key.Binding{keys.StartStop, keys.Skip, keys.TagLeft, keys.TagRight, keys.NextTab, keys.Help, keys.Quit}
	}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.StartStop, keys.Skip, keys.Reset, keys.TagLeft, keys.TagRight},
		{keys.Edit, keys.Save, keys.Cancel, keys.PrevDay, keys.NextDay, keys.Today},
		{keys.DayView, keys.WeekView, keys.YearView},
		{keys.NextTab, keys.PrevTab, keys.Help, keys.Quit},
	}
}
