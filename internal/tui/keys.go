package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	users    key.Binding
	groups   key.Binding
	projects key.Binding
	refresh  key.Binding
	remove   key.Binding
	reset    key.Binding
	toggle   key.Binding
	confirm  key.Binding
	cancel   key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		users: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "users"),
		),
		groups: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "groups"),
		),
		projects: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "projects"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		reset: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "reset password"),
		),
		toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle setting"),
		),
		confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.users, k.groups, k.projects, k.remove, k.reset, k.toggle, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.users, k.groups, k.projects, k.refresh},
		{k.remove, k.reset, k.toggle},
		{k.confirm, k.cancel},
		{k.help, k.quit},
	}
}
