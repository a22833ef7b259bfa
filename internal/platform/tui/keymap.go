package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/kubb-counter/internal/session"
)

// KeyMap defines the key bindings of the counter screens.
// Some keys are shared between screens: left/right pick values on the setup
// screen and record throws while a session is active.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Start    key.Binding
	Hit      key.Binding
	Miss     key.Binding
	Submit   key.Binding
	Abandon  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev option"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next option"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left", "prev value"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right", "next value"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Hit: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "hit"),
		),
		Miss: key.NewBinding(
			key.WithKeys("m", "right"),
			key.WithHelp("m/right", "miss"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Abandon: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "new session"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// bindings adapts a fixed list of bindings to help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding {
	return b
}

func (b bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{b}
}

// helpFor returns the bindings that apply on the given screen.
func (k KeyMap) helpFor(s session.Screen) bindings {
	switch s := s.(type) {
	case session.Setup:
		return bindings{k.Up, k.Down, k.Prev, k.Next, k.Start, k.Quit}
	case session.Active:
		return bindings{k.Hit, k.Miss, k.Abandon, k.Quit}
	case session.Celebration:
		return bindings{k.Quit}
	case session.Results:
		if s.Submitting || s.Submitted {
			return bindings{k.Quit}
		}
		return bindings{k.Submit, k.Abandon, k.Quit}
	}
	return bindings{k.Quit}
}
