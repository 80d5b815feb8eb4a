package checklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"habbit/internal/habit"
)

type ToggleMsg struct {
	ID string
}

type Item struct {
	Entry habit.DayItem
}

func (i Item) Title() string {
	title := i.Entry.Template.Name
	if i.Entry.Template.Icon != nil {
		title = *i.Entry.Template.Icon + " " + title
	}
	if i.Entry.Completed {
		return "✓ " + title
	}
	return "○ " + title
}

func (i Item) Description() string {
	if i.Entry.Completed {
		return "completed"
	}
	if i.Entry.Template.Description != nil {
		return *i.Entry.Template.Description
	}
	return "not completed"
}

func (i Item) FilterValue() string { return i.Entry.Template.Name }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "m"),
			key.WithHelp("space", "toggle"),
		),
	}
}

// Model is the habit checklist for a single day.
type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []habit.DayItem, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetEntries(entries []habit.DayItem) {
	m.list.SetItems(toItems(entries))
}

func toItems(entries []habit.DayItem) []list.Item {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = Item{Entry: entry}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Entry.Template.ID
				return m, func() tea.Msg { return ToggleMsg{ID: id} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No active habits for this day.\n  Add templates on the Templates tab."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
