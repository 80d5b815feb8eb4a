package templatelist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"habbit/internal/models"
	"habbit/internal/utils"
)

type AddTemplateMsg struct{}

type EditTemplateMsg struct {
	ID string
}

type ToggleActiveMsg struct {
	ID string
}

type DeleteTemplateMsg struct {
	ID string
}

type Item struct {
	Template models.HabitTemplate
}

func (i Item) Title() string {
	title := i.Template.Name
	if i.Template.Icon != nil {
		title = *i.Template.Icon + " " + title
	}
	if !i.Template.IsActive {
		title = "[INACTIVE] " + title
	}
	return title
}

func (i Item) Description() string {
	if i.Template.Description != nil {
		return *i.Template.Description
	}
	if i.Template.ActivatedAt != nil {
		return "tracking since " + utils.DayString(*i.Template.ActivatedAt)
	}
	return "never activated"
}

func (i Item) FilterValue() string { return i.Template.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "activate/deactivate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(templates []models.HabitTemplate, width, height int) Model {
	l := list.New(toItems(templates), list.NewDefaultDelegate(), width, height)
	l.Title = "Templates"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Toggle, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetTemplates(templates []models.HabitTemplate) {
	m.list.SetItems(toItems(templates))
}

func toItems(templates []models.HabitTemplate) []list.Item {
	items := make([]list.Item, len(templates))
	for i, tmpl := range templates {
		items[i] = Item{Template: tmpl}
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
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTemplateMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Template.ID
				return m, func() tea.Msg { return EditTemplateMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Template.ID
				return m, func() tea.Msg { return ToggleActiveMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Template.ID
				return m, func() tea.Msg { return DeleteTemplateMsg{ID: id} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No templates yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
