package week

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habbit/internal/utils"
)

type PrevWeekMsg struct{}

type NextWeekMsg struct{}

type TodayMsg struct{}

type SelectDayMsg struct {
	Day time.Time
}

type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Today    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next week"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

// Model renders a seven-day strip with per-day completion counts.
type Model struct {
	days     []time.Time
	counts   map[string]int
	selected time.Time
	keys     KeyMap
	width    int
}

func New(days []time.Time, selected time.Time, width int) Model {
	return Model{
		days:     days,
		counts:   make(map[string]int),
		selected: utils.StartOfDay(selected),
		keys:     DefaultKeyMap(),
		width:    width,
	}
}

// SetWeek replaces the visible days and their counts.
func (m *Model) SetWeek(days []time.Time, selected time.Time, counts map[string]int) {
	m.days = days
	m.selected = utils.StartOfDay(selected)
	if counts == nil {
		counts = make(map[string]int)
	}
	m.counts = counts
}

func (m *Model) SetCounts(counts map[string]int) {
	if counts == nil {
		counts = make(map[string]int)
	}
	m.counts = counts
}

func (m Model) Selected() time.Time {
	return m.selected
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			if day, ok := m.adjacentDay(-1); ok {
				return m, func() tea.Msg { return SelectDayMsg{Day: day} }
			}
		case key.Matches(msg, m.keys.Right):
			if day, ok := m.adjacentDay(1); ok {
				return m, func() tea.Msg { return SelectDayMsg{Day: day} }
			}
		case key.Matches(msg, m.keys.PrevWeek):
			return m, func() tea.Msg { return PrevWeekMsg{} }
		case key.Matches(msg, m.keys.NextWeek):
			return m, func() tea.Msg { return NextWeekMsg{} }
		case key.Matches(msg, m.keys.Today):
			return m, func() tea.Msg { return TodayMsg{} }
		}
	}
	return m, nil
}

// adjacentDay finds the day next to the selection inside the visible week.
func (m Model) adjacentDay(delta int) (time.Time, bool) {
	for i, day := range m.days {
		if utils.SameDay(day, m.selected) {
			j := i + delta
			if j < 0 || j >= len(m.days) {
				return time.Time{}, false
			}
			return m.days[j], true
		}
	}
	return time.Time{}, false
}

var (
	selectedDayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Bold(true)

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(0, 1)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)
)

func (m Model) View() string {
	if len(m.days) == 0 {
		return ""
	}

	today := utils.StartOfDay(time.Now())
	cells := make([]string, 0, len(m.days))
	for _, day := range m.days {
		label := fmt.Sprintf("%s %d\n%d done", day.Format("Mon"), day.Day(), m.counts[utils.DayString(day)])
		style := dayStyle
		if utils.SameDay(day, m.selected) {
			style = selectedDayStyle
		} else if utils.SameDay(day, today) {
			style = todayStyle
		}
		cells = append(cells, style.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *Model) SetWidth(width int) {
	m.width = width
}
