package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habbit/internal/constants"
	"habbit/internal/habit"
	"habbit/internal/models"
	"habbit/internal/session"
	"habbit/internal/storage"
	"habbit/internal/tui/components/checklist"
	"habbit/internal/tui/components/templatelist"
	"habbit/internal/tui/components/week"
	"habbit/internal/utils"
)

type TemplateFormModel struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Active      bool
}

type Model struct {
	ctx       context.Context
	store     storage.Provider
	tracker   *habit.Tracker
	navigator *habit.Navigator
	registry  *habit.Registry
	bridge    *habit.Bridge

	state constants.SessionState
	keys  KeyMap
	help  help.Model

	weekModel      week.Model
	checklistModel checklist.Model
	templatesModel templatelist.Model

	form               *huh.Form
	templateForm       *TemplateFormModel
	editingTemplate    *models.HabitTemplate
	templateToDeleteID string
	formError          string
	statusError        string

	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, sess session.Provider) Model {
	ctx := context.Background()

	tracker := habit.NewTracker(store, sess)
	navigator := habit.NewNavigator(store, sess)
	registry := habit.NewRegistry(store, sess)
	bridge := habit.NewBridge(tracker, navigator)

	m := Model{
		ctx:       ctx,
		store:     store,
		tracker:   tracker,
		navigator: navigator,
		registry:  registry,
		bridge:    bridge,
		state:     constants.StateWeek,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}

	selected := navigator.SelectedDate()
	_ = navigator.ReloadCounts(ctx)
	if err := tracker.LoadData(ctx, selected); err != nil {
		m.statusError = err.Error()
	}
	if err := registry.Reload(ctx); err != nil && m.statusError == "" {
		m.statusError = err.Error()
	}

	m.weekModel = week.New(navigator.VisibleWeek(), selected, 0)
	m.weekModel.SetCounts(m.weekCounts())
	m.checklistModel = checklist.New(tracker.Items(), 0, 0)
	m.templatesModel = templatelist.New(registry.All(), 0, 0)

	return m
}

// weekCounts snapshots the navigator's per-day counts for the visible week.
func (m Model) weekCounts() map[string]int {
	counts := make(map[string]int)
	for _, day := range m.navigator.VisibleWeek() {
		counts[utils.DayString(day)] = m.navigator.CompletionCount(day)
	}
	return counts
}

// refreshWeek re-renders the week strip and the checklist after the selected
// day or its data changed.
func (m *Model) refreshWeek() {
	m.weekModel.SetWeek(m.navigator.VisibleWeek(), m.navigator.SelectedDate(), m.weekCounts())
	m.checklistModel.SetEntries(m.tracker.Items())
}

func (m *Model) refreshTemplates() {
	m.templatesModel.SetTemplates(m.registry.All())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateWeek:
		wk := m.weekModel.Keys()
		keys = append(keys, wk.PrevWeek, wk.NextWeek, wk.Today)
	case constants.StateTemplates:
		// the list advertises its own bindings
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	if m.state == constants.StateWeek {
		wk := m.weekModel.Keys()
		actions = []key.Binding{wk.Left, wk.Right, wk.PrevWeek, wk.NextWeek, wk.Today}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
