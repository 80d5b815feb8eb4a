package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habbit/internal/constants"
	"habbit/internal/tui/components/checklist"
	"habbit/internal/tui/components/templatelist"
	"habbit/internal/tui/components/week"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateEditTemplate {
		return m.updateTemplateForm(msg)
	}
	if m.state == constants.StateConfirmDelete {
		return m.updateConfirmDelete(msg)
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.checklistModel.SetSize(msg.Width-h, msg.Height-v-8)
		m.templatesModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.weekModel.SetWidth(msg.Width - h)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == constants.StateWeek {
				m.state = constants.StateTemplates
				if err := m.registry.Reload(m.ctx); err == nil {
					m.refreshTemplates()
				}
			} else {
				m.state = constants.StateWeek
				m.reloadSelectedDay()
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case week.SelectDayMsg:
		m.navigator.SelectDay(msg.Day)
		m.reloadSelectedDay()
		return m, nil

	case week.PrevWeekMsg:
		if err := m.navigator.GoToPrevWeek(m.ctx); err != nil {
			m.statusError = err.Error()
			return m, nil
		}
		m.reloadSelectedDay()
		return m, nil

	case week.NextWeekMsg:
		if err := m.navigator.GoToNextWeek(m.ctx); err != nil {
			m.statusError = err.Error()
			return m, nil
		}
		m.reloadSelectedDay()
		return m, nil

	case week.TodayMsg:
		if err := m.navigator.GoToToday(m.ctx); err != nil {
			m.statusError = err.Error()
			return m, nil
		}
		m.reloadSelectedDay()
		return m, nil

	case checklist.ToggleMsg:
		if _, err := m.tracker.Toggle(m.ctx, msg.ID); err != nil {
			m.statusError = err.Error()
		} else {
			m.statusError = ""
		}
		m.refreshWeek()
		return m, nil

	case templatelist.AddTemplateMsg:
		m.templateForm = &TemplateFormModel{Active: true}
		m.editingTemplate = nil
		m.form = NewTemplateForm(m.templateForm)
		m.state = constants.StateEditTemplate
		return m, m.form.Init()

	case templatelist.EditTemplateMsg:
		tmpl, ok := m.registry.Get(msg.ID)
		if !ok {
			return m, nil
		}
		fm := &TemplateFormModel{
			Name:   tmpl.Name,
			Active: tmpl.IsActive,
		}
		if tmpl.Description != nil {
			fm.Description = *tmpl.Description
		}
		if tmpl.Icon != nil {
			fm.Icon = *tmpl.Icon
		}
		if tmpl.Color != nil {
			fm.Color = *tmpl.Color
		}
		m.templateForm = fm
		m.editingTemplate = &tmpl
		m.form = NewTemplateForm(m.templateForm)
		m.state = constants.StateEditTemplate
		return m, m.form.Init()

	case templatelist.ToggleActiveMsg:
		if err := m.registry.ToggleActive(m.ctx, msg.ID); err != nil {
			m.statusError = err.Error()
		} else {
			m.statusError = ""
		}
		m.refreshTemplates()
		return m, nil

	case templatelist.DeleteTemplateMsg:
		m.templateToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
		cmds = append(cmds, cmd)
		m.checklistModel, cmd = m.checklistModel.Update(msg)
		cmds = append(cmds, cmd)
	case constants.StateTemplates:
		m.templatesModel, cmd = m.templatesModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reloadSelectedDay pulls tracker data for the navigator's selection and
// refreshes the week tab.
func (m *Model) reloadSelectedDay() {
	if err := m.tracker.LoadData(m.ctx, m.navigator.SelectedDate()); err != nil {
		m.statusError = err.Error()
	} else {
		m.statusError = ""
	}
	m.refreshWeek()
}

func (m Model) updateTemplateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateTemplates
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveTemplateForm(); err != nil {
			// Stay in the form so the user can retry or cancel with ESC
			m.formError = fmt.Sprintf("Failed to save template: %v", err)
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.formError = ""
		m.refreshTemplates()
		m.state = constants.StateTemplates
	case huh.StateAborted:
		m.state = constants.StateTemplates
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) saveTemplateForm() error {
	fm := m.templateForm

	if m.editingTemplate == nil {
		_, err := m.registry.Create(m.ctx, fm.Name, optional(fm.Description), optional(fm.Icon), optional(fm.Color), fm.Active)
		return err
	}

	tmpl := *m.editingTemplate
	tmpl.Name = fm.Name
	tmpl.Description = optional(fm.Description)
	tmpl.Icon = optional(fm.Icon)
	tmpl.Color = optional(fm.Color)
	tmpl.IsActive = fm.Active
	return m.registry.Update(m.ctx, tmpl)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if err := m.registry.Delete(m.ctx, m.templateToDeleteID); err != nil {
				m.statusError = err.Error()
			} else {
				m.statusError = ""
			}
			m.templateToDeleteID = ""
			m.refreshTemplates()
			m.reloadSelectedDay()
			m.state = constants.StateTemplates
		case "n", "N", "esc":
			m.templateToDeleteID = ""
			m.state = constants.StateTemplates
		}
	}
	return m, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
