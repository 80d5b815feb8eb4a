package tui

import (
	"github.com/charmbracelet/lipgloss"

	"habbit/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateWeek:
		content = m.viewWeek()
	case constants.StateTemplates:
		content = docStyle.Render(m.templatesModel.View())
	case constants.StateEditTemplate:
		content = m.viewTemplateForm()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.statusError != "" {
		status = errorStyle.Render("⚠ " + m.statusError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Week", "Templates"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewWeek() string {
	header := dayHeaderStyle.Render(m.navigator.SelectedDate().Format(constants.DayLabelFormat))
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.weekModel.View(),
		"",
		header,
		m.checklistModel.View(),
	))
}

func (m Model) viewTemplateForm() string {
	if m.formError != "" {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			dangerStyle.Render(m.formError),
			m.form.View(),
		)
	}
	return m.form.View()
}

func (m Model) viewConfirmDelete() string {
	name := m.templateToDeleteID
	if tmpl, ok := m.registry.Get(m.templateToDeleteID); ok {
		name = tmpl.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete template \""+name+"\" and all of its completion history?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
