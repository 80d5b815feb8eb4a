package cli

import (
	"context"
	"fmt"
	"strings"

	"habbit/internal/habit"
	"habbit/internal/models"
	"habbit/internal/session"
	"habbit/internal/storage"
)

type Context struct {
	Context context.Context
	Store   storage.Provider
	Session session.Provider
}

// Registry builds a template registry bound to the current store and session.
func (c *Context) Registry() *habit.Registry {
	return habit.NewRegistry(c.Store, c.Session)
}

// Tracker builds a day tracker bound to the current store and session.
func (c *Context) Tracker() *habit.Tracker {
	return habit.NewTracker(c.Store, c.Session)
}

// Navigator builds a week navigator bound to the current store and session.
func (c *Context) Navigator() *habit.Navigator {
	return habit.NewNavigator(c.Store, c.Session)
}

// FindTemplate resolves a template by name, case-insensitively.
func FindTemplate(templates []models.HabitTemplate, name string) (models.HabitTemplate, error) {
	for _, tmpl := range templates {
		if strings.EqualFold(tmpl.Name, name) {
			return tmpl, nil
		}
	}
	return models.HabitTemplate{}, fmt.Errorf("template %q not found", name)
}

// Checkbox renders a completion marker for checklist output.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
