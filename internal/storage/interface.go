package storage

import (
	"context"
	"errors"

	"habbit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist or
// belongs to a different owner.
var ErrNotFound = errors.New("record not found")

// Provider persists habit templates and daily completions. All data is
// scoped by owner id; implementations must never return rows belonging
// to a different owner.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Templates
	CreateTemplate(ctx context.Context, tmpl models.HabitTemplate) error
	GetTemplate(ctx context.Context, id, ownerID string) (models.HabitTemplate, error)
	// GetTemplates returns all templates for the owner ordered with active
	// templates first, then alphabetically by name.
	GetTemplates(ctx context.Context, ownerID string) ([]models.HabitTemplate, error)
	// GetActiveTemplates returns the owner's active templates whose
	// activation date is on or before the given day (YYYY-MM-DD),
	// ordered by name. Templates activated later never leak into
	// earlier days.
	GetActiveTemplates(ctx context.Context, ownerID, day string) ([]models.HabitTemplate, error)
	UpdateTemplate(ctx context.Context, tmpl models.HabitTemplate) error
	DeleteTemplate(ctx context.Context, id, ownerID string) error

	// Completions
	CreateCompletion(ctx context.Context, c models.HabitCompletion) error
	DeleteCompletion(ctx context.Context, ownerID, templateID, day string) error
	GetCompletionsForDay(ctx context.Context, ownerID, day string) ([]models.HabitCompletion, error)
	GetCompletionsInRange(ctx context.Context, ownerID, startDay, endDay string) ([]models.HabitCompletion, error)
	// DeleteCompletionsForTemplate removes every completion of a template.
	// Callers delete completions before the template itself.
	DeleteCompletionsForTemplate(ctx context.Context, ownerID, templateID string) error

	// Utils
	GetConfigPath() string
}
