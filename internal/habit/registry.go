package habit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"habbit/internal/models"
	"habbit/internal/session"
	"habbit/internal/storage"
	"habbit/internal/validation"
)

// Registry manages the owner's habit templates. The cached list is
// reloaded after every mutation so callers always see what storage
// holds. Active templates sort before inactive ones, alphabetically
// within each group; the store guarantees that ordering.
type Registry struct {
	store   storage.Provider
	session session.Provider
	now     func() time.Time

	mu        sync.Mutex
	templates []models.HabitTemplate
	lastErr   error
}

func NewRegistry(store storage.Provider, sess session.Provider) *Registry {
	return &Registry{
		store:   store,
		session: sess,
		now:     time.Now,
	}
}

// Reload refreshes the cached template list from storage.
func (r *Registry) Reload(ctx context.Context) error {
	ownerID, err := r.session.UserID()
	if err != nil {
		r.setErr(err)
		return err
	}

	templates, err := r.store.GetTemplates(ctx, ownerID)
	if err != nil {
		r.setErr(err)
		return err
	}

	r.mu.Lock()
	r.templates = templates
	r.lastErr = nil
	r.mu.Unlock()
	return nil
}

// All returns every template, active first then by name.
func (r *Registry) All() []models.HabitTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.HabitTemplate, len(r.templates))
	copy(out, r.templates)
	return out
}

// Active returns only the active templates, preserving order.
func (r *Registry) Active() []models.HabitTemplate {
	return r.filter(true)
}

// Inactive returns only the inactive templates, preserving order.
func (r *Registry) Inactive() []models.HabitTemplate {
	return r.filter(false)
}

func (r *Registry) filter(active bool) []models.HabitTemplate {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.HabitTemplate
	for _, tmpl := range r.templates {
		if tmpl.IsActive == active {
			out = append(out, tmpl)
		}
	}
	return out
}

// Get returns the cached template with the given id.
func (r *Registry) Get(id string) (models.HabitTemplate, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tmpl := range r.templates {
		if tmpl.ID == id {
			return tmpl, true
		}
	}
	return models.HabitTemplate{}, false
}

// Create validates and stores a new template. An active template gets
// its activation timestamp at creation.
func (r *Registry) Create(ctx context.Context, name string, description, icon, color *string, active bool) (models.HabitTemplate, error) {
	ownerID, err := r.session.UserID()
	if err != nil {
		r.setErr(err)
		return models.HabitTemplate{}, err
	}

	trimmed, err := validation.ValidateTemplateName(name)
	if err != nil {
		r.setErr(err)
		return models.HabitTemplate{}, err
	}

	now := r.now().UTC()
	tmpl := models.HabitTemplate{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        trimmed,
		Description: description,
		Icon:        icon,
		Color:       color,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if active {
		tmpl.ActivatedAt = &now
	}

	if err := validation.ValidateTemplate(tmpl); err != nil {
		r.setErr(err)
		return models.HabitTemplate{}, err
	}

	if err := r.store.CreateTemplate(ctx, tmpl); err != nil {
		r.setErr(err)
		return models.HabitTemplate{}, err
	}

	if err := r.Reload(ctx); err != nil {
		return models.HabitTemplate{}, err
	}
	return tmpl, nil
}

// Update validates and persists changes to a template. Activating a
// template that has never been active stamps its activation time; the
// stamp is set exactly once and later deactivations never clear it.
func (r *Registry) Update(ctx context.Context, tmpl models.HabitTemplate) error {
	ownerID, err := r.session.UserID()
	if err != nil {
		r.setErr(err)
		return err
	}
	tmpl.OwnerID = ownerID

	trimmed, err := validation.ValidateTemplateName(tmpl.Name)
	if err != nil {
		r.setErr(err)
		return err
	}
	tmpl.Name = trimmed

	if err := validation.ValidateTemplate(tmpl); err != nil {
		r.setErr(err)
		return err
	}

	now := r.now().UTC()
	if tmpl.IsActive && tmpl.ActivatedAt == nil {
		tmpl.ActivatedAt = &now
	}
	tmpl.UpdatedAt = now

	if err := r.store.UpdateTemplate(ctx, tmpl); err != nil {
		r.setErr(err)
		return err
	}

	return r.Reload(ctx)
}

// ToggleActive flips a template between active and inactive.
func (r *Registry) ToggleActive(ctx context.Context, id string) error {
	ownerID, err := r.session.UserID()
	if err != nil {
		r.setErr(err)
		return err
	}

	tmpl, err := r.store.GetTemplate(ctx, id, ownerID)
	if err != nil {
		r.setErr(err)
		return err
	}

	tmpl.IsActive = !tmpl.IsActive
	return r.Update(ctx, tmpl)
}

// Delete removes a template and every completion recorded against it.
// Completions go first so a failed delete never leaves orphaned rows
// pointing at a missing template.
func (r *Registry) Delete(ctx context.Context, id string) error {
	ownerID, err := r.session.UserID()
	if err != nil {
		r.setErr(err)
		return err
	}

	if err := r.store.DeleteCompletionsForTemplate(ctx, ownerID, id); err != nil {
		r.setErr(err)
		return err
	}
	if err := r.store.DeleteTemplate(ctx, id, ownerID); err != nil {
		r.setErr(err)
		return err
	}

	return r.Reload(ctx)
}

// LastError returns the most recent operation error, if any. Cleared
// by the next successful reload.
func (r *Registry) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *Registry) setErr(err error) {
	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()
}
