package habit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"habbit/internal/models"
	"habbit/internal/storage"
)

// fakeStore is an in-memory storage.Provider with switchable failure
// modes for exercising rollback paths.
type fakeStore struct {
	mu          sync.Mutex
	templates   map[string]models.HabitTemplate
	completions map[string]models.HabitCompletion

	failCreateCompletion error
	failDeleteCompletion error
	failGetTemplates     error
	failGetCompletions   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		templates:   map[string]models.HabitTemplate{},
		completions: map[string]models.HabitCompletion{},
	}
}

func completionKey(ownerID, templateID, day string) string {
	return fmt.Sprintf("%s|%s|%s", ownerID, templateID, day)
}

func (f *fakeStore) Init() error  { return nil }
func (f *fakeStore) Load() error  { return nil }
func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) CreateTemplate(_ context.Context, tmpl models.HabitTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templates[tmpl.ID] = tmpl
	return nil
}

func (f *fakeStore) GetTemplate(_ context.Context, id, ownerID string) (models.HabitTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tmpl, ok := f.templates[id]
	if !ok || tmpl.OwnerID != ownerID {
		return models.HabitTemplate{}, storage.ErrNotFound
	}
	return tmpl, nil
}

func (f *fakeStore) GetTemplates(_ context.Context, ownerID string) ([]models.HabitTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGetTemplates != nil {
		return nil, f.failGetTemplates
	}
	var out []models.HabitTemplate
	for _, tmpl := range f.templates {
		if tmpl.OwnerID == ownerID {
			out = append(out, tmpl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsActive != out[j].IsActive {
			return out[i].IsActive
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeStore) GetActiveTemplates(_ context.Context, ownerID, day string) ([]models.HabitTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGetTemplates != nil {
		return nil, f.failGetTemplates
	}
	cutoff, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, err
	}
	cutoff = cutoff.AddDate(0, 0, 1)

	var out []models.HabitTemplate
	for _, tmpl := range f.templates {
		if tmpl.OwnerID != ownerID || !tmpl.IsActive {
			continue
		}
		if tmpl.ActivatedAt == nil || !tmpl.ActivatedAt.Before(cutoff) {
			continue
		}
		out = append(out, tmpl)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeStore) UpdateTemplate(_ context.Context, tmpl models.HabitTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.templates[tmpl.ID]
	if !ok || existing.OwnerID != tmpl.OwnerID {
		return storage.ErrNotFound
	}
	f.templates[tmpl.ID] = tmpl
	return nil
}

func (f *fakeStore) DeleteTemplate(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tmpl, ok := f.templates[id]
	if !ok || tmpl.OwnerID != ownerID {
		return storage.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

func (f *fakeStore) CreateCompletion(_ context.Context, c models.HabitCompletion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateCompletion != nil {
		return f.failCreateCompletion
	}
	key := completionKey(c.OwnerID, c.TemplateID, c.CompletedDate)
	if _, exists := f.completions[key]; exists {
		return nil
	}
	f.completions[key] = c
	return nil
}

func (f *fakeStore) DeleteCompletion(_ context.Context, ownerID, templateID, day string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDeleteCompletion != nil {
		return f.failDeleteCompletion
	}
	key := completionKey(ownerID, templateID, day)
	if _, exists := f.completions[key]; !exists {
		return storage.ErrNotFound
	}
	delete(f.completions, key)
	return nil
}

func (f *fakeStore) GetCompletionsForDay(_ context.Context, ownerID, day string) ([]models.HabitCompletion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGetCompletions != nil {
		return nil, f.failGetCompletions
	}
	var out []models.HabitCompletion
	for _, c := range f.completions {
		if c.OwnerID == ownerID && c.CompletedDate == day {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCompletionsInRange(_ context.Context, ownerID, startDay, endDay string) ([]models.HabitCompletion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGetCompletions != nil {
		return nil, f.failGetCompletions
	}
	var out []models.HabitCompletion
	for _, c := range f.completions {
		if c.OwnerID == ownerID && c.CompletedDate >= startDay && c.CompletedDate <= endDay {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteCompletionsForTemplate(_ context.Context, ownerID, templateID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, c := range f.completions {
		if c.OwnerID == ownerID && c.TemplateID == templateID {
			delete(f.completions, key)
		}
	}
	return nil
}

func (f *fakeStore) GetConfigPath() string { return "fake" }

func (f *fakeStore) completionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.completions)
}

var errStoreDown = errors.New("store down")

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
