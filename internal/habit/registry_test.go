package habit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"habbit/internal/models"
	"habbit/internal/session"
)

func newTestRegistry(store *fakeStore) *Registry {
	return NewRegistry(store, session.Static{ID: "owner-1"})
}

func TestRegistryCreate(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	ctx := context.Background()

	tmpl, err := reg.Create(ctx, "  Meditate  ", nil, nil, nil, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tmpl.Name != "Meditate" {
		t.Errorf("name not trimmed: %q", tmpl.Name)
	}
	if tmpl.ActivatedAt == nil {
		t.Error("active template created without activation time")
	}
	if len(reg.All()) != 1 {
		t.Error("registry not reloaded after create")
	}

	if _, err := reg.Create(ctx, "   ", nil, nil, nil, true); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestRegistryCreateInactive(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)

	tmpl, err := reg.Create(context.Background(), "Later", nil, nil, nil, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tmpl.ActivatedAt != nil {
		t.Error("inactive template should not have an activation time")
	}
}

func TestActivationTimeSetOnce(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	ctx := context.Background()

	reg.now = func() time.Time { return mustTime("2026-08-20T10:00:00Z") }
	tmpl, err := reg.Create(ctx, "Stretch", nil, nil, nil, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// First activation stamps the time.
	reg.now = func() time.Time { return mustTime("2026-08-21T10:00:00Z") }
	if err := reg.ToggleActive(ctx, tmpl.ID); err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	got, ok := reg.Get(tmpl.ID)
	if !ok {
		t.Fatal("template missing after toggle")
	}
	if got.ActivatedAt == nil || !got.ActivatedAt.Equal(mustTime("2026-08-21T10:00:00Z")) {
		t.Fatalf("unexpected activation time: %v", got.ActivatedAt)
	}

	// Deactivate and reactivate later: the stamp must not move.
	reg.now = func() time.Time { return mustTime("2026-08-25T10:00:00Z") }
	if err := reg.ToggleActive(ctx, tmpl.ID); err != nil {
		t.Fatalf("ToggleActive off: %v", err)
	}
	if err := reg.ToggleActive(ctx, tmpl.ID); err != nil {
		t.Fatalf("ToggleActive on: %v", err)
	}

	got, _ = reg.Get(tmpl.ID)
	if got.ActivatedAt == nil || !got.ActivatedAt.Equal(mustTime("2026-08-21T10:00:00Z")) {
		t.Errorf("activation time moved on reactivation: %v", got.ActivatedAt)
	}
}

func TestRegistryOrdering(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	ctx := context.Background()

	for _, tc := range []struct {
		name   string
		active bool
	}{
		{"Zumba", true},
		{"Walk", false},
		{"Drink water", true},
	} {
		if _, err := reg.Create(ctx, tc.name, nil, nil, nil, tc.active); err != nil {
			t.Fatalf("Create %s: %v", tc.name, err)
		}
	}

	all := reg.All()
	want := []string{"Drink water", "Zumba", "Walk"}
	if len(all) != len(want) {
		t.Fatalf("expected %d templates, got %d", len(want), len(all))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, all[i].Name, name)
		}
	}

	if active := reg.Active(); len(active) != 2 {
		t.Errorf("Active() = %d templates, want 2", len(active))
	}
	if inactive := reg.Inactive(); len(inactive) != 1 || inactive[0].Name != "Walk" {
		t.Errorf("unexpected Inactive(): %+v", inactive)
	}
}

func TestRegistryDeleteCascades(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	ctx := context.Background()

	tmpl, err := reg.Create(ctx, "Run", nil, nil, nil, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	keep, err := reg.Create(ctx, "Swim", nil, nil, nil, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, entry := range []struct {
		templateID string
		day        string
	}{
		{tmpl.ID, "2026-08-20"},
		{tmpl.ID, "2026-08-21"},
		{keep.ID, "2026-08-21"},
	} {
		if err := store.CreateCompletion(ctx, models.HabitCompletion{
			ID: uuid.NewString(), OwnerID: "owner-1", TemplateID: entry.templateID,
			CompletedDate: entry.day, CreatedAt: time.Now(),
		}); err != nil {
			t.Fatalf("CreateCompletion: %v", err)
		}
	}

	if err := reg.Delete(ctx, tmpl.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := reg.Get(tmpl.ID); ok {
		t.Error("deleted template still cached")
	}
	if store.completionCount() != 1 {
		t.Errorf("expected only the kept template's completion, got %d rows", store.completionCount())
	}
}

func TestRegistryLastError(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	ctx := context.Background()

	if _, err := reg.Create(ctx, "Nap", nil, nil, nil, true); err != nil {
		t.Fatalf("Create: %v", err)
	}

	store.mu.Lock()
	store.failGetTemplates = errStoreDown
	store.mu.Unlock()

	if err := reg.Reload(ctx); err == nil {
		t.Fatal("expected reload to fail")
	}
	if reg.LastError() == nil {
		t.Error("LastError not set after failed reload")
	}

	store.mu.Lock()
	store.failGetTemplates = nil
	store.mu.Unlock()

	if err := reg.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reg.LastError() != nil {
		t.Errorf("LastError not cleared after successful reload: %v", reg.LastError())
	}
}

func TestRegistryRequiresSession(t *testing.T) {
	reg := NewRegistry(newFakeStore(), session.Static{})

	if _, err := reg.Create(context.Background(), "Read", nil, nil, nil, true); err != session.ErrNoSession {
		t.Errorf("Create: expected ErrNoSession, got %v", err)
	}

	tmpl := models.HabitTemplate{ID: uuid.NewString(), Name: "Read", IsActive: true}
	if err := reg.Update(context.Background(), tmpl); err != session.ErrNoSession {
		t.Errorf("Update: expected ErrNoSession, got %v", err)
	}
}

func TestUpdateStampsOwnerFromSession(t *testing.T) {
	store := newFakeStore()
	reg := NewRegistry(store, session.Static{ID: "owner-1"})
	ctx := context.Background()

	created, err := reg.Create(ctx, "Stretch", nil, nil, nil, true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	changed := created
	changed.Name = "Morning stretch"
	changed.OwnerID = "intruder"
	if err := reg.Update(ctx, changed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetTemplate(ctx, created.ID, "owner-1")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.OwnerID != "owner-1" {
		t.Errorf("owner = %q, want session owner", got.OwnerID)
	}
	if got.Name != "Morning stretch" {
		t.Errorf("name = %q, want %q", got.Name, "Morning stretch")
	}
}
