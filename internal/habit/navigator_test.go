package habit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"habbit/internal/models"
	"habbit/internal/session"
	"habbit/internal/utils"
)

func newTestNavigator(store *fakeStore, now time.Time) *Navigator {
	nav := NewNavigator(store, session.Static{ID: "owner-1"})
	nav.now = func() time.Time { return now }
	nav.selected = utils.StartOfDay(now)
	return nav
}

func TestVisibleWeekIsMondayBased(t *testing.T) {
	// 2026-08-26 is a Wednesday
	now := mustTime("2026-08-26T14:30:00Z")
	nav := newTestNavigator(newFakeStore(), now)

	week := nav.VisibleWeek()
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Weekday() != time.Monday {
		t.Errorf("week starts on %v, expected Monday", week[0].Weekday())
	}
	if utils.DayString(week[0]) != "2026-08-24" {
		t.Errorf("unexpected week start: %s", utils.DayString(week[0]))
	}
	for i := 1; i < 7; i++ {
		if !week[i].Equal(week[i-1].AddDate(0, 0, 1)) {
			t.Errorf("day %d is not consecutive", i)
		}
	}
}

func TestWeekNavigationPreservesWeekday(t *testing.T) {
	now := mustTime("2026-08-26T14:30:00Z")
	nav := newTestNavigator(newFakeStore(), now)
	ctx := context.Background()

	// Select Friday of the current week
	nav.SelectDay(mustTime("2026-08-28T00:00:00Z"))

	if err := nav.GoToPrevWeek(ctx); err != nil {
		t.Fatalf("GoToPrevWeek: %v", err)
	}
	if got := utils.DayString(nav.SelectedDate()); got != "2026-08-21" {
		t.Errorf("expected previous Friday 2026-08-21, got %s", got)
	}

	if err := nav.GoToNextWeek(ctx); err != nil {
		t.Fatalf("GoToNextWeek: %v", err)
	}
	if got := utils.DayString(nav.SelectedDate()); got != "2026-08-28" {
		t.Errorf("expected original Friday 2026-08-28, got %s", got)
	}
}

func TestSelectDayIdempotent(t *testing.T) {
	now := mustTime("2026-08-26T14:30:00Z")
	nav := newTestNavigator(newFakeStore(), now)

	day := mustTime("2026-08-27T09:00:00Z")
	nav.SelectDay(day)
	first := nav.SelectedDate()
	nav.SelectDay(day)
	second := nav.SelectedDate()

	if !first.Equal(second) {
		t.Errorf("repeated selection changed the date: %v vs %v", first, second)
	}
	if utils.DayString(first) != "2026-08-27" {
		t.Errorf("selection not normalized to start of day: %v", first)
	}
}

func TestGoToTodayResets(t *testing.T) {
	now := mustTime("2026-08-26T14:30:00Z")
	nav := newTestNavigator(newFakeStore(), now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := nav.GoToPrevWeek(ctx); err != nil {
			t.Fatalf("GoToPrevWeek: %v", err)
		}
	}
	if err := nav.GoToToday(ctx); err != nil {
		t.Fatalf("GoToToday: %v", err)
	}

	if got := utils.DayString(nav.SelectedDate()); got != "2026-08-26" {
		t.Errorf("expected today 2026-08-26, got %s", got)
	}
	if got := utils.DayString(nav.VisibleWeek()[0]); got != "2026-08-24" {
		t.Errorf("expected current week start 2026-08-24, got %s", got)
	}
}

func TestReloadCounts(t *testing.T) {
	store := newFakeStore()
	now := mustTime("2026-08-26T14:30:00Z")
	nav := newTestNavigator(store, now)
	ctx := context.Background()

	for _, entry := range []struct {
		day   string
		count int
	}{
		{"2026-08-24", 2},
		{"2026-08-26", 1},
	} {
		for i := 0; i < entry.count; i++ {
			c := models.HabitCompletion{
				ID:            uuid.NewString(),
				OwnerID:       "owner-1",
				TemplateID:    uuid.NewString(),
				CompletedDate: entry.day,
				CreatedAt:     now,
			}
			if err := store.CreateCompletion(ctx, c); err != nil {
				t.Fatalf("CreateCompletion: %v", err)
			}
		}
	}
	// Outside the visible week
	if err := store.CreateCompletion(ctx, models.HabitCompletion{
		ID: uuid.NewString(), OwnerID: "owner-1", TemplateID: uuid.NewString(),
		CompletedDate: "2026-08-17", CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateCompletion: %v", err)
	}

	if err := nav.ReloadCounts(ctx); err != nil {
		t.Fatalf("ReloadCounts: %v", err)
	}

	if got := nav.CompletionCount(mustTime("2026-08-24T00:00:00Z")); got != 2 {
		t.Errorf("Monday count = %d, want 2", got)
	}
	if got := nav.CompletionCount(mustTime("2026-08-26T00:00:00Z")); got != 1 {
		t.Errorf("Wednesday count = %d, want 1", got)
	}
	if got := nav.CompletionCount(mustTime("2026-08-25T00:00:00Z")); got != 0 {
		t.Errorf("Tuesday count = %d, want 0", got)
	}
}

func TestReloadCountsDegradesOnError(t *testing.T) {
	store := newFakeStore()
	now := mustTime("2026-08-26T14:30:00Z")
	nav := newTestNavigator(store, now)
	ctx := context.Background()

	if err := store.CreateCompletion(ctx, models.HabitCompletion{
		ID: uuid.NewString(), OwnerID: "owner-1", TemplateID: uuid.NewString(),
		CompletedDate: "2026-08-26", CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateCompletion: %v", err)
	}
	if err := nav.ReloadCounts(ctx); err != nil {
		t.Fatalf("ReloadCounts: %v", err)
	}

	store.mu.Lock()
	store.failGetCompletions = errStoreDown
	store.mu.Unlock()

	// Navigation must not fail; counts degrade to empty.
	if err := nav.ReloadCounts(ctx); err != nil {
		t.Fatalf("ReloadCounts with failing store: %v", err)
	}
	if got := nav.CompletionCount(mustTime("2026-08-26T00:00:00Z")); got != 0 {
		t.Errorf("expected empty counts after failed reload, got %d", got)
	}
}

func TestAdjustCountClampsAtZero(t *testing.T) {
	nav := newTestNavigator(newFakeStore(), mustTime("2026-08-26T14:30:00Z"))

	day := mustTime("2026-08-26T00:00:00Z")
	nav.AdjustCount(day, -1)
	if got := nav.CompletionCount(day); got != 0 {
		t.Errorf("count went negative: %d", got)
	}

	nav.AdjustCount(day, 1)
	nav.AdjustCount(day, 1)
	if got := nav.CompletionCount(day); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}
