// Package habit holds the date-indexed habit state engine: week
// navigation, per-day completion tracking, and template management.
package habit

import (
	"context"
	"sync"
	"time"

	"habbit/internal/logger"
	"habbit/internal/session"
	"habbit/internal/storage"
	"habbit/internal/utils"
)

// Navigator tracks which week is visible and which day is selected.
// The visible week is always derived from the wall clock and a week
// offset, so a client left open across midnight never shows a stale
// week.
type Navigator struct {
	mu       sync.Mutex
	store    storage.Provider
	session  session.Provider
	now      func() time.Time
	offset   int
	selected time.Time
	counts   map[string]int
	loadGen  uint64
}

func NewNavigator(store storage.Provider, sess session.Provider) *Navigator {
	n := &Navigator{
		store:   store,
		session: sess,
		now:     time.Now,
		counts:  map[string]int{},
	}
	n.selected = utils.StartOfDay(n.now())
	return n
}

// VisibleWeek returns the seven days of the visible week, Monday first.
func (n *Navigator) VisibleWeek() []time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return utils.WeekDays(n.now(), n.offset)
}

func (n *Navigator) SelectedDate() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selected
}

// SelectDay moves the selection to the given day. Selecting the
// already-selected day is a no-op.
func (n *Navigator) SelectDay(day time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = utils.StartOfDay(day)
}

// GoToPrevWeek shifts the visible week back, keeping the selected
// weekday position, and reloads completion counts.
func (n *Navigator) GoToPrevWeek(ctx context.Context) error {
	n.shiftWeek(-1)
	return n.ReloadCounts(ctx)
}

// GoToNextWeek shifts the visible week forward, keeping the selected
// weekday position, and reloads completion counts.
func (n *Navigator) GoToNextWeek(ctx context.Context) error {
	n.shiftWeek(1)
	return n.ReloadCounts(ctx)
}

// GoToToday resets the navigator to the current week and selects today.
func (n *Navigator) GoToToday(ctx context.Context) error {
	n.mu.Lock()
	n.offset = 0
	n.selected = utils.StartOfDay(n.now())
	n.mu.Unlock()
	return n.ReloadCounts(ctx)
}

func (n *Navigator) shiftWeek(delta int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.offset += delta
	week := utils.WeekDays(n.now(), n.offset)
	n.selected = utils.CorrespondingDay(week, n.selected)
}

// ReloadCounts fetches completion counts for every day of the visible
// week. Failures degrade to empty counts so navigation never blocks on
// storage problems. Stale reloads are discarded when a newer one has
// already finished.
func (n *Navigator) ReloadCounts(ctx context.Context) error {
	n.mu.Lock()
	n.loadGen++
	gen := n.loadGen
	week := utils.WeekDays(n.now(), n.offset)
	n.mu.Unlock()

	counts := map[string]int{}

	ownerID, err := n.session.UserID()
	if err != nil {
		n.applyCounts(gen, counts)
		return nil
	}

	start := utils.DayString(week[0])
	end := utils.DayString(week[len(week)-1])
	completions, err := n.store.GetCompletionsInRange(ctx, ownerID, start, end)
	if err != nil {
		logger.Warn("Failed to load completion counts", "start", start, "end", end, "error", err)
		n.applyCounts(gen, counts)
		return nil
	}

	for _, c := range completions {
		counts[c.CompletedDate]++
	}
	n.applyCounts(gen, counts)
	return nil
}

func (n *Navigator) applyCounts(gen uint64, counts map[string]int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.loadGen {
		return
	}
	n.counts = counts
}

// CompletionCount returns the number of completions recorded for a day
// of the visible week. Days without data report zero.
func (n *Navigator) CompletionCount(day time.Time) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.counts[utils.DayString(day)]
}

// AdjustCount shifts the cached count for a day without a round trip.
// Used to reflect a toggle immediately; the next reload corrects any
// drift.
func (n *Navigator) AdjustCount(day time.Time, delta int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	key := utils.DayString(day)
	next := n.counts[key] + delta
	if next < 0 {
		next = 0
	}
	n.counts[key] = next
}
