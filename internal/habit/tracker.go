package habit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"habbit/internal/models"
	"habbit/internal/session"
	"habbit/internal/storage"
	"habbit/internal/utils"
)

// DayItem is a template paired with its completion state for the
// loaded day.
type DayItem struct {
	Template  models.HabitTemplate
	Completed bool
}

// ToggleFunc is notified after a toggle has been confirmed by storage.
type ToggleFunc func(templateID string, day time.Time, completed bool)

// ErrFutureDay is returned when a toggle targets a day after today.
var ErrFutureDay = errors.New("cannot mark habits on a future date")

// Tracker holds the templates and completion state for a single day.
// Toggles are optimistic: the in-memory flag flips first and rolls
// back if the write fails. Concurrent toggles of the same template are
// serialized so rapid taps cannot interleave their store operations.
type Tracker struct {
	store   storage.Provider
	session session.Provider
	now     func() time.Time

	mu        sync.Mutex
	day       time.Time
	templates []models.HabitTemplate
	completed map[string]bool
	loadGen   uint64

	lockMu        sync.Mutex
	templateLocks map[string]*sync.Mutex

	onToggled ToggleFunc
}

func NewTracker(store storage.Provider, sess session.Provider) *Tracker {
	return &Tracker{
		store:         store,
		session:       sess,
		now:           time.Now,
		day:           utils.StartOfDay(time.Now()),
		completed:     map[string]bool{},
		templateLocks: map[string]*sync.Mutex{},
	}
}

// SetOnToggled registers the callback invoked after every confirmed
// toggle. A single callback slot; later registrations replace earlier
// ones.
func (t *Tracker) SetOnToggled(fn ToggleFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggled = fn
}

func (t *Tracker) Day() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.day
}

// LoadData fetches the owner's templates and the completions for the
// given day concurrently and applies both in one step. If another load
// finishes first, the older result is discarded: the newest load wins,
// regardless of arrival order.
func (t *Tracker) LoadData(ctx context.Context, day time.Time) error {
	day = utils.StartOfDay(day)

	t.mu.Lock()
	t.loadGen++
	gen := t.loadGen
	t.mu.Unlock()

	ownerID, err := t.session.UserID()
	if err != nil {
		return err
	}

	var templates []models.HabitTemplate
	var completions []models.HabitCompletion

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		templates, err = t.store.GetActiveTemplates(gctx, ownerID, utils.DayString(day))
		return err
	})
	g.Go(func() error {
		var err error
		completions, err = t.store.GetCompletionsForDay(gctx, ownerID, utils.DayString(day))
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load day: %w", err)
	}

	completed := make(map[string]bool, len(completions))
	for _, c := range completions {
		completed[c.TemplateID] = true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.loadGen {
		return nil
	}
	t.day = day
	t.templates = templates
	t.completed = completed
	return nil
}

// Items returns the templates visible on the loaded day with their
// completion state. A template shows up only once it is active and its
// activation date is on or before the day, so fresh templates never
// appear on earlier weeks.
func (t *Tracker) Items() []DayItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	endOfDay := t.day.AddDate(0, 0, 1)
	var items []DayItem
	for _, tmpl := range t.templates {
		if !tmpl.IsActive {
			continue
		}
		if tmpl.ActivatedAt == nil || !tmpl.ActivatedAt.Before(endOfDay) {
			continue
		}
		items = append(items, DayItem{
			Template:  tmpl,
			Completed: t.completed[tmpl.ID],
		})
	}
	return items
}

// IsCompleted reports whether the template is completed on the loaded day.
func (t *Tracker) IsCompleted(templateID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed[templateID]
}

// Toggle flips the completion state of a template for the loaded day.
// The in-memory state flips immediately and is rolled back if the
// store write fails. Days after today cannot be toggled. Returns the
// new completion state.
func (t *Tracker) Toggle(ctx context.Context, templateID string) (bool, error) {
	ownerID, err := t.session.UserID()
	if err != nil {
		return false, err
	}

	t.mu.Lock()
	loadedDay := t.day
	current := t.completed[templateID]
	t.mu.Unlock()
	if loadedDay.After(utils.StartOfDay(t.now())) {
		return current, ErrFutureDay
	}

	lock := t.templateLock(templateID)
	lock.Lock()
	defer lock.Unlock()

	t.mu.Lock()
	day := t.day
	target := !t.completed[templateID]
	t.completed[templateID] = target
	t.mu.Unlock()

	if err := t.persistToggle(ctx, ownerID, templateID, day, target); err != nil {
		t.mu.Lock()
		t.completed[templateID] = !target
		t.mu.Unlock()
		return !target, err
	}

	t.mu.Lock()
	fn := t.onToggled
	t.mu.Unlock()
	if fn != nil {
		fn(templateID, day, target)
	}

	return target, nil
}

func (t *Tracker) persistToggle(ctx context.Context, ownerID, templateID string, day time.Time, completed bool) error {
	if completed {
		return t.store.CreateCompletion(ctx, models.HabitCompletion{
			ID:            uuid.NewString(),
			OwnerID:       ownerID,
			TemplateID:    templateID,
			CompletedDate: utils.DayString(day),
			CreatedAt:     time.Now().UTC(),
		})
	}

	err := t.store.DeleteCompletion(ctx, ownerID, templateID, utils.DayString(day))
	if errors.Is(err, storage.ErrNotFound) {
		// Row already gone; the desired state is reached.
		return nil
	}
	return err
}

func (t *Tracker) templateLock(templateID string) *sync.Mutex {
	t.lockMu.Lock()
	defer t.lockMu.Unlock()
	lock, ok := t.templateLocks[templateID]
	if !ok {
		lock = &sync.Mutex{}
		t.templateLocks[templateID] = lock
	}
	return lock
}
