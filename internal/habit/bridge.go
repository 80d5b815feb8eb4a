package habit

import "time"

// Bridge keeps the navigator's week counts in step with toggles made
// through the tracker, and fans the event out to an optional listener
// (the TUI uses this to refresh its views).
type Bridge struct {
	tracker   *Tracker
	navigator *Navigator
	listener  ToggleFunc
}

func NewBridge(tracker *Tracker, navigator *Navigator) *Bridge {
	b := &Bridge{
		tracker:   tracker,
		navigator: navigator,
	}
	tracker.SetOnToggled(b.onToggled)
	return b
}

// SetListener registers a downstream listener for confirmed toggles.
func (b *Bridge) SetListener(fn ToggleFunc) {
	b.listener = fn
}

func (b *Bridge) onToggled(templateID string, day time.Time, completed bool) {
	delta := -1
	if completed {
		delta = 1
	}
	b.navigator.AdjustCount(day, delta)

	if b.listener != nil {
		b.listener(templateID, day, completed)
	}
}
