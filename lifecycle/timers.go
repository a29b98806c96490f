package lifecycle

import (
	"fmt"
	"time"
)

// TimerKey names the purpose of a pending timer. At most one timer per key is
// pending at any time.
type TimerKey string

const (
	TimerDeathImpulse TimerKey = "death-impulse"
	TimerDeathRestart TimerKey = "death-restart"
	TimerGrowComplete TimerKey = "grow-complete"
	TimerGrowFlicker  TimerKey = "grow-flicker"
)

// EnemyRemovalTimer is the key of the delayed removal of a defeated enemy.
func EnemyRemovalTimer(id EntityID) TimerKey {
	return TimerKey(fmt.Sprintf("enemy-remove:%d", id))
}

type timer struct {
	due      time.Duration
	interval time.Duration
	seq      uint64
	fire     func(Sink)
}

// Timers is a simulated clock with named, cancellable one-shot and repeating
// timers. It is advanced explicitly, so tests control time exactly.
type Timers struct {
	now     time.Duration
	seq     uint64
	pending map[TimerKey]*timer
}

// Now returns the simulated time elapsed since the clock was created.
func (t *Timers) Now() time.Duration {
	return t.now
}

// After schedules fire to run once, d from now. A pending timer with the same
// key is cancelled first.
func (t *Timers) After(key TimerKey, d time.Duration, fire func(Sink)) {
	t.schedule(key, d, 0, fire)
}

// Every schedules fire to run every interval until cancelled. A pending timer
// with the same key is cancelled first.
func (t *Timers) Every(key TimerKey, interval time.Duration, fire func(Sink)) {
	if interval <= 0 {
		return
	}
	t.schedule(key, interval, interval, fire)
}

func (t *Timers) schedule(key TimerKey, d, interval time.Duration, fire func(Sink)) {
	if fire == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	if t.pending == nil {
		t.pending = make(map[TimerKey]*timer)
	}
	t.seq++
	t.pending[key] = &timer{due: t.now + d, interval: interval, seq: t.seq, fire: fire}
}

// Cancel removes the pending timer for key and reports whether one existed.
func (t *Timers) Cancel(key TimerKey) bool {
	if _, ok := t.pending[key]; !ok {
		return false
	}
	delete(t.pending, key)
	return true
}

// Pending reports the time left before the timer for key fires.
func (t *Timers) Pending(key TimerKey) (time.Duration, bool) {
	tm, ok := t.pending[key]
	if !ok {
		return 0, false
	}
	return tm.due - t.now, true
}

// Len returns the number of pending timers.
func (t *Timers) Len() int {
	return len(t.pending)
}

// Advance moves the clock forward by d and fires every timer that falls due,
// in due order. Timers due at the same instant fire in scheduling order.
// Callbacks may schedule or cancel timers, including ones due within d.
func (t *Timers) Advance(d time.Duration, sink Sink) {
	if d < 0 {
		d = 0
	}
	sink = sinkOrDiscard(sink)
	target := t.now + d
	for {
		key, tm := t.next(target)
		if tm == nil {
			break
		}
		t.now = tm.due
		if tm.interval > 0 {
			tm.due += tm.interval
		} else {
			delete(t.pending, key)
		}
		tm.fire(sink)
	}
	t.now = target
}

func (t *Timers) next(limit time.Duration) (TimerKey, *timer) {
	var (
		bestKey TimerKey
		best    *timer
	)
	for key, tm := range t.pending {
		if tm.due > limit {
			continue
		}
		if best == nil || tm.due < best.due || (tm.due == best.due && tm.seq < best.seq) {
			bestKey, best = key, tm
		}
	}
	return bestKey, best
}
