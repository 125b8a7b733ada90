// Package editor holds the working schedule state machine. An Editor owns
// the Schedule for one editing session; every committed change is handed to
// the Persister, the initial load never is.
//
// An Editor is not safe for concurrent use. Callers apply one user event at
// a time.
package editor

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
)

type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

var ErrNotReady = errors.New("editor: not initialized")

// ReadFunc returns the raw value the host currently stores for the field.
type ReadFunc func() (any, bool)

// Persister receives each committed Schedule.
type Persister interface {
	Save(ctx context.Context, s schedule.Schedule) error
}

// Load describes how the initial Schedule was obtained.
type Load struct {
	Source schedule.Source
	// Err is the reason the default schedule was used, nil otherwise.
	Err error
}

func (l Load) Fallback() bool { return l.Err != nil }

type Editor struct {
	state   State
	current schedule.Schedule
	load    Load

	ids     schedule.IDGenerator
	persist Persister
	log     *zap.Logger
}

// New reads the field once and moves to Ready. Malformed or missing data
// yields the default single-entry schedule; nothing is written.
func New(read ReadFunc, persist Persister, ids schedule.IDGenerator, log *zap.Logger) *Editor {
	e := newEditor(persist, ids, log)

	raw, found := read()
	s, src, err := schedule.Decode(raw, found)
	if err != nil {
		e.log.Info("using default schedule",
			zap.String("source", string(src)),
			zap.Error(err),
		)
		s = schedule.Default(ids)
	}

	e.current = s
	e.load = Load{Source: src, Err: err}
	e.state = StateReady
	return e
}

// Resume rebuilds an editor around a Schedule kept by a session store.
func Resume(s schedule.Schedule, persist Persister, ids schedule.IDGenerator, log *zap.Logger) *Editor {
	e := newEditor(persist, ids, log)
	e.current = s.Clone()
	e.load = Load{Source: schedule.SourceStructured}
	e.state = StateReady
	return e
}

func newEditor(persist Persister, ids schedule.IDGenerator, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{
		ids:     ids,
		persist: persist,
		log:     log,
	}
}

func (e *Editor) State() State { return e.state }

func (e *Editor) Load() Load { return e.load }

// Snapshot returns a copy that callers may keep or render.
func (e *Editor) Snapshot() schedule.Schedule {
	return e.current.Clone()
}

// ======================================================
// OPERATIONS
// ======================================================

func (e *Editor) AddEntry(ctx context.Context) (schedule.Schedule, bool, error) {
	return e.apply(ctx, "add_entry", func(s schedule.Schedule) (schedule.Schedule, bool) {
		return schedule.AddEntry(s, e.ids), true
	})
}

func (e *Editor) RemoveEntry(ctx context.Context, entryID string) (schedule.Schedule, bool, error) {
	return e.apply(ctx, "remove_entry", func(s schedule.Schedule) (schedule.Schedule, bool) {
		return schedule.RemoveEntry(s, entryID)
	})
}

func (e *Editor) UpdateEntryField(ctx context.Context, entryID string, field schedule.Field, value any) (schedule.Schedule, bool, error) {
	return e.apply(ctx, "update_entry_field", func(s schedule.Schedule) (schedule.Schedule, bool) {
		return schedule.UpdateEntryField(s, entryID, field, value)
	})
}

func (e *Editor) ToggleWeekday(ctx context.Context, entryID string, w schedule.Weekday) (schedule.Schedule, bool, error) {
	return e.apply(ctx, "toggle_weekday", func(s schedule.Schedule) (schedule.Schedule, bool) {
		return schedule.ToggleWeekday(s, entryID, w)
	})
}

func (e *Editor) AddTimeSlot(ctx context.Context, entryID string) (schedule.Schedule, bool, error) {
	return e.apply(ctx, "add_time_slot", func(s schedule.Schedule) (schedule.Schedule, bool) {
		return schedule.AddTimeSlot(s, entryID, e.ids)
	})
}

func (e *Editor) UpdateTimeSlot(ctx context.Context, entryID, slotID string, open, closeAt *string) (schedule.Schedule, bool, error) {
	return e.apply(ctx, "update_time_slot", func(s schedule.Schedule) (schedule.Schedule, bool) {
		return schedule.UpdateTimeSlot(s, entryID, slotID, open, closeAt)
	})
}

func (e *Editor) RemoveTimeSlot(ctx context.Context, entryID, slotID string) (schedule.Schedule, bool, error) {
	return e.apply(ctx, "remove_time_slot", func(s schedule.Schedule) (schedule.Schedule, bool) {
		return schedule.RemoveTimeSlot(s, entryID, slotID)
	})
}

// apply swaps in the new Schedule, then persists it. A failed write leaves
// the new state in place; the error belongs to the host.
func (e *Editor) apply(
	ctx context.Context,
	op string,
	fn func(schedule.Schedule) (schedule.Schedule, bool),
) (schedule.Schedule, bool, error) {

	if e.state != StateReady {
		return nil, false, ErrNotReady
	}

	next, changed := fn(e.current)
	if !changed {
		e.log.Debug("operation ignored", zap.String("op", op))
		return e.Snapshot(), false, nil
	}

	e.current = next

	if e.persist != nil {
		if err := e.persist.Save(ctx, e.current); err != nil {
			return e.Snapshot(), true, err
		}
	}
	return e.Snapshot(), true, nil
}
