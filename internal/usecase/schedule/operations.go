package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
	"github.com/BruksfildServices01/working-schedule/internal/editor"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
)

// Operation is one user event against an open editor.
type Operation interface {
	Name() string
	Validate() error
	Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error)
}

type AddEntry struct{}

func (AddEntry) Name() string    { return "add_entry" }
func (AddEntry) Validate() error { return nil }
func (AddEntry) Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error) {
	return ed.AddEntry(ctx)
}

type RemoveEntry struct {
	EntryID string
}

func (RemoveEntry) Name() string    { return "remove_entry" }
func (RemoveEntry) Validate() error { return nil }
func (op RemoveEntry) Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error) {
	return ed.RemoveEntry(ctx, op.EntryID)
}

// UpdateEntryField replaces weekdays or time slots wholesale; only the
// slice matching Field is used.
type UpdateEntryField struct {
	EntryID   string
	Field     domain.Field
	Weekdays  []domain.Weekday
	TimeSlots []domain.TimeSlotPair
}

func (UpdateEntryField) Name() string { return "update_entry_field" }

func (op UpdateEntryField) Validate() error {
	switch op.Field {
	case domain.FieldWeekdays:
		for _, w := range op.Weekdays {
			if _, ok := domain.WeekdayAt(w.Position); !ok {
				return httperr.ErrBusiness("invalid_weekday")
			}
		}
		return nil
	case domain.FieldTimeSlots:
		if !domain.ValidSlotSet(op.TimeSlots) {
			return httperr.ErrBusiness("invalid_time_slots")
		}
		return nil
	}
	return httperr.ErrBusiness("invalid_field")
}

func (op UpdateEntryField) Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error) {
	if op.Field == domain.FieldWeekdays {
		return ed.UpdateEntryField(ctx, op.EntryID, op.Field, op.Weekdays)
	}
	return ed.UpdateEntryField(ctx, op.EntryID, op.Field, op.TimeSlots)
}

type ToggleWeekday struct {
	EntryID  string
	Position int
}

func (ToggleWeekday) Name() string { return "toggle_weekday" }

func (op ToggleWeekday) Validate() error {
	if _, ok := domain.WeekdayAt(op.Position); !ok {
		return httperr.ErrBusiness("invalid_weekday")
	}
	return nil
}

func (op ToggleWeekday) Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error) {
	w, _ := domain.WeekdayAt(op.Position)
	return ed.ToggleWeekday(ctx, op.EntryID, w)
}

type AddTimeSlot struct {
	EntryID string
}

func (AddTimeSlot) Name() string    { return "add_time_slot" }
func (AddTimeSlot) Validate() error { return nil }
func (op AddTimeSlot) Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error) {
	return ed.AddTimeSlot(ctx, op.EntryID)
}

// UpdateTimeSlot changes Open and/or Close; nil keeps the current value.
type UpdateTimeSlot struct {
	EntryID string
	SlotID  string
	Open    *string
	Close   *string
}

func (UpdateTimeSlot) Name() string { return "update_time_slot" }

func (op UpdateTimeSlot) Validate() error {
	if op.Open == nil && op.Close == nil {
		return httperr.ErrBusiness("nothing_to_update")
	}
	return nil
}

func (op UpdateTimeSlot) Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error) {
	return ed.UpdateTimeSlot(ctx, op.EntryID, op.SlotID, op.Open, op.Close)
}

type RemoveTimeSlot struct {
	EntryID string
	SlotID  string
}

func (RemoveTimeSlot) Name() string    { return "remove_time_slot" }
func (RemoveTimeSlot) Validate() error { return nil }
func (op RemoveTimeSlot) Apply(ctx context.Context, ed *editor.Editor) (domain.Schedule, bool, error) {
	return ed.RemoveTimeSlot(ctx, op.EntryID, op.SlotID)
}
