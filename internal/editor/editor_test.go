package editor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID(scope string) string {
	g.n++
	return fmt.Sprintf("field-%s-%d", scope, g.n)
}

type fakePersister struct {
	saved []schedule.Schedule
	err   error
}

func (p *fakePersister) Save(_ context.Context, s schedule.Schedule) error {
	p.saved = append(p.saved, s.Clone())
	return p.err
}

func readValue(v any) ReadFunc {
	return func() (any, bool) { return v, true }
}

func readMissing() (any, bool) { return nil, false }

const persisted = `[{"id":"e1","weekdays":[{"position":0,"short":"Mon","long":"Monday"}],"timeSlots":[{"id":"s1","open":"09:00","close":"12:00"},{"id":"s2","open":"13:00","close":"18:00"}]}]`

func ptr(s string) *string { return &s }

func TestNewDefaultFallback(t *testing.T) {
	inputs := map[string]ReadFunc{
		"undefined": readMissing,
		"empty":     readValue(""),
		"not json":  readValue("not json"),
		"object":    readValue("{}"),
	}

	for name, read := range inputs {
		t.Run(name, func(t *testing.T) {
			p := &fakePersister{}
			e := New(read, p, &seqIDs{}, nil)

			assert.Equal(t, StateReady, e.State())
			assert.True(t, e.Load().Fallback())

			s := e.Snapshot()
			require.Len(t, s, 1)
			assert.Empty(t, s[0].Weekdays)
			require.Len(t, s[0].TimeSlots, 1)
			assert.Equal(t, "", s[0].TimeSlots[0].Open)
			assert.Equal(t, "", s[0].TimeSlots[0].Close)
			assert.Empty(t, p.saved)
		})
	}
}

func TestNewFromPersistedDoesNotWrite(t *testing.T) {
	p := &fakePersister{}
	e := New(readValue(persisted), p, &seqIDs{}, nil)

	assert.False(t, e.Load().Fallback())
	assert.Equal(t, schedule.SourceText, e.Load().Source)
	assert.Len(t, e.Snapshot(), 1)
	assert.Empty(t, p.saved)
}

func TestNewFromStructuredValue(t *testing.T) {
	raw := []any{
		map[string]any{
			"id":        "e9",
			"weekdays":  []any{},
			"timeSlots": []any{map[string]any{"id": "s9", "open": "", "close": ""}},
		},
	}
	e := New(readValue(raw), nil, &seqIDs{}, nil)

	assert.Equal(t, schedule.SourceStructured, e.Load().Source)
	require.Len(t, e.Snapshot(), 1)
	assert.Equal(t, "e9", e.Snapshot()[0].ID)
}

func TestEveryChangeIsPersistedOnce(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{}
	e := New(readValue(persisted), p, &seqIDs{}, nil)

	s, changed, err := e.AddEntry(ctx)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, s, 2)
	assert.NotEqual(t, s[0].ID, s[1].ID)

	_, _, err = e.ToggleWeekday(ctx, s[1].ID, schedule.Weekdays[4])
	require.NoError(t, err)
	_, _, err = e.AddTimeSlot(ctx, s[1].ID)
	require.NoError(t, err)

	require.Len(t, p.saved, 3)
	assert.Equal(t, e.Snapshot(), p.saved[2])
}

func TestAddThenRemoveFirstEntry(t *testing.T) {
	ctx := context.Background()
	e := New(readMissing, &fakePersister{}, &seqIDs{}, nil)

	s, _, err := e.AddEntry(ctx)
	require.NoError(t, err)
	second := s[1]

	s, changed, err := e.RemoveEntry(ctx, s[0].ID)
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, s, 1)
	assert.Equal(t, second, s[0])
}

func TestUnknownIDsDoNotWrite(t *testing.T) {
	ctx := context.Background()
	p := &fakePersister{}
	e := New(readValue(persisted), p, &seqIDs{}, nil)
	before := e.Snapshot()

	_, changed, err := e.RemoveEntry(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, changed)

	_, changed, _ = e.UpdateTimeSlot(ctx, "nonexistent", "nonexistent", ptr("10:00"), nil)
	assert.False(t, changed)
	_, changed, _ = e.RemoveTimeSlot(ctx, "e1", "nonexistent")
	assert.False(t, changed)
	_, changed, _ = e.ToggleWeekday(ctx, "nonexistent", schedule.Weekdays[0])
	assert.False(t, changed)
	_, changed, _ = e.UpdateEntryField(ctx, "nonexistent", schedule.FieldWeekdays, []schedule.Weekday{})
	assert.False(t, changed)

	assert.Equal(t, before, e.Snapshot())
	assert.Empty(t, p.saved)
}

func TestToggleTwiceRestoresWeekdays(t *testing.T) {
	ctx := context.Background()
	e := New(readValue(persisted), nil, &seqIDs{}, nil)
	before := e.Snapshot()[0].Weekdays

	for _, w := range schedule.Weekdays {
		_, _, err := e.ToggleWeekday(ctx, "e1", w)
		require.NoError(t, err)
		_, _, err = e.ToggleWeekday(ctx, "e1", w)
		require.NoError(t, err)
	}

	assert.ElementsMatch(t, before, e.Snapshot()[0].Weekdays)
}

func TestSlotMutationIsolation(t *testing.T) {
	ctx := context.Background()
	e := New(readValue(persisted), nil, &seqIDs{}, nil)

	s, changed, err := e.UpdateTimeSlot(ctx, "e1", "s1", ptr("08:00"), nil)
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, "08:00", s[0].TimeSlots[0].Open)
	assert.Equal(t, "12:00", s[0].TimeSlots[0].Close)
	assert.Equal(t, schedule.TimeSlotPair{ID: "s2", Open: "13:00", Close: "18:00"}, s[0].TimeSlots[1])
}

func TestPersistFailureKeepsState(t *testing.T) {
	boom := errors.New("write failed")
	p := &fakePersister{err: boom}
	e := New(readMissing, p, &seqIDs{}, nil)

	s, changed, err := e.AddEntry(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.True(t, changed)
	assert.Len(t, s, 2)
	assert.Len(t, e.Snapshot(), 2)
}

func TestResumeDoesNotWrite(t *testing.T) {
	p := &fakePersister{}
	base := New(readValue(persisted), nil, &seqIDs{}, nil).Snapshot()

	e := Resume(base, p, &seqIDs{}, nil)
	assert.Equal(t, StateReady, e.State())
	assert.Equal(t, base, e.Snapshot())
	assert.Empty(t, p.saved)

	_, _, err := e.RemoveTimeSlot(context.Background(), "e1", "s2")
	require.NoError(t, err)
	assert.Len(t, p.saved, 1)
}

func TestZeroEditorIsNotReady(t *testing.T) {
	var e Editor
	assert.Equal(t, StateUninitialized, e.State())

	_, _, err := e.AddEntry(context.Background())
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := New(readValue(persisted), nil, &seqIDs{}, nil)

	s := e.Snapshot()
	s[0].TimeSlots[0].Open = "00:00"

	assert.Equal(t, "09:00", e.Snapshot()[0].TimeSlots[0].Open)
}
