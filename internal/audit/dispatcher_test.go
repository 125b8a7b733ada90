package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryWriter struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (w *memoryWriter) Write(_ context.Context, ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return w.err
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	w := &memoryWriter{}
	d := NewDispatcher(w, nil)

	d.Dispatch(Event{ProjectID: 1, Action: "schedule_session_opened"})
	d.Dispatch(Event{ProjectID: 1, Action: "schedule_saved"})
	d.Close()

	require.Len(t, w.events, 2)
	assert.Equal(t, "schedule_session_opened", w.events[0].Action)
	assert.Equal(t, "schedule_saved", w.events[1].Action)
}

func TestDispatcherSurvivesWriteErrors(t *testing.T) {
	w := &memoryWriter{err: errors.New("db down")}
	d := NewDispatcher(w, nil)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	assert.Len(t, w.events, 2)
}

func TestCloseTwice(t *testing.T) {
	d := NewDispatcher(&memoryWriter{}, nil)
	d.Close()
	d.Close()
}
