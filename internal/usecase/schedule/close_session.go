package schedule

import (
	"context"

	"github.com/BruksfildServices01/working-schedule/internal/audit"
	"github.com/BruksfildServices01/working-schedule/internal/metrics"
	"github.com/BruksfildServices01/working-schedule/internal/session"
)

// CloseSession unmounts the editor. The last written value stays in the
// record; nothing is written here.
type CloseSession struct {
	sessions session.Store
	audit    *audit.Dispatcher
	metrics  metrics.Recorder
}

func NewCloseSession(
	sessions session.Store,
	audit *audit.Dispatcher,
	rec metrics.Recorder,
) *CloseSession {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &CloseSession{
		sessions: sessions,
		audit:    audit,
		metrics:  rec,
	}
}

func (uc *CloseSession) Execute(
	ctx context.Context,
	projectID uint,
	userID uint,
	sessionID string,
) error {

	snap, err := loadSession(ctx, uc.sessions, projectID, sessionID)
	if err != nil {
		return err
	}

	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	uc.metrics.IncSessionClosed()

	uc.audit.Dispatch(audit.Event{
		ProjectID: projectID,
		UserID:    &userID,
		Action:    "schedule_session_closed",
		Entity:    "record",
		EntityID:  &snap.RecordID,
		Metadata:  map[string]any{"session_id": sessionID},
	})
	return nil
}
