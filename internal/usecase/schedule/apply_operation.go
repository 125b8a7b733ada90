package schedule

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/working-schedule/internal/audit"
	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
	"github.com/BruksfildServices01/working-schedule/internal/editor"
	"github.com/BruksfildServices01/working-schedule/internal/host"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/idgen"
	"github.com/BruksfildServices01/working-schedule/internal/keylock"
	"github.com/BruksfildServices01/working-schedule/internal/metrics"
	"github.com/BruksfildServices01/working-schedule/internal/persistence"
	"github.com/BruksfildServices01/working-schedule/internal/session"
)

type ApplyOperationInput struct {
	ProjectID uint
	UserID    uint
	SessionID string
	Op        Operation
}

type ApplyOperation struct {
	forms    *host.Forms
	sessions session.Store
	locks    *keylock.Locker
	audit    *audit.Dispatcher
	metrics  metrics.Recorder
	log      *zap.Logger
}

func NewApplyOperation(
	forms *host.Forms,
	sessions session.Store,
	audit *audit.Dispatcher,
	rec metrics.Recorder,
	log *zap.Logger,
) *ApplyOperation {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplyOperation{
		forms:    forms,
		sessions: sessions,
		locks:    keylock.New(),
		audit:    audit,
		metrics:  rec,
		log:      log,
	}
}

// Execute applies one event. Events of the same session run one at a time
// and in arrival order; the field is written after the state changes and
// only when it did.
func (uc *ApplyOperation) Execute(
	ctx context.Context,
	in ApplyOperationInput,
) (*SessionView, error) {

	if err := in.Op.Validate(); err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(in.SessionID)
	defer unlock()

	snap, err := loadSession(ctx, uc.sessions, in.ProjectID, in.SessionID)
	if err != nil {
		return nil, err
	}

	log := uc.log.With(
		zap.String("session_id", snap.ID),
		zap.String("op", in.Op.Name()),
	)

	form := uc.forms.Bind(snap.ProjectID, snap.RecordID)
	adapter := persistence.New(form, snap.FieldPath, uc.metrics, log)
	ed := editor.Resume(snap.Schedule, adapter, idgen.New(snap.FieldID), log)

	next, changed, opErr := in.Op.Apply(ctx, ed)
	uc.metrics.IncOperation(in.Op.Name(), changed)

	if changed {
		snap.Schedule = next
		snap.UpdatedAt = time.Now()
		if err := uc.sessions.Save(ctx, snap); err != nil {
			return nil, err
		}
	}

	if opErr != nil {
		if errors.Is(opErr, record.ErrNotFound) {
			return nil, httperr.ErrBusiness("record_not_found")
		}
		log.Error("schedule write failed", zap.Error(opErr))
		return nil, httperr.ErrBusiness("field_write_failed")
	}

	if changed {
		uc.audit.Dispatch(audit.Event{
			ProjectID: snap.ProjectID,
			UserID:    &in.UserID,
			Action:    "schedule_saved",
			Entity:    "record",
			EntityID:  &snap.RecordID,
			Metadata: map[string]any{
				"session_id": snap.ID,
				"field_path": snap.FieldPath,
				"op":         in.Op.Name(),
				"entries":    len(next),
			},
		})
	}

	view := newView(snap)
	view.Source = domain.SourceStructured
	view.Changed = changed
	return view, nil
}
