package schedule

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/working-schedule/internal/audit"
	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/editor"
	"github.com/BruksfildServices01/working-schedule/internal/host"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/idgen"
	"github.com/BruksfildServices01/working-schedule/internal/metrics"
	"github.com/BruksfildServices01/working-schedule/internal/session"
	"github.com/BruksfildServices01/working-schedule/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type OpenSessionInput struct {
	ProjectID uint
	UserID    uint

	RecordID  uint
	FieldPath string
	// FieldID prefixes generated ids; defaults to FieldPath.
	FieldID string
}

// ======================================================
// USE CASE
// ======================================================

type OpenSession struct {
	forms    *host.Forms
	sessions session.Store
	audit    *audit.Dispatcher
	metrics  metrics.Recorder
	log      *zap.Logger
}

func NewOpenSession(
	forms *host.Forms,
	sessions session.Store,
	audit *audit.Dispatcher,
	rec metrics.Recorder,
	log *zap.Logger,
) *OpenSession {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OpenSession{
		forms:    forms,
		sessions: sessions,
		audit:    audit,
		metrics:  rec,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute mounts an editor on the field. The field is read once and never
// written here, even when the default schedule had to be used.
func (uc *OpenSession) Execute(
	ctx context.Context,
	in OpenSessionInput,
) (*SessionView, error) {

	path := strings.TrimSpace(in.FieldPath)
	if !validators.IsFieldPath(path) {
		return nil, httperr.ErrBusiness("invalid_field_path")
	}

	fieldID := strings.TrimSpace(in.FieldID)
	if fieldID == "" {
		fieldID = path
	}

	form, err := uc.forms.Open(ctx, in.ProjectID, in.RecordID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return nil, httperr.ErrBusiness("record_not_found")
		}
		return nil, err
	}

	ed := editor.New(
		func() (any, bool) { return form.FieldValue(path) },
		nil,
		idgen.New(fieldID),
		uc.log.With(zap.Uint("record_id", in.RecordID), zap.String("field_path", path)),
	)
	load := ed.Load()
	uc.metrics.IncSessionOpened(string(load.Source), load.Fallback())

	now := time.Now()
	snap := &session.Snapshot{
		ID:        uuid.NewString(),
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
		RecordID:  in.RecordID,
		FieldPath: path,
		FieldID:   fieldID,
		Schedule:  ed.Snapshot(),
		OpenedAt:  now,
		UpdatedAt: now,
	}
	if err := uc.sessions.Save(ctx, snap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProjectID: in.ProjectID,
		UserID:    &in.UserID,
		Action:    "schedule_session_opened",
		Entity:    "record",
		EntityID:  &in.RecordID,
		Metadata: map[string]any{
			"session_id": snap.ID,
			"field_path": path,
			"source":     load.Source,
			"fallback":   load.Fallback(),
		},
	})

	view := newView(snap)
	view.Source = load.Source
	view.Fallback = load.Fallback()
	return view, nil
}
