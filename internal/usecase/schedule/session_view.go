package schedule

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/session"
)

// SessionView is what the editor UI renders after each event.
type SessionView struct {
	Session *session.Snapshot
	Source  domain.Source
	// Fallback is set when the stored value was unusable and the default
	// schedule was loaded instead.
	Fallback bool
	Changed  bool
	Issues   []domain.Issue
}

func newView(snap *session.Snapshot) *SessionView {
	return &SessionView{
		Session: snap,
		Issues:  domain.Validate(snap.Schedule),
	}
}

func loadSession(
	ctx context.Context,
	sessions session.Store,
	projectID uint,
	sessionID string,
) (*session.Snapshot, error) {

	snap, err := sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, err
	}

	// sessions of other projects are invisible
	if snap.ProjectID != projectID {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	return snap, nil
}
