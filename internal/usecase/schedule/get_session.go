package schedule

import (
	"context"

	"github.com/BruksfildServices01/working-schedule/internal/session"
)

type GetSession struct {
	sessions session.Store
}

func NewGetSession(sessions session.Store) *GetSession {
	return &GetSession{sessions: sessions}
}

func (uc *GetSession) Execute(
	ctx context.Context,
	projectID uint,
	sessionID string,
) (*SessionView, error) {

	snap, err := loadSession(ctx, uc.sessions, projectID, sessionID)
	if err != nil {
		return nil, err
	}
	return newView(snap), nil
}
