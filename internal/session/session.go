// Package session keeps the state of open schedule editors between
// requests.
package session

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
)

var ErrNotFound = errors.New("session not found")

// Snapshot is everything needed to resume an editor: which field of which
// record it edits and the Schedule it currently owns.
type Snapshot struct {
	ID        string          `json:"id"`
	ProjectID uint            `json:"project_id"`
	UserID    uint            `json:"user_id"`
	RecordID  uint            `json:"record_id"`
	FieldPath string          `json:"field_path"`
	FieldID   string          `json:"field_id"`
	Schedule  domain.Schedule `json:"schedule"`

	OpenedAt  time.Time `json:"opened_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store interface {
	Save(ctx context.Context, s *Snapshot) error
	Get(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
}
