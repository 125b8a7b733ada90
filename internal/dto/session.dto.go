package dto

import (
	"time"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
)

type SessionDTO struct {
	ID        string          `json:"id"`
	RecordID  uint            `json:"record_id"`
	FieldPath string          `json:"field_path"`
	FieldID   string          `json:"field_id"`
	Schedule  domain.Schedule `json:"schedule"`

	Source   string         `json:"source,omitempty"`
	Fallback bool           `json:"fallback"`
	Changed  bool           `json:"changed"`
	Issues   []domain.Issue `json:"issues"`

	OpenedAt  time.Time `json:"opened_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
