package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/working-schedule/internal/models"
)

type AuditLogDTO struct {
	ID        uint            `json:"id"`
	UserID    *uint           `json:"user_id"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *uint           `json:"entity_id"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewAuditLogDTO returns metadata as a JSON object instead of the stored
// text; empty or broken metadata becomes null.
func NewAuditLogDTO(l *models.AuditLog) AuditLogDTO {
	meta := json.RawMessage("null")
	if l.Metadata != "" && json.Valid([]byte(l.Metadata)) {
		meta = json.RawMessage(l.Metadata)
	}
	return AuditLogDTO{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Entity:    l.Entity,
		EntityID:  l.EntityID,
		Metadata:  meta,
		CreatedAt: l.CreatedAt,
	}
}
