package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/working-schedule/internal/models"
)

type RecordDTO struct {
	ID         uint            `json:"id"`
	ItemType   string          `json:"item_type"`
	FormValues json.RawMessage `json:"form_values"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewRecordDTO embeds the stored form values as JSON. Values that are not
// valid JSON are returned as a string.
func NewRecordDTO(rec *models.Record) RecordDTO {
	values := json.RawMessage(rec.FormValues)
	if !json.Valid(values) {
		values, _ = json.Marshal(rec.FormValues)
	}
	return RecordDTO{
		ID:         rec.ID,
		ItemType:   rec.ItemType,
		FormValues: values,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
