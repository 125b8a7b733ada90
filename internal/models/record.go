package models

import "time"

// Record is one content item. FormValues holds the whole form as JSON text;
// field editors address values inside it by dot path.
type Record struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProjectID uint   `gorm:"index;not null" json:"project_id"`
	ItemType  string `gorm:"size:100;not null" json:"item_type"`

	FormValues string `gorm:"type:jsonb;not null;default:'{}'" json:"form_values"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
