package record

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/working-schedule/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Repository stores content records. Lookups are always scoped by project.
type Repository interface {
	GetRecord(
		ctx context.Context,
		projectID uint,
		id uint,
	) (*models.Record, error)

	CreateRecord(
		ctx context.Context,
		rec *models.Record,
	) error

	SaveRecord(
		ctx context.Context,
		rec *models.Record,
	) error
}

// Archive keeps a copy of a record every time one of its fields is written.
type Archive interface {
	Put(ctx context.Context, rec *models.Record) error
}

type NoopArchive struct{}

func (NoopArchive) Put(context.Context, *models.Record) error { return nil }
