package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

type RecordGormRepository struct {
	db *gorm.DB
}

func NewRecordGormRepository(db *gorm.DB) *RecordGormRepository {
	return &RecordGormRepository{db: db}
}

var _ domain.Repository = (*RecordGormRepository)(nil)

func (r *RecordGormRepository) GetRecord(
	ctx context.Context,
	projectID uint,
	id uint,
) (*models.Record, error) {

	var rec models.Record
	if err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		First(&rec).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecordGormRepository) CreateRecord(
	ctx context.Context,
	rec *models.Record,
) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecordGormRepository) SaveRecord(
	ctx context.Context,
	rec *models.Record,
) error {
	return r.db.WithContext(ctx).Save(rec).Error
}
