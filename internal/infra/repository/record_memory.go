package repository

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

// RecordMemoryRepository keeps records in process memory. It backs local
// runs without a database and the tests.
type RecordMemoryRepository struct {
	mu      sync.RWMutex
	records map[uint]models.Record
	nextID  uint
}

func NewRecordMemoryRepository() *RecordMemoryRepository {
	return &RecordMemoryRepository{records: make(map[uint]models.Record)}
}

var _ domain.Repository = (*RecordMemoryRepository)(nil)

func (r *RecordMemoryRepository) GetRecord(
	_ context.Context,
	projectID uint,
	id uint,
) (*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok || rec.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (r *RecordMemoryRepository) CreateRecord(
	_ context.Context,
	rec *models.Record,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now()
	rec.ID = r.nextID
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.FormValues == "" {
		rec.FormValues = "{}"
	}
	r.records[rec.ID] = *rec
	return nil
}

func (r *RecordMemoryRepository) SaveRecord(
	_ context.Context,
	rec *models.Record,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	rec.UpdatedAt = time.Now()
	r.records[rec.ID] = *rec
	return nil
}
