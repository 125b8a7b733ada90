// Package host plays the content-management side of a field editor: it
// reads the current form values of a record and commits new field values
// back into them.
package host

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/fieldpath"
	"github.com/BruksfildServices01/working-schedule/internal/keylock"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

// ErrMalformedValues is returned when a record's stored form values cannot
// be decoded. The record is left untouched.
var ErrMalformedValues = errors.New("record form values are malformed")

// Forms opens FormState views on records. Writes to one record are
// serialized through a shared keyed lock.
type Forms struct {
	records record.Repository
	archive record.Archive
	locks   *keylock.Locker
	trace   bool
	log     *zap.Logger
}

func NewForms(
	records record.Repository,
	archive record.Archive,
	trace bool,
	log *zap.Logger,
) *Forms {
	if archive == nil {
		archive = record.NoopArchive{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Forms{
		records: records,
		archive: archive,
		locks:   keylock.New(),
		trace:   trace,
		log:     log,
	}
}

// FormState is the host view of one record's form.
type FormState struct {
	forms     *Forms
	projectID uint
	recordID  uint
	values    map[string]any
}

// Open loads the record once. Form values that cannot be decoded are
// treated as an empty form so the editor still opens.
func (f *Forms) Open(ctx context.Context, projectID, recordID uint) (*FormState, error) {
	rec, err := f.records.GetRecord(ctx, projectID, recordID)
	if err != nil {
		return nil, err
	}

	values, err := record.DecodeValues(rec.FormValues)
	if err != nil {
		f.log.Warn("record form values are malformed",
			zap.Uint("record_id", recordID),
			zap.Error(err),
		)
		values = nil
	}

	return &FormState{
		forms:     f,
		projectID: projectID,
		recordID:  recordID,
		values:    values,
	}, nil
}

// Bind returns a FormState that only writes; used when the editor resumes
// from a session and must not read the form again.
func (f *Forms) Bind(projectID, recordID uint) *FormState {
	return &FormState{forms: f, projectID: projectID, recordID: recordID}
}

// FieldValue returns the raw value stored at path in the values read by Open.
func (s *FormState) FieldValue(path string) (any, bool) {
	if s.forms.trace {
		return fieldpath.GetTraced(s.values, path, s.forms.log.Named("fieldpath"))
	}
	return fieldpath.Get(s.values, path)
}

// SetFieldValue re-reads the record, places value at path and saves it.
// Other fields written in the meantime are kept.
func (s *FormState) SetFieldValue(ctx context.Context, path string, value any) error {
	f := s.forms
	unlock := f.lockRecord(s.recordID)
	defer unlock()

	rec, err := f.records.GetRecord(ctx, s.projectID, s.recordID)
	if err != nil {
		return err
	}

	values, err := record.DecodeValues(rec.FormValues)
	if err != nil {
		return fmt.Errorf("record %d: %w", s.recordID, ErrMalformedValues)
	}

	if err := fieldpath.Set(values, path, value); err != nil {
		return fmt.Errorf("set %q: %w", path, err)
	}

	text, err := record.EncodeValues(values)
	if err != nil {
		return err
	}
	rec.FormValues = text

	return f.save(ctx, rec)
}

// ReplaceValues swaps all form values of a record at once. It takes the
// same lock as field writes, so neither overwrites the other with a stale
// copy.
func (f *Forms) ReplaceValues(
	ctx context.Context,
	projectID, recordID uint,
	text string,
) (*models.Record, error) {
	unlock := f.lockRecord(recordID)
	defer unlock()

	rec, err := f.records.GetRecord(ctx, projectID, recordID)
	if err != nil {
		return nil, err
	}

	rec.FormValues = text
	if err := f.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (f *Forms) lockRecord(recordID uint) func() {
	return f.locks.Lock(strconv.FormatUint(uint64(recordID), 10))
}

// save stores the record and archives a copy. Archive failures are only
// logged.
func (f *Forms) save(ctx context.Context, rec *models.Record) error {
	if err := f.records.SaveRecord(ctx, rec); err != nil {
		return err
	}

	if err := f.archive.Put(ctx, rec); err != nil && !errors.Is(err, context.Canceled) {
		f.log.Warn("failed to archive record",
			zap.Uint("record_id", rec.ID),
			zap.Error(err),
		)
	}
	return nil
}
