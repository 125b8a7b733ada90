package schedule

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/working-schedule/internal/domain/record"
	domain "github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
	"github.com/BruksfildServices01/working-schedule/internal/host"
	"github.com/BruksfildServices01/working-schedule/internal/httperr"
	"github.com/BruksfildServices01/working-schedule/internal/validators"
)

type CheckOpenInput struct {
	ProjectID uint
	RecordID  uint
	FieldPath string
	Weekday   int
	Time      string
}

// CheckOpen answers whether the persisted schedule of a record covers a
// weekday and HH:MM. A field without a usable schedule is always closed.
type CheckOpen struct {
	forms *host.Forms
}

func NewCheckOpen(forms *host.Forms) *CheckOpen {
	return &CheckOpen{forms: forms}
}

func (uc *CheckOpen) Execute(ctx context.Context, in CheckOpenInput) (bool, error) {
	if !validators.IsFieldPath(in.FieldPath) {
		return false, httperr.ErrBusiness("invalid_field_path")
	}
	if _, ok := domain.WeekdayAt(in.Weekday); !ok {
		return false, httperr.ErrBusiness("invalid_weekday")
	}

	form, err := uc.forms.Open(ctx, in.ProjectID, in.RecordID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			return false, httperr.ErrBusiness("record_not_found")
		}
		return false, err
	}

	s, _, err := domain.Decode(form.FieldValue(in.FieldPath))
	if err != nil {
		s = nil
	}

	open, err := domain.IsOpen(s, in.Weekday, in.Time)
	if err != nil {
		return false, httperr.ErrBusiness("invalid_time")
	}
	return open, nil
}
