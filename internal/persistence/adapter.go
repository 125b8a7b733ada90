package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/working-schedule/internal/domain/schedule"
	"github.com/BruksfildServices01/working-schedule/internal/metrics"
)

// FieldWriter commits a new value for one field of the host form.
type FieldWriter interface {
	SetFieldValue(ctx context.Context, path string, value any) error
}

// Adapter writes a Schedule into its host field as JSON text.
type Adapter struct {
	writer  FieldWriter
	path    string
	metrics metrics.Recorder
	log     *zap.Logger
}

func New(writer FieldWriter, path string, rec metrics.Recorder, log *zap.Logger) *Adapter {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		writer:  writer,
		path:    path,
		metrics: rec,
		log:     log,
	}
}

func (a *Adapter) Save(ctx context.Context, s schedule.Schedule) error {
	b, err := schedule.Encode(s)
	if err != nil {
		a.metrics.IncFieldWrite(false)
		return err
	}

	if err := a.writer.SetFieldValue(ctx, a.path, string(b)); err != nil {
		a.metrics.IncFieldWrite(false)
		a.log.Error("failed to write schedule field",
			zap.String("path", a.path),
			zap.Error(err),
		)
		return fmt.Errorf("write field %q: %w", a.path, err)
	}

	a.metrics.IncFieldWrite(true)
	a.log.Debug("schedule field written",
		zap.String("path", a.path),
		zap.Int("entries", len(s)),
		zap.Int("bytes", len(b)),
	)
	return nil
}
