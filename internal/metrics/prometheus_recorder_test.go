package metrics

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncSessionOpened("text", false)
	pr.IncSessionOpened("missing", true)
	pr.IncOperation("toggle_weekday", true)
	pr.IncOperation("toggle_weekday", true)
	pr.IncOperation("remove_entry", false)
	pr.IncFieldWrite(true)
	pr.IncFieldWrite(false)
	pr.IncSessionClosed()

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.operations.WithLabelValues("toggle_weekday", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.sessionsOpened.WithLabelValues("missing", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.fieldWrites.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.sessionsClosed))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncSessionOpened("text", false)
	r.IncOperation("x", true)
	r.IncFieldWrite(true)
	r.IncSessionClosed()
}
