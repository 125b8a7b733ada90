package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "working_schedule"

// PrometheusRecorder implements Recorder using Prometheus counters.
type PrometheusRecorder struct {
	sessionsOpened *prom.CounterVec
	sessionsClosed prom.Counter
	operations     *prom.CounterVec
	fieldWrites    *prom.CounterVec
	reg            *prom.Registry
}

// NewPrometheusRecorder registers its collectors, plus the Go and process
// collectors, on reg. A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		reg: reg,
		sessionsOpened: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "Editor sessions opened, by raw value source and whether the default was used",
		}, []string{"source", "fallback"}),
		sessionsClosed: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_closed_total",
			Help:      "Editor sessions closed",
		}),
		operations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Schedule mutations applied, by operation and whether the schedule changed",
		}, []string{"op", "changed"}),
		fieldWrites: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "field_writes_total",
			Help:      "Writes of the schedule field into the host form",
		}, []string{"result"}),
	}

	reg.MustRegister(pr.sessionsOpened, pr.sessionsClosed, pr.operations, pr.fieldWrites)
	reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return pr
}

func (p *PrometheusRecorder) IncSessionOpened(source string, fallback bool) {
	p.sessionsOpened.WithLabelValues(source, strconv.FormatBool(fallback)).Inc()
}

func (p *PrometheusRecorder) IncOperation(op string, changed bool) {
	p.operations.WithLabelValues(op, strconv.FormatBool(changed)).Inc()
}

func (p *PrometheusRecorder) IncFieldWrite(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	p.fieldWrites.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) IncSessionClosed() {
	p.sessionsClosed.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}
