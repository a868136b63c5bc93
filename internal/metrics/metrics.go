// Package metrics counts what a sync run did and exports the counters in
// the Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/errors"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/tokens"
)

const namespace = "tokenxml"

// Recorder holds the counters for one run.
type Recorder struct {
	registry    *prometheus.Registry
	records     *prometheus.CounterVec
	setLines    prometheus.Counter
	doubleFaced prometheus.Counter
	diagnostics *prometheus.CounterVec
	duration    prometheus.Gauge
	lastRun     prometheus.Gauge
}

// New creates a Recorder whose series carry the set code as a constant label.
func New(setCode string) *Recorder {
	labels := prometheus.Labels{"set": strings.ToLower(setCode)}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "records_total",
			Help:        "Normalized upstream records by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		setLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "set_lines_appended_total",
			Help:        "Provenance lines appended to existing catalog entries.",
			ConstLabels: labels,
		}),
		doubleFaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "double_faced_records_total",
			Help:        "Upstream records with two faces.",
			ConstLabels: labels,
		}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "diagnostics_total",
			Help:        "Records skipped or flagged for manual review.",
			ConstLabels: labels,
		}, []string{"kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "run_duration_seconds",
			Help:        "Wall time of the last run.",
			ConstLabels: labels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_run_timestamp_seconds",
			Help:        "Unix time the last run finished.",
			ConstLabels: labels,
		}),
	}
	r.registry.MustRegister(r.records, r.setLines, r.doubleFaced, r.diagnostics, r.duration, r.lastRun)
	return r
}

// Observe counts one outcome. It is meant to be passed to tokens.WithObserver.
func (r *Recorder) Observe(o tokens.Outcome) {
	if o.IsReprint() {
		r.records.WithLabelValues("reprint").Inc()
		r.setLines.Add(float64(o.Matches))
		return
	}
	r.records.WithLabelValues("new").Inc()
}

// Finish records the run-level totals of result.
func (r *Recorder) Finish(result *tokens.Result, elapsed time.Duration) {
	r.doubleFaced.Add(float64(result.DoubleFacedCount))
	for _, diag := range result.Diagnostics {
		r.diagnostics.WithLabelValues(diagnosticKind(diag)).Inc()
	}
	r.duration.Set(elapsed.Seconds())
	r.lastRun.SetToCurrentTime()
}

// WriteTextfile writes every series to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func diagnosticKind(err error) string {
	switch {
	case errors.IsMissingImage(err):
		return "missing_image"
	case errors.IsUnclassifiable(err):
		return "manual_review"
	default:
		return "other"
	}
}
