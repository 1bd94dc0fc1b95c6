package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	classificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newstock_classifications_total",
			Help: "Items classified on save, by kind and range outcome",
		},
		[]string{"kind", "in_range"},
	)

	sweepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newstock_sweeps_total",
			Help: "Completed reconciliation sweep passes",
		},
	)

	sweepExpiriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newstock_sweep_expiries_total",
			Help: "Items de-classified by the reconciliation sweep",
		},
	)

	pinExpiriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newstock_pin_expiries_total",
			Help: "Manual-keep pins consumed by a sweep pass",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			classificationsTotal,
			sweepsTotal,
			sweepExpiriesTotal,
			pinExpiriesTotal,
		)
	})
}

// RecordClassification counts one on-save classification outcome.
func RecordClassification(kind string, inRange bool) {
	outcome := "no"
	if inRange {
		outcome = "yes"
	}
	classificationsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordSweep counts one completed sweep pass.
func RecordSweep() {
	sweepsTotal.Inc()
}

// RecordSweepExpiry counts one item expired by the sweep.
func RecordSweepExpiry() {
	sweepExpiriesTotal.Inc()
}

// RecordPinExpiry counts one consumed manual-keep pin.
func RecordPinExpiry() {
	pinExpiriesTotal.Inc()
}
