package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const promMetricPrefix = "eda_"

var (
	datasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: promMetricPrefix + "dataset_loads_total",
			Help: "Dataset loads by result",
		},
		[]string{"result"},
	)
	loadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    promMetricPrefix + "dataset_load_seconds",
			Help:    "Time spent fetching and parsing the dataset",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
	filteredRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: promMetricPrefix + "filtered_records",
			Help: "Records in the most recent filtered view",
		},
	)
	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: promMetricPrefix + "exports_total",
			Help: "Exports by format and result",
		},
		[]string{"format", "result"},
	)
)

// Collectors returns the pipeline's prometheus collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{datasetLoads, loadDuration, filteredRecords, exportsTotal}
}

// RegisterMetrics registers the pipeline collectors, tolerating earlier registration.
func RegisterMetrics(reg prometheus.Registerer) {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			log.WithError(err).Error("Failed to register Prometheus metric")
		}
	}
}

func trackLoad(start time.Time, err error) {
	loadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		datasetLoads.WithLabelValues("failed").Inc()
		return
	}
	datasetLoads.WithLabelValues("ok").Inc()
}

func trackFiltered(n int) {
	filteredRecords.Set(float64(n))
}

func trackExport(format string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	exportsTotal.WithLabelValues(format, result).Inc()
}
