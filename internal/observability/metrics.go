package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for predictions and dataset loads.
type Metrics struct {
	Predictions        *prometheus.CounterVec // labels: severity
	PredictionErrors   *prometheus.CounterVec // labels: reason={invalid_input,unavailable,canceled}
	PredictionDuration prometheus.Histogram
	PredictionEnabled  prometheus.Gauge

	DatasetLoads   *prometheus.CounterVec // labels: origin, outcome={success,error}
	DatasetRecords prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_predictor",
			Name:      "predictions_total",
			Help:      "Simulated predictions served, by severity band.",
		}, []string{"severity"}),
		PredictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_predictor",
			Name:      "prediction_errors_total",
			Help:      "Prediction requests that did not produce a result.",
		}, []string{"reason"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_predictor",
			Name:      "prediction_duration_seconds",
			Help:      "Time to serve a prediction including the inference delay.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 1.5, 2, 5},
		}),
		PredictionEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_predictor",
			Name:      "prediction_enabled",
			Help:      "1 when the model was set up and predictions are served, 0 otherwise.",
		}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_predictor",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by origin and outcome.",
		}, []string{"origin", "outcome"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_predictor",
			Name:      "dataset_records",
			Help:      "Number of records in the current dataset snapshot.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Predictions,
		m.PredictionErrors,
		m.PredictionDuration,
		m.PredictionEnabled,
		m.DatasetLoads,
		m.DatasetRecords,
	)
	return m
}

// NewMetricsForTesting returns unregistered collectors so tests can create
// as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// RecordLoad tracks a dataset load attempt and, on success, the new size.
func (m *Metrics) RecordLoad(origin string, records int, err error) {
	if err != nil {
		m.DatasetLoads.WithLabelValues(origin, "error").Inc()
		return
	}
	m.DatasetLoads.WithLabelValues(origin, "success").Inc()
	m.DatasetRecords.Set(float64(records))
}
