package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for CPF validation.
type Metrics struct {
	// Outcomes by result and failing rule
	Validations *prometheus.CounterVec

	// Cache lookups by hit, miss or error
	CacheLookups *prometheus.CounterVec

	ValidateLatency prometheus.Histogram
	BatchSize       prometheus.Histogram
}

// New creates the CPF metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credito_cpf_validations_total",
			Help: "Total CPF validations by outcome and reason",
		}, []string{"outcome", "reason"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credito_cpf_cache_lookups_total",
			Help: "Validation cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"

		ValidateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credito_cpf_validate_duration_seconds",
			Help:    "Duration of a single CPF validation including cache access",
			Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),

		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credito_cpf_batch_size",
			Help:    "Number of CPFs per batch validation request",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}
}

// IncrementValidation records one validation outcome; reason is empty for valid CPFs.
func (m *Metrics) IncrementValidation(valid bool, reason string) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "valid"
		reason = "none"
	}
	m.Validations.WithLabelValues(outcome, reason).Inc()
}

// IncrementCacheLookup records a cache lookup result.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// ObserveValidateLatency records the duration of one validation.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
