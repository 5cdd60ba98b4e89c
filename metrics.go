package qsim

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

/*
Metrics records gate applications and measurements for one or more states.
The same numbers are available as a plain map through ExportMetrics and as
Prometheus collectors once Register has been called.
*/
type Metrics struct {
	mu                  sync.RWMutex
	GatesApplied        int64
	GateErrors          int64
	Measurements        int64
	TotalApplyTime      time.Duration
	AverageApplyLatency time.Duration
	P95ApplyLatency     time.Duration
	P99ApplyLatency     time.Duration
	Outcomes            map[int]int64

	latencies  []time.Duration
	windowSize int

	applyLatency  *prometheus.HistogramVec
	gatesTotal    *prometheus.CounterVec
	measurements  prometheus.Counter
	amplitudeSize prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		Outcomes:   make(map[int]int64),
		latencies:  make([]time.Duration, 0, 1000), // Store last 1000 measurements
		windowSize: 1000,
		applyLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qsim_gate_apply_latency_seconds",
			Help:    "Latency of applying a gate to a state vector",
			Buckets: prometheus.DefBuckets,
		}, []string{"mode"}),
		gatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "qsim_gates_applied_total",
			Help: "Total gate applications",
		}, []string{"status"}),
		measurements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "qsim_measurements_total",
			Help: "Total measurements that collapsed a state",
		}),
		amplitudeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "qsim_state_dimension",
			Help: "Dimension of the most recently updated state vector",
		}),
	}
}

// Register exposes the collectors on reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.applyLatency, m.gatesTotal, m.measurements, m.amplitudeSize} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) recordGate(startTime time.Time, dim int, parallel bool, err error) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.GateErrors++
		m.gatesTotal.WithLabelValues("error").Inc()
		return
	}

	m.GatesApplied++
	m.TotalApplyTime += duration
	m.updateLatencyPercentiles(duration)

	mode := "serial"
	if parallel {
		mode = "parallel"
	}
	m.applyLatency.WithLabelValues(mode).Observe(duration.Seconds())
	m.gatesTotal.WithLabelValues("success").Inc()
	m.amplitudeSize.Set(float64(dim))
}

func (m *Metrics) recordMeasurement(outcome int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Measurements++
	m.Outcomes[outcome]++
	m.measurements.Inc()
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageApplyLatency = (m.AverageApplyLatency*time.Duration(m.GatesApplied-1) + duration) / time.Duration(m.GatesApplied)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if len(sorted) > 0 {
		p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
		p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

		m.P95ApplyLatency = sorted[p95Index]
		m.P99ApplyLatency = sorted[p99Index]
	}
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"gates_applied":  m.GatesApplied,
		"gate_errors":    m.GateErrors,
		"measurements":   m.Measurements,
		"avg_latency_us": m.AverageApplyLatency.Microseconds(),
		"p95_latency_us": m.P95ApplyLatency.Microseconds(),
		"p99_latency_us": m.P99ApplyLatency.Microseconds(),
		"total_apply_ms": m.TotalApplyTime.Milliseconds(),
	}
}
