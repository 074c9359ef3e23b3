package devmem

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prepd",
		Subsystem: "devmem",
		Name:      "loads_total",
		Help:      "Total load requests admitted",
	})

	exhaustedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prepd",
		Subsystem: "devmem",
		Name:      "load_exhausted_total",
		Help:      "Total load requests rejected because the minimum memory bound could not be met",
	})

	evictionsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prepd",
		Subsystem: "devmem",
		Name:      "evictions_total",
		Help:      "Total resources evicted to make room",
	})

	residentBytesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prepd",
		Subsystem: "devmem",
		Name:      "resident_bytes",
		Help:      "Bytes accounted to resident resources",
	})

	residentCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prepd",
		Subsystem: "devmem",
		Name:      "resident_count",
		Help:      "Number of resident resources",
	})
)

func init() {
	prometheus.MustRegister(loadsCounter, exhaustedCounter, evictionsCounter, residentBytesGauge, residentCountGauge)
}

// syncGauges refreshes the residency gauges. Callers hold m.mu.
func (m *Manager) syncGauges() {
	residentBytesGauge.Set(float64(m.used))
	residentCountGauge.Set(float64(len(m.resident)))
}
