package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricNamespace = "dlist"

// Counters.
var (
	//nolint:gochecknoglobals
	pushFrontTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "push_front_total",
		Help:      "Total number of successful front insertions.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	pushBackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "push_back_total",
		Help:      "Total number of successful back insertions.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	popFrontTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "pop_front_total",
		Help:      "Total number of successful front removals.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	popBackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "pop_back_total",
		Help:      "Total number of successful back removals.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	traversalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "traversals_total",
		Help:      "Total number of full list traversals.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	allocationRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "allocation_rejected_total",
		Help:      "Total number of insertions rejected by the capacity bound.",
		Namespace: metricNamespace,
	})
)

// Gauges.
var (
	//nolint:gochecknoglobals
	liveNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "live_nodes",
		Help:      "Current number of live nodes across all workload lists.",
		Namespace: metricNamespace,
	})

	//nolint:gochecknoglobals
	peakLiveNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:      "peak_live_nodes",
		Help:      "Peak number of live nodes observed during the workload.",
		Namespace: metricNamespace,
	})
)

// Init initializes and registers the metrics.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
		Namespace: metricNamespace,
	}))

	reg.MustRegister(
		pushFrontTotal,
		pushBackTotal,
		popFrontTotal,
		popBackTotal,
		traversalsTotal,
		allocationRejectedTotal,

		liveNodes,
		peakLiveNodes,
	)
}

// Handler returns an HTTP handler serving all registered metrics from a
// dedicated registry.
func Handler() http.Handler {
	reg := prometheus.NewRegistry()
	Init(reg)

	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// AddPushFront increments the successful front insertions counter.
func AddPushFront(v int) {
	pushFrontTotal.Add(float64(v))
}

// AddPushBack increments the successful back insertions counter.
func AddPushBack(v int) {
	pushBackTotal.Add(float64(v))
}

// AddPopFront increments the successful front removals counter.
func AddPopFront(v int) {
	popFrontTotal.Add(float64(v))
}

// AddPopBack increments the successful back removals counter.
func AddPopBack(v int) {
	popBackTotal.Add(float64(v))
}

// AddTraversals increments the full traversals counter.
func AddTraversals(v int) {
	traversalsTotal.Add(float64(v))
}

// AddAllocationRejected increments the rejected insertions counter.
func AddAllocationRejected(v int) {
	allocationRejectedTotal.Add(float64(v))
}

// SetLiveNodes sets the live nodes gauge.
func SetLiveNodes(v int) {
	liveNodes.Set(float64(v))
}

// SetPeakLiveNodes sets the peak live nodes gauge.
func SetPeakLiveNodes(v int) {
	peakLiveNodes.Set(float64(v))
}
