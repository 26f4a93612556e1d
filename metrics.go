package main

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "seinou"

// resultMetrics exposes one resultSet as gauges on a private registry, laid
// out for node_exporter's textfile collector.
type resultMetrics struct {
	registry *prometheus.Registry

	phaseSeconds  *prometheus.GaugeVec
	intGops       *prometheus.GaugeVec
	floatGflops   *prometheus.GaugeVec
	memoryGBps    prometheus.Gauge
	geometricMean prometheus.Gauge
	info          *prometheus.GaugeVec
}

func newResultMetrics() *resultMetrics {
	m := &resultMetrics{registry: prometheus.NewRegistry()}

	m.phaseSeconds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "phase_seconds",
		Help:      "Target duration of a benchmark phase in seconds.",
	}, []string{"phase"})
	m.intGops = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "int_gops",
		Help:      "Integer throughput in billions of operations per second.",
	}, []string{"phase"})
	m.floatGflops = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "float_gflops",
		Help:      "Floating-point throughput in billions of operations per second.",
	}, []string{"phase"})
	m.memoryGBps = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "memory_gbps",
		Help:      "Aggregate memory copy bandwidth in GB/s.",
	})
	m.geometricMean = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "geometric_mean",
		Help:      "Composite score: geometric mean of single-core, multi-core and memory figures.",
	})
	m.info = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "info",
		Help:      "Host the benchmark ran on. Always 1.",
	}, []string{"os", "arch", "cpu", "threads"})

	m.registry.MustRegister(m.phaseSeconds, m.intGops, m.floatGflops, m.memoryGBps, m.geometricMean, m.info)
	return m
}

func (m *resultMetrics) observe(r resultSet) {
	for _, p := range []struct {
		name string
		res  phaseResult
	}{
		{"single_core", r.SingleCore},
		{"multi_core", r.MultiCore},
	} {
		m.phaseSeconds.WithLabelValues(p.name).Set(p.res.Seconds)
		m.intGops.WithLabelValues(p.name).Set(p.res.GopsInt)
		m.floatGflops.WithLabelValues(p.name).Set(p.res.GFlops)
	}
	m.phaseSeconds.WithLabelValues("memory_bw").Set(r.MemoryBW.Seconds)
	m.memoryGBps.Set(r.MemoryBW.GBps)
	m.geometricMean.Set(r.GeometricMean)
	m.info.WithLabelValues(r.OS, r.Arch, r.CPUName, strconv.Itoa(r.Threads)).Set(1)
}

func writePrometheus(path string, r resultSet) error {
	m := newResultMetrics()
	m.observe(r)
	return prometheus.WriteToTextfile(path, m.registry)
}
