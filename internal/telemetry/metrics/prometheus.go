package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus returns a registry with the runtime collectors and any extra ones given.
func SetupPrometheus(extra ...prometheus.Collector) (*prometheus.Registry, error) {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info, runtime metrics and process collectors.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, c := range extra {
		if err := promRegistry.Register(c); err != nil {
			return nil, err
		}
	}

	return promRegistry, nil
}
