package bootstrap

import (
	"wellness-booking/internal/infra/metrics"
	"wellness-booking/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetricsRegistry,
		metrics.NewRecorder,
		func(r *metrics.Recorder) shared.Metrics { return r },
	),
)

// NewMetricsRegistry returns a private registry with the runtime collectors attached.
func NewMetricsRegistry() (*prometheus.Registry, prometheus.Registerer) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, reg
}
