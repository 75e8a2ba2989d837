package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the process-wide Prometheus registry and the service info gauge.
type Registry struct {
	*prometheus.Registry
	Info *prometheus.GaugeVec
}

// New creates a registry carrying Go runtime and process collectors plus a
// gliblio_info gauge labelled with the active lookup backend.
func New(backend string) *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	info := promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
		Name: "gliblio_info",
		Help: "Static service information",
	}, []string{"lookup_backend"})
	info.WithLabelValues(backend).Set(1)
	return &Registry{Registry: reg, Info: info}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}
