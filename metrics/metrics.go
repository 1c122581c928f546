package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// REST metrics
	RESTCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valr_rest_calls_total",
			Help: "Total number of REST API calls",
		},
		[]string{"endpoint", "status"},
	)

	RESTErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valr_rest_errors_total",
			Help: "Total number of REST API errors",
		},
		[]string{"endpoint", "error_type"}, // error_type: auth|rate_limited|validation|api|network
	)

	// WebSocket metrics
	WSMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valr_ws_messages_total",
			Help: "Total number of WebSocket messages received",
		},
		[]string{"session", "type"},
	)

	WSReconnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valr_ws_reconnects_total",
			Help: "Total number of WebSocket reconnection attempts",
		},
		[]string{"session"},
	)

	WSConnected = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "valr_ws_connected",
			Help: "Whether the WebSocket session is currently connected (1/0)",
		},
		[]string{"session"},
	)
)

// Register registers all metrics with the given registry,
// or the default registry when nil
func Register(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	reg.MustRegister(
		RESTCalls,
		RESTErrors,
		WSMessages,
		WSReconnects,
		WSConnected,
	)
}

// Handler returns an HTTP handler exposing the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
