package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway's prometheus collectors. Each instance has its
// own registry so several gateways can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	connections     prometheus.Gauge
	messages        *prometheus.CounterVec
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	rateLimited     prometheus.Counter
	prompts         prometheus.Counter
}

// NewMetrics creates and registers the gateway collectors
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.connections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "argot_gateway_connections",
			Help: "Open websocket connections",
		},
	)
	m.messages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argot_gateway_messages_total",
			Help: "Websocket messages received, partitioned by message type",
		}, []string{"type"},
	)
	m.commands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argot_commands_total",
			Help: "Executed command lines, partitioned by command and outcome code",
		}, []string{"command", "code"},
	)
	m.commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "argot_command_duration_seconds",
			Help:    "Time from receiving a command line to sending its reply, including prompts",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		}, []string{"command"},
	)
	m.rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "argot_gateway_rate_limited_total",
			Help: "Messages rejected by the per-connection rate limit",
		},
	)
	m.prompts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "argot_gateway_prompts_total",
			Help: "Follow-up questions sent to clients",
		},
	)

	m.registry.MustRegister(
		m.connections,
		m.messages,
		m.commands,
		m.commandDuration,
		m.rateLimited,
		m.prompts,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the metrics in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeCommand(command, code string, elapsed time.Duration) {
	if command == "" {
		command = "none"
	}
	m.commands.WithLabelValues(command, code).Inc()
	m.commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}
