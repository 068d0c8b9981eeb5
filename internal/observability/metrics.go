package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "quickreg_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// StoreOperations tracks key-value store operations
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickreg_store_operations_total",
			Help: "Number of key-value store operations",
		},
		[]string{"operation", "status"},
	)

	// PhotoValidations tracks photo upload validation outcomes
	PhotoValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickreg_photo_validations_total",
			Help: "Number of photo validation attempts",
		},
		[]string{"result"},
	)

	// AuthAttempts tracks login attempts
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quickreg_auth_attempts_total",
			Help: "Number of admin login attempts",
		},
		[]string{"status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quickreg_active_connections",
			Help: "Number of active connections",
		},
	)
)
