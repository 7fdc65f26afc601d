package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fraccio_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Signup counter
	SignupCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fraccio_signup_total",
			Help: "Total number of invite signups",
		},
	)

	// Invite operation counter
	InviteCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraccio_invite_operations_total",
			Help: "Total number of invite operations",
		},
		[]string{"operation"}, // "create", "accept", "revoke", "expired"
	)

	// Checkout session counter
	CheckoutCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraccio_checkout_sessions_total",
			Help: "Total number of Stripe checkout sessions by outcome",
		},
		[]string{"outcome"}, // "created", "failed"
	)

	// Webhook event counter
	WebhookEventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraccio_webhook_events_total",
			Help: "Total number of Stripe webhook events by type and outcome",
		},
		[]string{"type", "outcome"}, // outcome: "processed", "duplicate", "ignored", "error"
	)

	// Payment status transition counter
	PaymentStatusCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraccio_payment_status_total",
			Help: "Total number of payment status transitions",
		},
		[]string{"status"}, // "completed", "failed", "cancelled"
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraccio_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraccio_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // "login_failure", "invalid_token", "profile_not_found" etc.
	)

	// Tenant-specific error counter
	TenantErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fraccio_tenant_errors_total",
			Help: "Total number of tenant-related errors",
		},
		[]string{"tenant", "error_type"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraccio_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fraccio_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fraccio_info",
			Help: "Information about the service",
		},
		[]string{"version"},
	)

	// Active tenants
	ActiveTenantsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fraccio_active_tenants",
			Help: "Number of registered tenants",
		},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(SignupCounter)
	prometheus.MustRegister(InviteCounter)
	prometheus.MustRegister(CheckoutCounter)
	prometheus.MustRegister(WebhookEventCounter)
	prometheus.MustRegister(PaymentStatusCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(TenantErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(ActiveTenantsGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordTenantError records a tenant-related error by tenant path
func RecordTenantError(tenantPath, errorType string) {
	TenantErrorCounter.With(prometheus.Labels{
		"tenant":     tenantPath,
		"error_type": errorType,
	}).Inc()
}

// RecordInviteOperation records an invite lifecycle operation
func RecordInviteOperation(operation string) {
	InviteCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordCheckout records a checkout session attempt by outcome
func RecordCheckout(outcome string) {
	CheckoutCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// RecordWebhookEvent records a Stripe webhook delivery by type and outcome
func RecordWebhookEvent(eventType, outcome string) {
	WebhookEventCounter.With(prometheus.Labels{
		"type":    eventType,
		"outcome": outcome,
	}).Inc()
}

// RecordPaymentStatus records a payment status transition
func RecordPaymentStatus(status string) {
	PaymentStatusCounter.With(prometheus.Labels{"status": status}).Inc()
}

// UpdateActiveTenants updates the active tenants gauge
func UpdateActiveTenants(count int) {
	ActiveTenantsGauge.Set(float64(count))
}
