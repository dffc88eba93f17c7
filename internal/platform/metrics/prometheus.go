package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsManager holds the service's Prometheus metrics. A nil manager is
// valid and records nothing.
type MetricsManager struct {
	Registry                 *prometheus.Registry
	PropertiesCreatedTotal   prometheus.Counter
	PropertiesDeletedTotal   prometheus.Counter
	EnquiriesSubmittedTotal  prometheus.Counter
	MediaUploadsTotal        *prometheus.CounterVec
	MediaDeleteFailuresTotal *prometheus.CounterVec
	HTTPRequestsTotal        *prometheus.CounterVec
	HTTPRequestLatency       *prometheus.HistogramVec
}

func NewMetricsManager(serviceName string) *MetricsManager {
	ns := strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()

	m := &MetricsManager{
		Registry: registry,
		PropertiesCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "properties_created_total",
			Help:      "Total number of listings created.",
		}),
		PropertiesDeletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "properties_deleted_total",
			Help:      "Total number of listings deleted.",
		}),
		EnquiriesSubmittedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "enquiries_submitted_total",
			Help:      "Total number of enquiries submitted.",
		}),
		MediaUploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "media_uploads_total",
			Help:      "Media uploads by kind and result.",
		}, []string{"kind", "result"}),
		MediaDeleteFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "media_delete_failures_total",
			Help:      "Media deletions that failed and were left behind.",
		}, []string{"kind"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.PropertiesCreatedTotal,
		m.PropertiesDeletedTotal,
		m.EnquiriesSubmittedTotal,
		m.MediaUploadsTotal,
		m.MediaDeleteFailuresTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsManager) PropertyCreated() {
	if m != nil {
		m.PropertiesCreatedTotal.Inc()
	}
}

func (m *MetricsManager) PropertyDeleted() {
	if m != nil {
		m.PropertiesDeletedTotal.Inc()
	}
}

func (m *MetricsManager) EnquirySubmitted() {
	if m != nil {
		m.EnquiriesSubmittedTotal.Inc()
	}
}

func (m *MetricsManager) MediaUpload(kind string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.MediaUploadsTotal.WithLabelValues(kind, result).Inc()
}

func (m *MetricsManager) MediaDeleteFailed(kind string) {
	if m != nil {
		m.MediaDeleteFailuresTotal.WithLabelValues(kind).Inc()
	}
}

func (m *MetricsManager) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPRequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// StartMetricsServer serves /metrics on port in the background and returns
// the server so the caller can shut it down. An empty port disables it.
func StartMetricsServer(port string, log *logger.Logger, registry *prometheus.Registry) *http.Server {
	if port == "" {
		log.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Prometheus metrics server failed", zap.Error(err))
		}
	}()
	return server
}
