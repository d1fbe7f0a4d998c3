package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsManager holds the service's Prometheus collectors on a private registry.
type MetricsManager struct {
	Registry *prometheus.Registry

	StorageOpsTotal   *prometheus.CounterVec
	StorageOpLatency  *prometheus.HistogramVec
	CollectionUpdates *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec
	OrdersPlacedTotal prometheus.Counter
}

func NewMetricsManager(namespace string) *MetricsManager {
	registry := prometheus.NewRegistry()

	storageOpsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_operations_total",
		Help:      "Key-value storage operations by operation and result.",
	}, []string{"op", "result"})

	storageOpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "storage_operation_latency_seconds",
		Help:      "Latency of key-value storage operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	collectionUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_updates_total",
		Help:      "Persisted collection writes by key.",
	}, []string{"key"})

	httpRequestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	})

	registry.MustRegister(
		storageOpsTotal,
		storageOpLatency,
		collectionUpdates,
		httpRequestsTotal,
		httpLatency,
		ordersPlaced,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &MetricsManager{
		Registry:          registry,
		StorageOpsTotal:   storageOpsTotal,
		StorageOpLatency:  storageOpLatency,
		CollectionUpdates: collectionUpdates,
		HTTPRequestsTotal: httpRequestsTotal,
		HTTPLatency:       httpLatency,
		OrdersPlacedTotal: ordersPlaced,
	}
}

func (m *MetricsManager) ObserveStorageOp(op string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StorageOpsTotal.WithLabelValues(op, result).Inc()
	m.StorageOpLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *MetricsManager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Server exposes /metrics on its own port.
type Server struct {
	httpServer *http.Server
	log        logger.Logger
}

func NewServer(port string, m *MetricsManager, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.Infof("Prometheus metrics server starting on %s/metrics", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
