package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters exposed on /metrics.
type Metrics struct {
	Requests    *prometheus.CounterVec
	Extractions prometheus.Counter
	SyncedFiles prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pds_http_requests_total",
			Help: "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		Extractions: factory.NewCounter(prometheus.CounterOpts{
			Name: "pds_extractions_total",
			Help: "Documents run through the extraction pipeline.",
		}),
		SyncedFiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "pds_drive_synced_files_total",
			Help: "Files processed by Drive sync runs.",
		}),
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Service) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if s.metrics != nil {
			s.metrics.Requests.WithLabelValues(r.URL.Path, strconv.Itoa(rec.status)).Inc()
		}
	})
}
