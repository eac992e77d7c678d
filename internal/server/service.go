// Package server is the HTTP surface over the extraction pipeline, the
// resolver and the Drive syncer.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/common"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/drive"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/export"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/index"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pipeline/docindex"
)

// Service wires the handlers to their collaborators. The syncer may be nil
// when Drive credentials are not configured.
type Service struct {
	cfg      *common.Config
	ex       *extract.Extractor
	pipe     *docindex.Pipeline
	store    index.Store
	syncer   *drive.Syncer
	exporter *export.Service
	metrics  *Metrics
	logger   *slog.Logger
}

func New(
	cfg *common.Config,
	ex *extract.Extractor,
	pipe *docindex.Pipeline,
	store index.Store,
	syncer *drive.Syncer,
	exporter *export.Service,
	metrics *Metrics,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		ex:       ex,
		pipe:     pipe,
		store:    store,
		syncer:   syncer,
		exporter: exporter,
		metrics:  metrics,
		logger:   logger,
	}
}

// Router builds the full handler chain: mux routes, request metrics, CORS.
func (s *Service) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/answer", s.handleAnswer).Methods(http.MethodPost)
	r.HandleFunc("/resolve", s.handleResolve).Methods(http.MethodGet)
	r.HandleFunc("/drive/sync", s.handleDriveSync).Methods(http.MethodPost)
	r.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Use(s.metricsMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(r)
}
