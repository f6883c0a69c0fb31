package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/ecomlytics-backend/api/controllers"
	datasetcontrollers "github.com/angelmondragon/ecomlytics-backend/api/controllers/datasets"
	insightcontrollers "github.com/angelmondragon/ecomlytics-backend/api/controllers/insights"
	"github.com/angelmondragon/ecomlytics-backend/api/middleware"
	"github.com/angelmondragon/ecomlytics-backend/internal/dataset"
	insightssvc "github.com/angelmondragon/ecomlytics-backend/internal/insights"
	"github.com/angelmondragon/ecomlytics-backend/internal/narrative"
	"github.com/angelmondragon/ecomlytics-backend/pkg/config"
	"github.com/angelmondragon/ecomlytics-backend/pkg/logger"
	"github.com/angelmondragon/ecomlytics-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	store *dataset.Store,
	insightsService insightssvc.Service,
	narrativeService narrative.Service,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(registry, cfg.Metrics.Namespace)
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/datasets", func(r chi.Router) {
		r.Post("/", datasetcontrollers.Upload(store, cfg.Dataset.MaxUploadBytes, logg))
		r.Get("/current", datasetcontrollers.CurrentProfile(store, logg))
	})

	r.Route("/api/v1/insights", func(r chi.Router) {
		r.Get("/kpis", insightcontrollers.KPIs(insightsService, logg))
		r.Get("/timeseries", insightcontrollers.TimeSeries(insightsService, logg))
		r.Get("/breakdown", insightcontrollers.Breakdown(insightsService, logg))
		r.Post("/compare", insightcontrollers.Compare(insightsService, logg))
		r.Post("/decomposition", insightcontrollers.Decompose(insightsService, logg))
		r.Get("/anomaly", insightcontrollers.AnomalyCheck(insightsService, logg))
		r.Post("/narrative", insightcontrollers.Narrative(narrativeService, logg))
	})

	return r
}
