package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adityarao/billsync-backend/api/controllers"
	"github.com/adityarao/billsync-backend/api/middleware"
	"github.com/adityarao/billsync-backend/pkg/config"
	"github.com/adityarao/billsync-backend/pkg/logger"
	pkgredis "github.com/adityarao/billsync-backend/pkg/redis"
)

type RouterParams struct {
	Config        *config.Config
	Logger        *logger.Logger
	DBPinger      controllers.Pinger
	RedisPinger   controllers.Pinger
	IdempStore    pkgredis.IdempotencyStore
	IngestService controllers.IngestionService
	AuditService  controllers.AuditService
	Registry      *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, map[string]controllers.Pinger{
			"postgres": p.DBPinger,
			"redis":    p.RedisPinger,
		}))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(p.IdempStore, p.Logger, p.Config.Ingest.IdempotencyTTL))

		r.Route("/ingestions", func(r chi.Router) {
			r.Post("/", controllers.StartIngestion(p.IngestService, p.Config.Ingest.UploadDir, p.Logger))
			r.Get("/{jobID}", controllers.GetIngestion(p.IngestService, p.Logger))
		})

		r.Post("/audits/delta", controllers.AuditDelta(p.AuditService, p.Logger))
	})

	return r
}
