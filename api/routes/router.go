package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harvestly/harvestly-backend/api/controllers"
	"github.com/harvestly/harvestly-backend/api/middleware"
	"github.com/harvestly/harvestly-backend/internal/cart"
	"github.com/harvestly/harvestly-backend/internal/marketplace"
	"github.com/harvestly/harvestly-backend/pkg/config"
	"github.com/harvestly/harvestly-backend/pkg/db"
	"github.com/harvestly/harvestly-backend/pkg/logger"
	"github.com/harvestly/harvestly-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	marketplaceService marketplace.Service,
	cartService cart.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// A nil *redis.Client must stay a nil interface so readiness skips it.
	var redisP redis.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/marketplace", func(r chi.Router) {
		r.Get("/offers", controllers.BrowseOffers(marketplaceService, cfg.Marketplace.MaxLimit, logg))
		r.Get("/categories", controllers.ListCategories(marketplaceService, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.BuyerContext(logg))
		r.Get("/", controllers.CartGet(cartService, logg))
		r.Post("/items", controllers.CartAddItem(cartService, logg))
		r.Post("/validate", controllers.CartValidate(cartService, logg))
	})

	return r
}
