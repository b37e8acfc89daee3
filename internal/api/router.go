package api

import (
	"log/slog"
	"time"

	"github.com/elbenfreund/armyimp/internal/api/handlers"
	"github.com/elbenfreund/armyimp/internal/api/middleware"
	"github.com/elbenfreund/armyimp/internal/cache"
	"github.com/elbenfreund/armyimp/internal/catalog"
	"github.com/elbenfreund/armyimp/internal/roster"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	CacheTTL       time.Duration
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow all in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	catalogService := catalog.NewService(cfg.DB, cfg.Logger)
	rosterService := roster.NewService(cfg.DB, cfg.Logger)
	unitCache := cache.New(cfg.Redis, cfg.CacheTTL, cfg.Logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	unitHandler := handlers.NewUnitHandler(catalogService, unitCache)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	armyHandler := handlers.NewArmyHandler(cfg.DB)
	armyUnitHandler := handlers.NewArmyUnitHandler(cfg.DB, rosterService)

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Catalog (read-only)
		r.Get("/organizations", catalogHandler.ListOrganizations)
		r.Route("/items", func(r chi.Router) {
			r.Get("/", catalogHandler.ListItems)
			r.Get("/{id}/price", catalogHandler.GetItemPrice)
		})
		r.Route("/units", func(r chi.Router) {
			r.Get("/", unitHandler.List)
			r.Get("/{id}", unitHandler.Get)
		})

		// Compositions
		r.Route("/armies", func(r chi.Router) {
			r.Get("/", armyHandler.List)
			r.Post("/", armyHandler.Create)
			r.Get("/{id}", armyHandler.Get)
			r.Delete("/{id}", armyHandler.Delete)
			r.Get("/{id}/units", armyUnitHandler.ListForArmy)
			r.Post("/{id}/units", armyUnitHandler.Build)
		})
		r.Route("/army-units", func(r chi.Router) {
			r.Get("/{id}", armyUnitHandler.Get)
			r.Delete("/{id}", armyUnitHandler.Delete)
		})
	})

	return &Router{r}
}
