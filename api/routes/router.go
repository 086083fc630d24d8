package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/doxacleaning/doxa-backend/api/controllers"
	"github.com/doxacleaning/doxa-backend/api/middleware"
	"github.com/doxacleaning/doxa-backend/internal/auth"
	"github.com/doxacleaning/doxa-backend/internal/customers"
	"github.com/doxacleaning/doxa-backend/internal/jobs"
	"github.com/doxacleaning/doxa-backend/pkg/config"
	"github.com/doxacleaning/doxa-backend/pkg/enums"
	"github.com/doxacleaning/doxa-backend/pkg/logger"
	"github.com/doxacleaning/doxa-backend/pkg/metrics"
	"github.com/doxacleaning/doxa-backend/pkg/redis"
)

// Deps carries everything the router mounts. redisClient and httpMetrics may
// be nil; the corresponding middleware then becomes a pass-through.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	Redis            *redis.Client
	Metrics          *metrics.HTTPMetrics
	AuthService      auth.Service
	RegisterService  auth.RegisterService
	JobsService      jobs.Service
	CustomersService customers.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	startedAt := time.Now()
	r.Get("/", controllers.Home(cfg))
	r.Get("/api/health", controllers.Health(cfg, startedAt))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateLimitStore(deps.Redis), logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateLimitStore(deps.Redis), logg)).
			Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
	})

	r.Route("/api/jobs", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.With(middleware.RequireOwnerOrAdmin(logg)).
			Get("/my-jobs", controllers.JobsListMine(deps.JobsService, logg))
		r.Patch("/{jobID}/complete", controllers.JobsComplete(deps.JobsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))
			r.Post("/", controllers.JobsCreate(deps.JobsService, logg))
			r.Get("/", controllers.JobsList(deps.JobsService, logg))
			r.Patch("/{jobID}", controllers.JobsUpdate(deps.JobsService, logg))
			r.Delete("/{jobID}", controllers.JobsDelete(deps.JobsService, logg))
		})
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.RequireRole(enums.RoleAdmin, logg),
		)
		r.Post("/", controllers.CustomersCreate(deps.CustomersService, logg))
		r.Get("/", controllers.CustomersList(deps.CustomersService, logg))
		r.Get("/{customerID}", controllers.CustomersGet(deps.CustomersService, logg))
		r.Patch("/{customerID}", controllers.CustomersUpdate(deps.CustomersService, logg))
		r.Delete("/{customerID}", controllers.CustomersDelete(deps.CustomersService, logg))
	})

	return r
}

// rateLimitStore narrows the redis client to the middleware's interface while
// keeping a typed nil from sneaking past the middleware's nil check.
func rateLimitStore(client *redis.Client) middleware.RateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}
