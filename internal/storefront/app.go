package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ModaVista/internal/auth"
	"ModaVista/internal/cart"
	"ModaVista/internal/catalog"
	"ModaVista/internal/store"
	"ModaVista/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
	Tracing        bool
}

// Deps are the domain services sharing one entity store.
type Deps struct {
	Store    *store.Store
	Catalog  *catalog.Service
	Auth     *auth.Service
	Sessions *auth.Sessions
	Cart     *cart.Service

	CookieSecure  bool
	LoginLimit    int
	RegisterLimit int
}

const readyTimeout = 2 * time.Second

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	catalogSrv := &catalog.Server{Catalog: deps.Catalog, Log: httpDeps.Log}
	authSrv := &auth.Server{
		Log:           httpDeps.Log,
		Auth:          deps.Auth,
		Sessions:      deps.Sessions,
		LoginLimit:    deps.LoginLimit,
		RegisterLimit: deps.RegisterLimit,
		CookieSecure:  deps.CookieSecure,
	}
	cartSrv := &cart.Server{Cart: deps.Cart, Log: httpDeps.Log}

	r.Route("/api", func(api chi.Router) {
		api.Mount("/", catalogSrv.Routes())
		api.Mount("/cart", chi.Chain(auth.RequireUser(deps.Sessions, httpDeps.Log)).Handler(cartSrv.Routes()))
		authRoutes := authSrv.Routes()
		for _, p := range []string{"/register", "/login", "/logout", "/user"} {
			api.Handle(p, authRoutes)
		}
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer(deps.Log))
	if deps.Tracing {
		r.Use(kit.Tracing(deps.Service))
	}
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware)

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Store.Ping(ctx); err != nil {
			log.Warn("readyz failed: store", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "store not ready", nil)
			return
		}

		if err := deps.Sessions.Store.Ping(ctx); err != nil {
			log.Warn("readyz failed: sessions", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "sessions not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
