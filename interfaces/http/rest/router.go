package rest

import (
	"context"
	"fmt"
	"net/http"

	"tournament-backend/infrastructure/config"
	"tournament-backend/infrastructure/di"
	"tournament-backend/interfaces/http/rest/controllers"
	"tournament-backend/interfaces/http/rest/middleware"
	"tournament-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router on top of the booted
// container. Routes are bound to controller names; how a controller comes
// into being depends on the boot mode.
type Router struct {
	container *di.Container
	cfg       *config.Config
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container, cfg *config.Config) *Router {
	return &Router{
		container: container,
		cfg:       cfg,
	}
}

// route binds an HTTP method and pattern to a registered controller name
type route struct {
	method  string
	pattern string
	name    string
}

func apiRoutes() []route {
	return []route{
		{http.MethodPost, "/tournaments", controllers.NameCreateTournament},
		{http.MethodGet, "/tournaments", controllers.NameListTournaments},
		{http.MethodGet, "/tournaments/{tournamentID}", controllers.NameGetTournament},
		{http.MethodPost, "/tournaments/{tournamentID}/players", controllers.NameRegisterPlayer},
		{http.MethodPost, "/tournaments/{tournamentID}/start", controllers.NameStartTournament},
		{http.MethodPost, "/matches/{matchID}/result", controllers.NameReportMatchResult},
	}
}

// Setup configures all routes and middleware. In eager mode controller
// construction failures surface here; in lazy mode they surface per request.
func (rt *Router) Setup(ctx context.Context) (http.Handler, error) {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.container.Logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	handlers := make(map[string]http.HandlerFunc)
	for _, rte := range apiRoutes() {
		h, err := rt.handler(ctx, rte.name)
		if err != nil {
			return nil, fmt.Errorf("route %s %s: %w", rte.method, rte.pattern, err)
		}
		handlers[rte.method+" "+rte.pattern] = h
	}

	router.Route("/api/v1", func(r chi.Router) {
		for _, rte := range apiRoutes() {
			r.Method(rte.method, rte.pattern, handlers[rte.method+" "+rte.pattern])
		}
	})

	return router, nil
}

// handler produces the http.HandlerFunc backing a controller name. Eager
// mode constructs the controller now; lazy mode defers to the first request
// and answers 500 if construction fails.
func (rt *Router) handler(ctx context.Context, name string) (http.HandlerFunc, error) {
	if rt.container.Mode == di.BootEager {
		controller, err := rt.container.Controllers.Create(ctx, name)
		if err != nil {
			return nil, err
		}
		return controller.Handle, nil
	}

	return func(w http.ResponseWriter, r *http.Request) {
		controller, err := rt.container.Controllers.Create(r.Context(), name)
		if err != nil {
			rt.container.Logger.Error("Failed to build controller",
				zap.String("controller", name),
				zap.Error(err),
			)
			common.RespondError(w, http.StatusInternalServerError, "CONTROLLER_UNAVAILABLE", "Service temporarily unavailable")
			return
		}
		controller.Handle(w, r)
	}, nil
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports whether the composition root booted
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
