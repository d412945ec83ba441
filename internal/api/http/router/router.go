// Package router assembles the HTTP surface: public token endpoints, admin
// sign-in and the JWT-protected admin API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eospatial/geoforestry/internal/api/http/handler"
	"github.com/eospatial/geoforestry/internal/api/http/middleware"
	"github.com/eospatial/geoforestry/internal/logger"
	"github.com/eospatial/geoforestry/internal/model"
)

// Router wires services into chi routes.
type Router struct {
	authService     handler.AuthService
	forestryService handler.ForestryService
	accessService   handler.AccessService
	sessions        model.SessionManager
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	forestryService handler.ForestryService,
	accessService handler.AccessService,
	sessions model.SessionManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		forestryService: forestryService,
		accessService:   accessService,
		sessions:        sessions,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// Handler builds the full route tree.
func (rt *Router) Handler() http.Handler {
	authHandler := handler.NewAuth(rt.authService, rt.contextManager, rt.logger)
	forestryHandler := handler.NewForestry(rt.forestryService, rt.logger)
	accessHandler := handler.NewAccess(rt.accessService, rt.logger)

	logging := middleware.NewLogging(rt.logger)
	authenticate := middleware.NewAuthenticate(rt.sessions, rt.contextManager, rt.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Post("/auth/sign-in", authHandler.SignIn)

	mux.Route("/api", func(api chi.Router) {
		// Capability token endpoints, no admin session required.
		api.Get("/forestry/{token}", accessHandler.GetForestry)
		api.Get("/forestry/{token}/validation", accessHandler.Validate)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(authenticate.Handle)

			admin.Route("/forestries", func(f chi.Router) {
				f.Get("/", forestryHandler.GetAll)
				f.Post("/", forestryHandler.Create)
				f.Get("/id/{id}", forestryHandler.GetByID)
				f.Get("/name/{name}", forestryHandler.GetByName)
				f.Get("/region/{region}", forestryHandler.GetByRegion)
				f.Get("/by-token-expiration", forestryHandler.ListByTokenExpiration)

				f.Patch("/{ref}", forestryHandler.Update)
				f.Delete("/{ref}", forestryHandler.Delete)

				f.Get("/{ref}/geojson", forestryHandler.GetGeometry)
				f.Post("/{ref}/geojson", forestryHandler.AttachGeometry)
				f.Delete("/{ref}/geojson", forestryHandler.ClearGeometry)

				f.Patch("/{ref}/token", forestryHandler.RegenerateToken)
				f.Patch("/{ref}/token/expiration", forestryHandler.UpdateTokenExpiration)
			})

			admin.Post("/users", authHandler.AddAdmin)
			admin.Patch("/users/{id}/password", authHandler.UpdatePassword)
		})
	})

	return mux
}
