// internal/insights/routes.go

package insights

import (
	"github.com/go-chi/chi/v5"

	"github.com/emberlyhq/emberly-backend/internal/auth"
)

// RegisterRoutes registers all insights routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/api/v1/insights/suggestions", handler.GetSuggestions)
	})
}
