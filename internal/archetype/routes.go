package archetype

import (
	"github.com/gorilla/mux"

	"github.com/emberlyhq/emberly-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/archetype").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetAssignment).Methods("GET")
	api.HandleFunc("", handler.UpsertAssignment).Methods("PUT")
}
