package profile

import (
	"github.com/gorilla/mux"

	"github.com/emberlyhq/emberly-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/profile").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetProfile).Methods("GET")
	api.HandleFunc("/rebuild", handler.RebuildProfile).Methods("POST")
}
