package feedback

import (
	"github.com/gorilla/mux"

	"github.com/emberlyhq/emberly-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/feedback").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.SubmitFeedback).Methods("POST")
	api.HandleFunc("/analysis", handler.GetAnalysis).Methods("GET")
	api.HandleFunc("/predict", handler.Predict).Methods("POST")
}
