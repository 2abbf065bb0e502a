package journey

import (
	"github.com/gorilla/mux"

	"github.com/emberlyhq/emberly-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/journey").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetJourney).Methods("GET")
	api.HandleFunc("/milestones", handler.ListMilestones).Methods("GET")
	api.HandleFunc("/milestones", handler.CreateMilestone).Methods("POST")
	api.HandleFunc("/milestones/detect", handler.DetectMilestones).Methods("GET")
	api.HandleFunc("/milestones/{id:[0-9]+}/celebrate", handler.CelebrateMilestone).Methods("POST")
}
