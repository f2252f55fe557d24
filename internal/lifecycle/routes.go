package lifecycle

import (
	"github.com/gorilla/mux"

	"destiny-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/lifecycle").Subrouter()
	api.Use(authMiddleware.Authenticate)

	if handler.journey != nil {
		api.HandleFunc("/journey", handler.GetJourneyState).Methods("GET")
	}

	api.HandleFunc("/{matchId}/decision", handler.SaveMeetingDecision).Methods("POST")
	api.HandleFunc("/{matchId}/partner-decision", handler.GetPartnerMeetingDecision).Methods("GET")
	api.HandleFunc("/{matchId}/outcome", handler.ResolveOutcome).Methods("GET")
}
