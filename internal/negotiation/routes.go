package negotiation

import (
	"github.com/gorilla/mux"

	"destiny-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/negotiation").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Proposal channels
	api.HandleFunc("/{matchId}/propose", handler.Propose).Methods("POST")
	api.HandleFunc("/{matchId}/accept", handler.AcceptProposal).Methods("POST")
	api.HandleFunc("/{matchId}/counter", handler.CounterOffer).Methods("POST")
	api.HandleFunc("/{matchId}/channels/{attribute}", handler.GetProposalStatus).Methods("GET")

	// Confirmed meeting
	api.HandleFunc("/{matchId}/confirm", handler.ConfirmMeeting).Methods("POST")
	api.HandleFunc("/{matchId}/meeting", handler.GetConfirmedMeeting).Methods("GET")

	// Realtime negotiation events
	if handler.hub != nil {
		api.HandleFunc("/ws", handler.hub.ServeWS).Methods("GET")
	}
}
