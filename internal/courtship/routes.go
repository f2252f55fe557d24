package courtship

import (
	"github.com/gorilla/mux"

	"destiny-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/courtship").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Letters
	api.HandleFunc("/letters", handler.SendLetter).Methods("POST")
	api.HandleFunc("/letters/received", handler.GetReceivedLetters).Methods("GET")
	api.HandleFunc("/letters/{id}/read", handler.MarkLetterRead).Methods("POST")

	// Matches
	api.HandleFunc("/matches/accept", handler.AcceptMatch).Methods("POST")
	api.HandleFunc("/matches/{matchId}", handler.GetMatch).Methods("GET")
}
