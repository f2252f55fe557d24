package matching

import (
	"github.com/gorilla/mux"

	"destiny-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matching").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/destiny", handler.GetDestinyCandidate).Methods("GET")
}
