package matching

import (
	"errors"
	"net/http"

	"destiny-backend/internal/auth"
	"destiny-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetDestinyCandidate returns the requester's single best match, or an empty
// list when nobody in the pool qualifies
func (h *Handler) GetDestinyCandidate(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	candidates, err := h.service.FindMatchCandidates(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to find match candidates")
		return
	}

	utils.RespondWithData(w, http.StatusOK, candidates)
}
