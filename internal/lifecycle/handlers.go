package lifecycle

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"destiny-backend/internal/auth"
	"destiny-backend/internal/common/utils"
	"destiny-backend/internal/matching"
)

type Handler struct {
	service Service
	journey *JourneyService
}

func NewHandler(service Service, journey *JourneyService) *Handler {
	return &Handler{service: service, journey: journey}
}

func (h *Handler) GetJourneyState(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status, err := h.journey.GetJourneyState(r.Context(), uid)
	if err != nil {
		if errors.Is(err, matching.ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve journey state")
		return
	}

	utils.RespondWithData(w, http.StatusOK, status)
}

func (h *Handler) SaveMeetingDecision(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	var dto SaveDecisionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	decision, err := h.service.SaveMeetingDecision(r.Context(), matchID, uid, dto.Decision)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDecision):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save decision")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, decision)
}

func (h *Handler) GetPartnerMeetingDecision(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	decision, err := h.service.GetPartnerMeetingDecision(r.Context(), matchID, uid)
	if err != nil {
		switch {
		case errors.Is(err, ErrDecisionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotParticipant):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get partner decision")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, decision)
}

func (h *Handler) ResolveOutcome(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	if _, err := participantOf(matchID, uid); err != nil {
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
		return
	}

	result, err := h.service.ResolveOutcome(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, ErrNotParticipant) {
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve outcome")
		return
	}

	utils.RespondWithData(w, http.StatusOK, result)
}
