package negotiation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"destiny-backend/internal/auth"
	"destiny-backend/internal/common/utils"
)

type Handler struct {
	service Service
	hub     *Hub
}

func NewHandler(service Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) Propose(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	var dto ProposeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	proposal, err := h.service.Propose(r.Context(), matchID, dto.Attribute, uid, dto.Value)
	if err != nil {
		respondNegotiationError(w, err, "Failed to create proposal")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, proposal)
}

func (h *Handler) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	var dto AcceptProposalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	proposal, err := h.service.AcceptProposal(r.Context(), matchID, dto.Attribute, uid)
	if err != nil {
		respondNegotiationError(w, err, "Failed to accept proposal")
		return
	}

	utils.RespondWithData(w, http.StatusOK, proposal)
}

func (h *Handler) CounterOffer(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	var dto CounterOfferDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	proposal, err := h.service.RejectWithCounterOffer(r.Context(), matchID, dto.Attribute, uid, dto.Value)
	if err != nil {
		respondNegotiationError(w, err, "Failed to counter-offer")
		return
	}

	utils.RespondWithData(w, http.StatusOK, proposal)
}

func (h *Handler) GetProposalStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchId"]
	attribute := vars["attribute"]

	proposal, err := h.service.GetProposalStatus(r.Context(), matchID, attribute)
	if err != nil {
		respondNegotiationError(w, err, "Failed to get proposal")
		return
	}
	if proposal == nil {
		utils.RespondWithError(w, http.StatusNotFound, ErrNoProposal.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, proposal)
}

func (h *Handler) ConfirmMeeting(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	meeting, err := h.service.ConfirmMeeting(r.Context(), matchID, uid)
	if err != nil {
		respondNegotiationError(w, err, "Failed to confirm meeting")
		return
	}

	utils.RespondWithData(w, http.StatusOK, meeting)
}

func (h *Handler) GetConfirmedMeeting(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	meeting, err := h.service.GetConfirmedMeeting(r.Context(), matchID)
	if err != nil {
		respondNegotiationError(w, err, "Failed to get meeting")
		return
	}

	utils.RespondWithData(w, http.StatusOK, meeting)
}

func respondNegotiationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUnknownAttribute):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotParticipant):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNoProposal), errors.Is(err, ErrMeetingNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCounterOffer):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrMeetingNotReady):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
