package courtship

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
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SendLetter(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto SendLetterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	letter, err := h.service.SendLetter(r.Context(), uid, &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateLetter):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrCannotLetterSelf):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send letter")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, letter)
}

func (h *Handler) GetReceivedLetters(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	letters, err := h.service.GetReceivedLetters(r.Context(), uid)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get letters")
		return
	}

	utils.RespondWithData(w, http.StatusOK, letters)
}

func (h *Handler) MarkLetterRead(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	letterID := mux.Vars(r)["id"]

	letter, err := h.service.MarkLetterRead(r.Context(), uid, letterID)
	if err != nil {
		switch {
		case errors.Is(err, ErrLetterNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrUnauthorized):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark letter read")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, letter)
}

func (h *Handler) AcceptMatch(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var dto AcceptMatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.AcceptMatch(r.Context(), uid, dto.PartnerUID)
	if err != nil {
		if errors.Is(err, ErrCannotMatchSelf) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to accept match")
		return
	}

	utils.RespondWithData(w, http.StatusOK, record)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	matchID := mux.Vars(r)["matchId"]

	record, err := h.service.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get match")
		return
	}

	if !record.HasUser(uid) {
		utils.RespondWithError(w, http.StatusForbidden, ErrUnauthorized.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, record)
}
