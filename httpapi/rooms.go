package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clickduel/models"

	"github.com/go-chi/chi/v5"
)

const defaultListLimit = 50

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.Create(r.Context(), req.UserID, req.Username, req.BetAmount, req.ChannelID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, room)
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetRoom(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}

func (h *Handler) ListOpenRooms(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	rooms, err := h.rooms.ListOpenRooms(r.Context(), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rooms == nil {
		rooms = []*models.Room{}
	}

	respondJSON(w, http.StatusOK, rooms)
}

func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.JoinByID(r.Context(), chi.URLParam(r, "roomID"), req.UserID, req.Username)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}

func (h *Handler) MarkReady(w http.ResponseWriter, r *http.Request) {
	var req playerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.MarkReady(r.Context(), chi.URLParam(r, "roomID"), req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}

func (h *Handler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var req playerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.RecordClick(r.Context(), chi.URLParam(r, "roomID"), req.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}

// SettleRoom finishes an elapsed game. Anyone may call it; the service
// guarantees the wager settles exactly once.
func (h *Handler) SettleRoom(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.rooms.Settle(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settleResponse{
		Room:        outcome.Room,
		WinnerID:    outcome.WinnerID,
		Draw:        outcome.Draw,
		HostClicks:  outcome.HostClicks,
		GuestClicks: outcome.GuestClicks,
		BetAmount:   outcome.BetAmount,
	})
}

func (h *Handler) ShareRoom(w http.ResponseWriter, r *http.Request) {
	var req shareRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.Share(r.Context(), chi.URLParam(r, "roomID"), req.UserID, req.ChannelID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}
