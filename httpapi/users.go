package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clickduel/models"

	"github.com/go-chi/chi/v5"
)

const defaultLedgerLimit = 20

func parseUserID(r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	return userID, err == nil && userID != 0
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) ListUserRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	rooms, err := h.rooms.ListUserRooms(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rooms == nil {
		rooms = []*models.Room{}
	}

	respondJSON(w, http.StatusOK, rooms)
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	limit := defaultLedgerLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.ledger.GetHistory(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*models.LedgerEntry{}
	}

	respondJSON(w, http.StatusOK, entries)
}

// InitUser upserts an account on behalf of a trusted frontend
func (h *Handler) InitUser(w http.ResponseWriter, r *http.Request) {
	var req initUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.ledger.EnsureAccount(r.Context(), req.UserID, req.Username)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// JoinByToken seats a guest via an invite token from a shared link
func (h *Handler) JoinByToken(w http.ResponseWriter, r *http.Request) {
	var req tokenJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room, err := h.rooms.JoinByToken(r.Context(), req.Token, req.UserID, req.Username)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}
