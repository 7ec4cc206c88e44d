package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"clickduel/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handler exposes the game over HTTP. It owns no business rules: requests
// are decoded and validated here, everything else is delegated to the
// services and their errors mapped onto status codes.
type Handler struct {
	rooms       service.RoomService
	ledger      service.LedgerService
	internalKey string
}

func New(rooms service.RoomService, ledger service.LedgerService, internalKey string) *Handler {
	return &Handler{
		rooms:       rooms,
		ledger:      ledger,
		internalKey: internalKey,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "x-internal-key"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", h.GetUser)
			r.Get("/rooms", h.ListUserRooms)
			r.Get("/ledger", h.GetLedger)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", h.CreateRoom)
			r.Get("/open/list", h.ListOpenRooms)

			r.Route("/{roomID}", func(r chi.Router) {
				r.Get("/", h.GetRoom)
				r.Post("/join", h.JoinRoom)
				r.Post("/ready", h.MarkReady)
				r.Post("/click", h.RecordClick)
				r.Post("/settle", h.SettleRoom)
				r.Post("/share", h.ShareRoom)
			})
		})

		r.Route("/internal", func(r chi.Router) {
			r.Use(h.requireInternalKey)
			r.Post("/init_user", h.InitUser)
			r.Post("/join", h.JoinByToken)
		})
	})

	return router
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireInternalKey gates service-to-service endpoints behind a shared key
func (h *Handler) requireInternalKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.internalKey == "" || r.Header.Get("x-internal-key") != h.internalKey {
			respondError(w, http.StatusUnauthorized, "invalid internal key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy onto status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAlreadyExpired):
		respondError(w, http.StatusGone, err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientFunds), errors.Is(err, service.ErrInsufficientFrozen):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		log.WithError(err).Error("Unhandled service error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
