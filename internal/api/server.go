// Package api exposes the life simulation over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/user/vida-loka-life/internal/interfaces"
	"github.com/user/vida-loka-life/internal/persistence"
	"github.com/user/vida-loka-life/internal/types"
	"go.uber.org/zap"
)

// LifeLister lists saved lives. persistence.DB implements it.
type LifeLister interface {
	Lives(limit int) ([]persistence.LifeSummary, error)
}

// Server holds the HTTP handlers.
type Server struct {
	games  interfaces.GameManager
	lives  LifeLister
	logger *zap.Logger
}

// NewServer creates a server. lives may be nil when the store cannot list.
func NewServer(games interfaces.GameManager, lives LifeLister, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{games: games, lives: lives, logger: logger}
}

// Router builds the chi router.
func (s *Server) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Get("/actions", s.listActions)
	router.Route("/lives", func(r chi.Router) {
		r.Get("/", s.listLives)
		r.Post("/", s.startLife)
		r.Route("/{player}", func(r chi.Router) {
			r.Get("/", s.getLife)
			r.Get("/relationships", s.listRelationships)
			r.Post("/actions", s.resolveAction)
			r.Post("/age", s.advanceYear)
			r.Post("/choices", s.chooseOption)
			r.Post("/discover", s.discover)
		})
	})
	return router
}

type startLifeRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type actionRequest struct {
	TargetID string `json:"target_id"`
	ActionID string `json:"action_id"`
}

type choiceRequest struct {
	ChoiceID string `json:"choice_id"`
}

type discoverRequest struct {
	Kind types.DiscoverKind `json:"kind"`
}

type actionResponse struct {
	types.ActionResult
	Error string `json:"error,omitempty"`
}

type yearResponse struct {
	types.YearResult
	Error string `json:"error,omitempty"`
}

type choiceResponse struct {
	types.ChoiceResult
	Error string `json:"error,omitempty"`
}

type discoverResponse struct {
	types.DiscoverResult
	Error string `json:"error,omitempty"`
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.games.Actions())
}

func (s *Server) listLives(w http.ResponseWriter, r *http.Request) {
	if s.lives == nil {
		http.Error(w, "Listing lives is not supported by this store", http.StatusNotImplemented)
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	lives, err := s.lives.Lives(limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lives)
}

func (s *Server) startLife(w http.ResponseWriter, r *http.Request) {
	var req startLifeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	snap, err := s.games.StartLife(req.PlayerID, req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) getLife(w http.ResponseWriter, r *http.Request) {
	snap, err := s.games.GetLife(chi.URLParam(r, "player"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) listRelationships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	relType := types.RelationshipType(q.Get("type"))
	if relType != "" && !relType.Valid() {
		http.Error(w, "Unknown relationship type", http.StatusBadRequest)
		return
	}
	category := types.Category(q.Get("category"))
	switch category {
	case "", types.CategoryFamily, types.CategoryRomantic, types.CategoryFriends, types.CategoryWork:
	default:
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}

	graph, err := s.games.ListRelationships(chi.URLParam(r, "player"), relType, category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if graph == nil {
		graph = types.Graph{}
	}
	writeJSON(w, http.StatusOK, graph)
}

func (s *Server) resolveAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.games.ResolveAction(chi.URLParam(r, "player"), req.TargetID, req.ActionID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{ActionResult: res, Error: ErrorCode(res.Err)})
}

func (s *Server) advanceYear(w http.ResponseWriter, r *http.Request) {
	res, err := s.games.AdvanceYear(chi.URLParam(r, "player"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, yearResponse{YearResult: res, Error: ErrorCode(res.Err)})
}

func (s *Server) chooseOption(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.games.ChooseEventOption(chi.URLParam(r, "player"), req.ChoiceID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, choiceResponse{ChoiceResult: res, Error: ErrorCode(res.Err)})
}

func (s *Server) discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	res, err := s.games.Discover(chi.URLParam(r, "player"), req.Kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, discoverResponse{DiscoverResult: res, Error: ErrorCode(res.Err)})
}

// fail maps infrastructure errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, types.ErrPlayerNotFound) {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}
	s.logger.Error("Request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	http.Error(w, "Internal error", http.StatusInternalServerError)
}

// ErrorCode names the failure kind carried in a result, or "" for none.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, types.ErrDeceased):
		return "deceased"
	case errors.Is(err, types.ErrTargetNotFound):
		return "target_not_found"
	case errors.Is(err, types.ErrRequirementNotMet):
		return "requirement_not_met"
	case errors.Is(err, types.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, types.ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, types.ErrUnknownEvent):
		return "unknown_event"
	case errors.Is(err, types.ErrUnknownChoice):
		return "unknown_choice"
	}
	return "error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
