package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/session"
)

// Server represents the debug REST API server
type Server struct {
	agent   service.AgentService
	matches *session.Manager
	configs *config.Manager
	router  *mux.Router
}

// NewServer creates a new API server. Matches and configs are optional;
// their routes answer 404 when the backing manager is absent.
func NewServer(agent service.AgentService, matches *session.Manager, configs *config.Manager) *Server {
	s := &Server{
		agent:   agent,
		matches: matches,
		configs: configs,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Agent introspection
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/strategy", s.handleStrategy).Methods("GET")
	api.HandleFunc("/history", s.handleHistory).Methods("GET")

	// Match records
	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}", s.handleDeleteMatch).Methods("DELETE")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Agent Handlers

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.agent.Status())
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	status := s.agent.Status()

	response := map[string]interface{}{
		"round":    status.Round,
		"strategy": status.Strategy,
	}
	if status.Decision != nil {
		response["priority"] = status.Decision.Priority
		response["confidence"] = status.Decision.Confidence
		response["reason"] = status.Decision.Reason
		response["steps"] = status.Decision.Steps
		response["details"] = status.Decision.Details
	}

	respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := blackboard.DefaultHistoryCapacity
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	history := s.agent.Status().History
	if len(history) > limit {
		history = history[len(history)-limit:]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(history),
		"history": history,
	})
}

// Match Handlers

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	if s.matches == nil {
		respondError(w, http.StatusNotFound, "match tracking not enabled")
		return
	}

	records := s.matches.List()
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(records) {
			records = records[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"matches": records,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if s.matches == nil {
		respondError(w, http.StatusNotFound, "match tracking not enabled")
		return
	}

	record, err := s.matches.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if s.matches == nil {
		respondError(w, http.StatusNotFound, "match tracking not enabled")
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.matches.Delete(id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Match %s deleted", id),
	})
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	if s.configs == nil {
		respondError(w, http.StatusNotFound, "config management not enabled")
		return
	}

	configs, err := s.configs.ListConfigs()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if s.configs == nil {
		respondError(w, http.StatusNotFound, "config management not enabled")
		return
	}

	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")
	cfg, err := s.configs.LoadConfig(name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, config.ErrConfigNotFound) {
			status = http.StatusNotFound
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	if s.configs == nil {
		respondError(w, http.StatusNotFound, "config management not enabled")
		return
	}

	var cfg config.BotConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if cfg.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.configs.SaveConfig(cfg.Name, &cfg); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": cfg.Name,
	})
}

// Health check

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
