package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/wricardo/rover-mission/mission/catalog"
	"github.com/wricardo/rover-mission/mission/control"
	"github.com/wricardo/rover-mission/mission/engine"
	"github.com/wricardo/rover-mission/mission/service"
	"github.com/wricardo/rover-mission/transport/mcp"
	"github.com/wricardo/rover-mission/transport/websocket"
)

// maxBodySize limits mission uploads
const maxBodySize = 1 << 20

// Server represents the REST API server
type Server struct {
	service service.MissionService
	mcp     *mcp.Server
	logger  zerolog.Logger
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(missionService service.MissionService, logger zerolog.Logger) *Server {
	s := &Server{
		service: missionService,
		mcp:     mcp.NewServer(missionService),
		logger:  logger,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Ad-hoc missions
	api.HandleFunc("/simulate", s.handleSimulate).Methods("POST")
	api.HandleFunc("/validate", s.handleValidate).Methods("POST")

	// Catalog
	api.HandleFunc("/missions", s.handleListMissions).Methods("GET")
	api.HandleFunc("/missions/{id}", s.handleGetMission).Methods("GET")
	api.HandleFunc("/missions/{id}/run", s.handleRunMission).Methods("POST")

	// Streaming and MCP
	s.router.Handle("/ws", websocket.NewHandler(s.service, s.logger))
	s.router.HandleFunc("/mcp", s.handleMCP).Methods("POST")

	s.router.Use(s.logRequests)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r)
	})
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

// statusFor maps mission errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrInvalidDimensions),
		errors.Is(err, engine.ErrInvalidPosition),
		errors.Is(err, engine.ErrUnknownInstruction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrMissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidMission):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoCatalog):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// missionRequest is the JSON body of the simulation endpoints
type missionRequest struct {
	Input  string `json:"input"`
	Policy string `json:"policy,omitempty"`
}

// decodeMission reads either a JSON body or raw mission text
func decodeMission(w http.ResponseWriter, r *http.Request) (missionRequest, error) {
	req := missionRequest{Policy: r.URL.Query().Get("policy")}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return req, errors.New("failed to read request body")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var decoded missionRequest
		if err := json.Unmarshal(body, &decoded); err != nil {
			return req, errors.New("invalid request body")
		}
		if decoded.Policy == "" {
			decoded.Policy = req.Policy
		}
		req = decoded
	} else {
		req.Input = string(body)
	}

	if req.Input == "" {
		return req, errors.New("mission input is required")
	}
	return req, nil
}

// Simulation Handlers

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMission(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy, err := control.ParsePolicy(req.Policy)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Simulate(r.Context(), req.Input, service.RunOptions{Policy: policy})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeMission(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Validate(r.Context(), req.Input)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Catalog Handlers

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := s.service.ListMissions(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if missions == nil {
		missions = []*service.MissionInfo{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(missions),
		"missions": missions,
	})
}

func (s *Server) handleGetMission(w http.ResponseWriter, r *http.Request) {
	missionID := mux.Vars(r)["id"]

	detail, err := s.service.GetMission(r.Context(), missionID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRunMission(w http.ResponseWriter, r *http.Request) {
	missionID := mux.Vars(r)["id"]

	var req struct {
		Policy string `json:"policy,omitempty"`
	}
	req.Policy = r.URL.Query().Get("policy")
	if r.Body != nil {
		// An empty body is fine; the policy may come from the query string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	policy, err := control.ParsePolicy(req.Policy)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.RunMission(r.Context(), missionID, service.RunOptions{Policy: policy})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// MCP Handler

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := s.mcp.HandleMessage(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	responseData, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Write(responseData)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
