package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tendant/oauth2-store/internal/docdb"
	"github.com/tendant/oauth2-store/internal/domain"
)

type createClientRequest struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"` // empty registers a public client
	RedirectURI  string   `json:"redirect_uri"`
	GrantTypes   []string `json:"grant_types"`
	UserID       string   `json:"user_id"`
	Scope        string   `json:"scope"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Scope    string `json:"scope"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ClientID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "client_id is required"})
		return
	}

	client := &domain.Client{
		ClientID:    req.ClientID,
		RedirectURI: req.RedirectURI,
		GrantTypes:  req.GrantTypes,
		UserID:      req.UserID,
		Scope:       req.Scope,
	}

	if err := s.storage.SetClientDetails(r.Context(), client, req.ClientSecret); err != nil {
		if errors.Is(err, docdb.ErrDuplicateKey) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "client already exists"})
			return
		}
		s.logger.Error("failed to create client", "client_id", req.ClientID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "store failure"})
		return
	}

	s.logger.Info("client registered", "client_id", req.ClientID, "public", req.ClientSecret == "")
	writeJSON(w, http.StatusCreated, client)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	client, err := s.storage.GetClientDetails(r.Context(), clientID)
	if err != nil {
		s.logger.Error("failed to get client", "client_id", clientID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "store failure"})
		return
	}
	if client == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "client not found"})
		return
	}

	writeJSON(w, http.StatusOK, client)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	if err := s.storage.SetUser(r.Context(), req.Username, req.Password, req.Scope); err != nil {
		if errors.Is(err, docdb.ErrDuplicateKey) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "user already exists"})
			return
		}
		s.logger.Error("failed to create user", "username", req.Username, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "store failure"})
		return
	}

	s.logger.Info("user registered", "username", req.Username)
	writeJSON(w, http.StatusCreated, domain.User{Username: req.Username, Scope: req.Scope})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
