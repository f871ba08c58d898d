package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fintrack-ai/fintrack-be/internal/auth"
	"github.com/fintrack-ai/fintrack-be/internal/http/respond"
	"github.com/fintrack-ai/fintrack-be/internal/models/dto"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
)

// TokenHandler exchanges a known user ID for a bearer token. Only
// registered when the JWT secret is configured.
type TokenHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewTokenHandler constructs the handler.
func NewTokenHandler(store storage.UserStore, tokens *auth.TokenManager, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{store: store, tokens: tokens, logger: logger}
}

// Register attaches the token route to the mux. Deliberately outside
// /api/v1 so the bearer gate does not lock callers out of minting.
func (h *TokenHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/token", h.handleMint)
}

func (h *TokenHandler) handleMint(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if _, err := h.store.GetUser(r.Context(), userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("mint token", "err", err)
		respond.Error(w, http.StatusInternalServerError, "database error")
		return
	}

	token, err := h.tokens.Generate(userID)
	if err != nil {
		h.logger.Error("mint token", "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}
