package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrack-ai/fintrack-be/internal/http/respond"
	"github.com/fintrack-ai/fintrack-be/internal/models/dto"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
)

// PermissionsHandler reads and writes the per-user category flags that
// gate what the assistant may disclose.
type PermissionsHandler struct {
	store  storage.UserStore
	logger *slog.Logger
}

// NewPermissionsHandler constructs the handler.
func NewPermissionsHandler(store storage.UserStore, logger *slog.Logger) *PermissionsHandler {
	return &PermissionsHandler{store: store, logger: logger}
}

// Register attaches permission routes to the mux.
func (h *PermissionsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/user/{user_id}/permissions", h.handleGet)
	mux.HandleFunc("PUT /api/v1/user/{user_id}/permissions", h.handleUpdate)
}

func (h *PermissionsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	perms, err := h.store.GetPermissions(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "fetch permissions")
		return
	}
	respondJSON(w, http.StatusOK, dto.PermissionsFromSet(perms))
}

func (h *PermissionsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	var req dto.Permissions
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.store.UpdatePermissions(r.Context(), userID, req.ToSet()); err != nil {
		h.writeError(w, err, "update permissions")
		return
	}
	respond.JSON(w, http.StatusOK, "Permissions updated", nil)
}

func (h *PermissionsHandler) writeError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "user not found")
		return
	}
	h.logger.Error(op, "err", err)
	respond.Error(w, http.StatusInternalServerError, "database error")
}
