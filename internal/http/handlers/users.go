package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fintrack-ai/fintrack-be/internal/http/respond"
	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/fintrack-ai/fintrack-be/internal/models/dto"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
	"github.com/shopspring/decimal"
)

const defaultCreditScore = 750

// UsersHandler owns account and profile endpoints.
type UsersHandler struct {
	store  storage.UserStore
	logger *slog.Logger
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(store storage.UserStore, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{store: store, logger: logger}
}

// Register attaches user routes to the mux.
func (h *UsersHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/users", h.handleCreate)
	mux.HandleFunc("GET /api/v1/users/me", h.handleMe)
	mux.HandleFunc("POST /api/v1/users/{user_id}/profile", h.handleUpdateProfile)
	mux.HandleFunc("DELETE /api/v1/users/{user_id}", h.handleDelete)
}

func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "user_id and name are required")
		return
	}

	user := models.User{
		UserID:      strings.TrimSpace(req.UserID),
		Name:        strings.TrimSpace(req.Name),
		CreditScore: defaultCreditScore,
		EPFBalance:  decimal.Zero,
		Permissions: models.AllowAll(),
	}
	if req.CreditScore != nil {
		user.CreditScore = *req.CreditScore
	}
	if req.EPFBalance != nil {
		user.EPFBalance = *req.EPFBalance
	}

	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "user already exists")
			return
		}
		h.logger.Error("create user", "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respond.JSON(w, http.StatusCreated, "User created successfully", userResponse(created))
}

func (h *UsersHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}
	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, err, "fetch user")
		return
	}
	respondJSON(w, http.StatusOK, userResponse(user))
}

func (h *UsersHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.CreditScore == nil && req.EPFBalance == nil {
		respond.Error(w, http.StatusBadRequest, "at least one of credit_score or epf_balance is required")
		return
	}

	update := storage.ProfileUpdate{CreditScore: req.CreditScore, EPFBalance: req.EPFBalance}
	if err := h.store.UpdateProfile(r.Context(), userID, update); err != nil {
		h.writeUserError(w, err, "update profile")
		return
	}
	respond.JSON(w, http.StatusOK, "Profile updated successfully", nil)
}

func (h *UsersHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if err := h.store.DeleteUser(r.Context(), userID); err != nil {
		h.writeUserError(w, err, "delete user")
		return
	}
	respond.JSON(w, http.StatusOK, "User account deleted successfully", nil)
}

func (h *UsersHandler) writeUserError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "user not found")
		return
	}
	h.logger.Error(op, "err", err)
	respond.Error(w, http.StatusInternalServerError, "database error")
}

func userResponse(user models.User) dto.UserResponse {
	// Synthesized address kept for frontend compatibility; there is no
	// email column in the schema.
	email := fmt.Sprintf("%s@financio.com",
		strings.ReplaceAll(strings.ToLower(user.Name), " ", "."))
	return dto.UserResponse{
		UserID:      user.UserID,
		Name:        user.Name,
		Email:       email,
		CreditScore: user.CreditScore,
		EPFBalance:  user.EPFBalance,
		Permissions: dto.PermissionsFromSet(user.Permissions),
	}
}
