package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fintrack-ai/fintrack-be/internal/agent"
	"github.com/fintrack-ai/fintrack-be/internal/http/respond"
	"github.com/fintrack-ai/fintrack-be/internal/models/dto"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
)

// ChatHandler fronts the natural-language query pipeline.
type ChatHandler struct {
	handle *agent.Handle
	// rebuild constructs a fresh pipeline for the reload endpoint.
	rebuild func() (agent.Asker, error)
	logger  *slog.Logger
}

// NewChatHandler constructs the handler. rebuild may be nil, in which
// case the reload endpoint reports failure.
func NewChatHandler(handle *agent.Handle, rebuild func() (agent.Asker, error), logger *slog.Logger) *ChatHandler {
	return &ChatHandler{handle: handle, rebuild: rebuild, logger: logger}
}

// Register attaches AI routes to the mux. limit, when non-nil, wraps the
// chat route only; the other AI routes never reach the hosted model.
func (h *ChatHandler) Register(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	chat := http.Handler(http.HandlerFunc(h.handleChat))
	if limit != nil {
		chat = limit(chat)
	}
	mux.Handle("POST /api/v1/ai/chat", chat)
	mux.HandleFunc("POST /api/v1/ai/reload", h.handleReload)
	mux.HandleFunc("GET /api/v1/ai/templates", h.handleTemplates)
}

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	pipeline, ok := h.handle.Load()
	if !ok {
		respond.Error(w, http.StatusServiceUnavailable, "AI assistant is not initialized")
		return
	}

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.UserID) == "" {
		respond.Error(w, http.StatusBadRequest, "question and user_id are required")
		return
	}

	answer, err := pipeline.Answer(r.Context(), req.UserID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, agent.ErrUpstreamModel), errors.Is(err, agent.ErrUpstreamExecution):
			h.logger.Error("chat pipeline failed", "user_id", req.UserID, "err", err)
			respond.Error(w, http.StatusBadGateway, "the assistant is temporarily unavailable, please try again")
		default:
			h.logger.Error("chat pipeline failed", "user_id", req.UserID, "err", err)
			respond.Error(w, http.StatusInternalServerError, "an internal error occurred")
		}
		return
	}

	respondJSON(w, http.StatusOK, dto.ChatResponse{
		UserID:   req.UserID,
		Question: req.Question,
		Answer:   answer,
	})
}

func (h *ChatHandler) handleReload(w http.ResponseWriter, r *http.Request) {
	if h.rebuild == nil {
		respond.Error(w, http.StatusServiceUnavailable, "reload is not configured")
		return
	}
	pipeline, err := h.rebuild()
	if err != nil {
		h.logger.Error("pipeline reload failed", "err", err)
		respond.Error(w, http.StatusInternalServerError, "failed to reload AI assistant")
		return
	}
	h.handle.Swap(pipeline)
	respond.JSON(w, http.StatusOK, "AI assistant reloaded", nil)
}

func (h *ChatHandler) handleTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, []dto.Template{
		{ID: "investment-review", Title: "Investment Portfolio Review", Category: "investment", Icon: "show_chart", Description: "Get personalized advice on your investment mix"},
		{ID: "budget-optimizer", Title: "Monthly Budget Optimizer", Category: "budgeting", Icon: "pie_chart", Description: "Optimize your monthly spending"},
		{ID: "spending-analysis", Title: "Spending Pattern Analysis", Category: "budgeting", Icon: "analytics", Description: "Analyze your spending habits"},
		{ID: "savings-goal", Title: "Savings Goal Planner", Category: "savings", Icon: "savings", Description: "Plan your savings goals"},
	})
}
