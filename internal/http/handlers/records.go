package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fintrack-ai/fintrack-be/internal/http/respond"
	"github.com/fintrack-ai/fintrack-be/internal/models"
	"github.com/fintrack-ai/fintrack-be/internal/models/dto"
	"github.com/fintrack-ai/fintrack-be/internal/storage"
)

const (
	defaultTransactionLimit = 50
	recentTransactionLimit  = 5
)

// RecordsHandler owns financial-record CRUD and the dashboard summary.
type RecordsHandler struct {
	records storage.RecordStore
	logger  *slog.Logger
}

// NewRecordsHandler constructs the handler.
func NewRecordsHandler(records storage.RecordStore, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{records: records, logger: logger}
}

// Register attaches record routes to the mux.
func (h *RecordsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/transactions", h.handleListTransactions)
	mux.HandleFunc("GET /api/v1/transactions/recent", h.handleRecentTransactions)
	mux.HandleFunc("POST /api/v1/transactions", h.handleCreateTransaction)
	mux.HandleFunc("POST /api/v1/assets", h.handleCreateAsset)
	mux.HandleFunc("POST /api/v1/liabilities", h.handleCreateLiability)
	mux.HandleFunc("POST /api/v1/investments", h.handleCreateInvestment)
	mux.HandleFunc("GET /api/v1/dashboard/summary", h.handleSummary)
}

func (h *RecordsHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	limit := defaultTransactionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respond.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	h.listTransactions(w, r, userID, limit)
}

func (h *RecordsHandler) handleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	h.listTransactions(w, r, userID, recentTransactionLimit)
}

func (h *RecordsHandler) listTransactions(w http.ResponseWriter, r *http.Request, userID string, limit int) {
	transactions, err := h.records.ListTransactions(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("list transactions", "err", err)
		respond.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	views := make([]dto.TransactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, dto.TransactionView{
			Date:     t.Date.Format("2006-01-02"),
			Name:     t.Description,
			Category: t.Category,
			Amount:   t.Amount,
			Type:     t.Type,
		})
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *RecordsHandler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Type) == "" {
		respond.Error(w, http.StatusBadRequest, "category and type are required")
		return
	}

	input := storage.TransactionInput{
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Type:        req.Type,
	}
	if err := h.records.CreateTransaction(r.Context(), userID, input); err != nil {
		h.writeCreateError(w, err, "create transaction")
		return
	}
	respond.JSON(w, http.StatusCreated, "Transaction created", nil)
}

func (h *RecordsHandler) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	var req dto.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	asset := models.Asset{UserID: userID, Name: req.Name, Type: req.Type, Value: req.Value}
	if err := h.records.CreateAsset(r.Context(), asset); err != nil {
		h.writeCreateError(w, err, "create asset")
		return
	}
	respond.JSON(w, http.StatusCreated, "Asset created", nil)
}

func (h *RecordsHandler) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	var req dto.CreateLiabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	balance, ok := req.Balance()
	if !ok || strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "name and outstanding_balance are required")
		return
	}
	liability := models.Liability{UserID: userID, Name: req.Name, Type: req.Type, OutstandingBalance: balance}
	if err := h.records.CreateLiability(r.Context(), liability); err != nil {
		h.writeCreateError(w, err, "create liability")
		return
	}
	respond.JSON(w, http.StatusCreated, "Liability created", nil)
}

func (h *RecordsHandler) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	var req dto.CreateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	value, ok := req.Value()
	if !ok || strings.TrimSpace(req.Name) == "" {
		respond.Error(w, http.StatusBadRequest, "name and current_value are required")
		return
	}
	investment := models.Investment{
		UserID:       userID,
		Name:         req.Name,
		Ticker:       req.Ticker,
		Type:         req.Type,
		Quantity:     req.Quantity,
		CurrentValue: value,
	}
	if err := h.records.CreateInvestment(r.Context(), investment); err != nil {
		h.writeCreateError(w, err, "create investment")
		return
	}
	respond.JSON(w, http.StatusCreated, "Investment created", nil)
}

func (h *RecordsHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	summary, err := h.records.Summary(r.Context(), userID)
	if err != nil {
		h.logger.Error("dashboard summary", "err", err)
		respond.Error(w, http.StatusInternalServerError, "database error")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *RecordsHandler) requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		respond.Error(w, http.StatusBadRequest, "user_id query parameter is required")
		return "", false
	}
	return userID, true
}

func (h *RecordsHandler) writeCreateError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "user not found")
		return
	}
	h.logger.Error(op, "err", err)
	respond.Error(w, http.StatusInternalServerError, "database error")
}
