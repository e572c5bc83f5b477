package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoelKishanX/payment/internal/middleware"
	"github.com/JoelKishanX/payment/internal/models"
	"github.com/JoelKishanX/payment/internal/query"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	Create(ctx context.Context, amount float64, description, payeeAddress string) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	Get(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, opts query.ListOptions) ([]models.Transaction, query.Pagination, error)
}

// StatsProvider serves the aggregate summary.
type StatsProvider interface {
	Summary(ctx context.Context) (*query.Summary, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
	stats    StatsProvider
}

type CreateTransactionRequest struct {
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Description  string  `json:"description"`
	PayeeAddress string  `json:"payeeAddress"`
}

type CreateTransactionResponse struct {
	TransactionID string        `json:"transactionId"`
	Status        models.Status `json:"status"`
}

type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   query.Pagination     `json:"pagination"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier, stats StatsProvider) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries, stats: stats}
}

// Register wires the handler's routes onto the engine.
func (h *TransactionHandler) Register(r *gin.Engine) {
	r.POST("/transactions", h.CreateTransaction)
	r.GET("/transactions", h.ListTransactions)
	r.GET("/transactions/:id", h.GetTransaction)
	r.GET("/stats", h.Stats)
	r.GET("/health", h.Health)
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	tx, err := h.commands.Create(c.Request.Context(), req.Amount, req.Description, req.PayeeAddress)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAmount) {
			middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, CreateTransactionResponse{
		TransactionID: tx.TransactionID,
		Status:        tx.Status,
	})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	tx, err := h.queries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrTransactionNotFound) {
			middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	page, err := parseIntParam(c.Query("page"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	limit, err := parseIntParam(c.Query("limit"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid limit parameter")
		return
	}
	startDate, err := parseDateParam(c.Query("startDate"), false)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid startDate parameter")
		return
	}
	endDate, err := parseDateParam(c.Query("endDate"), true)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid endDate parameter")
		return
	}

	records, pagination, err := h.queries.List(c.Request.Context(), query.ListOptions{
		Status:    c.Query("status"),
		StartDate: startDate,
		EndDate:   endDate,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{
		Transactions: records,
		Pagination:   pagination,
	})
}

func (h *TransactionHandler) Stats(c *gin.Context) {
	summary, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *TransactionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
