package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerhouse/bookkeeper/internal/apperrors"
	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
	"github.com/ledgerhouse/bookkeeper/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	transactionService portssvc.TransactionSvcFacade
	reportingService   portssvc.ReportingSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &accountHandler{
		accountService:     services.Account,
		transactionService: services.Transaction,
		reportingService:   services.Reporting,
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.getAccountTree)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
		accounts.GET("/:id/transaction-count", h.getTransactionCount)
		accounts.GET("/:id/transactions", h.listAccountTransactions)
		accounts.POST("/:id/quick-entry", h.quickEntry)
	}
}

// respondServiceError maps service errors onto HTTP status codes.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromContext(c)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnbalanced):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ": expected YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

func (h *accountHandler) getAccountTree(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	forest, err := h.reportingService.TreeWithBalances(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build account tree")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountNodeResponses(forest))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccountName(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondServiceError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) getAccountBalance(c *gin.Context) {
	asOf, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}

	guid := c.Param("id")
	balance, err := h.reportingService.AccountBalance(c.Request.Context(), guid, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to compute balance")
		return
	}

	resp := dto.AccountBalanceResponse{GUID: guid, Balance: balance}
	if asOf != nil {
		formatted := asOf.Format("2006-01-02")
		resp.AsOf = &formatted
	}
	c.JSON(http.StatusOK, resp)
}

func (h *accountHandler) getTransactionCount(c *gin.Context) {
	guid := c.Param("id")
	count, err := h.accountService.TransactionCount(c.Request.Context(), guid)
	if err != nil {
		respondServiceError(c, err, "Failed to count transactions")
		return
	}
	c.JSON(http.StatusOK, dto.TransactionCountResponse{GUID: guid, Count: count})
}

func (h *accountHandler) listAccountTransactions(c *gin.Context) {
	txns, err := h.transactionService.ListAccountTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list account transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *accountHandler) quickEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.QuickEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for QuickEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.transactionService.QuickEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to post quick entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
