package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerhouse/bookkeeper/internal/core/ports/services"
	"github.com/ledgerhouse/bookkeeper/internal/dto"
	"github.com/ledgerhouse/bookkeeper/internal/middleware"
)

// purchaseHandler handles HTTP requests related to purchase orders.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

// registerPurchaseRoutes registers routes related to purchase orders.
func registerPurchaseRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &purchaseHandler{purchaseService: services.Purchase}

	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.POST("/:id/approve", h.approveOrder)
	}
}

func (h *purchaseHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.purchaseService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create purchase order")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(order))
}

func (h *purchaseHandler) getOrder(c *gin.Context) {
	order, err := h.purchaseService.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve purchase order")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(order))
}

func (h *purchaseHandler) listOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	orders, total, err := h.purchaseService.ListOrders(c.Request.Context(), page, perPage)
	if err != nil {
		respondServiceError(c, err, "Failed to list purchase orders")
		return
	}
	c.JSON(http.StatusOK, dto.PurchaseOrderListResponse{
		Orders:  dto.ToPurchaseOrderResponses(orders),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

func (h *purchaseHandler) approveOrder(c *gin.Context) {
	order, err := h.purchaseService.ApproveOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to approve purchase order")
		return
	}
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(order))
}
