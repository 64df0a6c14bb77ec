package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/dto"
	"github.com/freightdesk/freight_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService    portssvc.OrderSvcFacade
	resolverService portssvc.OrderStateResolverSvc
	auditService    portssvc.AuditTrailSvcFacade
	editTokenSvc    portssvc.EditTokenSvcFacade
}

// newOrderHandler creates a new orderHandler.
func newOrderHandler(os portssvc.OrderSvcFacade, rs portssvc.OrderStateResolverSvc, as portssvc.AuditTrailSvcFacade, es portssvc.EditTokenSvcFacade) *orderHandler {
	return &orderHandler{
		orderService:    os,
		resolverService: rs,
		auditService:    as,
		editTokenSvc:    es,
	}
}

// registerOrderRoutes registers routes related to orders.
func registerOrderRoutes(rg *gin.RouterGroup, os portssvc.OrderSvcFacade, rs portssvc.OrderStateResolverSvc, as portssvc.AuditTrailSvcFacade, es portssvc.EditTokenSvcFacade) {
	h := newOrderHandler(os, rs, as, es)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.POST("/update", h.updateOrder)
		orders.GET("/:orderID", h.getOrder)
		orders.GET("/:orderID/scenario", h.getOrderScenario)
		orders.GET("/:orderID/audit", h.getOrderAuditTrail)
	}
}

// createOrder godoc
// @Summary Register a freight expense order
// @Description Creates a new order at approval level zero, owned by the caller
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create order", slog.String("plant", req.Plant))

	createdOrder, err := h.orderService.CreateOrder(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating order", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create order in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	logger.Info("Order created successfully", slog.String("order_id", createdOrder.OrderID))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(*createdOrder))
}

// getOrder godoc
// @Summary Get an order by ID
// @Description Retrieves a single freight expense order
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")
	logger = logger.With(slog.String("order_id", orderID))

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Order not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to get order from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}

// getOrderScenario godoc
// @Summary Resolve an order's approval scenario
// @Description Classifies the order as in progress, rejected needing reactivation, or fully approved. A rejected order is reactivated to its highest previously approved level as part of resolution.
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.ScenarioResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to resolve order state"
// @Security BearerAuth
// @Router /orders/{orderID}/scenario [get]
func (h *orderHandler) getOrderScenario(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")
	logger = logger.With(slog.String("order_id", orderID))
	logger.Info("Received request to resolve order scenario")

	resolution, err := h.resolverService.Resolve(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Order not found for scenario resolution")
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else if errors.Is(err, apperrors.ErrIntegrityViolation) {
			logger.Error("Order state integrity violation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Order state is inconsistent"})
		} else if errors.Is(err, apperrors.ErrTransientStorage) {
			logger.Warn("Transient storage failure resolving scenario", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary storage failure, please retry"})
		} else {
			logger.Error("Failed to resolve order scenario", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve order state"})
		}
		return
	}

	logger.Info("Order scenario resolved",
		slog.String("scenario", string(resolution.Scenario)),
		slog.Bool("reactivated", resolution.Reactivated))
	c.JSON(http.StatusOK, dto.ToScenarioResponse(*resolution))
}

// getOrderAuditTrail godoc
// @Summary List an order's audit trail
// @Description Returns the order's approval history oldest-first with token pagination
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.AuditTrailResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list audit trail"
// @Security BearerAuth
// @Router /orders/{orderID}/audit [get]
func (h *orderHandler) getOrderAuditTrail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	entries, newToken, err := h.auditService.ListByOrder(c.Request.Context(), orderID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list audit trail", slog.String("order_id", orderID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit trail"})
		return
	}

	resp := dto.AuditTrailResponse{
		Entries:   make([]dto.AuditEntryResponse, len(entries)),
		NextToken: newToken,
	}
	for i, e := range entries {
		resp.Entries[i] = dto.ToAuditEntryResponse(e)
	}
	c.JSON(http.StatusOK, resp)
}

// updateOrder godoc
// @Summary Apply a corrected order through an edit token
// @Description Consumes a validated edit request token and applies the corrected order data, recording a corrective action and an EDITED audit entry in one transaction
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   update body dto.UpdateOrderRequest true "Order update"
// @Success 200 {object} dto.UpdateOrderResponse
// @Failure 400 {object} dto.UpdateOrderResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} dto.UpdateOrderResponse "Order or token not found"
// @Failure 409 {object} dto.UpdateOrderResponse "Token already used or transition not allowed"
// @Failure 500 {object} dto.UpdateOrderResponse "Failed to update order"
// @Security BearerAuth
// @Router /orders/update [post]
func (h *orderHandler) updateOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.UpdateOrderResponse{Success: false, Message: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("order_id", req.OrderID), slog.String("edit_token_id", req.TokenID))

	err := h.editTokenSvc.UpdateOrder(c.Request.Context(), req, actorID)
	if err != nil {
		resp := dto.UpdateOrderResponse{Success: false, OrderID: req.OrderID, TokenID: req.TokenID}
		if errors.Is(err, apperrors.ErrNotFound) {
			resp.Message = "Order or edit token not found"
			c.JSON(http.StatusNotFound, resp)
		} else if errors.Is(err, apperrors.ErrAlreadyUsed) {
			logger.Warn("Edit token already used")
			resp.Message = "Edit token has already been used"
			c.JSON(http.StatusConflict, resp)
		} else if errors.Is(err, apperrors.ErrInvalidTransition) {
			logger.Warn("Edit update rejected", slog.String("error", err.Error()))
			resp.Message = "Order can no longer be edited"
			c.JSON(http.StatusConflict, resp)
		} else if errors.Is(err, apperrors.ErrValidation) {
			resp.Message = err.Error()
			c.JSON(http.StatusBadRequest, resp)
		} else {
			logger.Error("Failed to update order", slog.String("error", err.Error()))
			resp.Message = "Failed to update order"
			c.JSON(http.StatusInternalServerError, resp)
		}
		return
	}

	logger.Info("Order updated through edit token")
	c.JSON(http.StatusOK, dto.UpdateOrderResponse{
		Success: true,
		Message: "Order updated",
		OrderID: req.OrderID,
		TokenID: req.TokenID,
	})
}
