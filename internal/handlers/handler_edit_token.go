package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/dto"
	"github.com/freightdesk/freight_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// editTokenHandler handles the edit request token lifecycle endpoints.
type editTokenHandler struct {
	editTokenSvc portssvc.EditTokenSvcFacade
}

// newEditTokenHandler creates a new editTokenHandler.
func newEditTokenHandler(es portssvc.EditTokenSvcFacade) *editTokenHandler {
	return &editTokenHandler{editTokenSvc: es}
}

// registerEditTokenRoutes registers the edit token dispatch route. The four
// lifecycle operations share one endpoint selected by the action query param,
// matching the links embedded in notification emails.
func registerEditTokenRoutes(rg *gin.RouterGroup, es portssvc.EditTokenSvcFacade) {
	h := newEditTokenHandler(es)

	rg.GET("/edit-tokens", h.dispatch)
	rg.POST("/edit-tokens", h.dispatch)
}

// dispatch godoc
// @Summary Edit token lifecycle dispatch
// @Description Drives one step of the edit token lifecycle selected by the action param: create (orderId param, caller is the requester), approve (tokenId form field, caller is the approver), validate (token and orderId params), mark_used (tokenId param)
// @Tags edit-tokens
// @Accept  json
// @Produce  json
// @Param   action query string true "One of create, approve, validate, mark_used"
// @Success 200 {object} dto.EditTokenResponse
// @Failure 400 {object} dto.EditTokenResponse "Unknown action or missing parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} dto.EditTokenResponse "Order or token not found"
// @Failure 409 {object} dto.EditTokenResponse "Transition not allowed"
// @Security BearerAuth
// @Router /edit-tokens [get]
func (h *editTokenHandler) dispatch(c *gin.Context) {
	switch c.Query("action") {
	case "create":
		h.create(c)
	case "approve":
		h.approve(c)
	case "validate":
		h.validate(c)
	case "mark_used":
		h.markUsed(c)
	default:
		c.JSON(http.StatusBadRequest, dto.EditTokenResponse{Success: false, Message: "Unknown action"})
	}
}

func (h *editTokenHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Query("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, dto.EditTokenResponse{Success: false, Message: "orderId is required"})
		return
	}

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := h.editTokenSvc.CreateEditToken(c.Request.Context(), orderID, requesterID)
	if err != nil {
		h.respondError(c, err, "create")
		return
	}

	logger.Info("Edit token created", slog.String("edit_token_id", token.TokenID), slog.String("order_id", orderID))
	c.JSON(http.StatusOK, dto.EditTokenResponse{
		Success: true,
		Message: "Edit token created",
		TokenID: token.TokenID,
		OrderID: token.OrderID,
		Status:  string(token.Status),
	})
}

func (h *editTokenHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApproveEditTokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.EditTokenResponse{Success: false, Message: "tokenId is required"})
		return
	}

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := h.editTokenSvc.ApproveEditToken(c.Request.Context(), req.TokenID, approverID)
	if err != nil {
		h.respondError(c, err, "approve")
		return
	}

	logger.Info("Edit token approved", slog.String("edit_token_id", token.TokenID), slog.String("approver_id", approverID))
	c.JSON(http.StatusOK, dto.EditTokenResponse{
		Success: true,
		Message: "Edit token approved",
		TokenID: token.TokenID,
		OrderID: token.OrderID,
		Status:  string(token.Status),
	})
}

func (h *editTokenHandler) validate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID := c.Query("token")
	orderID := c.Query("orderId")
	if tokenID == "" || orderID == "" {
		c.JSON(http.StatusBadRequest, dto.EditTokenResponse{Success: false, Message: "token and orderId are required"})
		return
	}

	token, err := h.editTokenSvc.ValidateEditToken(c.Request.Context(), tokenID, orderID)
	if err != nil {
		h.respondError(c, err, "validate")
		return
	}

	logger.Info("Edit token validated", slog.String("edit_token_id", token.TokenID))
	c.JSON(http.StatusOK, dto.EditTokenResponse{
		Success: true,
		Message: "Edit token validated",
		TokenID: token.TokenID,
		OrderID: token.OrderID,
		Status:  string(token.Status),
	})
}

func (h *editTokenHandler) markUsed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tokenID := c.Query("tokenId")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, dto.EditTokenResponse{Success: false, Message: "tokenId is required"})
		return
	}

	if err := h.editTokenSvc.MarkEditTokenUsed(c.Request.Context(), tokenID); err != nil {
		h.respondError(c, err, "mark_used")
		return
	}

	logger.Info("Edit token marked used", slog.String("edit_token_id", tokenID))
	c.JSON(http.StatusOK, dto.EditTokenResponse{
		Success: true,
		Message: "Edit token marked used",
		TokenID: tokenID,
		Status:  string(domain.EditTokenUsed),
	})
}

func (h *editTokenHandler) respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.EditTokenResponse{Success: false, Message: "Order or token not found"})
	} else if errors.Is(err, apperrors.ErrAlreadyUsed) {
		c.JSON(http.StatusConflict, dto.EditTokenResponse{Success: false, Message: "Edit token has already been used"})
	} else if errors.Is(err, apperrors.ErrInvalidTransition) {
		logger.Warn("Edit token transition rejected", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.EditTokenResponse{Success: false, Message: "Transition not allowed from the token's current state"})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, dto.EditTokenResponse{Success: false, Message: err.Error()})
	} else {
		logger.Error("Edit token action failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.EditTokenResponse{Success: false, Message: "Internal error"})
	}
}
