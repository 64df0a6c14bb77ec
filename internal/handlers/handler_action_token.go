package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/dto"
	"github.com/freightdesk/freight_approval_app/internal/middleware"
	"github.com/freightdesk/freight_approval_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// actionTokenHandler handles the mint endpoint used by the notification
// sender before an outbound email goes out.
type actionTokenHandler struct {
	tokenService   portssvc.ActionTokenSvcFacade
	actionTokenTTL time.Duration
	bulkTokenTTL   time.Duration
}

func newActionTokenHandler(ts portssvc.ActionTokenSvcFacade, cfg *config.Config) *actionTokenHandler {
	return &actionTokenHandler{
		tokenService:   ts,
		actionTokenTTL: cfg.ActionTokenTTL,
		bulkTokenTTL:   cfg.BulkTokenTTL,
	}
}

// registerNotificationRoutes registers the token mint route.
func registerNotificationRoutes(rg *gin.RouterGroup, cfg *config.Config, ts portssvc.ActionTokenSvcFacade) {
	h := newActionTokenHandler(ts, cfg)

	rg.POST("/notifications/tokens", h.mintToken)
}

// mintToken godoc
// @Summary Mint an action token for a notification link
// @Description Creates a single-use approval link credential. Exactly one of orderId and orderIds must be set; single tokens carry a fixed intent, bulk tokens leave the intent to the redeemer. The plaintext token is returned exactly once and never stored.
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   request body dto.MintActionTokenRequest true "Token scope"
// @Success 201 {object} dto.MintActionTokenResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to mint token"
// @Security BearerAuth
// @Router /notifications/tokens [post]
func (h *actionTokenHandler) mintToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MintActionTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MintToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	single := req.OrderID != ""
	bulk := len(req.OrderIDs) > 0
	if single == bulk {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of orderId and orderIds must be set"})
		return
	}

	var (
		plaintext string
		tokenID   string
		expiresAt time.Time
		err       error
	)
	if single {
		if req.Intent == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "intent is required for a single-order token"})
			return
		}
		ttl := h.actionTokenTTL
		if req.TTLSeconds != nil {
			ttl = time.Duration(*req.TTLSeconds) * time.Second
		}
		var token *domain.ActionToken
		plaintext, token, err = h.tokenService.MintSingle(c.Request.Context(), req.OrderID, domain.ActionIntent(req.Intent), req.RecipientID, ttl)
		if err == nil {
			tokenID, expiresAt = token.TokenID, token.ExpiresAt
		}
	} else {
		ttl := h.bulkTokenTTL
		if req.TTLSeconds != nil {
			ttl = time.Duration(*req.TTLSeconds) * time.Second
		}
		var token *domain.BulkActionToken
		plaintext, token, err = h.tokenService.MintBulk(c.Request.Context(), req.OrderIDs, req.RecipientID, ttl)
		if err == nil {
			tokenID, expiresAt = token.TokenID, token.ExpiresAt
		}
	}

	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to mint action token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mint token"})
		}
		return
	}

	logger.Info("Action token minted", slog.String("token_id", tokenID), slog.Bool("bulk", bulk))
	c.JSON(http.StatusCreated, dto.MintActionTokenResponse{
		Success:   true,
		Token:     plaintext,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	})
}
