package handlers

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/freightdesk/freight_approval_app/internal/apperrors"
	"github.com/freightdesk/freight_approval_app/internal/core/domain"
	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// actionLinkHandler serves the unauthenticated notification-link endpoints.
// The token in the URL is the sole credential; responses are human-readable
// HTML pages because the links are opened from email clients.
type actionLinkHandler struct {
	tokenService portssvc.ActionTokenSvcFacade
}

func newActionLinkHandler(ts portssvc.ActionTokenSvcFacade) *actionLinkHandler {
	return &actionLinkHandler{tokenService: ts}
}

// registerActionLinkRoutes sets up the public token-link routes.
func registerActionLinkRoutes(r *gin.Engine, ts portssvc.ActionTokenSvcFacade) {
	h := newActionLinkHandler(ts)

	// Rate limit: 30 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("30-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	actions := r.Group("/actions", middleware.RateLimit(ipLimiter))
	{
		actions.GET("", h.redeemSingle)
		actions.GET("/bulk", h.redeemBulk)
	}
}

// redeemSingle godoc
// @Summary Redeem a single-order action token
// @Description Consumes the token from a notification link and applies its fixed intent to the order. Renders an HTML result page.
// @Tags actions
// @Produce  html
// @Param   action query string true "approve or reject"
// @Param   token query string true "Plaintext token from the link"
// @Success 200 {string} string "Result page"
// @Router /actions [get]
func (h *actionLinkHandler) redeemSingle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	action := c.Query("action")
	token := c.Query("token")
	if (action != string(domain.IntentApprove) && action != string(domain.IntentReject)) || token == "" {
		renderActionPage(c, http.StatusBadRequest, "Invalid link", "<p>This link is malformed. Please use the link from your notification email.</p>")
		return
	}

	resolution, intent, err := h.tokenService.RedeemSingle(c.Request.Context(), token)
	if err != nil {
		status, title, msg := tokenErrorPage(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to redeem action token", slog.String("error", err.Error()))
		} else {
			logger.Warn("Action token redemption rejected", slog.String("error", err.Error()))
		}
		renderActionPage(c, status, title, "<p>"+html.EscapeString(msg)+"</p>")
		return
	}

	logger.Info("Action token redeemed",
		slog.String("order_id", resolution.OrderID),
		slog.String("intent", string(intent)),
		slog.String("scenario", string(resolution.Scenario)))

	var msg string
	if intent == domain.IntentReject {
		msg = fmt.Sprintf("Order %s has been rejected. The requester will be asked to correct and resubmit it.", html.EscapeString(resolution.OrderID))
	} else if resolution.Scenario == domain.ScenarioFullyApproved {
		msg = fmt.Sprintf("Order %s is now fully approved.", html.EscapeString(resolution.OrderID))
	} else {
		msg = fmt.Sprintf("Order %s approved at level %d of %d. The next approver has been determined.", html.EscapeString(resolution.OrderID), resolution.ActApprov, resolution.RequiredLevel)
	}
	renderActionPage(c, http.StatusOK, "Decision recorded", "<p>"+msg+"</p>")
}

// redeemBulk godoc
// @Summary Redeem a bulk action token
// @Description Consumes the token from a digest link and applies the chosen intent to every order in scope. Renders an HTML summary page with per-order failures itemized.
// @Tags actions
// @Produce  html
// @Param   action query string true "approve or reject"
// @Param   token query string true "Plaintext token from the link"
// @Success 200 {string} string "Summary page"
// @Router /actions/bulk [get]
func (h *actionLinkHandler) redeemBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	action := c.Query("action")
	token := c.Query("token")
	if (action != string(domain.IntentApprove) && action != string(domain.IntentReject)) || token == "" {
		renderActionPage(c, http.StatusBadRequest, "Invalid link", "<p>This link is malformed. Please use the link from your notification email.</p>")
		return
	}

	result, err := h.tokenService.ApplyBulk(c.Request.Context(), token, domain.ActionIntent(action))
	if err != nil {
		status, title, msg := tokenErrorPage(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to apply bulk action token", slog.String("error", err.Error()))
		} else {
			logger.Warn("Bulk token redemption rejected", slog.String("error", err.Error()))
		}
		renderActionPage(c, status, title, "<p>"+html.EscapeString(msg)+"</p>")
		return
	}

	logger.Info("Bulk action token applied",
		slog.Int("total", result.Total),
		slog.Int("successful", result.Successful),
		slog.Int("failed", result.Failed))

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Processed %d orders: %d successful, %d failed.</p>", result.Total, result.Successful, result.Failed)
	if len(result.PerOrderErrors) > 0 {
		b.WriteString("<ul>")
		for _, e := range result.PerOrderErrors {
			fmt.Fprintf(&b, "<li>Order %s: %s</li>", html.EscapeString(e.OrderID), html.EscapeString(e.Reason))
		}
		b.WriteString("</ul>")
	}
	renderActionPage(c, http.StatusOK, "Decisions recorded", b.String())
}

// tokenErrorPage maps the token error taxonomy to a user-facing page. The
// messages for not-found, already-used and expired are deliberately distinct.
func tokenErrorPage(err error) (int, string, string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Link not valid", "This link is not valid."
	case errors.Is(err, apperrors.ErrAlreadyUsed):
		return http.StatusConflict, "Link already used", "This link has already been used. Each link works exactly once."
	case errors.Is(err, apperrors.ErrExpired):
		return http.StatusGone, "Link expired", "This link has expired. Please request a new notification."
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, "No action needed", "This order can no longer be actioned."
	case errors.Is(err, apperrors.ErrTransientStorage):
		return http.StatusServiceUnavailable, "Temporary problem", "We could not process your decision right now. Please try the link again in a moment."
	default:
		return http.StatusInternalServerError, "Something went wrong", "We could not process your decision. Please contact support."
	}
}

func renderActionPage(c *gin.Context, status int, title string, bodyHTML string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<h1>%s</h1>
%s
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), bodyHTML)
	c.Data(status, "text/html; charset=utf-8", []byte(page))
}
