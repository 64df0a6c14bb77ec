package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/freightdesk/freight_approval_app/internal/core/ports/services"
	"github.com/freightdesk/freight_approval_app/internal/dto"
	"github.com/freightdesk/freight_approval_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approverHandler handles HTTP requests for the approver directory.
type approverHandler struct {
	approverService portssvc.ApproverDirectorySvc
}

func newApproverHandler(as portssvc.ApproverDirectorySvc) *approverHandler {
	return &approverHandler{approverService: as}
}

// registerApproverRoutes registers the approver directory routes.
func registerApproverRoutes(rg *gin.RouterGroup, as portssvc.ApproverDirectorySvc) {
	h := newApproverHandler(as)

	rg.GET("/approvers", h.listApprovers)
}

// listApprovers godoc
// @Summary List the approval chain
// @Description Returns every approver ordered by level
// @Tags approvers
// @Produce  json
// @Success 200 {array} dto.ApproverResponse
// @Failure 500 {object} map[string]string "Failed to list approvers"
// @Security BearerAuth
// @Router /approvers [get]
func (h *approverHandler) listApprovers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	approvers, err := h.approverService.ListApprovers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list approvers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list approvers"})
		return
	}

	responses := make([]dto.ApproverResponse, len(approvers))
	for i, a := range approvers {
		responses[i] = dto.ApproverResponse{
			Level:       a.Level,
			UserID:      a.UserID,
			DisplayName: a.DisplayName,
			Email:       a.Email,
		}
	}
	c.JSON(http.StatusOK, responses)
}
