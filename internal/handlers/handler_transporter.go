package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// TransporterHandler handles transporter vetting endpoints.
type TransporterHandler struct {
	transporterService portssvc.TransporterSvcFacade
}

func newTransporterHandler(ts portssvc.TransporterSvcFacade) *TransporterHandler {
	return &TransporterHandler{transporterService: ts}
}

// registerTransporterRoutes sets up the vetting routes.
func registerTransporterRoutes(rg *gin.RouterGroup, transporterService portssvc.TransporterSvcFacade) {
	h := newTransporterHandler(transporterService)

	transporters := rg.Group("/transporters")
	{
		transporters.GET("/pending", h.ListPending)
		transporters.GET("/:id", h.Details)
		transporters.POST("/:id/approve", h.Approve)
		transporters.POST("/:id/reject", h.Reject)
	}
}

// ListPending godoc
// @Summary List pending transporters
// @Description Lists transporters awaiting approval. Administrators only.
// @Tags transporters
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /transporters/pending [get]
func (h *TransporterHandler) ListPending(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	pending, err := h.transporterService.ListPendingTransporters(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(pending))
}

// Details godoc
// @Summary Transporter details
// @Description Retrieves a transporter with its fleet for vetting review. Administrators only.
// @Tags transporters
// @Produce json
// @Param id path string true "Transporter ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transporters/{id} [get]
func (h *TransporterHandler) Details(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	transporter, vehicles, err := h.transporterService.GetTransporterDetails(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transporter": dto.ToUserResponse(transporter),
		"vehicles":    dto.ToVehicleResponses(vehicles),
	})
}

// Approve godoc
// @Summary Approve transporter
// @Description Marks the transporter approved. Idempotent. Administrators only.
// @Tags transporters
// @Produce json
// @Param id path string true "Transporter ID"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transporters/{id}/approve [post]
func (h *TransporterHandler) Approve(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	approved, err := h.transporterService.Approve(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(approved))
}

// Reject godoc
// @Summary Reject transporter
// @Description Notifies the transporter that its application needs work. No state change. Administrators only.
// @Tags transporters
// @Accept json
// @Param id path string true "Transporter ID"
// @Param rejection body dto.RejectTransporterRequest false "Optional reason"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transporters/{id}/reject [post]
func (h *TransporterHandler) Reject(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.RejectTransporterRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	if err := h.transporterService.Reject(c.Request.Context(), userID, c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
