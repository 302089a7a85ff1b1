package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// VehicleHandler handles fleet management endpoints.
type VehicleHandler struct {
	vehicleService portssvc.VehicleSvcFacade
}

func newVehicleHandler(vs portssvc.VehicleSvcFacade) *VehicleHandler {
	return &VehicleHandler{vehicleService: vs}
}

// registerVehicleRoutes sets up the fleet routes.
func registerVehicleRoutes(rg *gin.RouterGroup, vehicleService portssvc.VehicleSvcFacade) {
	h := newVehicleHandler(vehicleService)

	vehicles := rg.Group("/vehicles")
	{
		vehicles.POST("", h.Create)
		vehicles.GET("", h.ListMine)
		vehicles.GET("/:id", h.Get)
		vehicles.PATCH("/:id", h.Update)
		vehicles.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary Register vehicle
// @Description Adds a vehicle to the calling transporter's fleet.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param vehicle body dto.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} dto.VehicleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Plate number already registered"
// @Security BearerAuth
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.vehicleService.CreateVehicle(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVehicleResponse(created))
}

// ListMine godoc
// @Summary List my vehicles
// @Description Lists the calling transporter's fleet.
// @Tags vehicles
// @Produce json
// @Success 200 {array} dto.VehicleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles [get]
func (h *VehicleHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	vehicles, err := h.vehicleService.ListMyVehicles(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponses(vehicles))
}

// Get godoc
// @Summary Get vehicle
// @Description Retrieves a vehicle. Owner or administrator only.
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} dto.VehicleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(vehicle))
}

// Update godoc
// @Summary Update vehicle
// @Description Applies a partial update to a vehicle. Owner or administrator only.
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param vehicle body dto.UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} dto.VehicleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [patch]
func (h *VehicleHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.vehicleService.UpdateVehicle(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleResponse(updated))
}

// Delete godoc
// @Summary Delete vehicle
// @Description Soft-deletes a vehicle from the fleet. Owner or administrator only.
// @Tags vehicles
// @Param id path string true "Vehicle ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
