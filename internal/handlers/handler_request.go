package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
)

// maxDocumentSize caps uploaded attachment size at 10 MiB.
const maxDocumentSize = 10 << 20

// RequestHandler handles transport request lifecycle endpoints.
type RequestHandler struct {
	requestService portssvc.RequestSvcFacade
}

func newRequestHandler(rs portssvc.RequestSvcFacade) *RequestHandler {
	return &RequestHandler{requestService: rs}
}

// RegisterRequestRoutes sets up the transport request routes.
func RegisterRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade) {
	h := newRequestHandler(requestService)

	requests := rg.Group("/requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/available", h.ListAvailable)
		requests.GET("/assigned", h.ListAssigned)
		requests.GET("/:id", h.Get)
		requests.PATCH("/:id", h.Update)
		requests.DELETE("/:id", h.Remove)
		requests.POST("/:id/restore", h.Restore)
		requests.DELETE("/:id/purge", h.Purge)
		requests.POST("/:id/assign", h.Assign)
		requests.POST("/:id/status", h.ChangeStatus)
		requests.POST("/:id/cancel", h.Cancel)
		requests.GET("/:id/history", h.History)
		requests.POST("/:id/documents", h.AttachDocument)
	}
}

// Create godoc
// @Summary Create transport request
// @Description Creates a transport request in PENDING. When an estimated price is given the amount is debited from the client's wallet as escrow, atomically with the insert.
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.CreateTransportRequestRequest true "Request details"
// @Success 201 {object} dto.TransportRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient wallet balance"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateTransportRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransportRequestResponse(created))
}

// List godoc
// @Summary List transport requests
// @Description Lists requests scoped to the caller's role: clients see their own, vetted transporters see assigned plus unassigned ones, administrators see everything.
// @Tags requests
// @Produce json
// @Param status query string false "Filter by status"
// @Param city query string false "Filter by pickup or delivery city"
// @Param priority query string false "Filter by priority"
// @Param clientID query string false "Filter by client (administrators only)"
// @Param transporterID query string false "Filter by transporter (administrators only)"
// @Param includeDeleted query bool false "Include soft-deleted requests (administrators only)"
// @Success 200 {array} dto.TransportRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	requests, err := h.requestService.ListRequests(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponses(requests))
}

// ListAvailable godoc
// @Summary List available requests
// @Description Lists unassigned PENDING or OFFERS_RECEIVED requests. Approved transporters only.
// @Tags requests
// @Produce json
// @Param city query string false "Filter by pickup or delivery city"
// @Param priority query string false "Filter by priority"
// @Success 200 {array} dto.TransportRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/available [get]
func (h *RequestHandler) ListAvailable(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	requests, err := h.requestService.ListAvailableRequests(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponses(requests))
}

// ListAssigned godoc
// @Summary List assigned missions
// @Description Lists the requests assigned to the calling transporter.
// @Tags requests
// @Produce json
// @Success 200 {array} dto.TransportRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/assigned [get]
func (h *RequestHandler) ListAssigned(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	requests, err := h.requestService.ListAssignedRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponses(requests))
}

// Get godoc
// @Summary Get transport request
// @Description Retrieves a request visible to the caller.
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.TransportRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	request, err := h.requestService.GetRequest(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponse(request))
}

// Update godoc
// @Summary Update transport request
// @Description Applies a partial update to a non-terminal request. Owner or administrator only.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.UpdateTransportRequestRequest true "Fields to update"
// @Success 200 {object} dto.TransportRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request already terminal"
// @Security BearerAuth
// @Router /requests/{id} [patch]
func (h *RequestHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.UpdateTransportRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.requestService.UpdateRequest(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponse(updated))
}

// Remove godoc
// @Summary Delete transport request
// @Description Soft-deletes a request. Forbidden while IN_PROGRESS.
// @Tags requests
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id} [delete]
func (h *RequestHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	if err := h.requestService.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore godoc
// @Summary Restore transport request
// @Description Reverses a soft delete. Administrators only.
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.TransportRequestResponse
// @Failure 400 {object} ErrorResponse "Request is not deleted"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/restore [post]
func (h *RequestHandler) Restore(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	restored, err := h.requestService.Restore(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponse(restored))
}

// Purge godoc
// @Summary Purge transport request
// @Description Physically removes a soft-deleted request. Irreversible. Administrators only.
// @Tags requests
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Request is not deleted"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/purge [delete]
func (h *RequestHandler) Purge(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	if err := h.requestService.Purge(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Assign godoc
// @Summary Assign transporter
// @Description Assigns a transporter to an unassigned request and moves it to ASSIGNED. Transporters self-assign; administrators name the transporter in the body.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param assignment body dto.AssignTransporterRequest false "Transporter to assign (administrators only)"
// @Success 200 {object} dto.TransportRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transporter already assigned"
// @Security BearerAuth
// @Router /requests/{id}/assign [post]
func (h *RequestHandler) Assign(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.AssignTransporterRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	assigned, err := h.requestService.Assign(c.Request.Context(), userID, c.Param("id"), req.TransporterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponse(assigned))
}

// ChangeStatus godoc
// @Summary Change request status
// @Description Moves a request through the status machine and records the transition in the audit trail.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param transition body dto.ChangeStatusRequest true "Target status and optional comment"
// @Success 200 {object} dto.TransportRequestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transition not allowed from the current status"
// @Security BearerAuth
// @Router /requests/{id}/status [post]
func (h *RequestHandler) ChangeStatus(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	updated, err := h.requestService.ChangeStatus(c.Request.Context(), userID, c.Param("id"), domain.RequestStatus(req.Status), req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponse(updated))
}

// Cancel godoc
// @Summary Cancel transport request
// @Description Cancels a request that has not yet started. The escrow debit is not refunded.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param cancellation body dto.CancelRequestRequest false "Optional reason"
// @Success 200 {object} dto.TransportRequestResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is in progress or already terminal"
// @Security BearerAuth
// @Router /requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CancelRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	cancelled, err := h.requestService.Cancel(c.Request.Context(), userID, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransportRequestResponse(cancelled))
}

// History godoc
// @Summary Request status history
// @Description Lists the audit trail of status transitions, newest first.
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} dto.StatusHistoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/history [get]
func (h *RequestHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	entries, err := h.requestService.GetStatusHistory(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusHistoryResponses(entries))
}

// AttachDocument godoc
// @Summary Attach document
// @Description Uploads a document (waybill, photo, customs form) and links it to the request.
// @Tags requests
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Request ID"
// @Param file formData file true "Document to attach"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/documents [post]
func (h *RequestHandler) AttachDocument(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A file is required"})
		return
	}
	if fileHeader.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file"})
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file"})
		return
	}

	metadata := map[string]string{
		"name":        fileHeader.Filename,
		"contentType": fileHeader.Header.Get("Content-Type"),
	}

	ref, err := h.requestService.AttachDocument(c.Request.Context(), userID, c.Param("id"), blob, metadata)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"documentRef": ref})
}
