package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nexload-backend/internal/domains/resource/model"
	"nexload-backend/internal/domains/resource/service"
	"nexload-backend/internal/shared/middleware"
	"nexload-backend/internal/shared/response"
	"nexload-backend/internal/shared/utils"
)

// =====================================================
// RESOURCE HANDLER
// =====================================================

type ResourceHandler struct {
	resourceService service.ServiceInterface
}

func NewResourceHandler(resourceService service.ServiceInterface) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// getUserID extracts the authenticated user's id set by the auth
// middleware.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr := c.GetString(middleware.CtxUserID)
	if userIDStr == "" {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// mapError translates store errors to an HTTP status at the boundary;
// everything unexpected surfaces as a 500 with the error message.
func mapError(c *gin.Context, err error) {
	var resErr *model.ResourceError
	switch {
	case errors.Is(err, model.ErrResourceNotFound):
		response.NotFound(c, "resource not found")
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, "you do not own this resource")
	case errors.As(err, &resErr) && resErr.Code == model.ErrCodeValidation:
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeValidation, resErr.Message)
	default:
		response.InternalServerError(c, err.Error())
	}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// List returns a page of resources, newest first.
// GET /api/resources?page=&limit=
func (h *ResourceHandler) List(c *gin.Context) {
	page := utils.ParseIntOrDefault(c.Query("page"), 0)
	limit := utils.ParseIntOrDefault(c.Query("limit"), service.DefaultLimit)
	// Meta reports the effective values, not the raw request.
	page, limit = service.ClampPaging(page, limit)

	resources, err := h.resourceService.List(c.Request.Context(), page, limit)
	if err != nil {
		mapError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resources, &response.Meta{Page: page, Limit: limit})
}

// GetByID returns a single resource with its owner projection.
// GET /api/resources/:id
func (h *ResourceHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}

	res, err := h.resourceService.Get(c.Request.Context(), id)
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Search returns resources matching a substring query.
// GET /api/search?q=
func (h *ResourceHandler) Search(c *gin.Context) {
	resources, err := h.resourceService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resources)
}

// Stats returns marketplace totals.
// GET /api/stats
func (h *ResourceHandler) Stats(c *gin.Context) {
	stats, err := h.resourceService.Stats(c.Request.Context())
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// Download issues a short-lived signed URL and counts the download.
// GET /api/resources/:id/download
func (h *ResourceHandler) Download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}

	grant, err := h.resourceService.IssueDownload(c.Request.Context(), id)
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, grant)
}

// =====================================================
// AUTHENTICATED ENDPOINTS
// =====================================================

// Upload persists a resource record referencing objects the client
// already pushed to storage.
// POST /api/upload
func (h *ResourceHandler) Upload(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.resourceService.Upload(c.Request.Context(), userID, req)
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// SignUpload issues presigned PUT URLs for a pending upload.
// POST /api/upload/sign
func (h *ResourceHandler) SignUpload(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.SignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	signed, err := h.resourceService.SignUpload(c.Request.Context(), req)
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, signed)
}

// ListMine returns the requester's own uploads.
// GET /api/user/resources
func (h *ResourceHandler) ListMine(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	resources, err := h.resourceService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resources)
}

// Update applies a partial update to an owned resource.
// PUT /api/resources/:id
func (h *ResourceHandler) Update(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}

	var req model.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.resourceService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Delete removes an owned resource.
// DELETE /api/resources/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), userID, id); err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
