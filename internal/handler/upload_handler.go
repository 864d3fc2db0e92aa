package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/application"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/response"
)

// UploadHandler handles HTTP requests for file uploads.
type UploadHandler struct {
	service *application.AttachmentService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *application.AttachmentService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers all upload routes on the given router group.
func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	uploads := r.Group("/upload")
	uploads.Use(authMW)
	{
		uploads.POST("", h.Upload)
		uploads.GET("/booking/:id", h.GetBookingAttachments)
		uploads.DELETE("/:id", h.Delete)
	}
}

// Upload handles POST /api/v1/upload (multipart form).
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	var bookingID *uuid.UUID
	if raw := c.PostForm("booking_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid booking ID")
			return
		}
		bookingID = &id
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "could not read file")
		return
	}

	req := application.UploadAttachmentRequest{
		BookingID: bookingID,
		Purpose:   c.PostForm("purpose"),
		FileName:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		Data:      data,
	}

	result, err := h.service.Upload(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetBookingAttachments handles GET /api/v1/upload/booking/:id.
func (h *UploadHandler) GetBookingAttachments(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	role, _ := middleware.GetUserRole(c)

	result, err := h.service.GetBookingAttachments(c.Request.Context(), bookingID, userID, role == auth.RoleAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete handles DELETE /api/v1/upload/:id.
func (h *UploadHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid attachment ID")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "attachment deleted")
}
