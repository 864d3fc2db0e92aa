package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/application"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/response"
)

// ChatHandler handles HTTP requests for per-booking conversations.
type ChatHandler struct {
	service *application.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *application.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// RegisterRoutes registers all chat routes on the given router group.
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	chats := r.Group("/chats")
	chats.Use(authMW)
	{
		chats.GET("", h.ListThreads)
		chats.POST("", h.CreateThread)
		chats.POST("/create", h.CreateThread)
		chats.POST("/booking/:id", h.OpenThread)
		chats.GET("/:id", h.GetThread)
		chats.GET("/:id/messages", h.ListMessages)
		chats.POST("/:id/messages", h.SendMessage)
	}
}

// ListThreads handles GET /api/v1/chats.
func (h *ChatHandler) ListThreads(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListThreads(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// OpenThread handles POST /api/v1/chats/booking/:id.
func (h *ChatHandler) OpenThread(c *gin.Context) {
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

	result, err := h.service.GetOrCreateThread(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateThread handles POST /api/v1/chats/create. The booking ID comes in
// the body rather than the path.
func (h *ChatHandler) CreateThread(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		BookingID uuid.UUID `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetOrCreateThread(c.Request.Context(), req.BookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetThread handles GET /api/v1/chats/:id.
func (h *ChatHandler) GetThread(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid thread ID")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetThread(c.Request.Context(), threadID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMessages handles GET /api/v1/chats/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid thread ID")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.ListMessages(c.Request.Context(), threadID, userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// SendMessage handles POST /api/v1/chats/:id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid thread ID")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), threadID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
