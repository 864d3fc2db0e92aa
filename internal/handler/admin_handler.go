package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/application"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/response"
)

// AdminHandler handles moderation and back-office endpoints.
type AdminHandler struct {
	bookings   *application.BookingService
	artists    *application.ArtistService
	categories *application.CategoryService
	payments   *application.PaymentService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	bookings *application.BookingService,
	artists *application.ArtistService,
	categories *application.CategoryService,
	payments *application.PaymentService,
) *AdminHandler {
	return &AdminHandler{
		bookings:   bookings,
		artists:    artists,
		categories: categories,
		payments:   payments,
	}
}

// RegisterRoutes registers all admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(authMW, middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/stats", h.GetBookingStats)
		admin.PUT("/bookings/:id/status", h.ForceBookingStatus)
		admin.POST("/bookings/:id/refund", h.ProcessRefund)
		admin.POST("/bookings/:id/resolve-dispute", h.ResolveDispute)

		admin.GET("/artists/pending", h.ListPendingArtists)
		admin.PUT("/artists/:id/approval", h.SetArtistApproval)

		admin.GET("/categories", h.ListCategories)
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
	}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)
	result, err := h.bookings.ListAllBookings(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBookingStats handles GET /api/v1/admin/bookings/stats.
func (h *AdminHandler) GetBookingStats(c *gin.Context) {
	result, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ForceBookingStatus handles PUT /api/v1/admin/bookings/:id/status.
func (h *AdminHandler) ForceBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "status is required")
		return
	}

	result, err := h.bookings.ForceBookingStatus(c.Request.Context(), bookingID, adminID, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ProcessRefund handles POST /api/v1/admin/bookings/:id/refund.
func (h *AdminHandler) ProcessRefund(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.payments.RefundCancellation(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ResolveDispute handles POST /api/v1/admin/bookings/:id/resolve-dispute.
func (h *AdminHandler) ResolveDispute(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var body struct {
		Resolution string `json:"resolution" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "resolution is required")
		return
	}

	result, err := h.bookings.ResolveDispute(c.Request.Context(), bookingID, body.Resolution)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListPendingArtists handles GET /api/v1/admin/artists/pending.
func (h *AdminHandler) ListPendingArtists(c *gin.Context) {
	page, limit := parsePagination(c)
	result, err := h.artists.ListPendingArtists(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// SetArtistApproval handles PUT /api/v1/admin/artists/:id/approval.
func (h *AdminHandler) SetArtistApproval(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist ID")
		return
	}

	var body struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "approve is required")
		return
	}

	result, err := h.artists.SetArtistApproval(c.Request.Context(), artistID, *body.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListCategories handles GET /api/v1/admin/categories.
func (h *AdminHandler) ListCategories(c *gin.Context) {
	result, err := h.categories.ListCategories(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateCategory handles POST /api/v1/admin/categories.
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req application.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateCategory handles PUT /api/v1/admin/categories/:id.
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category ID")
		return
	}

	var req application.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.categories.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category ID")
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMessage(c, "category deleted")
}
