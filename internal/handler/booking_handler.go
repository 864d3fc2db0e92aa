package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/application"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", middleware.RequireRole(auth.RoleCustomer), h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", middleware.RequireRole(auth.RoleCustomer), h.UpdateBooking)
		bookings.DELETE("/:id", middleware.RequireRole(auth.RoleCustomer), h.DeleteBooking)
		bookings.POST("/:id/accept", middleware.RequireRole(auth.RoleArtist, auth.RoleAdmin), h.AcceptBooking)
		bookings.POST("/:id/decline", middleware.RequireRole(auth.RoleArtist, auth.RoleAdmin), h.DeclineBooking)
		bookings.POST("/:id/start", middleware.RequireRole(auth.RoleArtist), h.StartBooking)
		bookings.POST("/:id/deliver", middleware.RequireRole(auth.RoleArtist), h.DeliverBooking)
		bookings.POST("/:id/approve", middleware.RequireRole(auth.RoleCustomer), h.ApproveBooking)
		bookings.POST("/:id/request-changes", middleware.RequireRole(auth.RoleCustomer), h.RequestChanges)
		bookings.POST("/:id/complete", middleware.RequireRole(auth.RoleArtist), h.CompleteBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/dispute", h.RaiseDispute)
	}

	// Role-scoped aliases the web client consumes.
	r.GET("/customers/bookings", authMW, middleware.RequireRole(auth.RoleCustomer), h.ListCustomerBookings)
	artistBookings := r.Group("/artists/bookings")
	artistBookings.Use(authMW, middleware.RequireRole(auth.RoleArtist))
	{
		artistBookings.GET("", h.ListArtistBookings)
		artistBookings.PUT("/:id/accept", h.AcceptBooking)
		artistBookings.PUT("/:id/reject", h.DeclineBooking)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings. Customers see their own
// bookings, artists the ones assigned to them.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)

	var (
		result *domain.PaginatedResult[application.BookingDTO]
		err    error
	)
	switch role {
	case auth.RoleArtist:
		result, err = h.service.GetArtistBookings(c.Request.Context(), userID, page, limit)
	default:
		result, err = h.service.GetCustomerBookings(c.Request.Context(), userID, page, limit)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListCustomerBookings handles GET /api/v1/customers/bookings.
func (h *BookingHandler) ListCustomerBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.GetCustomerBookings(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListArtistBookings handles GET /api/v1/artists/bookings.
func (h *BookingHandler) ListArtistBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.GetArtistBookings(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, userID, role, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBooking handles PUT /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, userID, _, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), bookingID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, userID, _, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), bookingID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, "booking deleted")
}

// AcceptBooking handles POST /api/v1/bookings/:id/accept.
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	h.runTransition(c, h.service.AcceptBooking)
}

// DeclineBooking handles POST /api/v1/bookings/:id/decline.
func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	h.runTransition(c, h.service.DeclineBooking)
}

// StartBooking handles POST /api/v1/bookings/:id/start.
func (h *BookingHandler) StartBooking(c *gin.Context) {
	h.runTransition(c, h.service.StartBooking)
}

// DeliverBooking handles POST /api/v1/bookings/:id/deliver.
func (h *BookingHandler) DeliverBooking(c *gin.Context) {
	h.runTransition(c, h.service.DeliverBooking)
}

// CompleteBooking handles POST /api/v1/bookings/:id/complete.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.runTransition(c, h.service.CompleteBooking)
}

// ApproveBooking handles POST /api/v1/bookings/:id/approve.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	bookingID, userID, role, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	var body struct {
		Feedback string `json:"feedback"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.ApproveBooking(c.Request.Context(), bookingID, userID, role, body.Feedback)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RequestChanges handles POST /api/v1/bookings/:id/request-changes.
func (h *BookingHandler) RequestChanges(c *gin.Context) {
	bookingID, userID, role, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	var body struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "revision note is required")
		return
	}

	result, err := h.service.RequestChanges(c.Request.Context(), bookingID, userID, role, body.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, userID, role, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.CancelBooking(c.Request.Context(), bookingID, userID, role, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RaiseDispute handles POST /api/v1/bookings/:id/dispute.
func (h *BookingHandler) RaiseDispute(c *gin.Context) {
	bookingID, userID, role, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "dispute reason is required")
		return
	}

	result, err := h.service.RaiseDispute(c.Request.Context(), bookingID, userID, role, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// --- Helpers ---

func (h *BookingHandler) runTransition(
	c *gin.Context,
	op func(ctx context.Context, bookingID, actorID uuid.UUID, role auth.Role) (*application.BookingDTO, error),
) {
	bookingID, userID, role, ok := bookingRequestIdentity(c)
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), bookingID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// bookingRequestIdentity parses the booking ID and authenticated identity,
// writing the error response itself on failure.
func bookingRequestIdentity(c *gin.Context) (bookingID, userID uuid.UUID, role auth.Role, ok bool) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, found := middleware.GetUserID(c)
	if !found {
		response.Unauthorized(c, "unauthorized")
		return uuid.Nil, uuid.Nil, "", false
	}
	role, found = middleware.GetUserRole(c)
	if !found {
		response.Unauthorized(c, "unauthorized")
		return uuid.Nil, uuid.Nil, "", false
	}
	return bookingID, userID, role, true
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
