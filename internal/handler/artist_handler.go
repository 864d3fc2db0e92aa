package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Thushyanthini0507/artzyra-server/internal/application"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/response"
)

// ArtistHandler handles HTTP requests for the artist directory and profile.
type ArtistHandler struct {
	artists *application.ArtistService
	reviews *application.ReviewService
}

// NewArtistHandler creates a new ArtistHandler.
func NewArtistHandler(artists *application.ArtistService, reviews *application.ReviewService) *ArtistHandler {
	return &ArtistHandler{artists: artists, reviews: reviews}
}

// RegisterRoutes registers all artist routes on the given router group.
// Directory browsing is public; profile management needs the artist role.
func (h *ArtistHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	artists := r.Group("/artists")
	{
		artists.GET("", h.ListArtists)
		artists.GET("/profile", authMW, middleware.RequireRole(auth.RoleArtist), h.GetOwnProfile)
		artists.PUT("/profile", authMW, middleware.RequireRole(auth.RoleArtist), h.UpdateProfile)
		artists.GET("/:id", h.GetArtist)
		artists.GET("/:id/reviews", h.GetArtistReviews)
	}
	r.GET("/categories/:id/artists", h.ListCategoryArtists)
}

// ListArtists handles GET /api/v1/artists.
func (h *ArtistHandler) ListArtists(c *gin.Context) {
	page, limit := parsePagination(c)

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid category ID")
			return
		}
		categoryID = &id
	}

	result, err := h.artists.ListArtists(c.Request.Context(), categoryID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetArtist handles GET /api/v1/artists/:id.
func (h *ArtistHandler) GetArtist(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist ID")
		return
	}

	result, err := h.artists.GetArtist(c.Request.Context(), artistID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetArtistReviews handles GET /api/v1/artists/:id/reviews.
func (h *ArtistHandler) GetArtistReviews(c *gin.Context) {
	artistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid artist ID")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.reviews.GetArtistReviews(c.Request.Context(), artistID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListCategoryArtists handles GET /api/v1/categories/:id/artists.
func (h *ArtistHandler) ListCategoryArtists(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category ID")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.artists.ListArtists(c.Request.Context(), &categoryID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetOwnProfile handles GET /api/v1/artists/profile.
func (h *ArtistHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.artists.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateProfile handles PUT /api/v1/artists/profile.
func (h *ArtistHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateArtistProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.artists.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
