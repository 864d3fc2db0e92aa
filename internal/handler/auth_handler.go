package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Thushyanthini0507/artzyra-server/internal/application"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/response"
)

// AuthHandler handles HTTP requests for registration, login and logout.
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers all auth routes on the given router group.
// rateLimitMW guards the unauthenticated endpoints against brute force.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, authMW, rateLimitMW gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register/customer", rateLimitMW, h.RegisterCustomer)
		authGroup.POST("/register/artist", rateLimitMW, h.RegisterArtist)
		authGroup.POST("/login", rateLimitMW, h.Login)
		authGroup.POST("/logout", authMW, h.Logout)
		authGroup.GET("/me", authMW, h.Me)
	}
}

// RegisterCustomer handles POST /api/v1/auth/register/customer.
func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// RegisterArtist handles POST /api/v1/auth/register/artist.
func (h *AuthHandler) RegisterArtist(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RegisterArtist(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, expiresAt, ok := middleware.GetTokenJTI(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, "logged out")
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
