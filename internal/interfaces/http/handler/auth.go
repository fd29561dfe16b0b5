package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shopfront/backend/internal/application/identity"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=identityapp.LoginResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh godoc
// @Summary      Refresh the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=identityapp.RefreshTokenResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Me godoc
// @Summary      Get the authenticated admin
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.AdminInfo}
// @Security     BearerAuth
// @Router       /admin/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	admin, err := h.authService.GetCurrentAdmin(c.Request.Context(), adminID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, admin)
}

// ChangePassword godoc
// @Summary      Change the authenticated admin's password
// @Tags         auth
// @Accept       json
// @Param        request body identityapp.ChangePasswordRequest true "Password change request"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	adminID, err := getAdminID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), adminID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers public auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}

// RegisterAdminRoutes registers auth routes requiring a valid token
func (h *AuthHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.GET("/me", h.Me)
		auth.PUT("/password", h.ChangePassword)
	}
}
