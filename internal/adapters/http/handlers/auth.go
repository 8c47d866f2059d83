package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-roulette/internal/app"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	service *app.AuthService
	cookie  middleware.SessionCookie
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *app.AuthService, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookie:  cookie,
	}
}

// Register handles POST /api/v1/auth/register
// Creates the account and logs it in by issuing a new session cookie.
//
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Sign-up form"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	user, session, err := h.service.Register(c.Request.Context(), req.Registration(), middleware.GetSessionToken(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.cookie.Set(c, session)
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles POST /api/v1/auth/login
//
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindingError(c, err)
		return
	}

	user, session, err := h.service.Login(c.Request.Context(), req.Username, req.Password, middleware.GetSessionToken(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.cookie.Set(c, session)
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Logout handles POST /api/v1/auth/logout
// The next request starts a fresh anonymous session.
//
// @Summary Log out
// @Tags auth
// @Success 204
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.GetSessionToken(c)); err != nil {
		dto.HandleError(c, err)
		return
	}

	h.cookie.Clear(c)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
//
// @Summary Current caller
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		Authenticated: user != nil,
		User:          dto.NewUserResponse(user),
	})
}

// RegisterAuthRoutes registers auth routes on the given router group.
// limit wraps the credential endpoints in a per-client rate limiter; it
// receives the action name for metrics.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, limit func(action string) gin.HandlerFunc) {
	auth := rg.Group("/auth")
	auth.POST("/register", limit("register"), h.Register)
	auth.POST("/login", limit("login"), h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)
}
