package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gpustock/internal/core/apperror"
	appctx "gpustock/internal/core/context"
	"gpustock/internal/core/id"
	"gpustock/internal/domain/auth"
	"gpustock/internal/infrastructure/http/v1/dto"
	"gpustock/internal/infrastructure/http/v1/middleware"
)

// AuthHandler handles authentication and user management endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, user, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User:        dto.FromUser(user),
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	userID, err := id.Parse(userCtx.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	user, err := h.service.GetByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// Register handles POST /users - create a user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user := req.ToEntity()
	if err := h.service.Register(c.Request.Context(), user, req.Password); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// ListUsers handles GET /users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	f := auth.UserFilter{
		Search:  c.Query("search"),
		OrderBy: c.DefaultQuery("orderBy", "full_name"),
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}

	if val := c.Query("role"); val != "" {
		role := auth.Role(val)
		if !auth.ValidRole(role) {
			h.Error(c, apperror.NewValidation("unknown role").WithDetail("role", val))
			return
		}
		f.Role = &role
	}

	users, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(users))
	for i, user := range users {
		items[i] = dto.FromUser(user)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: total,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
}

// GetUser handles GET /users/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// UpdateUser handles PUT /users/:id
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(user)
	if err := h.service.Update(c.Request.Context(), user); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// ChangePassword handles POST /users/:id/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password changed")
}

// DeleteUser handles DELETE /users/:id
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	userID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers auth and user management routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)

	protected.GET("/me", h.Me)
}

// RegisterUserRoutes registers account administration routes.
func (h *AuthHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.GET("", middleware.RequireStaff(), h.ListUsers)
	rg.POST("", middleware.RequireAdmin(), h.Register)
	rg.GET("/:id", middleware.RequireStaff(), h.GetUser)
	rg.PUT("/:id", middleware.RequireAdmin(), h.UpdateUser)
	rg.POST("/:id/password", middleware.RequireAdmin(), h.ChangePassword)
	rg.DELETE("/:id", middleware.RequireAdmin(), h.DeleteUser)
}
