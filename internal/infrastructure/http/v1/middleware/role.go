package middleware

import (
	"github.com/gin-gonic/gin"

	"gpustock/internal/core/apperror"
	appctx "gpustock/internal/core/context"
)

// RequireRole middleware checks if user has one of the required roles.
// Admins pass every role check.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if user.Role == "admin" {
			c.Next()
			return
		}

		for _, required := range roles {
			if user.Role == required {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_roles", roles),
		)
		c.Abort()
	}
}

// RequireStaff allows admins and managers; plain users are rejected.
// Warehouse mutations and back-office reports go through this.
func RequireStaff() gin.HandlerFunc {
	return RequireRole("manager")
}

// RequireAdmin restricts the route to administrators.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole("admin")
}
