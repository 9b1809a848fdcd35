package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/service"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
	"github.com/pratik0133/alumni-connect-api/pkg/response"
)

// Approved gates member-only routes on the approval flag. Approval is
// mutable after login, so the gate reads the current user record instead of
// trusting the token snapshot; an admin approval takes effect on the next
// request without a fresh login.
func Approved(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := authService.CurrentUser(c.Request.Context(), claims)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if !user.IsApproved {
			response.Error(c, appErrors.Clone(appErrors.ErrPendingApproval, "your account is pending approval"))
			c.Abort()
			return
		}

		c.Next()
	}
}
