package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/podstore/podstore/internal/models"
	"github.com/podstore/podstore/internal/service"
	"github.com/podstore/podstore/internal/utils"
)

// AdminMiddleware gates routes behind the admin role. It runs after
// SessionMiddleware, so nothing protected is ever served before both the
// session and the role lookup have completed.
type AdminMiddleware struct {
	authService *service.AuthService
}

// NewAdminMiddleware constructs an AdminMiddleware.
func NewAdminMiddleware(authService *service.AuthService) *AdminMiddleware {
	return &AdminMiddleware{authService: authService}
}

// Handle returns a Gin middleware function that requires the admin role.
// The role is re-resolved on every request; a users-row miss downgrades to
// authenticated rather than erroring.
func (m *AdminMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Session required")
			c.Abort()
			return
		}

		role, err := m.authService.ResolveRole(userID)
		if err != nil {
			utils.Error(c, 500, "INTERNAL_ERROR", "Role resolution failed")
			c.Abort()
			return
		}
		if role != models.RoleAdmin {
			utils.Error(c, 403, "NOT_ADMIN", "Admin access required")
			c.Abort()
			return
		}

		c.Set("role", string(role))
		c.Next()
	}
}
