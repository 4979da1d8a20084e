package middleware

import (
	"strings"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/services/auth"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key holding the authenticated *models.User
const UserKey = "user"

// TokenFromRequest returns the bearer token, falling back to the session cookie
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	session := sessions.Default(c)
	if token, ok := session.Get(utils.SessionTokenKey).(string); ok {
		return token
	}
	return ""
}

// CurrentUser resolves the caller without aborting. Anonymous callers get (nil, false).
func CurrentUser(c *gin.Context, svc *auth.Service) (*models.User, bool) {
	tokenString := TokenFromRequest(c)
	if tokenString == "" {
		return nil, false
	}
	claims, err := svc.ParseToken(tokenString)
	if err != nil {
		utils.LogDebug("Invalid token: %v", err)
		return nil, false
	}
	user, err := svc.UserByID(c.Request.Context(), claims.ID)
	if err != nil {
		utils.LogError("User not found for token: %s", claims.ID)
		return nil, false
	}
	return user, true
}

// AuthMiddleware requires a valid session token
func AuthMiddleware(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c, svc)
		if !ok {
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		utils.LogDebug("User %s authenticated", user.Email)
		c.Next()
	}
}

// AdminMiddleware allows only the configured admin email. Must run after AuthMiddleware.
func AdminMiddleware(adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(UserKey)
		if !exists {
			utils.LogError("User not found in context")
			utils.Unauthorized(c, utils.ErrUnauthorized)
			c.Abort()
			return
		}

		user, ok := value.(*models.User)
		if !ok || adminEmail == "" || utils.NormalizeEmail(user.Email) != utils.NormalizeEmail(adminEmail) {
			utils.LogError("Non-admin user attempted admin access")
			utils.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		utils.LogInfo("Admin access granted for %s", user.Email)
		c.Next()
	}
}
