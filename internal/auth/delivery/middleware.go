package delivery

import (
	"net/http"
	"strings"

	authdomain "curalink-backend/internal/auth/domain"
	"curalink-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

const (
	ContextUser   = "user"
	ContextUserID = "userID"
	ContextRole   = "role"
)

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, string(user.Role))
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role authdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: " + strings.ToLower(string(role)) + " role required."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) *authdomain.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*authdomain.User)
	return user
}
