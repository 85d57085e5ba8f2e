package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/app/pkg/auth"
)

const (
	UserIDKey      = "user_id"
	LoginKey       = "login"
	IsModeratorKey = "is_moderator"
)

// AuthService bundles the two ways a request can authenticate.
type AuthService struct {
	JWT     *auth.JWTService
	Session *auth.SessionService
}

func (a *AuthService) authenticate(c *gin.Context) bool {
	// JWT from the Authorization header
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if claims, err := a.JWT.Validate(tokenString); err == nil {
			c.Set(UserIDKey, claims.UserID)
			c.Set(LoginKey, claims.Login)
			c.Set(IsModeratorKey, claims.IsModerator)
			return true
		}
	}

	// session cookie
	sessionID, err := c.Cookie("session_id")
	if err == nil && sessionID != "" {
		if data, err := a.Session.Get(c.Request.Context(), sessionID); err == nil && data != nil {
			c.Set(UserIDKey, data.UserID)
			c.Set(LoginKey, data.Login)
			c.Set(IsModeratorKey, data.IsModerator)
			_ = a.Session.Extend(c.Request.Context(), sessionID)
			return true
		}
	}

	return false
}

// AuthMiddleware rejects unauthenticated requests.
func AuthMiddleware(authSvc *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authSvc.authenticate(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireModeratorMiddleware must run after AuthMiddleware.
func RequireModeratorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isModerator, exists := c.Get(IsModeratorKey)
		if !exists || !isModerator.(bool) {
			c.JSON(http.StatusForbidden, gin.H{"error": "moderator access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetCurrentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

func IsCurrentUserModerator(c *gin.Context) bool {
	isModerator, exists := c.Get(IsModeratorKey)
	if !exists {
		return false
	}
	return isModerator.(bool)
}
