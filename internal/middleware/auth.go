package middleware

import (
	"net/http"

	"kindling/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

// SessionUserKey is the session field holding the logged-in username.
const SessionUserKey = "username"

// LoadUser resolves the session to a user record and puts it on the context.
// Handlers never parse the session themselves.
func LoadUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(SessionUserKey)

		if username != nil {
			var user models.User
			if err := db.First(&user, "username = ?", username).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// AuthRequired gates routes behind a live session. Banned accounts keep
// their session but lose write access.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if user.(*models.User).Banned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account banned"})
			return
		}
		c.Next()
	}
}

// ModeratorRequired additionally requires the moderator flag.
func ModeratorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.(*models.User).IsModerator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "moderator access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser pulls the resolved user off the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	u, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	return u.(*models.User), true
}
