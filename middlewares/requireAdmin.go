package middlewares

import (
	"errors"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

const (
	msgLoginRequired = "ابتدا در سایت ما عضو شوید"
	msgAdminRequired = "شما به این بخش دسترسی ندارید"
)

// LoadUser resolves the session's user id and stores the user in the gin
// context. Ids of deleted users are dropped from the session.
func LoadUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := SessionUserID(c)
		if userID == "" {
			c.Next()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.Set(userKey, user)
		case errors.Is(err, repository.ErrNotFound):
			ClearSessionUser(c)
		default:
			logger.Error(c, "Failed to load session user", err)
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in user or nil.
func CurrentUser(c *gin.Context) *models.User {
	if value, ok := c.Get(userKey); ok {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			RedirectWithFlash(c, "/authentication", FlashError, msgLoginRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			RedirectWithFlash(c, "/authentication", FlashError, msgLoginRequired)
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			logger.Warn(c, "Non-admin user tried an admin route")
			RedirectWithFlash(c, "/", FlashError, msgAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}
