package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgSomethingWentWrong = "Something went wrong"

// ErrorHandler answers requests that ended with errors attached and no
// response written. AppErrors carry their own status; anything else is a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := http.StatusInternalServerError, msgSomethingWentWrong

		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			status, message = appErr.Code, appErr.Message
		}
		if status >= http.StatusInternalServerError {
			logger.Error(c, "Request failed", err)
		}
		c.String(status, message)
	}
}

// Recovery turns panics into a 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Panic recovered",
			zap.String("request_id", c.GetString(logger.RequestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", fmt.Sprint(recovered)),
		)
		c.String(http.StatusInternalServerError, msgSomethingWentWrong)
		c.Abort()
	})
}
