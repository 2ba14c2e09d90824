package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.traveljournal/internal/apperr"
)

// respondError turns an application error into the `{error: message}` body the
// API promises. Storage errors keep their underlying cause in the message;
// anything unclassified becomes a generic 500 and is logged.
func respondError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	if appErr := apperr.As(err); appErr != nil {
		message := appErr.Message
		if appErr.Kind == apperr.Storage {
			message = appErr.Error()
			logError(c, logger, err, "storage failure")
		}
		c.JSON(appErr.Status(), gin.H{"error": message})
		return
	}

	logError(c, logger, err, "unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func logError(c *gin.Context, logger *zap.SugaredLogger, err error, msg string) {
	if logger == nil {
		return
	}
	logger.Errorw(msg,
		"request_id", c.GetString("request_id"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
}

// idParam parses a numeric path parameter. A non-numeric value cannot name any
// entity, so callers treat false as not-found.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
