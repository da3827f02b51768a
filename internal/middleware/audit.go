package middleware

import (
	"bytes"
	"io"
	"os"

	"github.com/AjeffSoft/minhasfinancas/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var auditLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Audit records mutating requests of authenticated users. Read-only
// requests and anonymous traffic are skipped.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Method != "GET" && c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		if c.Request.Method == "GET" {
			return
		}

		var userID *uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = &user.ID
			}
		}
		if userID == nil {
			return
		}

		body := ""
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			body = string(bodyBytes)
		}

		entry := models.AuditLog{
			UserID:    userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Body:      body,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if err := db.Create(&entry).Error; err != nil {
			auditLogger.Warn().Err(err).Str("path", entry.Path).Msg("audit log write failed")
		}
	}
}
