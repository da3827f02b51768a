package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/AjeffSoft/minhasfinancas/internal/models"
	"github.com/AjeffSoft/minhasfinancas/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Auth validates the JWT and puts the current user into the context.
// The token is taken from the Authorization header or, for download
// links that cannot set headers, from the token query parameter.
func Auth(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autenticado!")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Sessão expirada, autentique novamente!")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuário não encontrado com este id!")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao consultar usuário")
			}
			c.Abort()
			return
		}

		c.Set("currentUser", &user)
		c.Next()
	}
}
