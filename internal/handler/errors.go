package handler

import (
	"errors"
	"net/http"

	"github.com/AjeffSoft/minhasfinancas/internal/service"
	"github.com/AjeffSoft/minhasfinancas/internal/util"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service errors onto the response envelope.
// Business and validation rejections carry their own message; anything
// else is terminal for the operation and reported as a server error.
func writeServiceError(c *gin.Context, err error) {
	var be *service.BusinessError
	var ve *service.ValidationError
	switch {
	case errors.As(err, &be):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, be.Message)
	case errors.As(err, &ve):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, ve.Message)
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno no servidor")
	}
}
