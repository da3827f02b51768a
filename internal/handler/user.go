package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AjeffSoft/minhasfinancas/internal/models"
	"github.com/AjeffSoft/minhasfinancas/internal/service"
	"github.com/AjeffSoft/minhasfinancas/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes registration, authentication and the balance query.
type UserHandler struct {
	Users     *service.UserService
	Entries   *service.EntryService
	JWTSecret string
	TokenTTL  time.Duration
}

func NewUserHandler(users *service.UserService, entries *service.EntryService, jwtSecret string, ttlHours int) *UserHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &UserHandler{
		Users:     users,
		Entries:   entries,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type userReq struct {
	Nome  string `json:"nome"`
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// Register handles POST /api/usuarios.
func (h *UserHandler) Register(c *gin.Context) {
	var req userReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Requisição inválida")
		return
	}

	user := &models.User{
		Name:     req.Nome,
		Email:    req.Email,
		Password: req.Senha,
	}
	user, err := h.Users.Register(user)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Created(c, util.Response{"usuario": user})
}

// Authenticate handles POST /api/usuarios/autenticar. On success the
// response carries the user (without the password) and a signed token
// for the protected routes.
func (h *UserHandler) Authenticate(c *gin.Context) {
	var req userReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Requisição inválida")
		return
	}

	user, err := h.Users.Authenticate(req.Email, req.Senha)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao gerar token")
		return
	}

	util.Success(c, util.Response{
		"usuario": user,
		"token":   token,
	})
}

// Balance handles GET /api/usuarios/:id/saldo.
func (h *UserHandler) Balance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	user, err := h.Users.FindByID(uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if user == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Usuário não encontrado com este id!")
		return
	}

	balance, err := h.Entries.Balance(user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"saldo": balance})
}
