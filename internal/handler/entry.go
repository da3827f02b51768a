package handler

import (
	"net/http"
	"strconv"

	"github.com/AjeffSoft/minhasfinancas/internal/models"
	"github.com/AjeffSoft/minhasfinancas/internal/repository"
	"github.com/AjeffSoft/minhasfinancas/internal/service"
	"github.com/AjeffSoft/minhasfinancas/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// EntryHandler exposes the entry CRUD, search and status operations.
type EntryHandler struct {
	Entries *service.EntryService
	Users   *service.UserService
}

func NewEntryHandler(entries *service.EntryService, users *service.UserService) *EntryHandler {
	return &EntryHandler{Entries: entries, Users: users}
}

type entryReq struct {
	Descricao string          `json:"descricao"`
	Mes       int             `json:"mes"`
	Ano       int             `json:"ano"`
	Valor     decimal.Decimal `json:"valor"`
	Tipo      string          `json:"tipo"`
	Status    string          `json:"status"`
	Usuario   uint            `json:"usuario"`
}

type statusReq struct {
	Status string `json:"status"`
}

// convert maps the flat request onto an Entry. Enum tags fail fast with
// their own message before field validation runs, and the owner must
// resolve to a persisted user.
func (h *EntryHandler) convert(req entryReq) (*models.Entry, error) {
	e := &models.Entry{
		Description: req.Descricao,
		Month:       req.Mes,
		Year:        req.Ano,
		Value:       req.Valor,
	}

	if req.Tipo != "" {
		category, err := models.ParseCategory(req.Tipo)
		if err != nil {
			return nil, service.NewBusinessError("Informe um tipo de lançamento válido!")
		}
		e.Category = category
	}

	if req.Status != "" {
		status, err := models.ParseStatus(req.Status)
		if err != nil {
			return nil, service.NewBusinessError("Informe um status válido!")
		}
		e.Status = status
	}

	if req.Usuario != 0 {
		user, err := h.Users.FindByID(req.Usuario)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, service.NewBusinessError("Usuário não encontrado com este id!")
		}
		e.UserID = user.ID
	}

	return e, nil
}

// Create handles POST /api/lancamentos.
func (h *EntryHandler) Create(c *gin.Context) {
	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Requisição inválida")
		return
	}

	entry, err := h.convert(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	entry, err = h.Entries.Create(entry)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Created(c, util.Response{"lancamento": entry})
}

// Update handles PUT /api/lancamentos/:id.
func (h *EntryHandler) Update(c *gin.Context) {
	existing, ok := h.findByParam(c)
	if !ok {
		return
	}

	var req entryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Requisição inválida")
		return
	}

	entry, err := h.convert(req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	entry.ID = existing.ID
	entry.RegistrationDate = existing.RegistrationDate
	if req.Status == "" {
		entry.Status = existing.Status
	}

	entry, err = h.Entries.Update(entry)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"lancamento": entry})
}

// UpdateStatus handles PUT /api/lancamentos/:id/atualiza-status. It sets
// the new status and then runs a full update, so validation still applies.
func (h *EntryHandler) UpdateStatus(c *gin.Context) {
	existing, ok := h.findByParam(c)
	if !ok {
		return
	}

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Requisição inválida")
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um status válido!")
		return
	}

	entry, err := h.Entries.UpdateStatus(existing, status)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"lancamento": entry})
}

// Delete handles DELETE /api/lancamentos/:id.
func (h *EntryHandler) Delete(c *gin.Context) {
	existing, ok := h.findByParam(c)
	if !ok {
		return
	}

	if err := h.Entries.Delete(existing); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Get handles GET /api/lancamentos/:id.
func (h *EntryHandler) Get(c *gin.Context) {
	entry, ok := h.findByParam(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"lancamento": entry})
}

// Search handles GET /api/lancamentos. The usuario parameter is
// mandatory and must resolve to an existing user; descricao, mes and ano
// are optional filter fields.
func (h *EntryHandler) Search(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("usuario"), 10, 32)
	if err != nil || userID == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um usuário existente!")
		return
	}

	user, err := h.Users.FindByID(uint(userID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if user == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Usuário não encontrado com este id!")
		return
	}

	filter := repository.EntryFilter{
		DescriptionContains: c.Query("descricao"),
		UserID:              uint(userID),
	}
	if s := c.Query("mes"); s != "" {
		month, err := strconv.Atoi(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um mês válido!")
			return
		}
		filter.Month = &month
	}
	if s := c.Query("ano"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um ano válido!")
			return
		}
		filter.Year = &year
	}

	entries, err := h.Entries.Search(filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	util.Success(c, util.Response{"lancamentos": entries})
}

// findByParam resolves the :id path parameter to a stored entry. A miss
// is reported as not-found, distinct from any validation failure.
func (h *EntryHandler) findByParam(c *gin.Context) (*models.Entry, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return nil, false
	}

	entry, err := h.Entries.FindByID(uint(id))
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	if entry == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Lançamento não encontrado na base de dados")
		return nil, false
	}
	return entry, true
}
