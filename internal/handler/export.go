package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AjeffSoft/minhasfinancas/internal/models"
	"github.com/AjeffSoft/minhasfinancas/internal/repository"
	"github.com/AjeffSoft/minhasfinancas/internal/service"
	"github.com/AjeffSoft/minhasfinancas/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler writes a user's entries as CSV or XLSX downloads.
type ExportHandler struct {
	Entries *service.EntryService
	Users   *service.UserService
}

func NewExportHandler(entries *service.EntryService, users *service.UserService) *ExportHandler {
	return &ExportHandler{Entries: entries, Users: users}
}

var exportHeader = []string{"ID", "Descrição", "Mês", "Ano", "Valor", "Tipo", "Status", "Data Cadastro"}

func exportRow(e *models.Entry) []string {
	return []string{
		strconv.FormatUint(uint64(e.ID), 10),
		e.Description,
		strconv.Itoa(e.Month),
		strconv.Itoa(e.Year),
		e.Value.StringFixed(2),
		string(e.Category),
		string(e.Status),
		e.RegistrationDate.Format("2006-01-02"),
	}
}

// list resolves the mandatory usuario parameter and loads its entries.
func (h *ExportHandler) list(c *gin.Context) ([]models.Entry, bool) {
	userID, err := strconv.ParseUint(c.Query("usuario"), 10, 32)
	if err != nil || userID == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Informe um usuário existente!")
		return nil, false
	}

	user, err := h.Users.FindByID(uint(userID))
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	if user == nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Usuário não encontrado com este id!")
		return nil, false
	}

	entries, err := h.Entries.Search(repository.EntryFilter{UserID: uint(userID)})
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}
	return entries, true
}

// CSV handles GET /api/lancamentos/export/csv.
func (h *ExportHandler) CSV(c *gin.Context) {
	entries, ok := h.list(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("lancamentos_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeader)
	for i := range entries {
		_ = w.Write(exportRow(&entries[i]))
	}
	w.Flush()
}

// XLSX handles GET /api/lancamentos/export/xlsx.
func (h *ExportHandler) XLSX(c *gin.Context) {
	entries, ok := h.list(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i := range entries {
		for col, value := range exportRow(&entries[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("lancamentos_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao gerar planilha")
	}
}
