package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/AjeffSoft/minhasfinancas/internal/models"
	"github.com/AjeffSoft/minhasfinancas/internal/repository"
	"github.com/AjeffSoft/minhasfinancas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testAPI wires the real services onto a throwaway sqlite database and
// registers the routes without the auth middleware; middleware has its
// own tests and the handlers are the subject here.
func testAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Entry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	entries := service.NewEntryService(repository.NewEntryRepository(db))
	users := service.NewUserService(repository.NewUserRepository(db))

	userHandler := NewUserHandler(users, entries, "test-secret", 1)
	entryHandler := NewEntryHandler(entries, users)
	exportHandler := NewExportHandler(entries, users)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/usuarios", userHandler.Register)
	api.POST("/usuarios/autenticar", userHandler.Authenticate)
	api.GET("/usuarios/:id/saldo", userHandler.Balance)
	api.POST("/lancamentos", entryHandler.Create)
	api.GET("/lancamentos", entryHandler.Search)
	api.GET("/lancamentos/:id", entryHandler.Get)
	api.PUT("/lancamentos/:id", entryHandler.Update)
	api.PUT("/lancamentos/:id/atualiza-status", entryHandler.UpdateStatus)
	api.DELETE("/lancamentos/:id", entryHandler.Delete)
	api.GET("/relatorios/lancamentos/csv", exportHandler.CSV)
	api.GET("/relatorios/lancamentos/xlsx", exportHandler.XLSX)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	out := decodeEnvelope(t, rr)
	msg, _ := out["message"].(string)
	return msg
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Fulano", Email: email, Password: "123"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createEntry(t *testing.T, db *gorm.DB, userID uint, value int64, category models.Category) *models.Entry {
	t.Helper()
	e := &models.Entry{
		Description: "Lancamento",
		Month:       1,
		Year:        2024,
		Value:       decimal.NewFromInt(value),
		Category:    category,
		Status:      models.StatusPending,
		UserID:      userID,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return e
}
