package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/AjeffSoft/minhasfinancas/internal/models"
	"github.com/AjeffSoft/minhasfinancas/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func protectedAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	r.Use(Auth(testSecret, db), Audit(db))
	r.POST("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, db
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r, _ := protectedAPI(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	r, _ := protectedAPI(t)

	token, err := util.GenerateToken(testSecret, 42, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAuthAcceptsValidTokenAndAudits(t *testing.T) {
	r, db := protectedAPI(t)

	user := &models.User{Name: "Fulano", Email: "user@email.com", Password: "123"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := util.GenerateToken(testSecret, user.ID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var count int64
	db.Model(&models.AuditLog{}).Count(&count)
	if count != 1 {
		t.Errorf("audit rows = %d, want 1", count)
	}
}
