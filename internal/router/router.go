package router

import (
	"github.com/AjeffSoft/minhasfinancas/internal/config"
	"github.com/AjeffSoft/minhasfinancas/internal/handler"
	"github.com/AjeffSoft/minhasfinancas/internal/middleware"
	"github.com/AjeffSoft/minhasfinancas/internal/repository"
	"github.com/AjeffSoft/minhasfinancas/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine and wires stores, services and
// handlers together.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	entries := service.NewEntryService(repository.NewEntryRepository(db))
	users := service.NewUserService(repository.NewUserRepository(db))

	userHandler := handler.NewUserHandler(users, entries, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	entryHandler := handler.NewEntryHandler(entries, users)
	exportHandler := handler.NewExportHandler(entries, users)

	api := r.Group("/api")

	// registration and authentication are open
	api.POST("/usuarios", userHandler.Register)
	api.POST("/usuarios/autenticar", userHandler.Authenticate)

	protected := api.Group("")
	protected.Use(
		middleware.Auth(cfg.JWT.Secret, db),
		middleware.Audit(db),
	)

	protected.GET("/usuarios/:id/saldo", userHandler.Balance)

	protected.POST("/lancamentos", entryHandler.Create)
	protected.GET("/lancamentos", entryHandler.Search)
	protected.GET("/lancamentos/:id", entryHandler.Get)
	protected.PUT("/lancamentos/:id", entryHandler.Update)
	protected.PUT("/lancamentos/:id/atualiza-status", entryHandler.UpdateStatus)
	protected.DELETE("/lancamentos/:id", entryHandler.Delete)

	// report downloads live outside /lancamentos: gin does not allow a
	// static "export" segment next to the :id wildcard
	protected.GET("/relatorios/lancamentos/csv", exportHandler.CSV)
	protected.GET("/relatorios/lancamentos/xlsx", exportHandler.XLSX)

	return r
}
