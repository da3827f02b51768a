package main

import (
	"fmt"
	"os"

	"github.com/AjeffSoft/minhasfinancas/internal/config"
	"github.com/AjeffSoft/minhasfinancas/internal/database"
	"github.com/AjeffSoft/minhasfinancas/internal/router"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	// .env is optional; real deployments set MF_* variables directly
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("MF_CONFIG"))
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("init database")
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}

	r := router.Setup(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("run server")
	}
}
