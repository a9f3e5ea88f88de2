// File: cmd/server/providers.go
package main

import (
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dreamhome_backend/internal/config"
	"dreamhome_backend/internal/filestorage"
	"dreamhome_backend/internal/platform/database"
)

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}
}

func provideFileStorage(cfg *config.Config, logger *zap.Logger) (*filestorage.Service, error) {
	return filestorage.NewService(cfg.UploadDir, logger)
}
