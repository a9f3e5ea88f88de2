// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"dreamhome_backend/internal/app"
	"dreamhome_backend/internal/auth"
	"dreamhome_backend/internal/category"
	"dreamhome_backend/internal/config"
	"dreamhome_backend/internal/conversation"
	"dreamhome_backend/internal/favorite"
	"dreamhome_backend/internal/filestorage"
	"dreamhome_backend/internal/health"
	"dreamhome_backend/internal/listing"
	"dreamhome_backend/internal/location"
	"dreamhome_backend/internal/platform/database"
	"dreamhome_backend/internal/platform/logger"
	"dreamhome_backend/internal/user"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Auth
		auth.NewJWTService,
		auth.NewService,
		auth.NewHandler,

		// Users
		user.NewGORMRepository,
		user.NewService,
		user.NewHandler,

		// Categories and locations
		category.NewGORMRepository,
		category.NewService,
		category.NewHandler,
		location.NewGORMRepository,
		location.NewService,
		location.NewHandler,

		// Listings
		listing.NewGORMRepository,
		listing.NewService,
		listing.NewHandler,

		// Favorites and conversations
		favorite.NewGORMRepository,
		favorite.NewService,
		favorite.NewHandler,
		conversation.NewGORMRepository,
		conversation.NewService,
		conversation.NewHandler,

		// Uploads and health
		provideFileStorage,
		filestorage.NewHandler,
		health.NewHandler,

		// Application layer
		app.NewServer,
	)
	return nil, nil, nil
}
