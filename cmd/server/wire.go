// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"notes_app_backend/internal/app"
	"notes_app_backend/internal/auth"
	"notes_app_backend/internal/config"
	"notes_app_backend/internal/note"
	"notes_app_backend/internal/platform/database"
	"notes_app_backend/internal/platform/logger"
	"notes_app_backend/internal/shared"
	"notes_app_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideMailer,
		provideCleanup,

		// Core User Services
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(shared.Service), new(*user.ServiceImplementation)),

		// Token and OAuth
		auth.NewJWTService,
		auth.NewOAuthService,
		auth.NewHandler,

		// Handlers
		user.NewHandler,

		// Notes
		note.NewGORMRepository,
		note.NewService,
		note.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
