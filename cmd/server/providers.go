// File: cmd/server/providers.go
package main

import (
	"log"
	"time"

	"notes_app_backend/internal/config"
	"notes_app_backend/internal/mail"
	"notes_app_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideMailer(cfg *config.Config) (mail.Mailer, error) {
	return mail.NewSMTPMailer(mail.SMTPSettings{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
		Timeout:  10 * time.Second,
	})
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
