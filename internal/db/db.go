package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"acme-hr-api/internal/config"
	"acme-hr-api/internal/logging"
)

func Connect(cfg config.Config, log zerolog.Logger) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DatabaseURL), log)
}

// Open wraps gorm.Open with the logger and error translation every caller needs.
func Open(dialector gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(log, logger.Warn, time.Second),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
