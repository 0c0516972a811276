package app

import (
	"database/sql"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/config"
	"github.com/Vietanh2703/BASMS-BE-sub000/internal/shared/connection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func connectDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Port:     cfg.Database.Port,
		SSLMode:  cfg.Database.SSLMode,
	}, cfg.Database.MaxRetries)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		zap.L().Named("app").Info("database schema migrated")
	}
	return gormDB, sqlDB, nil
}
