package db

import (
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table the service owns
func Models() []interface{} {
	return []interface{}{
		&model.KVEntry{},
	}
}

// Migrate runs database migrations on the global connection
func Migrate() error {
	return MigrateDB(DB)
}

// MigrateDB runs database migrations on gormDB
func MigrateDB(gormDB *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := gormDB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
