package persistence

import (
	"fmt"

	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate 建立資料表：Postgres 使用版本化 SQL，SQLite 使用模型自動建表
func Migrate(db *gorm.DB, driver string) error {
	if driver != "postgres" {
		common.LogInfo("Auto migrating tables", zap.String("driver", driver))
		if err := AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migration failed: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	m, err := database.NewMigrator(sqlDB)
	if err != nil {
		return err
	}
	return m.Up()
}
