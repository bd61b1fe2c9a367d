package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Migrator 以版本化 SQL 檔管理 Postgres schema
type Migrator struct {
	migrate *migrate.Migrate
}

// NewMigrator 建立 migrator
func NewMigrator(db *sql.DB) (*Migrator, error) {
	source, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m}, nil
}

// Up 執行所有尚未套用的 migration
func (m *Migrator) Up() error {
	start := time.Now()
	common.LogInfo("Running database migrations")

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			version, _, _ := m.migrate.Version()
			common.LogInfo("No migrations to run", zap.Uint("current_version", version))
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ := m.migrate.Version()
	common.LogInfo("Migrations completed",
		zap.Uint("version", version),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Down 回退 steps 個版本
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	if err := m.migrate.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	common.LogInfo("Migrations rolled back", zap.Int("steps", steps))
	return nil
}

// Version 回傳目前版本與 dirty 狀態
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Force 強制設定版本，用於修復 dirty 狀態
func (m *Migrator) Force(version int) error {
	return m.migrate.Force(version)
}
