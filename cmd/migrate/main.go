package main

import (
	"flag"
	"fmt"
	"os"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/database"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

const usage = `Usage: migrate [flags] <command>

Commands:
  up             apply all pending migrations
  down           roll back migrations (-steps, default 1)
  version        print the current schema version
  force          set the schema version without running migrations (-version)
`

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back")
	version := flag.Int("version", -1, "version to force")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	if cfg.Database.Driver != "postgres" {
		common.LogFatal("Versioned migrations require postgres; sqlite tables are created on startup",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	sqlDB, err := db.DB()
	if err != nil {
		common.LogFatal("Failed to get sql.DB", zap.Error(err))
	}
	m, err := database.NewMigrator(sqlDB)
	if err != nil {
		common.LogFatal("Failed to create migrator", zap.Error(err))
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down(*steps)
	case "version":
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
	case "force":
		if *version < 0 {
			common.LogFatal("force requires -version")
		}
		err = m.Force(*version)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		common.LogFatal("Migration command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}
}
