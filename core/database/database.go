package database

import (
	"fmt"

	"gatherly/core/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the gorm connection handle.
type Database struct {
	DB *gorm.DB
}

// InitDB opens the database selected by DB_DRIVER. Supported drivers:
// sqlite (default), mysql, postgres.
func InitDB(cfg *config.Config) (*Database, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	case "mysql":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("mysql driver requires DB_URL")
		}
		dialector = mysql.Open(cfg.DBURL)
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("postgres driver requires DB_URL")
		}
		dialector = postgres.Open(cfg.DBURL)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if cfg.Env != "production" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{DB: db}, nil
}
