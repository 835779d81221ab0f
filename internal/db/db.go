// Package db opens the device-local identity database.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wallet-settings/internal/config"
	"wallet-settings/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the database selected by the configured DSN and runs
// migrations. The driver is chosen by DSN shape: mysql://, postgres://, or a
// plain file path for SQLite.
func NewDB(configManager *config.Manager) (*gorm.DB, error) {
	dsn := configManager.GetDatabaseConfig().DSN

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "mysql://"):
		dialector = mysql.Open(strings.TrimPrefix(dsn, "mysql://"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	default:
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logrus.Debug("identity database ready")
	return db, nil
}

// Migrate creates or updates the identity and wallet tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.LocalUser{}, &models.WalletKey{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
