// Package infra wires the process to its external collaborators, currently
// the Postgres database.
package infra

import (
	"errors"
	"time"

	"github.com/unnamedbank/banking/infra/repository"
	"github.com/unnamedbank/banking/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the Postgres connection pool. Driver errors are
// translated to gorm sentinels so the repositories can map them to domain
// errors.
func NewDBConnection(cnf *config.DB, appEnv string) (*gorm.DB, error) {
	databaseUrl := cnf.Url
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(postgres.Open(databaseUrl), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}

// Migrate creates or upgrades the three tables and their unique indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repository.Client{},
		&repository.Account{},
		&repository.Transfer{},
	)
}
