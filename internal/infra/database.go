package infra

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection. The schema is owned by the SQL
// migrations in migrations/; AutoMigrate is never used.
//
// TranslateError maps unique violations to gorm.ErrDuplicatedKey so services
// can report them as conflicts.
func NewDatabase(dsn string, debug bool) (*gorm.DB, error) {
	nivel := logger.Silent
	if debug {
		nivel = logger.Warn
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(nivel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
