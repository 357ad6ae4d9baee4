package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/librarium/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if needed) the catalog database and migrates
// all tables idempotently. TranslateError is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey, which the identity registry
// relies on for its get-or-create conflict handling.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Publisher{},
		&entities.Language{},
		&entities.Country{},
		&entities.Genre{},
		&entities.Series{},
		&entities.Shelf{},
		&entities.Book{},
		&entities.BookAuthor{},
		&entities.BookGenre{},
		&entities.Edition{},
		&entities.ReadableItem{},
		&entities.LibraryEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
