// Package library provides database operations for the personal library
// ledger: records of acquired copies of readable items.
package library

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/database/identities"
	"github.com/mrlokans/librarium/internal/database/items"
	"github.com/mrlokans/librarium/internal/entities"
)

// EntryParams carries the attributes of a new library entry. Only the
// readable-item reference is required; blank strings, a nil date and a
// non-positive price are stored as NULL.
type EntryParams struct {
	RItemID      uint
	AcquiredFrom string
	AcquiredDate *time.Time
	Price        float64
	ShelfName    string
	Notes        string
}

// Repository handles all personal-library database operations.
type Repository struct {
	db    *gorm.DB
	items *items.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, items: items.NewRepository(db)}
}

// InsertEntry records an acquired copy of an existing readable item and
// returns the entry id. The referenced item must already exist.
func (r *Repository) InsertEntry(params EntryParams) (uint, error) {
	exists, err := r.items.Exists(params.RItemID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: readable item %d does not exist", database.ErrInvalidInput, params.RItemID)
	}

	var entryID uint
	err = r.db.Transaction(func(tx *gorm.DB) error {
		entry := entities.LibraryEntry{
			RItemID:      params.RItemID,
			AcquiredDate: params.AcquiredDate,
		}
		if from := strings.TrimSpace(params.AcquiredFrom); from != "" {
			entry.AcquiredFrom = &from
		}
		if params.Price > 0 {
			price := params.Price
			entry.Price = &price
		}
		if strings.TrimSpace(params.ShelfName) != "" {
			shelfID, err := identities.NewRegistry(tx).ResolveOrCreate(identities.KindShelf, params.ShelfName)
			if err != nil {
				return err
			}
			entry.ShelfID = &shelfID
		}
		if notes := strings.TrimSpace(params.Notes); notes != "" {
			entry.Notes = &notes
		}

		if err := tx.Omit("Item").Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to insert library entry: %w", err)
		}
		entryID = entry.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return entryID, nil
}

// GetAllEntries lists the library, newest acquisitions first.
func (r *Repository) GetAllEntries() ([]entities.LibraryEntry, error) {
	var entries []entities.LibraryEntry
	err := r.db.Order("created_at DESC, id DESC").Find(&entries).Error
	return entries, err
}
