// Package items implements the readable-item composer: a polymorphic
// entity wrapping exactly one concrete readable unit, giving the rest of
// the system a single identifier space for things one can read. Today the
// only concrete variant is an edition; the issue variant is reserved for
// periodicals.
package items

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/database/editions"
	"github.com/mrlokans/librarium/internal/entities"
)

// ItemLabel pairs a readable-item id with its display label.
type ItemLabel struct {
	ID    uint              `json:"id"`
	Type  entities.ItemType `json:"type"`
	Label string            `json:"label"`
}

// Repository handles all readable-item database operations.
type Repository struct {
	db       *gorm.DB
	editions *editions.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, editions: editions.NewRepository(db)}
}

// WrapEdition inserts the edition through the edition catalog and wraps it
// in a new readable item, both in one transaction. Returns the item id.
func (r *Repository) WrapEdition(params editions.EditionParams) (uint, error) {
	var itemID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		editionID, err := editions.NewRepository(tx).InsertEdition(params)
		if err != nil {
			return err
		}

		item, err := entities.NewEditionItem(editionID)
		if err != nil {
			return fmt.Errorf("%w: %v", database.ErrInvalidInput, err)
		}
		id, err := r.insertItem(tx, item)
		if err != nil {
			return err
		}
		itemID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return itemID, nil
}

// insertItem validates the discriminator invariant and writes the row.
// The check runs before any write so a malformed item never reaches the
// table, regardless of how the value was built.
func (r *Repository) insertItem(tx *gorm.DB, item entities.ReadableItem) (uint, error) {
	if err := item.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", database.ErrInvalidInput, err)
	}
	if err := tx.Create(&item).Error; err != nil {
		return 0, fmt.Errorf("failed to insert readable item: %w", err)
	}
	return item.ID, nil
}

// Exists reports whether a readable item with the given id has been
// created.
func (r *Repository) Exists(itemID uint) (bool, error) {
	if itemID == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&entities.ReadableItem{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAllItems returns every readable item with a label, ordered by id.
// Edition items are labelled from the joined edition and book data; issue
// items keep a placeholder label until the issue entity lands.
func (r *Repository) GetAllItems() ([]ItemLabel, error) {
	var rows []entities.ReadableItem
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	labels := make([]ItemLabel, 0, len(rows))
	for _, item := range rows {
		label, err := r.labelFor(item)
		if err != nil {
			return nil, err
		}
		labels = append(labels, ItemLabel{ID: item.ID, Type: item.Type, Label: label})
	}
	return labels, nil
}

func (r *Repository) labelFor(item entities.ReadableItem) (string, error) {
	switch item.Type {
	case entities.ItemTypeEdition:
		if item.EditionID == nil {
			return fmt.Sprintf("Edition ID %d", item.ID), nil
		}
		edition, err := r.editions.GetEditionByID(*item.EditionID)
		if err != nil {
			return "", err
		}
		return r.editions.LabelFor(edition)
	case entities.ItemTypeIssue:
		return fmt.Sprintf("Issue ID %d", item.ID), nil
	default:
		return fmt.Sprintf("Unknown Type ID %d", item.ID), nil
	}
}
