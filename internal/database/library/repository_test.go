package library

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/database/books"
	"github.com/mrlokans/librarium/internal/database/editions"
	"github.com/mrlokans/librarium/internal/database/identities"
	"github.com/mrlokans/librarium/internal/database/items"
	"github.com/mrlokans/librarium/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()
	dbPath := "./test_library_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return NewRepository(db.DB), db, cleanup
}

func wrapTestEdition(t *testing.T, db *database.Database) uint {
	t.Helper()
	bookID, err := books.NewRepository(db.DB).InsertBook(books.BookParams{
		Title:   "Dune",
		Authors: []string{"Frank Herbert"},
	})
	require.NoError(t, err)

	itemID, err := items.NewRepository(db.DB).WrapEdition(editions.EditionParams{
		BookID:    bookID,
		Publisher: "Ace Books",
	})
	require.NoError(t, err)
	return itemID
}

func TestRepository_InsertEntry(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	itemID := wrapTestEdition(t, db)
	acquired := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	entryID, err := repo.InsertEntry(EntryParams{
		RItemID:      itemID,
		AcquiredFrom: "Local bookstore",
		AcquiredDate: &acquired,
		Price:        12.50,
		ShelfName:    "Shelf A",
		Notes:        "First paperback printing",
	})
	require.NoError(t, err)
	assert.NotZero(t, entryID)

	var entry entities.LibraryEntry
	require.NoError(t, db.DB.First(&entry, entryID).Error)
	assert.Equal(t, itemID, entry.RItemID)
	require.NotNil(t, entry.AcquiredFrom)
	assert.Equal(t, "Local bookstore", *entry.AcquiredFrom)
	require.NotNil(t, entry.Price)
	assert.Equal(t, 12.50, *entry.Price)
	require.NotNil(t, entry.ShelfID)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestRepository_InsertEntry_RequiresExistingItem(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.InsertEntry(EntryParams{RItemID: 999999})
	assert.ErrorIs(t, err, database.ErrInvalidInput)
}

func TestRepository_InsertEntry_BlankOptionalsStoredAsNull(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	itemID := wrapTestEdition(t, db)

	entryID, err := repo.InsertEntry(EntryParams{
		RItemID:      itemID,
		AcquiredFrom: "   ",
		Price:        0,
		ShelfName:    "",
		Notes:        "",
	})
	require.NoError(t, err)

	var entry entities.LibraryEntry
	require.NoError(t, db.DB.First(&entry, entryID).Error)
	assert.Nil(t, entry.AcquiredFrom)
	assert.Nil(t, entry.AcquiredDate)
	assert.Nil(t, entry.Price)
	assert.Nil(t, entry.ShelfID)
	assert.Nil(t, entry.Notes)
}

func TestRepository_InsertEntry_ResolvesShelf(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	itemID := wrapTestEdition(t, db)

	_, err := repo.InsertEntry(EntryParams{RItemID: itemID, ShelfName: "Shelf A"})
	require.NoError(t, err)
	_, err = repo.InsertEntry(EntryParams{RItemID: itemID, ShelfName: "Shelf A"})
	require.NoError(t, err)

	// One shelf identity serves both entries.
	var count int64
	require.NoError(t, db.DB.Table("shelves").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	reg := identities.NewRegistry(db.DB)
	names, err := reg.AllNames(identities.KindShelf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shelf A"}, names)
}

func TestRepository_GetAllEntries(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	itemID := wrapTestEdition(t, db)
	first, err := repo.InsertEntry(EntryParams{RItemID: itemID})
	require.NoError(t, err)
	second, err := repo.InsertEntry(EntryParams{RItemID: itemID})
	require.NoError(t, err)

	entries, err := repo.GetAllEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].ID)
	assert.Equal(t, first, entries[1].ID)
}

// Full catalog walk: book, edition, readable item, library entry.
func TestScenario_DuneEndToEnd(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	bookID, err := books.NewRepository(db.DB).InsertBook(books.BookParams{
		Title:   "Dune",
		Authors: []string{"Frank Herbert"},
		Genres:  []string{"Sci-Fi"},
	})
	require.NoError(t, err)

	itemRepo := items.NewRepository(db.DB)
	itemID, err := itemRepo.WrapEdition(editions.EditionParams{
		BookID:    bookID,
		Publisher: "Ace Books",
	})
	require.NoError(t, err)

	entryID, err := repo.InsertEntry(EntryParams{RItemID: itemID, ShelfName: "Shelf A"})
	require.NoError(t, err)
	assert.NotZero(t, entryID)

	editionLabels, err := editions.NewRepository(db.DB).GetAllEditions()
	require.NoError(t, err)
	require.Len(t, editionLabels, 1)
	assert.Equal(t, "Dune - Ace Books - Frank Herbert", editionLabels[0].Label)

	itemLabels, err := itemRepo.GetAllItems()
	require.NoError(t, err)
	require.Len(t, itemLabels, 1)
	assert.Equal(t, itemID, itemLabels[0].ID)
}
