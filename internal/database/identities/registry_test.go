package identities

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/entities"
)

func setupTestDB(t *testing.T) (*Registry, *database.Database, func()) {
	t.Helper()
	dbPath := "./test_identities_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return NewRegistry(db.DB), db, cleanup
}

func TestRegistry_ResolveOrCreate(t *testing.T) {
	reg, _, cleanup := setupTestDB(t)
	defer cleanup()

	id, err := reg.ResolveOrCreate(KindAuthor, "Frank Herbert")
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestRegistry_ResolveOrCreate_Idempotent(t *testing.T) {
	reg, db, cleanup := setupTestDB(t)
	defer cleanup()

	first, err := reg.ResolveOrCreate(KindPublisher, "Ace Books")
	require.NoError(t, err)
	second, err := reg.ResolveOrCreate(KindPublisher, "Ace Books")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	err = db.DB.Table("publishers").Where("name = ?", "Ace Books").Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegistry_ResolveOrCreate_EmptyName(t *testing.T) {
	reg, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := reg.ResolveOrCreate(KindAuthor, "")
	assert.ErrorIs(t, err, database.ErrInvalidInput)

	_, err = reg.ResolveOrCreate(KindAuthor, "   ")
	assert.ErrorIs(t, err, database.ErrInvalidInput)
}

func TestRegistry_DisjointKindSpaces(t *testing.T) {
	reg, db, cleanup := setupTestDB(t)
	defer cleanup()

	authorID, err := reg.ResolveOrCreate(KindAuthor, "Dune")
	require.NoError(t, err)
	genreID, err := reg.ResolveOrCreate(KindGenre, "Dune")
	require.NoError(t, err)

	// Same display name, independent id spaces: each table holds its own row.
	var authorRows, genreRows int64
	require.NoError(t, db.DB.Table("authors").Where("name = ?", "Dune").Count(&authorRows).Error)
	require.NoError(t, db.DB.Table("genres").Where("name = ?", "Dune").Count(&genreRows).Error)
	assert.Equal(t, int64(1), authorRows)
	assert.Equal(t, int64(1), genreRows)

	name, err := reg.NameByID(KindAuthor, authorID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", name)
	name, err = reg.NameByID(KindGenre, genreID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", name)
}

func TestRegistry_IDByName(t *testing.T) {
	reg, _, cleanup := setupTestDB(t)
	defer cleanup()

	created, err := reg.ResolveOrCreate(KindLanguage, "English")
	require.NoError(t, err)

	id, err := reg.IDByName(KindLanguage, "English")
	require.NoError(t, err)
	assert.Equal(t, created, id)

	_, err = reg.IDByName(KindLanguage, "Klingon")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRegistry_NameByID(t *testing.T) {
	reg, _, cleanup := setupTestDB(t)
	defer cleanup()

	id, err := reg.ResolveOrCreate(KindShelf, "Shelf A")
	require.NoError(t, err)

	name, err := reg.NameByID(KindShelf, id)
	require.NoError(t, err)
	assert.Equal(t, "Shelf A", name)

	_, err = reg.NameByID(KindShelf, 999999)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = reg.NameByID(KindShelf, 0)
	assert.ErrorIs(t, err, database.ErrInvalidInput)
}

func TestRegistry_AllNames_Sorted(t *testing.T) {
	reg, _, cleanup := setupTestDB(t)
	defer cleanup()

	for _, name := range []string{"Penguin", "Ace Books", "Tor"} {
		_, err := reg.ResolveOrCreate(KindPublisher, name)
		require.NoError(t, err)
	}

	names, err := reg.AllNames(KindPublisher)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ace Books", "Penguin", "Tor"}, names)
}

func TestRegistry_AllNames_EmptyKind(t *testing.T) {
	reg, _, cleanup := setupTestDB(t)
	defer cleanup()

	names, err := reg.AllNames(KindCountry)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRegistry_UnknownKind(t *testing.T) {
	reg, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := reg.ResolveOrCreate(Kind("magazine"), "The Economist")
	assert.ErrorIs(t, err, database.ErrInvalidInput)
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind("Author")
	assert.True(t, ok)
	assert.Equal(t, KindAuthor, kind)

	_, ok = ParseKind("magazine")
	assert.False(t, ok)
}

func TestKinds_CoversAllTables(t *testing.T) {
	assert.Len(t, Kinds(), 7)
	for _, k := range Kinds() {
		assert.Contains(t, kindTables, k)
	}
	// spot-check one mapping against the entity definition
	assert.Equal(t, entities.Shelf{}.TableName(), kindTables[KindShelf])
}
