// Package identities implements the taxonomy identity registry: a single
// get-or-create mapping from display names to surrogate ids, parameterized
// over the taxonomy kind. Each kind is backed by its own table, so an
// author and a genre may share a display name yet receive independent ids.
package identities

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/entities"
)

// Kind selects one of the taxonomy identity tables.
type Kind string

const (
	KindAuthor    Kind = "author"
	KindPublisher Kind = "publisher"
	KindLanguage  Kind = "language"
	KindCountry   Kind = "country"
	KindGenre     Kind = "genre"
	KindSeries    Kind = "series"
	KindShelf     Kind = "shelf"
)

var kindTables = map[Kind]string{
	KindAuthor:    entities.Author{}.TableName(),
	KindPublisher: entities.Publisher{}.TableName(),
	KindLanguage:  entities.Language{}.TableName(),
	KindCountry:   entities.Country{}.TableName(),
	KindGenre:     entities.Genre{}.TableName(),
	KindSeries:    entities.Series{}.TableName(),
	KindShelf:     entities.Shelf{}.TableName(),
}

// Kinds lists every taxonomy kind, for iteration and request validation.
func Kinds() []Kind {
	return []Kind{KindAuthor, KindPublisher, KindLanguage, KindCountry, KindGenre, KindSeries, KindShelf}
}

// ParseKind maps a request string to a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := kindTables[k]
	return k, ok
}

// Registry resolves display names to stable surrogate ids. Rows are
// append-only: the registry creates them lazily and never renames or
// deletes.
type Registry struct {
	db *gorm.DB
}

// NewRegistry creates a registry on the given handle. Pass a transaction
// handle to make resolutions part of a larger logical insert.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

func (r *Registry) table(kind Kind) (*gorm.DB, error) {
	name, ok := kindTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown identity kind %q", database.ErrInvalidInput, kind)
	}
	return r.db.Table(name), nil
}

// ResolveOrCreate returns the id for name within kind, creating the row if
// absent. Idempotent: resolving the same name twice yields the same id and
// a single row. Uniqueness is enforced by the table's unique constraint; a
// conflicting concurrent insert is treated as "already exists" and
// re-read rather than reported as a failure.
func (r *Registry) ResolveOrCreate(kind Kind, name string) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: name cannot be empty", database.ErrInvalidInput)
	}

	if id, err := r.IDByName(kind, name); err == nil {
		return id, nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return 0, err
	}

	tbl, err := r.table(kind)
	if err != nil {
		return 0, err
	}
	row := entities.IdentityRow{Name: name}
	if err := tbl.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.IDByName(kind, name)
		}
		return 0, fmt.Errorf("failed to create %s %q: %w", kind, name, err)
	}
	return row.ID, nil
}

// IDByName looks up the id for name within kind. Returns ErrNotFound when
// the name has not been registered.
func (r *Registry) IDByName(kind Kind, name string) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: name cannot be empty", database.ErrInvalidInput)
	}
	tbl, err := r.table(kind)
	if err != nil {
		return 0, err
	}
	var row entities.IdentityRow
	if err := tbl.Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%s %q: %w", kind, name, database.ErrNotFound)
		}
		return 0, err
	}
	return row.ID, nil
}

// NameByID looks up the display name for id within kind.
func (r *Registry) NameByID(kind Kind, id uint) (string, error) {
	if id == 0 {
		return "", fmt.Errorf("%w: id must be greater than 0", database.ErrInvalidInput)
	}
	tbl, err := r.table(kind)
	if err != nil {
		return "", err
	}
	var row entities.IdentityRow
	if err := tbl.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%s id %d: %w", kind, id, database.ErrNotFound)
		}
		return "", err
	}
	return row.Name, nil
}

// AllNames returns every registered name within kind, lexicographically
// ordered, for selection controls and autocomplete.
func (r *Registry) AllNames(kind Kind) ([]string, error) {
	tbl, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	names := []string{}
	if err := tbl.Order("name ASC").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
