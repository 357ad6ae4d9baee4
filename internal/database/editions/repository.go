// Package editions provides database operations for the edition catalog.
// An edition is a concrete published manifestation of a book; labels are
// composed by joining back to the book catalog.
package editions

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/database/books"
	"github.com/mrlokans/librarium/internal/database/identities"
	"github.com/mrlokans/librarium/internal/entities"
)

// EditionParams carries the attributes of a new edition. The book
// reference and publisher are required; a page count of zero or less,
// blank strings and a nil date are stored as NULL.
type EditionParams struct {
	BookID          uint
	Publisher       string
	Language        string
	Series          string
	PageCount       int
	PublicationDate *time.Time
	ISBN            string
	Type            string
	CoverImagePath  string
}

// EditionLabel pairs an edition id with its composed display label.
type EditionLabel struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// Repository handles all edition catalog database operations.
type Repository struct {
	db    *gorm.DB
	books *books.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, books: books.NewRepository(db)}
}

// InsertEdition resolves publisher/language/series identities, verifies
// the referenced book exists and creates the edition row, all in one
// transaction. Returns the new edition id.
func (r *Repository) InsertEdition(params EditionParams) (uint, error) {
	if params.BookID == 0 {
		return 0, fmt.Errorf("%w: book id must be greater than 0", database.ErrInvalidInput)
	}
	if strings.TrimSpace(params.Publisher) == "" {
		return 0, fmt.Errorf("%w: publisher cannot be empty", database.ErrInvalidInput)
	}

	var editionID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, params.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: book %d does not exist", database.ErrInvalidInput, params.BookID)
			}
			return err
		}

		reg := identities.NewRegistry(tx)

		publisherID, err := reg.ResolveOrCreate(identities.KindPublisher, params.Publisher)
		if err != nil {
			return err
		}

		edition := entities.Edition{
			BookID:          params.BookID,
			PublisherID:     publisherID,
			PublicationDate: params.PublicationDate,
		}
		if strings.TrimSpace(params.Language) != "" {
			id, err := reg.ResolveOrCreate(identities.KindLanguage, params.Language)
			if err != nil {
				return err
			}
			edition.LanguageID = &id
		}
		if strings.TrimSpace(params.Series) != "" {
			id, err := reg.ResolveOrCreate(identities.KindSeries, params.Series)
			if err != nil {
				return err
			}
			edition.SeriesID = &id
		}
		if params.PageCount > 0 {
			pages := params.PageCount
			edition.PageCount = &pages
		}
		if isbn := strings.TrimSpace(params.ISBN); isbn != "" {
			edition.ISBN = &isbn
		}
		if t := strings.TrimSpace(params.Type); t != "" {
			edition.Type = &t
		}
		if cover := strings.TrimSpace(params.CoverImagePath); cover != "" {
			edition.CoverImagePath = &cover
		}

		if err := tx.Omit("Book", "Publisher").Create(&edition).Error; err != nil {
			return fmt.Errorf("failed to insert edition: %w", err)
		}
		editionID = edition.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return editionID, nil
}

// GetEditionByID retrieves a single edition row.
func (r *Repository) GetEditionByID(id uint) (*entities.Edition, error) {
	var edition entities.Edition
	if err := r.db.First(&edition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("edition %d: %w", id, database.ErrNotFound)
		}
		return nil, err
	}
	return &edition, nil
}

// GetAllEditions returns every edition with its label, ordered by id.
func (r *Repository) GetAllEditions() ([]EditionLabel, error) {
	var rows []entities.Edition
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	labels := make([]EditionLabel, 0, len(rows))
	for _, edition := range rows {
		label, err := r.LabelFor(&edition)
		if err != nil {
			return nil, err
		}
		labels = append(labels, EditionLabel{ID: edition.ID, Label: label})
	}
	return labels, nil
}

// LabelFor composes "<title> - <publisher> - <authors>" for an edition,
// omitting segments whose underlying value is unavailable.
func (r *Repository) LabelFor(edition *entities.Edition) (string, error) {
	segments := []string{}

	var titles []string
	err := r.db.Table("books").Where("id = ?", edition.BookID).Limit(1).Pluck("title", &titles).Error
	if err != nil {
		return "", err
	}
	if len(titles) > 0 && titles[0] != "" {
		segments = append(segments, titles[0])
	}

	reg := identities.NewRegistry(r.db)
	publisher, err := reg.NameByID(identities.KindPublisher, edition.PublisherID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return "", err
	}
	if publisher != "" {
		segments = append(segments, publisher)
	}

	authors, err := r.books.GetAuthorsForBook(edition.BookID)
	if err != nil {
		return "", err
	}
	if len(authors) > 0 {
		segments = append(segments, strings.Join(authors, ", "))
	}

	return strings.Join(segments, " - "), nil
}
