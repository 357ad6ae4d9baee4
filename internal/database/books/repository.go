// Package books provides database operations for the book catalog.
//
// A book insert is one logical operation: the book row plus its
// author/genre association rows are written in a single transaction, so a
// failed association never leaves a partially linked book behind.
package books

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/database/identities"
	"github.com/mrlokans/librarium/internal/entities"
)

// BookParams carries the free-text attributes of a new book. Authors are
// required; everything else is optional and blank values are stored as
// NULL.
type BookParams struct {
	Title            string
	Authors          []string
	Genres           []string
	OriginalLanguage string
	Country          string
	Type             string
}

// BookLabel pairs a book id with its display label. Slices of BookLabel
// are ordered by title ascending.
type BookLabel struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertBook resolves taxonomy identities, creates the book row and its
// author/genre associations, and returns the new book id. Title and at
// least one author are required. Blank genre entries are skipped silently;
// a blank author aborts the whole insert.
func (r *Repository) InsertBook(params BookParams) (uint, error) {
	if strings.TrimSpace(params.Title) == "" {
		return 0, fmt.Errorf("%w: title cannot be empty", database.ErrInvalidInput)
	}
	if len(params.Authors) == 0 {
		return 0, fmt.Errorf("%w: at least one author must be provided", database.ErrInvalidInput)
	}

	var bookID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		reg := identities.NewRegistry(tx)

		book := entities.Book{Title: params.Title}
		if strings.TrimSpace(params.OriginalLanguage) != "" {
			id, err := reg.ResolveOrCreate(identities.KindLanguage, params.OriginalLanguage)
			if err != nil {
				return err
			}
			book.OriginalLanguageID = &id
		}
		if strings.TrimSpace(params.Country) != "" {
			id, err := reg.ResolveOrCreate(identities.KindCountry, params.Country)
			if err != nil {
				return err
			}
			book.CountryID = &id
		}
		if t := strings.TrimSpace(params.Type); t != "" {
			book.Type = &t
		}

		if err := tx.Create(&book).Error; err != nil {
			return fmt.Errorf("failed to insert book: %w", err)
		}

		seenAuthors := make(map[uint]bool)
		for _, author := range params.Authors {
			id, err := reg.ResolveOrCreate(identities.KindAuthor, author)
			if err != nil {
				return err
			}
			if seenAuthors[id] {
				continue
			}
			seenAuthors[id] = true
			if err := tx.Create(&entities.BookAuthor{BookID: book.ID, AuthorID: id}).Error; err != nil {
				return fmt.Errorf("failed to link author %q: %w", author, err)
			}
		}

		seenGenres := make(map[uint]bool)
		for _, genre := range params.Genres {
			if strings.TrimSpace(genre) == "" {
				continue
			}
			id, err := reg.ResolveOrCreate(identities.KindGenre, genre)
			if err != nil {
				return err
			}
			if seenGenres[id] {
				continue
			}
			seenGenres[id] = true
			if err := tx.Create(&entities.BookGenre{BookID: book.ID, GenreID: id}).Error; err != nil {
				return fmt.Errorf("failed to link genre %q: %w", genre, err)
			}
		}

		bookID = book.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return bookID, nil
}

// GetBookByID retrieves a single book row.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book %d: %w", id, database.ErrNotFound)
		}
		return nil, err
	}
	return &book, nil
}

// GetAllBooks returns every book ordered by title ascending, labelled as
// the title followed by its alphabetically sorted authors.
func (r *Repository) GetAllBooks() ([]BookLabel, error) {
	var rows []entities.Book
	if err := r.db.Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	labels := make([]BookLabel, 0, len(rows))
	for _, book := range rows {
		authors, err := r.GetAuthorsForBook(book.ID)
		if err != nil {
			return nil, err
		}
		label := book.Title
		if len(authors) > 0 {
			label += " - " + strings.Join(authors, ", ")
		}
		labels = append(labels, BookLabel{ID: book.ID, Label: label})
	}
	return labels, nil
}

// GetAuthorsForBook returns the book's author names alphabetically.
// Unknown books yield an empty slice, not an error.
func (r *Repository) GetAuthorsForBook(bookID uint) ([]string, error) {
	names := []string{}
	err := r.db.Table("authors").
		Joins("INNER JOIN book_authors ON book_authors.author_id = authors.id").
		Where("book_authors.book_id = ?", bookID).
		Order("authors.name ASC").
		Pluck("authors.name", &names).Error
	return names, err
}

// GetGenresForBook returns the book's genre names alphabetically.
func (r *Repository) GetGenresForBook(bookID uint) ([]string, error) {
	names := []string{}
	err := r.db.Table("genres").
		Joins("INNER JOIN book_genres ON book_genres.genre_id = genres.id").
		Where("book_genres.book_id = ?", bookID).
		Order("genres.name ASC").
		Pluck("genres.name", &names).Error
	return names, err
}
