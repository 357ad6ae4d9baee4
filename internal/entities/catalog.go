package entities

import (
	"errors"
	"time"
)

// ItemType discriminates what a ReadableItem wraps.
type ItemType string

const (
	ItemTypeEdition ItemType = "edition"
	ItemTypeIssue   ItemType = "issue" // reserved for periodical issues
)

// ErrInvalidItem is returned by the ReadableItem constructors and by
// ReadableItem.Validate when the discriminator does not match the
// populated reference.
var ErrInvalidItem = errors.New("readable item must reference exactly one edition or issue")

// IdentityRow is the shared shape of every taxonomy table: a surrogate id
// and a unique display name. Rows are append-only; once assigned, an id is
// never renamed or deleted.
type IdentityRow struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null;size:255" json:"name"`
}

type Author struct{ IdentityRow }

type Publisher struct{ IdentityRow }

type Language struct{ IdentityRow }

type Country struct{ IdentityRow }

type Genre struct{ IdentityRow }

type Series struct{ IdentityRow }

type Shelf struct{ IdentityRow }

func (Author) TableName() string    { return "authors" }
func (Publisher) TableName() string { return "publishers" }
func (Language) TableName() string  { return "languages" }
func (Country) TableName() string   { return "countries" }
func (Genre) TableName() string     { return "genres" }
func (Series) TableName() string    { return "series" }
func (Shelf) TableName() string     { return "shelves" }

// Book is a literary work. Language, country and type are optional; a nil
// pointer is stored as NULL so reads can distinguish "unset" from a zero
// value. Authors and genres live in the join tables below.
type Book struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Title              string    `gorm:"index;not null;size:512" json:"title"`
	OriginalLanguageID *uint     `json:"original_language_id,omitempty"`
	CountryID          *uint     `json:"country_id,omitempty"`
	Type               *string   `gorm:"size:100" json:"type,omitempty"`
	OriginalLanguage   *Language `gorm:"foreignKey:OriginalLanguageID" json:"original_language,omitempty"`
	Country            *Country  `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// BookAuthor links a book to one of its authors. Rows are owned by the
// book and inserted in the same transaction that creates it.
type BookAuthor struct {
	BookID   uint `gorm:"primaryKey" json:"book_id"`
	AuthorID uint `gorm:"primaryKey" json:"author_id"`
}

type BookGenre struct {
	BookID  uint `gorm:"primaryKey" json:"book_id"`
	GenreID uint `gorm:"primaryKey" json:"genre_id"`
}

func (BookAuthor) TableName() string { return "book_authors" }
func (BookGenre) TableName() string  { return "book_genres" }

// Edition is a specific published manifestation of a book. Many editions
// may share one book; the book is referenced, not owned.
type Edition struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BookID          uint       `gorm:"index;not null" json:"book_id"`
	PublisherID     uint       `gorm:"not null" json:"publisher_id"`
	LanguageID      *uint      `json:"language_id,omitempty"`
	SeriesID        *uint      `json:"series_id,omitempty"`
	PageCount       *int       `json:"page_count,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	ISBN            *string    `gorm:"size:20" json:"isbn,omitempty"`
	Type            *string    `gorm:"size:100" json:"type,omitempty"`
	CoverImagePath  *string    `gorm:"size:1024" json:"cover_image_path,omitempty"`
	Book            Book       `gorm:"foreignKey:BookID" json:"-"`
	Publisher       Publisher  `gorm:"foreignKey:PublisherID" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ReadableItem wraps exactly one concrete readable unit and gives the rest
// of the system a single identifier space for things one can read. Build
// values with NewEditionItem or NewIssueItem so the exactly-one-reference
// invariant holds by construction.
type ReadableItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Type      ItemType `gorm:"not null;size:20" json:"type"`
	EditionID *uint    `json:"edition_id,omitempty"`
	IssueID   *uint    `json:"issue_id,omitempty"`
}

func (ReadableItem) TableName() string { return "readable_items" }

// NewEditionItem wraps an edition.
func NewEditionItem(editionID uint) (ReadableItem, error) {
	if editionID == 0 {
		return ReadableItem{}, ErrInvalidItem
	}
	return ReadableItem{Type: ItemTypeEdition, EditionID: &editionID}, nil
}

// NewIssueItem wraps a periodical issue. The issue entity itself is not
// implemented yet; the variant is reserved so item ids stay stable once
// issues arrive.
func NewIssueItem(issueID uint) (ReadableItem, error) {
	if issueID == 0 {
		return ReadableItem{}, ErrInvalidItem
	}
	return ReadableItem{Type: ItemTypeIssue, IssueID: &issueID}, nil
}

// Validate re-checks the discriminator invariant for rows that were not
// built through the constructors.
func (i ReadableItem) Validate() error {
	switch i.Type {
	case ItemTypeEdition:
		if i.EditionID == nil || *i.EditionID == 0 || i.IssueID != nil {
			return ErrInvalidItem
		}
	case ItemTypeIssue:
		if i.IssueID == nil || *i.IssueID == 0 || i.EditionID != nil {
			return ErrInvalidItem
		}
	default:
		return ErrInvalidItem
	}
	return nil
}

// LibraryEntry records one personally acquired copy of a readable item.
// Everything except the item reference is optional and stored as NULL when
// absent.
type LibraryEntry struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	RItemID      uint         `gorm:"column:r_item_id;index;not null" json:"r_item_id"`
	AcquiredFrom *string      `gorm:"size:255" json:"acquired_from,omitempty"`
	AcquiredDate *time.Time   `json:"acquired_date,omitempty"`
	Price        *float64     `json:"price,omitempty"`
	ShelfID      *uint        `json:"shelf_id,omitempty"`
	Notes        *string      `gorm:"type:text" json:"notes,omitempty"`
	Item         ReadableItem `gorm:"foreignKey:RItemID" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (LibraryEntry) TableName() string { return "my_library" }
