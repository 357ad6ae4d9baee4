// Command generate_demo creates a demo catalog with a handful of well-known
// books, editions and library entries.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/database/books"
	"github.com/mrlokans/librarium/internal/database/editions"
	"github.com/mrlokans/librarium/internal/database/items"
	"github.com/mrlokans/librarium/internal/database/library"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// BookConfig holds a book, its edition and the acquisition details used to
// shelve it in the demo library.
type BookConfig struct {
	Book    books.BookParams
	Edition editions.EditionParams
	Entry   library.EntryParams
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	booksRepo := books.NewRepository(db.DB)
	itemsRepo := items.NewRepository(db.DB)
	libraryRepo := library.NewRepository(db.DB)

	for _, cfg := range getDemoCatalog() {
		bookID, err := booksRepo.InsertBook(cfg.Book)
		if err != nil {
			log.Printf("Failed to save book %s: %v", cfg.Book.Title, err)
			continue
		}

		cfg.Edition.BookID = bookID
		itemID, err := itemsRepo.WrapEdition(cfg.Edition)
		if err != nil {
			log.Printf("Failed to save edition of %s: %v", cfg.Book.Title, err)
			continue
		}

		cfg.Entry.RItemID = itemID
		if _, err := libraryRepo.InsertEntry(cfg.Entry); err != nil {
			log.Printf("Failed to shelve %s: %v", cfg.Book.Title, err)
			continue
		}

		log.Printf("Saved: %s by %v", cfg.Book.Title, cfg.Book.Authors)
	}

	log.Println("Demo database generated successfully!")
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func getDemoCatalog() []BookConfig {
	return []BookConfig{
		{
			Book: books.BookParams{
				Title:            "Dune",
				Authors:          []string{"Frank Herbert"},
				Genres:           []string{"Science Fiction"},
				OriginalLanguage: "English",
				Country:          "United States",
				Type:             "novel",
			},
			Edition: editions.EditionParams{
				Publisher:       "Ace Books",
				Language:        "English",
				Series:          "Dune Chronicles",
				PageCount:       412,
				PublicationDate: date(1965, time.August, 1),
				ISBN:            "978-0441172719",
			},
			Entry: library.EntryParams{
				AcquiredFrom: "Local bookstore",
				AcquiredDate: date(2023, time.May, 12),
				Price:        14.99,
				ShelfName:    "Sci-Fi A",
			},
		},
		{
			Book: books.BookParams{
				Title:            "Solaris",
				Authors:          []string{"Stanislaw Lem"},
				Genres:           []string{"Science Fiction"},
				OriginalLanguage: "Polish",
				Country:          "Poland",
				Type:             "novel",
			},
			Edition: editions.EditionParams{
				Publisher:       "Faber and Faber",
				Language:        "English",
				PageCount:       224,
				PublicationDate: date(1970, time.January, 1),
				ISBN:            "978-0156837507",
			},
			Entry: library.EntryParams{
				AcquiredFrom: "Online",
				AcquiredDate: date(2023, time.November, 3),
				Price:        11.50,
				ShelfName:    "Sci-Fi A",
			},
		},
		{
			Book: books.BookParams{
				Title:            "Good Omens",
				Authors:          []string{"Terry Pratchett", "Neil Gaiman"},
				Genres:           []string{"Fantasy", "Comedy"},
				OriginalLanguage: "English",
				Country:          "United Kingdom",
				Type:             "novel",
			},
			Edition: editions.EditionParams{
				Publisher:       "Gollancz",
				Language:        "English",
				PageCount:       288,
				PublicationDate: date(1990, time.May, 10),
				ISBN:            "978-0575048003",
			},
			Entry: library.EntryParams{
				AcquiredFrom: "Gift",
				AcquiredDate: date(2024, time.February, 20),
				ShelfName:    "Fantasy B",
				Notes:        "Birthday present",
			},
		},
		{
			Book: books.BookParams{
				Title:            "The Master and Margarita",
				Authors:          []string{"Mikhail Bulgakov"},
				Genres:           []string{"Fantasy", "Satire"},
				OriginalLanguage: "Russian",
				Country:          "Russia",
				Type:             "novel",
			},
			Edition: editions.EditionParams{
				Publisher:       "Penguin Classics",
				Language:        "English",
				PageCount:       432,
				PublicationDate: date(2000, time.February, 1),
				ISBN:            "978-0140455465",
			},
			Entry: library.EntryParams{
				AcquiredFrom: "Secondhand",
				AcquiredDate: date(2022, time.September, 8),
				Price:        4.00,
				ShelfName:    "Classics",
			},
		},
	}
}
