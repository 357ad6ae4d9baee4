package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/database/books"
)

// BookStore is the book catalog surface the HTTP layer depends on.
// Implemented by books.Repository.
type BookStore interface {
	InsertBook(params books.BookParams) (uint, error)
	GetAllBooks() ([]books.BookLabel, error)
	GetAuthorsForBook(bookID uint) ([]string, error)
	GetGenresForBook(bookID uint) ([]string, error)
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

type createBookRequest struct {
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	Genres           []string `json:"genres"`
	OriginalLanguage string   `json:"original_language"`
	Country          string   `json:"country"`
	Type             string   `json:"type"`
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	id, err := controller.store.InsertBook(books.BookParams{
		Title:            req.Title,
		Authors:          req.Authors,
		Genres:           req.Genres,
		OriginalLanguage: req.OriginalLanguage,
		Country:          req.Country,
		Type:             req.Type,
	})
	if err != nil {
		respondStoreError(c, err, "create book")
		return
	}
	respondCreated(c, gin.H{"id": id})
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	labels, err := controller.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(200, gin.H{"books": labels, "count": len(labels)})
}

func (controller *BooksController) GetBookAuthors(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	authors, err := controller.store.GetAuthorsForBook(id)
	if err != nil {
		respondInternalError(c, err, "book authors")
		return
	}
	c.JSON(200, gin.H{"authors": authors})
}

func (controller *BooksController) GetBookGenres(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	genres, err := controller.store.GetGenresForBook(id)
	if err != nil {
		respondInternalError(c, err, "book genres")
		return
	}
	c.JSON(200, gin.H{"genres": genres})
}
