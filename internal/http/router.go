package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarium/internal/database"
)

// RouterConfig carries every dependency the router needs, so tests can
// wire individual stores without the full application.
type RouterConfig struct {
	Database *database.Database
	Books    BookStore
	Editions EditionStore
	Items    ItemStore
	Library  LibraryStore
	Lookups  LookupStore
	Version  string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	editionsController := NewEditionsController(cfg.Editions)
	itemsController := NewItemsController(cfg.Items)
	libraryController := NewLibraryController(cfg.Library)
	lookupsController := NewLookupsController(cfg.Lookups)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Taxonomy lookups for selection controls and autocomplete
	router.GET("/api/lookups/:kind", lookupsController.GetNames)

	// Book catalog
	router.POST("/api/books", booksController.CreateBook)
	router.GET("/api/books", booksController.GetAllBooks)
	router.GET("/api/books/:id/authors", booksController.GetBookAuthors)
	router.GET("/api/books/:id/genres", booksController.GetBookGenres)

	// Edition catalog
	router.POST("/api/editions", editionsController.CreateEdition)
	router.GET("/api/editions", editionsController.GetAllEditions)

	// Readable items
	router.POST("/api/items/editions", itemsController.WrapEdition)
	router.GET("/api/items", itemsController.GetAllItems)

	// Personal library
	router.POST("/api/library", libraryController.CreateEntry)
	router.GET("/api/library", libraryController.GetAllEntries)

	return router
}
